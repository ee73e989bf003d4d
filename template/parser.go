package template

import (
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// HelperSet is the subset of the helper registry the parser needs. Helpers
// are resolved eagerly at parse time so template authors get immediate
// feedback instead of a render-time surprise.
type HelperSet interface {
	Has(name string) bool
}

// Parser turns template source into an AST. A nil helper set behaves as an
// empty one, so every helper reference fails with UnknownHelper.
type Parser struct {
	helpers HelperSet
}

func NewParser(helpers HelperSet) *Parser {
	return &Parser{helpers: helpers}
}

// frame is one entry of the open-block stack. Nodes accumulate into body
// until an else tag redirects them into elseBody.
type frame struct {
	kind   BlockKind
	path   []string
	pos    int
	body   []Node
	inElse bool
	els    []Node
}

// Parse lexes and parses source in a single pass. The returned AST is
// immutable; Parse never partially succeeds.
func (p *Parser) Parse(source string) (*AST, error) {
	root := []Node{}
	var stack []*frame

	emit := func(n Node) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		top := stack[len(stack)-1]
		if top.inElse {
			top.els = append(top.els, n)
		} else {
			top.body = append(top.body, n)
		}
	}

	offset := 0
	for offset < len(source) {
		rel := strings.Index(source[offset:], openDelim)
		if rel < 0 {
			emit(&Literal{Position: offset, Text: source[offset:]})
			break
		}
		if rel > 0 {
			emit(&Literal{Position: offset, Text: source[offset : offset+rel]})
		}
		tagStart := offset + rel
		end := strings.Index(source[tagStart+len(openDelim):], closeDelim)
		if end < 0 {
			return nil, parseErr(InvalidPath, tagStart, "tag is never closed")
		}
		raw := source[tagStart+len(openDelim) : tagStart+len(openDelim)+end]
		offset = tagStart + len(openDelim) + end + len(closeDelim)

		tag := strings.TrimSpace(raw)
		switch {
		case tag == "":
			return nil, parseErr(InvalidPath, tagStart, "empty tag")

		case strings.HasPrefix(tag, "!"):
			// comment, dropped

		case strings.HasPrefix(tag, "#"):
			kind, path, err := p.parseBlockOpen(tag, tagStart)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &frame{kind: kind, path: path, pos: tagStart})

		case strings.HasPrefix(tag, "/"):
			kind, err := blockKindOf(tag[1:], tagStart)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return nil, parseErr(MismatchedBlock, tagStart, "{{/%s}} without an open block", kind)
			}
			top := stack[len(stack)-1]
			if top.kind != kind {
				return nil, parseErr(MismatchedBlock, tagStart, "{{/%s}} closes {{#%s}}", kind, top.kind)
			}
			stack = stack[:len(stack)-1]
			emit(&Block{Position: top.pos, Kind: top.kind, Path: top.path, Body: top.body, Else: top.els})

		case tag == "else":
			if len(stack) == 0 {
				return nil, parseErr(MisplacedElse, tagStart, "else outside any block")
			}
			top := stack[len(stack)-1]
			if top.kind == BlockEach {
				return nil, parseErr(MisplacedElse, tagStart, "else inside {{#each}}")
			}
			if top.inElse {
				return nil, parseErr(MisplacedElse, tagStart, "duplicate else")
			}
			top.inElse = true

		default:
			node, err := p.parseInterpolation(tag, tagStart)
			if err != nil {
				return nil, err
			}
			emit(node)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, parseErr(UnterminatedBlock, top.pos, "{{#%s}} is never closed", top.kind)
	}
	return &AST{Nodes: root}, nil
}

func (p *Parser) parseBlockOpen(tag string, pos int) (BlockKind, []string, error) {
	fields := strings.Fields(tag[1:])
	if len(fields) != 2 {
		return 0, nil, parseErr(InvalidPath, pos, "block tag wants a keyword and one path: {{%s}}", tag)
	}
	kind, err := blockKindOf(fields[0], pos)
	if err != nil {
		return 0, nil, err
	}
	path, err := splitPath(fields[1], pos)
	if err != nil {
		return 0, nil, err
	}
	return kind, path, nil
}

func (p *Parser) parseInterpolation(tag string, pos int) (*Interpolation, error) {
	fields := strings.Fields(tag)
	path, err := splitPath(fields[len(fields)-1], pos)
	if err != nil {
		return nil, err
	}
	helpers := fields[:len(fields)-1]
	for _, name := range helpers {
		if p.helpers == nil || !p.helpers.Has(name) {
			return nil, parseErr(UnknownHelper, pos, "%q", name)
		}
	}
	return &Interpolation{Position: pos, Path: path, Helpers: helpers}, nil
}

func blockKindOf(keyword string, pos int) (BlockKind, error) {
	switch keyword {
	case "if":
		return BlockIf, nil
	case "unless":
		return BlockUnless, nil
	case "each":
		return BlockEach, nil
	}
	return 0, parseErr(InvalidPath, pos, "unknown block keyword %q", keyword)
}

// splitPath validates a dot-separated variable path. Segments must be
// non-empty and made of letters, digits, underscores, or dollar signs; a
// leading @ marks the loop specials (@index, @key, @first, @last).
func splitPath(expr string, pos int) ([]string, error) {
	segments := strings.Split(expr, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, parseErr(InvalidPath, pos, "empty segment in %q", expr)
		}
		for i, r := range segment {
			if r == '@' && i == 0 {
				continue
			}
			if r == '_' || r == '$' ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				continue
			}
			return nil, parseErr(InvalidPath, pos, "bad character %q in %q", r, expr)
		}
	}
	return segments, nil
}
