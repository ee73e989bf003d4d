package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpcf/loom/template"
	"github.com/cpcf/loom/value"
)

// Mode selects the missing-variable policy.
type Mode int

const (
	// Strict fails with MissingVariable on unresolved interpolation paths.
	// This is the default for production generation.
	Strict Mode = iota
	// Lenient substitutes the empty string instead. Meant for draft and
	// preview rendering only.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Renderer evaluates ASTs against a scope. Rendering is a pure function of
// (AST, scope, helpers, mode): no shared state is touched, so one Renderer
// may serve any number of concurrent renders.
type Renderer struct {
	helpers *Registry
}

func NewRenderer(helpers *Registry) *Renderer {
	return &Renderer{helpers: helpers}
}

// Render evaluates ast to a string or fails with a *Error.
func (r *Renderer) Render(ast *template.AST, scope *value.Scope, mode Mode) (string, error) {
	var b strings.Builder
	if err := r.renderNodes(&b, ast.Nodes, scope, mode); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) renderNodes(b *strings.Builder, nodes []template.Node, scope *value.Scope, mode Mode) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *template.Literal:
			b.WriteString(n.Text)
		case *template.Interpolation:
			if err := r.renderInterpolation(b, n, scope, mode); err != nil {
				return err
			}
		case *template.Block:
			if err := r.renderBlock(b, n, scope, mode); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected node type %T", node)
		}
	}
	return nil
}

func (r *Renderer) renderInterpolation(b *strings.Builder, n *template.Interpolation, scope *value.Scope, mode Mode) error {
	path := strings.Join(n.Path, ".")

	v, ok := scope.Resolve(n.Path)
	if !ok {
		if mode == Strict {
			return renderErr(MissingVariable, path, n.Position, "")
		}
		return nil
	}

	for i := len(n.Helpers) - 1; i >= 0; i-- {
		name := n.Helpers[i]
		helper, found := r.helpers.Lookup(name)
		if !found {
			// The parser resolves helpers eagerly; hitting this means the
			// registry changed between parse and render.
			return fmt.Errorf("helper %q is not registered", name)
		}
		if helper.Arity != 1 {
			return renderErr(HelperArityError, path, n.Position,
				"helper %q declares arity %d, a chain supplies exactly 1", name, helper.Arity)
		}
		out, err := helper.Fn(v)
		if err != nil {
			var re *Error
			if errors.As(err, &re) {
				re.Path = path
				re.Pos = n.Position
				return re
			}
			return err
		}
		v = out
	}

	b.WriteString(v.Format())
	return nil
}

func (r *Renderer) renderBlock(b *strings.Builder, n *template.Block, scope *value.Scope, mode Mode) error {
	if n.Kind == template.BlockEach {
		return r.renderEach(b, n, scope, mode)
	}

	// An absent condition path is simply falsy, in both modes.
	v, _ := scope.Resolve(n.Path)
	truthy := v.Truthy()
	if n.Kind == template.BlockUnless {
		truthy = !truthy
	}

	if truthy {
		return r.renderNodes(b, n.Body, scope, mode)
	}
	return r.renderNodes(b, n.Else, scope, mode)
}

func (r *Renderer) renderEach(b *strings.Builder, n *template.Block, scope *value.Scope, mode Mode) error {
	path := strings.Join(n.Path, ".")

	collection, ok := scope.Resolve(n.Path)
	if !ok {
		if mode == Strict {
			return renderErr(MissingVariable, path, n.Position, "")
		}
		return nil
	}

	switch collection.Kind() {
	case value.KindList:
		items, _ := collection.AsList()
		for i, item := range items {
			child := scope.Child(map[string]value.Value{
				"this":   item,
				"@index": value.Int(i),
				"@first": value.Bool(i == 0),
				"@last":  value.Bool(i == len(items)-1),
			})
			if err := r.renderNodes(b, n.Body, child, mode); err != nil {
				return err
			}
		}
	case value.KindMap:
		m, _ := collection.AsMap()
		keys := collection.SortedKeys()
		for i, key := range keys {
			child := scope.Child(map[string]value.Value{
				"this":   m[key],
				"@key":   value.Str(key),
				"@index": value.Int(i),
				"@first": value.Bool(i == 0),
				"@last":  value.Bool(i == len(keys)-1),
			})
			if err := r.renderNodes(b, n.Body, child, mode); err != nil {
				return err
			}
		}
	default:
		return renderErr(CollectionExpected, path, n.Position, "got %s", collection.Kind())
	}
	return nil
}
