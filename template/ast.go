// Package template lexes and parses the loom template language into an
// immutable AST.
//
// Templates are plain text with {{ }} tags. A tag is either an interpolation
// ({{ name }} or {{ upper name }} with helpers applied right to left), a
// block ({{#if path}} ... {{else}} ... {{/if}}, likewise #unless and #each),
// or a comment ({{! ignored }}). Blocks nest to arbitrary depth.
package template

// Node is the interface implemented by all AST nodes. Positions are byte
// offsets into the source text.
type Node interface {
	Pos() int
	node()
}

// Literal is raw text outside any tag.
type Literal struct {
	Position int
	Text     string
}

// Interpolation substitutes a resolved path, optionally passed through a
// helper chain. Helpers holds the names in source order; the rightmost name
// (adjacent to the path) is applied first.
type Interpolation struct {
	Position int
	Path     []string
	Helpers  []string
}

// BlockKind distinguishes conditional and iterative blocks.
type BlockKind int

const (
	BlockIf BlockKind = iota
	BlockUnless
	BlockEach
)

func (k BlockKind) String() string {
	switch k {
	case BlockIf:
		return "if"
	case BlockUnless:
		return "unless"
	case BlockEach:
		return "each"
	}
	return "unknown"
}

// Block is a conditional or iterative control-flow node. Else is nil when no
// else branch was written; each blocks never carry one.
type Block struct {
	Position int
	Kind     BlockKind
	Path     []string
	Body     []Node
	Else     []Node
}

func (n *Literal) Pos() int       { return n.Position }
func (n *Interpolation) Pos() int { return n.Position }
func (n *Block) Pos() int         { return n.Position }

func (n *Literal) node()       {}
func (n *Interpolation) node() {}
func (n *Block) node()         {}

// AST is the parsed form of one template. It is never modified after Parse
// returns and may be rendered concurrently.
type AST struct {
	Nodes []Node
}
