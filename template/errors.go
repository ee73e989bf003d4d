package template

import "fmt"

// ParseErrorKind classifies template syntax failures.
type ParseErrorKind int

const (
	// UnterminatedBlock: a block was still open at end of input.
	UnterminatedBlock ParseErrorKind = iota
	// MismatchedBlock: an end tag did not match the innermost open block.
	MismatchedBlock
	// MisplacedElse: else outside an if/unless block, or a second else.
	MisplacedElse
	// UnknownHelper: an interpolation named a helper that is not registered.
	UnknownHelper
	// InvalidPath: a malformed tag or variable path.
	InvalidPath
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnterminatedBlock:
		return "unterminated block"
	case MismatchedBlock:
		return "mismatched block"
	case MisplacedElse:
		return "misplaced else"
	case UnknownHelper:
		return "unknown helper"
	case InvalidPath:
		return "invalid path"
	}
	return "parse error"
}

// ParseError reports malformed template syntax. Pos is the byte offset of
// the offending tag in the source text.
type ParseError struct {
	Kind   ParseErrorKind
	Pos    int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Pos)
}

func parseErr(kind ParseErrorKind, pos int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
