package render

import "fmt"

// ErrorKind classifies failures of valid syntax against invalid data.
type ErrorKind int

const (
	// MissingVariable: an interpolation path did not resolve in Strict mode.
	MissingVariable ErrorKind = iota
	// CollectionExpected: an each block's path was not a list or map.
	CollectionExpected
	// HelperArityError: a helper was invoked with the wrong argument count.
	HelperArityError
	// TypeMismatch: a helper received a value of an incompatible kind.
	TypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case MissingVariable:
		return "missing variable"
	case CollectionExpected:
		return "collection expected"
	case HelperArityError:
		return "helper arity error"
	case TypeMismatch:
		return "type mismatch"
	}
	return "render error"
}

// Error reports a render-time failure. Path is the dotted variable path of
// the offending node; Pos is its byte offset in the template source.
type Error struct {
	Kind   ErrorKind
	Path   string
	Pos    int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func renderErr(kind ErrorKind, path string, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
