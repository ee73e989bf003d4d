package assemble

import (
	"fmt"
	"strings"
)

// PathSecurityError marks a rendered path that would escape the output root.
// It is always fatal for its file, regardless of render mode.
type PathSecurityError struct {
	Path   string
	Reason string
}

func (e *PathSecurityError) Error() string {
	return fmt.Sprintf("unsafe output path %q: %s", e.Path, e.Reason)
}

// ValidatePath rejects rendered paths that are absolute, contain empty or
// ".." segments, or use backslash separators. The empty path is the caller's
// skip marker and never reaches here.
func ValidatePath(p string) error {
	if strings.HasPrefix(p, "/") {
		return &PathSecurityError{Path: p, Reason: "absolute path"}
	}
	if strings.ContainsRune(p, '\\') {
		return &PathSecurityError{Path: p, Reason: "backslash separator"}
	}
	for _, segment := range strings.Split(p, "/") {
		switch segment {
		case "":
			return &PathSecurityError{Path: p, Reason: "empty segment"}
		case "..":
			return &PathSecurityError{Path: p, Reason: "parent traversal"}
		}
	}
	return nil
}
