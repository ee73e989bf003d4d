// Package processors provides built-in post-processors for generated files.
package processors

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// GoImports fixes imports and formats generated Go source files, falling
// back to plain gofmt when goimports fails. Non-Go files pass through
// unchanged.
type GoImports struct {
	TabWidth  int
	TabIndent bool
	AllErrors bool
	Comments  bool
}

func NewGoImports() *GoImports {
	return &GoImports{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
	}
}

// Process implements the postprocess.Processor interface.
func (g *GoImports) Process(path string, content []byte) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) != ".go" {
		return content, nil
	}

	options := &imports.Options{
		AllErrors: g.AllErrors,
		Comments:  g.Comments,
		TabIndent: g.TabIndent,
		TabWidth:  g.TabWidth,
	}

	formatted, err := imports.Process(path, content, options)
	if err != nil {
		formatted, fmtErr := format.Source(content)
		if fmtErr != nil {
			return nil, fmt.Errorf("failed to format Go code with goimports (%w) and gofmt (%w)", err, fmtErr)
		}
		return formatted, nil
	}
	return formatted, nil
}
