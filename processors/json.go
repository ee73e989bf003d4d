package processors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// JSONFormat re-indents generated .json files (package.json, tsconfig.json,
// and friends) so conditional template blocks do not leave ragged
// indentation behind. Other files pass through unchanged.
type JSONFormat struct {
	// Indent is the indentation unit. Defaults to two spaces.
	Indent string
}

func NewJSONFormat() *JSONFormat {
	return &JSONFormat{Indent: "  "}
}

// Process implements the postprocess.Processor interface.
func (j *JSONFormat) Process(path string, content []byte) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return content, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", j.Indent); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
