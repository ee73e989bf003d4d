package processors

import "bytes"

// FinalNewline ensures every non-empty file ends with exactly one newline.
type FinalNewline struct{}

func NewFinalNewline() *FinalNewline {
	return &FinalNewline{}
}

// Process implements the postprocess.Processor interface.
func (FinalNewline) Process(path string, content []byte) ([]byte, error) {
	if len(content) == 0 {
		return content, nil
	}
	trimmed := bytes.TrimRight(content, "\n")
	return append(trimmed, '\n'), nil
}
