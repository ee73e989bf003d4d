// Package postprocess applies content transforms to rendered files before
// the FileSet is handed to the caller: formatting generated Go, normalizing
// JSON, enforcing trailing newlines, and similar cleanups. Processors are
// pure content transforms; they never touch disk.
package postprocess

import "fmt"

// Processor transforms the content of one rendered file. Implementations
// must be stateless and safe for concurrent use, and should return content
// unchanged for file types they do not handle.
type Processor interface {
	Process(path string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(path string, content []byte) ([]byte, error)

func (f ProcessorFunc) Process(path string, content []byte) ([]byte, error) {
	return f(path, content)
}

// Chain runs processors in registration order.
type Chain struct {
	processors []Processor
}

func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

func (c *Chain) Add(p Processor) {
	c.processors = append(c.processors, p)
}

func (c *Chain) AddFunc(fn func(path string, content []byte) ([]byte, error)) {
	c.processors = append(c.processors, ProcessorFunc(fn))
}

// Apply runs every processor in sequence. The first failure stops the chain.
func (c *Chain) Apply(path string, content []byte) ([]byte, error) {
	result := content
	for i, p := range c.processors {
		processed, err := p.Process(path, result)
		if err != nil {
			return nil, fmt.Errorf("processor %d failed for %s: %w", i, path, err)
		}
		result = processed
	}
	return result, nil
}

func (c *Chain) HasProcessors() bool {
	return len(c.processors) > 0
}

func (c *Chain) Len() int {
	return len(c.processors)
}
