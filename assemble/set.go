// Package assemble renders template sets into complete file trees with
// security-validated paths and whole-run error reporting.
package assemble

import "github.com/cpcf/loom/template"

// Entry pairs a path template with a body template. The rendered path
// decides where the rendered body lands; an entry whose path renders empty
// contributes no file, which lets a template set omit files conditionally.
type Entry struct {
	Name         string
	PathTemplate *template.Template
	BodyTemplate *template.Template
}

// NewEntry builds an entry from raw template sources.
func NewEntry(name, pathSource, bodySource string) Entry {
	return Entry{
		Name:         name,
		PathTemplate: template.New(pathSource),
		BodyTemplate: template.New(bodySource),
	}
}

// Set is an ordered template set. Order is significant: the output FileSet
// preserves it regardless of render scheduling.
type Set []Entry

// File is one rendered output file with a validated relative path.
type File struct {
	Path    string
	Content string
}

// FileSet is the final product of one generation run, ordered like the Set
// that produced it. It is handed to an external writer; the engine itself
// never touches disk.
type FileSet []File
