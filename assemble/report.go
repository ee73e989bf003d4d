package assemble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpcf/loom/render"
	"github.com/cpcf/loom/template"
)

// Failure is one diagnosed problem of a generation run: which file, what
// kind of error, and where in the template it originated.
type Failure struct {
	Kind    string
	File    string
	Pos     int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %s", f.File, f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// newFailure classifies err into the engine's taxonomy.
func newFailure(file string, err error) Failure {
	f := Failure{File: file, Message: err.Error(), Err: err}

	var parseErr *template.ParseError
	var renderErr *render.Error
	var pathErr *PathSecurityError
	switch {
	case errors.As(err, &parseErr):
		f.Kind = parseErr.Kind.String()
		f.Pos = parseErr.Pos
	case errors.As(err, &renderErr):
		f.Kind = renderErr.Kind.String()
		f.Pos = renderErr.Pos
	case errors.As(err, &pathErr):
		f.Kind = "path security"
	default:
		f.Kind = "internal"
	}
	return f
}

// Report enumerates every failure of one run, so a single invocation yields
// complete diagnostics instead of revealing one problem per re-run. When a
// run produces a Report it produces no FileSet.
type Report struct {
	Failures []Failure
}

func (r *Report) Error() string {
	switch len(r.Failures) {
	case 0:
		return "no failures"
	case 1:
		return r.Failures[0].Error()
	}
	msgs := make([]string, len(r.Failures))
	for i := range r.Failures {
		msgs[i] = r.Failures[i].Error()
	}
	return fmt.Sprintf("%d failures:\n%s", len(r.Failures), strings.Join(msgs, "\n"))
}

func (r *Report) Add(file string, err error) {
	r.Failures = append(r.Failures, newFailure(file, err))
}

func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}
