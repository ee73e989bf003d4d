package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cpcf/loom/render"
	"github.com/cpcf/loom/template"
	"github.com/cpcf/loom/value"
)

// Assembler renders every entry of a Set against one context. Rendering is
// pure and the context is read-only, so entries render in parallel with no
// coordination beyond collecting results.
type Assembler struct {
	parser   *template.Parser
	renderer *render.Renderer
	mode     render.Mode
	workers  int
	logger   *slog.Logger
}

type Option func(*Assembler)

func WithMode(mode render.Mode) Option {
	return func(a *Assembler) { a.mode = mode }
}

// WithWorkers caps parallel entry renders. Values below one fall back to
// GOMAXPROCS-sized parallelism.
func WithWorkers(n int) Option {
	return func(a *Assembler) { a.workers = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) { a.logger = logger }
}

func New(parser *template.Parser, renderer *render.Renderer, opts ...Option) *Assembler {
	a := &Assembler{
		parser:   parser,
		renderer: renderer,
		mode:     render.Strict,
		workers:  runtime.NumCPU(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.NumCPU()
	}
	return a
}

// entryResult is one slot of the ordered result table. skip marks entries
// whose path rendered empty.
type entryResult struct {
	file     File
	skip     bool
	failures []Failure
}

// Assemble renders set against c and returns either a complete ordered
// FileSet or a *Report listing every failure. The policy is all-or-nothing:
// every entry is attempted regardless of earlier failures, and no partial
// FileSet ever escapes. Cancelling ctx discards all partial results.
func (a *Assembler) Assemble(ctx context.Context, set Set, c *value.Context) (FileSet, error) {
	scope := value.RootScope(c)
	results := make([]entryResult, len(set))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range set {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.assembleEntry(set[i], entryID(set, i), scope)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	report := &Report{}
	for i := range results {
		report.Failures = append(report.Failures, results[i].failures...)
	}
	if report.HasFailures() {
		a.logger.Error("assembly failed", "entries", len(set), "failures", len(report.Failures))
		return nil, report
	}

	files := make(FileSet, 0, len(set))
	for i := range results {
		if results[i].skip {
			continue
		}
		files = append(files, results[i].file)
	}
	a.logger.Debug("assembly complete", "entries", len(set), "files", len(files))
	return files, nil
}

func (a *Assembler) assembleEntry(entry Entry, id string, scope *value.Scope) entryResult {
	var result entryResult

	// Parse both templates up front; a malformed AST is never evaluated,
	// and both syntax errors surface in one run.
	pathAST, pathParseErr := entry.PathTemplate.Parse(a.parser)
	bodyAST, bodyParseErr := entry.BodyTemplate.Parse(a.parser)
	if pathParseErr != nil {
		result.failures = append(result.failures, newFailure(id, pathParseErr))
	}
	if bodyParseErr != nil {
		result.failures = append(result.failures, newFailure(id, bodyParseErr))
	}
	if len(result.failures) > 0 {
		return result
	}

	path, err := a.renderer.Render(pathAST, scope, a.mode)
	if err != nil {
		result.failures = append(result.failures, newFailure(id, err))
		return result
	}
	if path == "" {
		a.logger.Debug("skipping entry", "entry", id)
		result.skip = true
		return result
	}
	if err := ValidatePath(path); err != nil {
		result.failures = append(result.failures, newFailure(id, err))
		return result
	}

	content, err := a.renderer.Render(bodyAST, scope, a.mode)
	if err != nil {
		result.failures = append(result.failures, newFailure(id, err))
		return result
	}

	result.file = File{Path: path, Content: content}
	return result
}

func entryID(set Set, i int) string {
	if set[i].Name != "" {
		return set[i].Name
	}
	return fmt.Sprintf("entry %d", i)
}
