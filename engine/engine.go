// Package engine wires the generation pipeline together: pattern context
// building, template parsing, rendering, assembly, and post-processing.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cpcf/loom/assemble"
	"github.com/cpcf/loom/pattern"
	"github.com/cpcf/loom/postprocess"
	"github.com/cpcf/loom/render"
	"github.com/cpcf/loom/template"
	"github.com/cpcf/loom/value"
)

type Engine struct {
	logger         *slog.Logger
	helpers        *render.Registry
	patterns       *pattern.Registry
	parser         *template.Parser
	cache          *template.Cache
	renderer       *render.Renderer
	mode           render.Mode
	workers        int
	postprocessors *postprocess.Chain
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:         slog.Default(),
		helpers:        render.Defaults(),
		patterns:       pattern.Defaults(),
		mode:           render.Strict,
		postprocessors: postprocess.NewChain(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.parser = template.NewParser(e.helpers)
	e.cache = template.NewCache(e.parser)
	e.renderer = render.NewRenderer(e.helpers)

	return e
}

// AddPostProcessor appends a processor to the chain applied to every
// rendered file body. Processors run in the order they were added.
func (e *Engine) AddPostProcessor(p postprocess.Processor) {
	e.postprocessors.Add(p)
}

// Generate runs the whole pipeline: build the pattern context, assemble the
// template set against it, then post-process each file. On failure it
// returns a complete *assemble.Report and no files.
func (e *Engine) Generate(ctx context.Context, cfg pattern.Config, set assemble.Set) (assemble.FileSet, error) {
	runID := uuid.NewString()
	logger := e.logger.With("run", runID, "pattern", cfg.Name)
	logger.Info("starting generation", "entries", len(set))

	pctx := e.patterns.Build(cfg)
	for _, warning := range pctx.Warnings() {
		logger.Warn("pattern warning", "warning", warning)
	}

	asm := assemble.New(e.parser, e.renderer,
		assemble.WithMode(e.mode),
		assemble.WithWorkers(e.workers),
		assemble.WithLogger(logger))

	files, err := asm.Assemble(ctx, set, pctx)
	if err != nil {
		return nil, err
	}

	if e.postprocessors.HasProcessors() {
		for i := range files {
			processed, err := e.postprocessors.Apply(files[i].Path, []byte(files[i].Content))
			if err != nil {
				// Post-processing is cosmetic; keep the rendered content.
				logger.Warn("post-processing failed", "path", files[i].Path, "error", err)
				continue
			}
			files[i].Content = string(processed)
		}
	}

	logger.Info("generation complete", "files", len(files))
	return files, nil
}

// ParseAll eagerly parses every template of set so syntax errors surface
// before any rendering. Returns a *assemble.Report listing every parse
// failure, or nil when the set is clean.
func (e *Engine) ParseAll(set assemble.Set) error {
	report := &assemble.Report{}
	for i, entry := range set {
		id := entryName(entry, i)
		if _, err := entry.PathTemplate.Parse(e.parser); err != nil {
			report.Add(id, err)
		}
		if _, err := entry.BodyTemplate.Parse(e.parser); err != nil {
			report.Add(id, err)
		}
	}
	if report.HasFailures() {
		return report
	}
	return nil
}

func entryName(entry assemble.Entry, i int) string {
	if entry.Name != "" {
		return entry.Name
	}
	return fmt.Sprintf("entry %d", i)
}

// Preview renders a single template source against the context derived from
// cfg, in Lenient mode, for draft inspection. Parsed sources are cached
// across calls.
func (e *Engine) Preview(cfg pattern.Config, source string) (string, error) {
	ast, err := e.cache.Get(source)
	if err != nil {
		return "", err
	}
	pctx := e.patterns.Build(cfg)
	return e.renderer.Render(ast, value.RootScope(pctx), render.Lenient)
}
