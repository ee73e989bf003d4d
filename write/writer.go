// Package write persists assembled file sets to disk. Generation itself is
// pure and in-memory; this package is the single place where output touches
// the filesystem.
package write

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cpcf/loom/assemble"
)

type Option func(*Writer)

// WithDryRun logs what would be written without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// WithSkipExisting leaves files that already exist on disk untouched.
func WithSkipExisting(skip bool) Option {
	return func(w *Writer) {
		w.skipExisting = skip
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithManifest records every written file in a manifest at the output root
// and removes files a previous run generated that this run no longer does.
func WithManifest(enabled bool) Option {
	return func(w *Writer) {
		w.manifest = enabled
	}
}

type Writer struct {
	logger       *slog.Logger
	dryRun       bool
	skipExisting bool
	manifest     bool
}

func New(opts ...Option) *Writer {
	w := &Writer{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write persists files under root, creating directories as needed. Each file
// is written to a temporary sibling and renamed into place, so readers never
// observe a partially written file. Paths are trusted to be the validated
// relative paths the assembler produces.
func (w *Writer) Write(root string, files assemble.FileSet) error {
	var previous *Manifest
	if w.manifest && !w.dryRun {
		loaded, err := LoadManifest(root)
		if err != nil {
			return err
		}
		previous = loaded
	}

	written := make(map[string]string, len(files))
	for _, file := range files {
		relPath := filepath.FromSlash(file.Path)
		fullPath := filepath.Join(root, relPath)

		if w.skipExisting {
			if _, err := os.Stat(fullPath); err == nil {
				// Still this run's output: keep its manifest entry so
				// pruning never removes it.
				if previous != nil {
					if hash, ok := previous.Entries[file.Path]; ok {
						written[file.Path] = hash
					}
				}
				w.logger.Debug("skipping existing file", "path", relPath)
				continue
			}
		}

		if w.dryRun {
			w.logger.Info("would write file", "path", relPath, "bytes", len(file.Content))
			continue
		}

		if err := writeAtomic(fullPath, []byte(file.Content)); err != nil {
			return fmt.Errorf("failed to write %q: %w", relPath, err)
		}
		written[file.Path] = contentHash([]byte(file.Content))
		w.logger.Debug("wrote file", "path", relPath, "bytes", len(file.Content))
	}

	if previous != nil {
		if err := w.prune(root, previous, written); err != nil {
			return err
		}
		if err := SaveManifest(root, NewManifest(written)); err != nil {
			return err
		}
	}
	return nil
}

// prune deletes files the previous manifest recorded that the current run did
// not produce. Files whose content no longer matches the recorded hash were
// edited by hand and are left alone.
func (w *Writer) prune(root string, previous *Manifest, written map[string]string) error {
	for relPath, recordedHash := range previous.Entries {
		if _, ok := written[relPath]; ok {
			continue
		}
		fullPath := filepath.Join(root, filepath.FromSlash(relPath))
		data, err := os.ReadFile(fullPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read stale file %q: %w", relPath, err)
		}
		if contentHash(data) != recordedHash {
			w.logger.Warn("keeping stale file with local edits", "path", relPath)
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove stale file %q: %w", relPath, err)
		}
		w.logger.Info("removed stale file", "path", relPath)
	}
	return nil
}

func writeAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
