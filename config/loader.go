// Package config loads pattern configurations and template-set manifests.
// This is caller-side convenience: the engine core itself performs no I/O.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cpcf/loom/assemble"
	"github.com/cpcf/loom/pattern"
)

// Validator lets configuration types carry their own validation logic.
type Validator interface {
	Validate() error
}

// LoadYAML reads and unmarshals a YAML file into target. If target
// implements Validator, validation runs after unmarshalling.
func LoadYAML[T any](path string, target *T) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read configuration file %q: %w", absPath, err)
	}

	return ParseYAML(data, target)
}

// ParseYAML unmarshals YAML bytes into target, running validation when the
// target implements Validator.
func ParseYAML[T any](data []byte, target *T) error {
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return nil
}

// patternFile is the on-disk form of a pattern configuration.
type patternFile struct {
	Pattern   string         `yaml:"pattern"`
	Decisions map[string]any `yaml:"decisions"`
}

func (p *patternFile) Validate() error {
	if p.Pattern == "" {
		return fmt.Errorf("pattern name is required")
	}
	return nil
}

// LoadPattern reads a pattern configuration from a YAML file. The decisions
// block stays an opaque map; pattern generators destructure it themselves.
func LoadPattern(path string) (pattern.Config, error) {
	var file patternFile
	if err := LoadYAML(path, &file); err != nil {
		return pattern.Config{}, err
	}
	return pattern.Config{Name: file.Pattern, Decisions: file.Decisions}, nil
}

// manifest describes a template set: an ordered list of entries whose body
// is given inline or read from a file next to the manifest.
type manifest struct {
	Templates []manifestEntry `yaml:"templates"`
}

type manifestEntry struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Body     string `yaml:"body"`
	BodyFile string `yaml:"bodyFile"`
}

func (m *manifest) Validate() error {
	for i, entry := range m.Templates {
		if entry.Path == "" {
			return fmt.Errorf("templates[%d]: path template is required", i)
		}
		if (entry.Body == "") == (entry.BodyFile == "") {
			return fmt.Errorf("templates[%d]: exactly one of body and bodyFile is required", i)
		}
	}
	return nil
}

// LoadSet reads a template-set manifest from fsys and resolves bodyFile
// references relative to the manifest's directory. Entry order in the
// manifest is the order of the resulting set.
func LoadSet(fsys fs.FS, manifestPath string) (assemble.Set, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", manifestPath, err)
	}

	var m manifest
	if err := ParseYAML(data, &m); err != nil {
		return nil, err
	}

	baseDir := path.Dir(manifestPath)
	set := make(assemble.Set, 0, len(m.Templates))
	for i, entry := range m.Templates {
		body := entry.Body
		if entry.BodyFile != "" {
			raw, err := fs.ReadFile(fsys, path.Join(baseDir, entry.BodyFile))
			if err != nil {
				return nil, fmt.Errorf("templates[%d]: failed to read body file %q: %w", i, entry.BodyFile, err)
			}
			body = string(raw)
		}
		name := entry.Name
		if name == "" {
			name = entry.Path
		}
		set = append(set, assemble.NewEntry(name, entry.Path, body))
	}
	return set, nil
}
