package write

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestName is the file at the output root that records what a run
// generated. Its entries map relative output paths to content hashes.
const ManifestName = ".loom.manifest.json"

type Manifest struct {
	Version   string            `json:"version"`
	Generated time.Time         `json:"generated"`
	Entries   map[string]string `json:"entries"`
}

func NewManifest(entries map[string]string) *Manifest {
	return &Manifest{
		Version:   "1",
		Generated: time.Now().UTC(),
		Entries:   entries,
	}
}

// LoadManifest reads the manifest at root. A missing manifest is not an
// error; it returns an empty manifest so first runs need no special casing.
func LoadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(map[string]string{}), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = map[string]string{}
	}
	return &manifest, nil
}

func SaveManifest(root string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ManifestName), append(data, '\n')); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

func contentHash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
