package pkgmgr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ManifestFileName is the project descriptor whose presence in a cloned
// folder signals that a dependency install applies to it.
const ManifestFileName = "package.json"

// Manifest holds the fields of package.json that repo-setup cares about.
// Everything else in the file is ignored.
type Manifest struct {
	// Name is the package name, used in install progress output.
	Name string `json:"name"`

	// Version is the declared package version.
	Version string `json:"version"`

	// Dependencies maps runtime dependency names to version ranges.
	Dependencies map[string]string `json:"dependencies,omitempty"`

	// DevDependencies maps development dependency names to version ranges.
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// HasManifest reports whether dir contains a package.json file directly
// inside it. A directory named package.json does not count.
func HasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// LoadManifest reads and parses the package.json inside dir.
//
// package.json is plain JSON per the npm spec, but comments show up in
// the wild often enough that we strip them with jsonc before parsing,
// the same tolerant treatment devcontainer.json files get elsewhere.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &manifest, nil
}
