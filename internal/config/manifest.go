// Package config loads the optional tabc.toml project manifest. It is
// CLI-only convenience, never consulted by the core pipeline: absence of
// the file is not an error, the CLI simply falls back to its positional
// file argument and a "main.ll" default output path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a parsed tabc.toml plus the directory it was found in.
type Manifest struct {
	Path string
	Root string

	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is the [build] table.
type BuildConfig struct {
	Main string `toml:"main"`
	Out  string `toml:"out"`
}

// Find walks up from startDir looking for tabc.toml, the way `go.mod` or
// the reference's `surge.toml` is discovered.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tabc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses tabc.toml starting from startDir. ok is false
// (with a nil error) when no manifest exists anywhere above startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, true, fmt.Errorf("%s: missing [package].name", path)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, true, nil
}

// EntryFile resolves [build].main to an absolute path, defaulting to
// "main.tab" under the manifest's root when unset.
func (m *Manifest) EntryFile() string {
	main := strings.TrimSpace(m.Build.Main)
	if main == "" {
		main = "main.tab"
	}
	return filepath.Join(m.Root, filepath.FromSlash(main))
}

// OutPath resolves [build].out, defaulting to "main.ll".
func (m *Manifest) OutPath() string {
	out := strings.TrimSpace(m.Build.Out)
	if out == "" {
		return "main.ll"
	}
	return out
}
