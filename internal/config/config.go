// Package config loads the optional lumen.toml project manifest
// (SPEC_FULL.md §2.2), grounded on the teacher's surge.toml discovery in
// cmd/surge/project_manifest.go: walk up from a starting directory until
// a manifest is found, or none exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lumen-lang/lumen/internal/frame"
	"github.com/lumen-lang/lumen/internal/langvalue"
)

// ManifestName is the fixed manifest filename lumen looks for.
const ManifestName = "lumen.toml"

// Manifest is the decoded contents of a lumen.toml file.
type Manifest struct {
	Path string `toml:"-"`
	Dir  string `toml:"-"`

	Run    RunConfig    `toml:"run"`
	Limits LimitsConfig `toml:"limits"`
	Cache  CacheConfig  `toml:"cache"`
}

// RunConfig is the `[run]` table: which file `lumen run` executes when
// invoked with no explicit path.
type RunConfig struct {
	Main string `toml:"main"`
}

// LimitsConfig is the `[limits]` table. A manifest may only raise these
// above the spec's floors (frame.MaxDepth, langvalue.CacheSize, and the
// string pool's byte bound); it may never lower them (SPEC_FULL.md
// §2.2).
type LimitsConfig struct {
	StackDepth int `toml:"stack_depth"`
	CacheSize  int `toml:"cache_size"`
	// StringMax is decoded and floor-clamped for parity with the other
	// two fields, but never enforced as a ceiling: spec.md §3 states it
	// as a minimum Go strings must support ("implementation max ≥ 1024
	// bytes"), and Go strings have no fixed capacity to begin with, so
	// the floor is satisfied unconditionally with nothing to wire it to.
	StringMax int `toml:"string_max"`
}

// CacheConfig is the `[cache]` table controlling the persistent
// memoization cache (SPEC_FULL.md §2.6).
type CacheConfig struct {
	Persist bool `toml:"persist"`
}

// DefaultLimits reports the floors spec.md §3 fixes, before any manifest
// override is applied.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		StackDepth: frame.MaxDepth,
		CacheSize:  langvalue.CacheSize,
		StringMax:  1024,
	}
}

// Find walks upward from startDir looking for lumen.toml, the same way
// findSurgeToml walks for surge.toml. It returns ok=false, no error, if
// none is found anywhere up to the filesystem root.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load finds and decodes the manifest starting from startDir, applying
// the spec's floors to any limit the manifest leaves at zero or tries to
// lower below the floor.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m.Path = path
	m.Dir = filepath.Dir(path)
	m.Limits = clampToFloors(m.Limits)
	return &m, true, nil
}

func clampToFloors(l LimitsConfig) LimitsConfig {
	floors := DefaultLimits()
	if l.StackDepth < floors.StackDepth {
		l.StackDepth = floors.StackDepth
	}
	if l.CacheSize < floors.CacheSize {
		l.CacheSize = floors.CacheSize
	}
	if l.StringMax < floors.StringMax {
		l.StringMax = floors.StringMax
	}
	return l
}

// ResolveMainPath joins the manifest's directory with its [run].main
// entry, the target `lumen run` executes when given no file argument.
func (m *Manifest) ResolveMainPath() (string, error) {
	main := strings.TrimSpace(m.Run.Main)
	if main == "" {
		return "", fmt.Errorf("%s: missing [run].main", m.Path)
	}
	target := filepath.Join(m.Dir, filepath.FromSlash(main))
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, target)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	return target, nil
}
