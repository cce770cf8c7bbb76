package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFindLocatesManifestInStartDir(t *testing.T) {
	dir := t.TempDir()
	want := writeManifest(t, dir, "[run]\nmain = \"main.lm\"\n")

	got, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("Find did not locate a manifest that exists in startDir")
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestFindWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[run]\nmain = \"main.lm\"\n")
	child := filepath.Join(root, "sub", "deeper")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, ok, err := Find(child)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("Find did not walk up to a manifest in an ancestor directory")
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestFindReportsNotFoundWithoutError(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find returned error for a directory with no manifest anywhere above it: %v", err)
	}
	if ok {
		t.Error("Find reported ok=true with no manifest present")
	}
}

func TestLoadDecodesRunAndCacheTables(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.lm"), []byte("1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	writeManifest(t, dir, "[run]\nmain = \"main.lm\"\n\n[cache]\npersist = true\n")

	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported ok=false for a manifest that exists")
	}
	if m.Run.Main != "main.lm" {
		t.Errorf("Run.Main = %q, want %q", m.Run.Main, "main.lm")
	}
	if !m.Cache.Persist {
		t.Error("Cache.Persist = false, want true")
	}
}

func TestLoadClampsLimitsToFloorsButNeverLowersAnExplicitRaise(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.lm"), []byte("1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	writeManifest(t, dir, "[run]\nmain = \"main.lm\"\n\n[limits]\nstack_depth = 1\ncache_size = 999999\n")

	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported ok=false")
	}
	floors := DefaultLimits()
	if m.Limits.StackDepth != floors.StackDepth {
		t.Errorf("StackDepth = %d, want the floor %d (manifest tried to lower it)", m.Limits.StackDepth, floors.StackDepth)
	}
	if m.Limits.CacheSize != 999999 {
		t.Errorf("CacheSize = %d, want the manifest's raised value 999999", m.Limits.CacheSize)
	}
}

func TestResolveMainPathJoinsManifestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.lm"), []byte("1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m := &Manifest{Path: filepath.Join(dir, ManifestName), Dir: dir, Run: RunConfig{Main: "main.lm"}}

	got, err := m.ResolveMainPath()
	if err != nil {
		t.Fatalf("ResolveMainPath: %v", err)
	}
	want := filepath.Join(dir, "main.lm")
	if got != want {
		t.Errorf("ResolveMainPath = %q, want %q", got, want)
	}
}

func TestResolveMainPathErrorsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{Path: filepath.Join(dir, ManifestName), Dir: dir, Run: RunConfig{Main: "nope.lm"}}
	if _, err := m.ResolveMainPath(); err == nil {
		t.Error("expected an error for a [run].main entry pointing at a nonexistent file")
	}
}

func TestResolveMainPathErrorsWhenMainIsEmpty(t *testing.T) {
	m := &Manifest{Path: "lumen.toml", Run: RunConfig{Main: "  "}}
	if _, err := m.ResolveMainPath(); err == nil {
		t.Error("expected an error for a missing [run].main entry")
	}
}
