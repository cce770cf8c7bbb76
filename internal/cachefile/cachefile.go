// Package cachefile persists per-function memoization tables to disk
// across runs of the same source file (SPEC_FULL.md §2.6), grounded on
// the teacher's internal/driver/dcache.go: msgpack-encoded payloads,
// content-hash keyed, written atomically via a temp file plus rename.
package cachefile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lumen-lang/lumen/internal/langvalue"
)

// schemaVersion guards against decoding a payload from an incompatible
// future format.
const schemaVersion uint16 = 1

// Payload is what gets serialized for one source file: its content hash
// (for staleness detection) and every named closure's cache, keyed by
// the closure's `fn` keyword byte offset.
type Payload struct {
	Schema     uint16
	SourceHash string
	Functions  map[uint32][]langvalue.CacheEntry
}

// Store is a disk-backed cache file, safe for concurrent use (the
// REPL and a `run` invocation could in principle share one process).
type Store struct {
	mu   sync.RWMutex
	path string
}

// Open returns a Store backed by a single file at path (unlike the
// teacher's per-module directory of small files, Lumen has exactly one
// source file per run, so one cache file is enough).
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// DefaultPath returns the standard cache file location under
// XDG_CACHE_HOME (or ~/.cache), mirroring OpenDiskCache's search.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "lumen", "memo.mp"), nil
}

// SourceDigest hashes source text into the key Load/Save use to detect a
// changed file (a stale cache is simply ignored, never trusted).
func SourceDigest(sourceText string) string {
	sum := sha256.Sum256([]byte(sourceText))
	return hex.EncodeToString(sum[:])
}

// Load reads the payload for sourceHash. It reports ok=false, no error,
// on a missing file, a decode failure, or a hash mismatch — any of which
// just means "nothing usable is cached yet".
func (s *Store) Load(sourceHash string) (map[uint32][]langvalue.CacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false
	}
	if p.Schema != schemaVersion || p.SourceHash != sourceHash {
		return nil, false
	}
	return p.Functions, true
}

// Save atomically writes functions under sourceHash, replacing whatever
// was previously cached for a different source file.
func (s *Store) Save(sourceHash string, functions map[uint32][]langvalue.CacheEntry) error {
	if len(functions) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "memo-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	payload := &Payload{Schema: schemaVersion, SourceHash: sourceHash, Functions: functions}
	if err := msgpack.NewEncoder(tmp).Encode(payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Clear removes the cache file entirely (`lumen cache clear`).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Stat reports whether a cache file currently exists, for `lumen cache
// stats`.
func (s *Store) Stat() (exists bool, size int64, err error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}
