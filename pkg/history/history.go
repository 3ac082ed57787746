// Package history keeps a local log of recent CLI runs.
//
// Each run is stored as a JSON file under ~/.local/state/linetrace/history/
// so `linetrace history` can show what was vectorized, with which preset,
// and where the outputs went. The store is append-only from the CLI's
// perspective; Prune trims old or excess entries.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Retention defaults applied by the CLI after each recorded run.
const (
	// DefaultMaxAge is how long entries are kept.
	DefaultMaxAge = 90 * 24 * time.Hour

	// DefaultMaxEntries caps the number of stored entries.
	DefaultMaxEntries = 500
)

// Entry records a single pipeline run.
type Entry struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Preset    string        `json:"preset,omitempty"`
	Paths     int           `json:"paths"`
	Points    int           `json:"points"`
	Duration  time.Duration `json:"duration"`
	Outputs   []string      `json:"outputs,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// FileStore is a file-based run log. Entries are stored as JSON files in a
// state directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based run log.
// If baseDir is empty, defaults to ~/.local/state/linetrace/history/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "state", "linetrace", "history")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) entryPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Record stores an entry, assigning an ID and timestamp if unset.
func (s *FileStore) Record(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	if err := os.WriteFile(s.entryPath(e.ID), data, 0600); err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}
	return nil
}

// List returns entries newest first. A positive limit caps the result;
// zero or negative returns everything. Unreadable files are skipped.
func (s *FileStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Prune removes entries older than maxAge and, beyond that, the oldest
// entries over maxEntries. Zero or negative disables the respective limit.
// Returns how many entries were removed.
func (s *FileStore) Prune(ctx context.Context, maxAge time.Duration, maxEntries int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return 0, err
	}

	removed := 0
	if maxAge > 0 {
		cutoff := time.Now().Add(-maxAge)
		kept := entries[:0]
		for _, e := range entries {
			if e.CreatedAt.Before(cutoff) {
				os.Remove(s.entryPath(e.ID))
				removed++
				continue
			}
			kept = append(kept, e)
		}
		entries = kept
	}

	if maxEntries > 0 && len(entries) > maxEntries {
		// Oldest first so the overflow to drop sits at the front.
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		})
		for _, e := range entries[:len(entries)-maxEntries] {
			os.Remove(s.entryPath(e.ID))
			removed++
		}
	}
	return removed, nil
}

// Clear removes all entries. Returns how many were removed.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, fmt.Errorf("read history dir: %w", err)
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, f.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Path returns the base directory for history files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// readAll loads every parseable entry. Callers hold the lock.
func (s *FileStore) readAll() ([]Entry, error) {
	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, f.Name()))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
