// Package store persists the merged vocabulary collection as one flat JSON
// array on disk.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/vocabforge/vocabforge-server/internal/llm"
)

// Item is a stored vocabulary entry: a sanitized candidate plus an
// identifier derived from category, word, and insertion index.
type Item struct {
	ID       string   `json:"id"`
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// FileStore merges vocabulary items into a JSON file. Identity is the
// case-insensitive (word, meaning) pair, so re-importing the same document
// is idempotent while the same word may still appear under different
// meanings. In-process merges are serialized; concurrent processes sharing
// one file remain last-writer-wins.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Merge appends the items whose (word, meaning) identity is not yet present
// and persists the whole collection as one atomic write. Returns how many
// items were actually appended.
func (s *FileStore) Merge(ctx context.Context, items []llm.Item) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.load()
	seen := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		seen[identityKey(it.Word, it.Meaning)] = struct{}{}
	}

	merged := existing
	inserted := 0
	for _, it := range items {
		key := identityKey(it.Word, it.Meaning)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, Item{
			ID:       slugID(it.Category, it.Word, len(merged)),
			Word:     it.Word,
			Meaning:  it.Meaning,
			Options:  it.Options,
			Category: it.Category,
		})
		inserted++
	}

	if inserted == 0 {
		return 0, nil
	}
	if err := s.persist(merged); err != nil {
		return 0, err
	}
	s.logger.Info("store.merge", "path", s.path, "inserted", inserted, "total", len(merged))
	return inserted, nil
}

// List returns the stored collection in insertion order.
func (s *FileStore) List(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// load reads the collection, defaulting to empty on absence or corruption.
// Corruption is swallowed on purpose: this data is low stakes and the next
// merge rewrites the file wholesale.
func (s *FileStore) load() []Item {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("store.read_error", "path", s.path, "error", err)
		}
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("store.corrupt", "path", s.path, "error", err)
		return []Item{}
	}
	return items
}

// persist writes the full collection in one atomic replace.
func (s *FileStore) persist(items []Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".vocabulary-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func identityKey(word, meaning string) string {
	return strings.ToLower(word) + "\x1f" + strings.ToLower(meaning)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)

// slugID derives the stored identifier from category, word, and insertion
// index, restricted to lowercase alphanumerics and hyphens.
func slugID(category, word string, index int) string {
	raw := fmt.Sprintf("imported-%s-%s-%d", category, word, index)
	return nonSlug.ReplaceAllString(strings.ToLower(raw), "-")
}
