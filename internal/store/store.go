// Package store implements the badge store: three JSON document
// collections (users, badges, awards) plus every operation the API exposes
// over them. Each collection lives in its own file under the data
// directory and is rewritten wholesale on every mutation. A per-collection
// mutex is held for the full read-mutate-write span so concurrent
// mutations cannot lose each other's updates; readers rely on the atomic
// rename to always observe a complete document.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	usersFile  = "users.json"
	badgesFile = "badges.json"
	awardsFile = "awards.json"
)

type Store struct {
	dataDir   string
	staticDir string

	// Lock order when an operation spans collections: users, badges, awards.
	usersMu  sync.Mutex
	badgesMu sync.Mutex
	awardsMu sync.Mutex

	now func() time.Time
}

// Open prepares the data directory and makes sure every collection exists
// as an empty array. staticDir is where badge icon assets live (uploaded
// icons are deleted from there when their badge goes away).
func Open(dataDir, staticDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		dataDir:   dataDir,
		staticDir: staticDir,
		now:       time.Now,
	}
	for _, name := range []string{usersFile, badgesFile, awardsFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("init %s: %w", name, err)
		}
	}
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// writeCollection replaces the whole collection file. The write goes to a
// sibling temp file first and is renamed into place so a reader never sees
// a partially written document.
func writeCollection[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
