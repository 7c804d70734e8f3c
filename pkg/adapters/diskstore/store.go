// Package diskstore keeps JSON records on disk, one file per key.
package diskstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/daybook-app/daybook/pkg/core"
)

// Store implements core.RecordStore on a diskv-backed directory. Keys map
// to flat files named "<key>.json".
type Store struct {
	Path string

	dv  *diskv.Diskv
	log *slog.Logger
}

// New creates a record store rooted at path. The directory is created on
// first write.
func New(path string, log *slog.Logger) *Store {
	dv := diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024,
	})
	return &Store{Path: path, dv: dv, log: log}
}

// Load reads the record stored under key into v. A missing record yields
// core.ErrNotFound.
func (s *Store) Load(_ context.Context, key string, v any) error {
	data, err := s.dv.Read(fileFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("record %q: %w", key, core.ErrNotFound)
		}
		return fmt.Errorf("failed to read record %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode record %q: %w", key, err)
	}
	return nil
}

// Save writes v as the record under key, replacing any previous value.
func (s *Store) Save(_ context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}
	if err := s.dv.Write(fileFor(key), data); err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	return nil
}

func fileFor(key string) string {
	return key + ".json"
}

var _ core.RecordStore = (*Store)(nil)
