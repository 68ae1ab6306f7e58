// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"cinesync/internal/config"
	"cinesync/internal/journal"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.TMDB.APIKey = "test-tmdb-key"
	cfg.CMS.APIToken = "test-cms-token"
	cfg.CMS.MoviesCollectionID = "col-movies"
	cfg.CMS.GenresCollectionID = "col-genres"
	cfg.Genres.MappingPath = filepath.Join(base, "genres.toml")
	// Keep test runs fast; production pacing is exercised explicitly where a
	// test cares about it.
	cfg.Sync.MinIntervalMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSync overrides the pipeline pacing section.
func WithSync(pages, maxConcurrent, minIntervalMS, queueSize int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sync.Pages = pages
		cfg.Sync.MaxConcurrent = maxConcurrent
		cfg.Sync.MinIntervalMS = minIntervalMS
		cfg.Sync.QueueSize = queueSize
	}
}

// NewJournal opens a journal store backed by the config's temp state
// directory and closes it when the test finishes.
func NewJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("open journal store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
