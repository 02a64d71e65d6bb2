package testutil

import (
	"path/filepath"
	"testing"

	"github.com/qasemB/blog-back-end/internal/store"
	"github.com/qasemB/blog-back-end/pkg/logger"
)

// SetupTestStore creates a JSON store backed by a file in a per-test temp
// directory. No cleanup needed, t.TempDir handles it.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	InitTestLogger(t)

	path := filepath.Join(t.TempDir(), "db.json")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return s
}

// InitTestLogger makes sure the global logger is usable inside tests.
func InitTestLogger(t *testing.T) {
	t.Helper()

	if logger.Log != nil {
		return
	}
	if err := logger.Init(false); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
}
