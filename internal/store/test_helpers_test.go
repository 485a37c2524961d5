package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/sruq/internal/testutil"
)

// createTestStore creates a fresh store with sequential snapshot IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs("snap")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
