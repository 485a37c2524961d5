package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/store"
)

// loadConfiguration resolves a snapshot reference: an existing file is read
// as a YAML or JSON snapshot, anything else names a snapshot stored in the
// database at dbPath.
func loadConfiguration(ctx context.Context, ref, dbPath string) (*config.Configuration, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return config.LoadFile(ref)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("snapshot %q: %w (no database at %s)", ref, store.ErrNotFound, dbPath)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	cfg, err := st.Load(ctx, ref)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("snapshot %q: %w", ref, err)
	}
	return cfg, err
}

// loadRequestMap reads a request file. YAML is a superset of JSON, so one
// decoder serves both.
func loadRequestMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse request file %s: %w", path, err)
	}
	if m == nil {
		return nil, fmt.Errorf("request file %s is empty", path)
	}
	return m, nil
}

// withStore opens the snapshot database for the duration of fn.
func withStore(dbPath string, fn func(*store.Store) error) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
