package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sruq/internal/config"
)

// ErrNotFound is returned when no snapshot has the requested name.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes a stored configuration without its body.
type Snapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ServerURL   string `json:"server_url"`
	SRUVersion  string `json:"sru_version"`
	ContentHash string `json:"content_hash"`
	Seq         int64  `json:"seq"`
}

// Save stores cfg under name and returns the snapshot ID. Saving content
// identical to the existing snapshot returns its ID unchanged.
func (s *Store) Save(ctx context.Context, name string, cfg *config.Configuration) (string, error) {
	if name == "" {
		return "", errors.New("save snapshot: name is empty")
	}
	body, err := canonicalBody(cfg)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: %w", name, err)
	}
	hash := hashWithDomain(DomainSnapshot, body)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: begin tx: %w", name, err)
	}
	defer tx.Rollback() // No-op if committed

	var existingID, existingHash string
	err = tx.QueryRowContext(ctx,
		`SELECT id, content_hash FROM snapshots WHERE name = ?`, name,
	).Scan(&existingID, &existingHash)
	switch {
	case err == nil && existingHash == hash:
		return existingID, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("save snapshot %q: lookup: %w", name, err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(saved_seq), 0) + 1 FROM snapshots`).Scan(&seq); err != nil {
		return "", fmt.Errorf("save snapshot %q: next seq: %w", name, err)
	}

	id := s.ids.Next()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, name, server_url, sru_version, content_hash, body, saved_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			server_url = excluded.server_url,
			sru_version = excluded.sru_version,
			content_hash = excluded.content_hash,
			body = excluded.body,
			saved_seq = excluded.saved_seq
	`,
		id,
		name,
		cfg.ServerURL,
		cfg.SRUVersion,
		hash,
		string(body),
		seq,
	)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save snapshot %q: commit: %w", name, err)
	}
	return id, nil
}

// Load returns the configuration stored under name.
func (s *Store) Load(ctx context.Context, name string) (*config.Configuration, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}

	cfg, err := config.Parse([]byte(body), config.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return cfg, nil
}

// Get returns the metadata of the snapshot stored under name.
func (s *Store) Get(ctx context.Context, name string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, server_url, sru_version, content_hash, saved_seq
		FROM snapshots
		WHERE name = ?
	`, name)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("get snapshot %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %q: %w", name, err)
	}
	return snap, nil
}

// List returns all snapshots ordered by name.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, server_url, sru_version, content_hash, saved_seq
		FROM snapshots
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete snapshot %q: %w", name, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Name, &snap.ServerURL, &snap.SRUVersion, &snap.ContentHash, &snap.Seq)
	return snap, err
}
