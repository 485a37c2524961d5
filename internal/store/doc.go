// Package store persists named configuration snapshots in SQLite.
//
// A snapshot is the canonical JSON form of a Configuration together with
// its SHA-256 content hash. Saving identical content under an existing
// name is a no-op; saving different content replaces the snapshot and
// gives it a fresh ID. Credentials are never written.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - a single connection, since SQLite allows one writer
//
// Schema changes are tracked with PRAGMA user_version.
package store
