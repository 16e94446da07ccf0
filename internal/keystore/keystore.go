// Package keystore implements the API Key Store of spec.md §4.1: an
// sqlite-backed table of bearer credentials, each a "<prefix>#<token>" pair
// with a creation time, an expiry, and an optional description.
//
// Grounded on original_source/crates/basicauth/src/lib.rs's AuthManager,
// translated from rusqlite to database/sql over the pure-Go
// modernc.org/sqlite driver.
package keystore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// keyLifetime is the validity window of a newly issued key. The original
// AuthManager hardcodes the same 365-day expiry.
const keyLifetime = 365 * 24 * time.Hour

const initTableSQL = `
CREATE TABLE IF NOT EXISTS key_entries (
	prefix      TEXT PRIMARY KEY,
	token       TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL,
	description TEXT
)`

// CheckResult is the outcome of validating a prefix/token pair.
type CheckResult int

const (
	Valid CheckResult = iota
	NoPrefixOrKeyFound
	ExpiredKey
)

// Entry is one row of the key store, returned by ListAll.
type Entry struct {
	Prefix      string
	Token       string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Description *string
}

// Store is a handle to the sqlite-backed key table. Every operation
// acquires mu around the connection and is short-lived, matching the
// original AuthManager's single-mutex-guarded connection rather than
// relying on database/sql's own pool, which would let concurrent writers
// race into SQLITE_BUSY.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if absent) the sqlite database at path and ensures
// the key_entries table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("keystore: open %q: %w", path, err)
	}
	// mu above is what actually serialises access; capping the pool at one
	// connection keeps database/sql from ever handing out a second one for
	// mu to race against.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(initTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: init table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Issue mints a new "<prefix>#<token>" credential, valid for 365 days from
// now, with the given optional description, and returns the full credential
// string to hand to the caller. The prefix and token halves are independent
// UUIDs so a leaked prefix alone (e.g. in a log line) cannot be used to
// reconstruct the token.
func (s *Store) Issue(description *string) (string, error) {
	prefix := uuid.NewString()
	token := uuid.NewString()
	now := time.Now().UTC()
	expires := now.Add(keyLifetime)

	s.mu.Lock()
	_, err := s.db.Exec(
		`INSERT INTO key_entries (prefix, token, created_at, expires_at, description) VALUES (?, ?, ?, ?, ?)`,
		prefix, token, now.Unix(), expires.Unix(), description,
	)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("keystore: insert: %w", err)
	}
	return fmt.Sprintf("%s#%s", prefix, token), nil
}

// Check validates a prefix/token pair, reporting whether it exists and has
// not expired.
func (s *Store) Check(prefix, token string) (CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt int64
	err := s.db.QueryRow(
		`SELECT expires_at FROM key_entries WHERE prefix = ? AND token = ?`,
		prefix, token,
	).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return NoPrefixOrKeyFound, nil
	}
	if err != nil {
		return NoPrefixOrKeyFound, fmt.Errorf("keystore: check: %w", err)
	}

	if time.Now().UTC().Unix() >= expiresAt {
		return ExpiredKey, nil
	}
	return Valid, nil
}

// DeleteByPrefix removes the entry for prefix, reporting whether a row was
// actually deleted.
func (s *Store) DeleteByPrefix(prefix string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM key_entries WHERE prefix = ?`, prefix)
	if err != nil {
		return false, fmt.Errorf("keystore: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("keystore: delete: rows affected: %w", err)
	}
	return n > 0, nil
}

// EditDescription updates the description for prefix, reporting whether a
// row was actually modified.
func (s *Store) EditDescription(prefix string, description *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE key_entries SET description = ? WHERE prefix = ?`, description, prefix)
	if err != nil {
		return false, fmt.Errorf("keystore: edit description: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("keystore: edit description: rows affected: %w", err)
	}
	return n > 0, nil
}

// ListAll returns every entry currently in the store, in no particular
// order.
func (s *Store) ListAll() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT prefix, token, created_at, expires_at, description FROM key_entries`)
	if err != nil {
		return nil, fmt.Errorf("keystore: list all: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var createdAt, expiresAt int64
		var desc sql.NullString
		if err := rows.Scan(&e.Prefix, &e.Token, &createdAt, &expiresAt, &desc); err != nil {
			return nil, fmt.Errorf("keystore: list all: scan: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		e.ExpiresAt = time.Unix(expiresAt, 0).UTC()
		if desc.Valid {
			d := desc.String
			e.Description = &d
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
