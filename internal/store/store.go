// Package store persists the session marker and per-user candidate rosters
// in an embedded key-value database. Reads are fail-soft: malformed or
// unrecognized stored data degrades to an empty default instead of erroring,
// favoring availability since the data is a local cache.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/iajcodes/HireC/internal/types"
)

const (
	sessionKey   = "hirecipher_user"
	rosterPrefix = "hirecipher_db_"

	// rosterSchemaVersion tags persisted roster blobs. A stored blob with a
	// different version is discarded on load rather than trusted to match
	// the current candidate shape.
	rosterSchemaVersion = 1
)

// Store is a key-value store scoped to one database file. Last write wins;
// no cross-process locking is modeled.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// rosterEnvelope wraps the candidate sequence with an explicit schema
// version so a later change to the candidate shape cannot silently
// mismatch previously stored records.
type rosterEnvelope struct {
	SchemaVersion int               `json:"schemaVersion"`
	Candidates    []types.Candidate `json:"candidates"`
}

// Open opens (creating if needed) the store at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func rosterKey(email string) string {
	return rosterPrefix + email
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	const q = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}

func (s *Store) delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv WHERE key = ?`

	_, err := s.db.ExecContext(ctx, q, key)
	return err
}

// LoadRoster returns the stored candidate sequence for email. A missing
// entry, malformed JSON, or an unknown schema version yields an empty
// sequence, never an error. A bare JSON array is accepted as the legacy
// pre-envelope shape and migrates into the envelope on the next save.
func (s *Store) LoadRoster(ctx context.Context, email string) ([]types.Candidate, error) {
	raw, ok, err := s.get(ctx, rosterKey(email))
	if err != nil {
		return nil, fmt.Errorf("failed to read roster for %s: %w", email, err)
	}
	if !ok {
		return []types.Candidate{}, nil
	}

	var candidates []types.Candidate
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
			s.logger.Debug("discarding malformed legacy roster", zap.String("email", email), zap.Error(err))
			return []types.Candidate{}, nil
		}
	} else {
		var env rosterEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			s.logger.Debug("discarding malformed roster", zap.String("email", email), zap.Error(err))
			return []types.Candidate{}, nil
		}
		if env.SchemaVersion != rosterSchemaVersion {
			s.logger.Debug("discarding roster with unknown schema version",
				zap.String("email", email), zap.Int("version", env.SchemaVersion))
			return []types.Candidate{}, nil
		}
		candidates = env.Candidates
	}

	if candidates == nil {
		candidates = []types.Candidate{}
	}
	for i := range candidates {
		candidates[i].Normalize()
	}
	return candidates, nil
}

// SaveRoster overwrites the stored sequence for email wholesale.
func (s *Store) SaveRoster(ctx context.Context, email string, roster []types.Candidate) error {
	if roster == nil {
		roster = []types.Candidate{}
	}

	data, err := json.Marshal(rosterEnvelope{
		SchemaVersion: rosterSchemaVersion,
		Candidates:    roster,
	})
	if err != nil {
		return fmt.Errorf("failed to encode roster for %s: %w", email, err)
	}

	if err := s.put(ctx, rosterKey(email), string(data)); err != nil {
		return fmt.Errorf("failed to write roster for %s: %w", email, err)
	}
	return nil
}

// EnsureRoster initializes an empty roster for email if none exists yet.
func (s *Store) EnsureRoster(ctx context.Context, email string) error {
	_, ok, err := s.get(ctx, rosterKey(email))
	if err != nil {
		return fmt.Errorf("failed to read roster for %s: %w", email, err)
	}
	if ok {
		return nil
	}
	return s.SaveRoster(ctx, email, nil)
}

// SetSessionMarker persists user as the current session.
func (s *Store) SetSessionMarker(ctx context.Context, user types.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session marker: %w", err)
	}
	if err := s.put(ctx, sessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to write session marker: %w", err)
	}
	return nil
}

// GetSessionMarker reads the current session. Absent or malformed markers
// yield nil, nil.
func (s *Store) GetSessionMarker(ctx context.Context) (*types.User, error) {
	raw, ok, err := s.get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session marker: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user types.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Debug("discarding malformed session marker", zap.Error(err))
		return nil, nil
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, nil
	}
	return &user, nil
}

// ClearSessionMarker removes the current session. Roster data is retained.
func (s *Store) ClearSessionMarker(ctx context.Context) error {
	if err := s.delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}
