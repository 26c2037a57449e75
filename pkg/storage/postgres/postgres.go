// Package postgres provides a PostgreSQL implementation of
// storage.TranscriptStore. It uses pgx/v5 for connection pooling and
// JSONB for structured message storage.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plauderhq/plauder/pkg/storage"
)

// Store is a PostgreSQL-backed TranscriptStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements storage.TranscriptStore at compile time.
var _ storage.TranscriptStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveTranscript persists a transcript.
func (s *Store) SaveTranscript(ctx context.Context, tr *storage.Transcript) error {
	profile := storage.ProfileFromContext(ctx)

	messagesJSON, err := json.Marshal(tr.Messages)
	if err != nil {
		return fmt.Errorf("marshaling messages: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO transcripts (id, profile, provider, model, messages, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		tr.ID, profile, tr.Provider, tr.Model, messagesJSON, tr.CreatedAt,
	)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting transcript: %w", err)
	}

	return nil
}

// GetTranscript retrieves a transcript by ID, scoped by the profile in
// the context.
func (s *Store) GetTranscript(ctx context.Context, id string) (*storage.Transcript, error) {
	profile := storage.ProfileFromContext(ctx)

	query := `
		SELECT id, provider, model, messages, created_at
		FROM transcripts
		WHERE id = $1
	`
	args := []any{id}

	if profile != "" {
		query += " AND profile = $2"
		args = append(args, profile)
	}

	var tr storage.Transcript
	var messagesJSON []byte

	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&tr.ID, &tr.Provider, &tr.Model, &messagesJSON, &tr.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}

	if err := json.Unmarshal(messagesJSON, &tr.Messages); err != nil {
		return nil, fmt.Errorf("unmarshaling messages: %w", err)
	}

	return &tr, nil
}

// ListTranscripts returns up to limit transcripts newest first, scoped
// by the profile in the context.
func (s *Store) ListTranscripts(ctx context.Context, limit int) ([]*storage.Transcript, error) {
	profile := storage.ProfileFromContext(ctx)

	query := `
		SELECT id, provider, model, messages, created_at
		FROM transcripts
	`
	var args []any

	if profile != "" {
		query += " WHERE profile = $1"
		args = append(args, profile)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transcripts: %w", err)
	}
	defer rows.Close()

	var result []*storage.Transcript
	for rows.Next() {
		var tr storage.Transcript
		var messagesJSON []byte
		if err := rows.Scan(&tr.ID, &tr.Provider, &tr.Model, &messagesJSON, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript: %w", err)
		}
		if err := json.Unmarshal(messagesJSON, &tr.Messages); err != nil {
			return nil, fmt.Errorf("unmarshaling messages: %w", err)
		}
		result = append(result, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transcripts: %w", err)
	}

	return result, nil
}

// DeleteTranscript removes a transcript by ID, scoped by the profile in
// the context.
func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	profile := storage.ProfileFromContext(ctx)

	query := "DELETE FROM transcripts WHERE id = $1"
	args := []any{id}

	if profile != "" {
		query += " AND profile = $2"
		args = append(args, profile)
	}

	result, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting transcript: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
