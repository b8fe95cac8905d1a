package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skill-profiler/internal/types"
)

// DB wraps a PostgreSQL connection pool shared by the Postgres-backed
// stores.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// PostgresProfileStore persists profiles as JSONB documents.
//
// Schema:
//
//	CREATE TABLE profiles (
//	    user_id    TEXT PRIMARY KEY,
//	    document   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresProfileStore struct {
	db *DB
}

// NewPostgresProfileStore creates a profile store on the shared pool.
func NewPostgresProfileStore(db *DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

// Get returns the profile document for userID, or ErrNotFound.
func (s *PostgresProfileStore) Get(ctx context.Context, userID string) (*types.Profile, error) {
	var raw []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT document FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", userID, err)
	}
	return &profile, nil
}

// Update upserts the profile document wholesale (document-merge semantics,
// no field-level transactions).
func (s *PostgresProfileStore) Update(ctx context.Context, userID string, profile *types.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, document, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET document = $2, updated_at = NOW()`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", userID, err)
	}
	return nil
}

// PostgresBlobStore stores uploaded documents as bytea rows.
//
// Schema:
//
//	CREATE TABLE blobs (
//	    key          TEXT PRIMARY KEY,
//	    content      BYTEA NOT NULL,
//	    content_type TEXT NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresBlobStore struct {
	db      *DB
	signKey []byte
}

// NewPostgresBlobStore creates a blob store on the shared pool. signKey is
// used for HMAC-signed URLs.
func NewPostgresBlobStore(db *DB, signKey string) *PostgresBlobStore {
	return &PostgresBlobStore{db: db, signKey: []byte(signKey)}
}

// Upload stores data under key and returns a pg:// URI referencing it.
func (s *PostgresBlobStore) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO blobs (key, content, content_type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET content = $2, content_type = $3, created_at = NOW()`,
		key, data, contentType,
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", key, err)
	}
	return "pg://" + key, nil
}

// Download returns the stored bytes for key, or ErrNotFound.
func (s *PostgresBlobStore) Download(ctx context.Context, key string) ([]byte, error) {
	var content []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT content FROM blobs WHERE key = $1`,
		key,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %w", key, err)
	}
	return content, nil
}

// SignedURL returns an HMAC-expiring URL for key, or ErrNotFound.
func (s *PostgresBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	var exists bool
	err := s.db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blobs WHERE key = $1)`,
		key,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check blob %s: %w", key, err)
	}
	if !exists {
		return "", ErrNotFound
	}

	return signURL(s.signKey, key, time.Now().Add(ttl)), nil
}
