// Package store provides the profile and blob storage boundaries the
// extraction core writes through, with in-memory and PostgreSQL
// implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
)

// ErrNotFound indicates the requested profile or blob does not exist.
var ErrNotFound = errors.New("not found")

// ProfileStore is the document store for per-user skill profiles. Update
// has document-merge semantics: the stored profile is replaced wholesale,
// not patched field by field.
type ProfileStore interface {
	// Get returns the profile for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*types.Profile, error)
	// Update upserts the profile for userID.
	Update(ctx context.Context, userID string, profile *types.Profile) error
}

// BlobStore is the content-addressable store for uploaded documents.
type BlobStore interface {
	// Upload stores data under key and returns the storage URI.
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
	// Download returns the stored bytes for key, or ErrNotFound.
	Download(ctx context.Context, key string) ([]byte, error)
	// SignedURL returns a time-limited URL granting read access to key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
