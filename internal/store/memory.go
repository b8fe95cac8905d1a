package store

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
)

// MemoryProfileStore is an in-process ProfileStore for tests and offline
// development.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewMemoryProfileStore creates an empty in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string][]byte)}
}

// Get returns the stored profile or ErrNotFound.
func (s *MemoryProfileStore) Get(_ context.Context, userID string) (*types.Profile, error) {
	s.mu.RLock()
	raw, ok := s.profiles[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var profile types.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &profile, nil
}

// Update upserts the profile document. Profiles are stored serialized so
// callers cannot alias the stored value.
func (s *MemoryProfileStore) Update(_ context.Context, userID string, profile *types.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	s.profiles[userID] = raw
	s.mu.Unlock()
	return nil
}

// memoryBlob is one stored object.
type memoryBlob struct {
	data        []byte
	contentType string
}

// MemoryBlobStore is an in-process BlobStore for tests and offline
// development. URIs use the mem:// scheme.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	blobs   map[string]memoryBlob
	signKey []byte
}

// NewMemoryBlobStore creates an empty in-memory blob store. signKey is used
// for HMAC-signed URLs; a fixed default is fine for tests.
func NewMemoryBlobStore(signKey string) *MemoryBlobStore {
	if signKey == "" {
		signKey = "dev-signing-key"
	}
	return &MemoryBlobStore{
		blobs:   make(map[string]memoryBlob),
		signKey: []byte(signKey),
	}
}

// Upload stores data under key and returns a mem:// URI.
func (s *MemoryBlobStore) Upload(_ context.Context, data []byte, key, contentType string) (string, error) {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.blobs[key] = memoryBlob{data: cp, contentType: contentType}
	s.mu.Unlock()

	return "mem://" + key, nil
}

// Download returns the stored bytes or ErrNotFound.
func (s *MemoryBlobStore) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	blob, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(blob.data))
	copy(cp, blob.data)
	return cp, nil
}

// SignedURL returns an HMAC-expiring pseudo URL for key. ErrNotFound if the
// key does not exist.
func (s *MemoryBlobStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}

	return signURL(s.signKey, key, time.Now().Add(ttl)), nil
}

// signURL produces /blobs/<key>?exp=<unix>&sig=<hmac>. Both Postgres and
// memory stores share this scheme; the serving side is out of scope here.
func signURL(signKey []byte, key string, expires time.Time) string {
	exp := fmt.Sprintf("%d", expires.Unix())
	mac := hmac.New(sha256.New, signKey)
	mac.Write([]byte(key + "|" + exp))
	sig := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("/blobs/%s?exp=%s&sig=%s", key, exp, sig)
}
