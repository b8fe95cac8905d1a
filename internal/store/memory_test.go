package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProfileStore_GetMissing(t *testing.T) {
	s := NewMemoryProfileStore()
	_, err := s.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileStore_RoundTrip(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	profile := &types.Profile{
		UserID: "u1",
		Skills: []types.ProfileSkill{{
			Name:        "Go",
			Category:    types.CategoryProgrammingLanguage,
			Confidence:  0.8,
			Occurrences: 1,
			Evidence:    []string{"e1"},
			Sources:     map[string]struct{}{"cv": {}},
			CreatedAt:   time.Now().UTC(),
		}},
	}
	profile.RecomputeCounts()

	require.NoError(t, s.Update(ctx, "u1", profile))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.Skills, 1)
	assert.Equal(t, "Go", got.Skills[0].Name)
	assert.Equal(t, 1, got.SkillCount)

	// Stored value must not alias the caller's struct.
	profile.Skills[0].Name = "mutated"
	got2, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Go", got2.Skills[0].Name)
}

func TestMemoryBlobStore_RoundTrip(t *testing.T) {
	s := NewMemoryBlobStore("")
	ctx := context.Background()

	uri, err := s.Upload(ctx, []byte("pdf bytes"), "cv/u1/123_cv.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "mem://cv/u1/123_cv.pdf", uri)

	data, err := s.Download(ctx, "cv/u1/123_cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
}

func TestMemoryBlobStore_DownloadMissing(t *testing.T) {
	s := NewMemoryBlobStore("")
	_, err := s.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBlobStore_SignedURL(t *testing.T) {
	s := NewMemoryBlobStore("test-key")
	ctx := context.Background()

	_, err := s.SignedURL(ctx, "missing", time.Minute)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Upload(ctx, []byte("x"), "doc", "text/plain")
	require.NoError(t, err)

	url, err := s.SignedURL(ctx, "doc", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/blobs/doc?exp="))
	assert.Contains(t, url, "&sig=")
}
