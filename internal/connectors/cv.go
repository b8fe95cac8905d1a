// Package connectors turns source-specific raw input (CV uploads, GitHub
// accounts, LinkedIn profiles) into normalized skill extraction results.
package connectors

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/store"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Source tags identifying which connector produced a result.
const (
	SourceCV       = "cv"
	SourceGitHub   = "github"
	SourceLinkedIn = "linkedin"
)

// CVResult is the CV connector's extraction output plus the bookkeeping
// metadata the profile needs.
type CVResult struct {
	Source     string                  `json:"source"`
	StorageURI string                  `json:"storage_uri"`
	FileName   string                  `json:"file_name"`
	FileType   string                  `json:"file_type"`
	Skills     *types.ExtractionResult `json:"skills"`
}

// CVConnector uploads CV documents to blob storage and extracts skills via
// the AI client's document mode.
type CVConnector struct {
	blobs store.BlobStore
	ai    *llm.Client
}

// NewCVConnector creates a CV connector.
func NewCVConnector(blobs store.BlobStore, ai *llm.Client) *CVConnector {
	return &CVConnector{blobs: blobs, ai: ai}
}

// Extract uploads the raw document bytes under a per-user, timestamped key
// and runs document-mode extraction over the same bytes.
//
// The document is passed to the model by reference; no local PDF/DOCX
// parsing happens here.
func (c *CVConnector) Extract(ctx context.Context, userID string, data []byte, fileName, mimeType string) (*CVResult, error) {
	key := fmt.Sprintf("cv/%s/%d_%s", userID, time.Now().Unix(), path.Base(fileName))

	uri, err := c.blobs.Upload(ctx, data, key, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload CV: %w", err)
	}

	// Blob storage URIs are not readable by the model, so the bytes
	// travel to it through the AI client's own file upload. Without a
	// model the mock extractor works over the raw bytes as text instead.
	skills, err := c.ai.ExtractFromDocumentBytes(ctx, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skills from CV: %w", err)
	}

	return &CVResult{
		Source:     SourceCV,
		StorageURI: uri,
		FileName:   fileName,
		FileType:   mimeType,
		Skills:     skills,
	}, nil
}

// ExtractText runs text-mode extraction over CV bytes interpreted as plain
// UTF-8. This is the direct-text path used when no document store round
// trip is wanted; true binary parsing is a known gap, preserved as-is.
func (c *CVConnector) ExtractText(ctx context.Context, data []byte) (*types.ExtractionResult, error) {
	return c.ai.ExtractFromText(ctx, string(data))
}
