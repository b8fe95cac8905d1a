// Package llm provides the AI extraction client: prompt construction,
// streamed-response parsing, and a deterministic offline fallback.
package llm

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Generator abstracts the streaming text-generation backend. Implementations
// concatenate streamed fragments and return the full response text.
// fileURI is optional; when non-empty the backend reads the referenced
// document natively alongside the prompt.
type Generator interface {
	// StreamGenerate sends the prompt and returns the concatenated response.
	StreamGenerate(ctx context.Context, prompt string, fileURI string) (string, error)
	// UploadFile stores document bytes in the backend's own file store and
	// returns a URI usable as a StreamGenerate file reference.
	UploadFile(ctx context.Context, data []byte, mimeType string) (string, error)
	// Model returns the backing model name for result metadata.
	Model() string
	// Close releases any resources held by the generator.
	Close() error
}

// Client is the AI extraction client. With a nil generator it runs entirely
// on the deterministic mock extractor; that is a first-class supported mode,
// not an error path.
type Client struct {
	gen Generator
}

// NewClient creates an extraction client. gen may be nil to run offline.
func NewClient(gen Generator) *Client {
	return &Client{gen: gen}
}

// Configured reports whether a generation backend is available.
func (c *Client) Configured() bool {
	return c.gen != nil
}

// Close releases the underlying generator, if any.
func (c *Client) Close() error {
	if c.gen != nil {
		return c.gen.Close()
	}
	return nil
}

// ExtractFromText extracts skill candidates from free text. Transport and
// model failures are absorbed: the deterministic mock extractor is used
// instead, so this never hard-fails the caller.
func (c *Client) ExtractFromText(ctx context.Context, text string) (*types.ExtractionResult, error) {
	if c.gen == nil {
		return c.mockResult(text), nil
	}

	prompt := buildSkillExtractionPrompt(text)
	raw, err := c.gen.StreamGenerate(ctx, prompt, "")
	if err != nil {
		log.Printf("[llm] text extraction failed, using mock extractor: %v", err)
		return c.mockResult(text), nil
	}

	return &types.ExtractionResult{
		Skills: parseSkillArray(raw),
		Metadata: types.ExtractionMetadata{
			Model:      c.gen.Model(),
			Timestamp:  time.Now(),
			TextLength: len(text),
		},
	}, nil
}

// ExtractFromDocumentBytes runs document-mode extraction over raw bytes.
// Blob-store URIs (mem://, pg://) are not readable by the model, so the
// bytes travel through the generator's own file upload first. Every
// failure, upload or generation, falls back to the mock extractor over the
// bytes interpreted as text, so the document content is always what gets
// scanned.
func (c *Client) ExtractFromDocumentBytes(ctx context.Context, data []byte, mimeType string) (*types.ExtractionResult, error) {
	if c.gen == nil {
		return c.mockResult(string(data)), nil
	}

	fileURI, err := c.gen.UploadFile(ctx, data, mimeType)
	if err != nil {
		log.Printf("[llm] document upload failed, using mock extractor: %v", err)
		return c.mockResult(string(data)), nil
	}

	prompt := buildDocumentExtractionPrompt()
	raw, err := c.gen.StreamGenerate(ctx, prompt, fileURI)
	if err != nil {
		log.Printf("[llm] document extraction failed for %s, using mock extractor: %v", fileURI, err)
		return c.mockResult(string(data)), nil
	}

	return &types.ExtractionResult{
		Skills: parseSkillArray(raw),
		Metadata: types.ExtractionMetadata{
			Model:      c.gen.Model(),
			Timestamp:  time.Now(),
			TextLength: len(data),
		},
	}, nil
}

// ExtractFromDocument extracts skill candidates from a document the model
// can read by reference: storageURI must be a model-native URI (one
// returned by the generator's file upload, or a GCS object). Callers
// holding only the raw bytes should use ExtractFromDocumentBytes. The
// fallback contract matches ExtractFromText, though with no backend only
// the URI string itself is available to the mock extractor.
func (c *Client) ExtractFromDocument(ctx context.Context, storageURI string) (*types.ExtractionResult, error) {
	if c.gen == nil {
		return c.mockResult(storageURI), nil
	}

	prompt := buildDocumentExtractionPrompt()
	raw, err := c.gen.StreamGenerate(ctx, prompt, storageURI)
	if err != nil {
		log.Printf("[llm] document extraction failed for %s, using mock extractor: %v", storageURI, err)
		return c.mockResult(storageURI), nil
	}

	return &types.ExtractionResult{
		Skills: parseSkillArray(raw),
		Metadata: types.ExtractionMetadata{
			Model:      c.gen.Model(),
			Timestamp:  time.Now(),
			TextLength: len(raw),
		},
	}, nil
}

// mockResult wraps the deterministic mock extractor output with metadata.
func (c *Client) mockResult(text string) *types.ExtractionResult {
	return &types.ExtractionResult{
		Skills: mockExtract(text),
		Metadata: types.ExtractionMetadata{
			Model:      mockModelName,
			Timestamp:  time.Now(),
			TextLength: len(text),
		},
	}
}
