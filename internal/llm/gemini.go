package llm

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured explicitly.
const DefaultModel = "gemini-2.5-flash"

// Generation settings. Low temperature and fixed decoding keep extraction
// output as deterministic as the API allows.
const (
	genTemperature     = 0.1
	genTopP            = 0.8
	genMaxOutputTokens = 4096
)

// GeminiGenerator implements Generator on the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a streaming Gemini backend. Returns an error if
// the API key is empty; callers that want offline mode should construct the
// Client with a nil generator instead.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// UploadFile stores document bytes with the Gemini Files API and returns
// the file URI. Generation parts cannot reference arbitrary storage; only
// Files API and GCS URIs are accepted, so documents held elsewhere must
// pass through here first.
func (g *GeminiGenerator) UploadFile(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	file, err := g.client.UploadFile(ctx, "", bytes.NewReader(data), &genai.UploadFileOptions{MIMEType: mimeType})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return file.URI, nil
}

// StreamGenerate sends the prompt (plus an optional file reference) and
// concatenates the streamed response fragments into one string.
func (g *GeminiGenerator) StreamGenerate(ctx context.Context, prompt string, fileURI string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(genTemperature)
	model.SetTopP(genTopP)
	model.SetMaxOutputTokens(genMaxOutputTokens)

	// Skill text trips safety filters surprisingly often ("attack vectors",
	// "penetration testing"), so every category is relaxed to the minimum.
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	parts := []genai.Part{genai.Text(prompt)}
	if fileURI != "" {
		parts = append(parts, genai.FileData{
			MIMEType: mimeTypeForURI(fileURI),
			URI:      fileURI,
		})
	}

	iter := model.GenerateContentStream(ctx, parts...)

	var sb strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("stream generation failed: %w", err)
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					sb.WriteString(string(text))
				}
			}
		}
	}

	return sb.String(), nil
}

// mimeTypeForURI guesses a document MIME type from the URI extension,
// defaulting to PDF which is what CV uploads overwhelmingly are.
func mimeTypeForURI(uri string) string {
	if mt := mime.TypeByExtension(path.Ext(uri)); mt != "" {
		return mt
	}
	return "application/pdf"
}
