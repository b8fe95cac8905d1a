// Package githubapi provides a minimal GitHub REST API client for the
// repository listing, language breakdown, and README fetches the GitHub
// connector needs.
package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound indicates the requested resource does not exist (missing
// README, unknown user).
var ErrNotFound = errors.New("github: not found")

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "skill-profiler/1.0"
	acceptHeader   = "application/vnd.github.v3+json"
)

// Repo is the subset of repository metadata the connector uses.
type Repo struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Fork      bool   `json:"fork"`
	UpdatedAt string `json:"updated_at"`
}

// Client is the GitHub host API boundary consumed by the GitHub connector.
type Client interface {
	// ListRepos returns up to perPage public repositories for username,
	// sorted as requested (e.g. "updated").
	ListRepos(ctx context.Context, username string, perPage int, sort string) ([]Repo, error)
	// ListLanguages returns the byte count per language for a repository.
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error)
	// GetReadme returns the decoded README content, or ErrNotFound.
	GetReadme(ctx context.Context, owner, repo string) (string, error)
}

// RESTClient implements Client against the public GitHub REST API.
type RESTClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewRESTClient creates a GitHub REST client. token is optional; without it
// requests count against the anonymous rate limit.
func NewRESTClient(token string) *RESTClient {
	return &RESTClient{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewRESTClientWithBaseURL creates a client against a custom API base URL,
// used by tests to point at a local fake.
func NewRESTClientWithBaseURL(baseURL, token string) *RESTClient {
	c := NewRESTClient(token)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// ListRepos fetches public repositories for username.
func (c *RESTClient) ListRepos(ctx context.Context, username string, perPage int, sort string) ([]Repo, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(perPage)},
	}
	if sort != "" {
		params.Set("sort", sort)
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), params.Encode())

	var repos []Repo
	if err := c.getJSON(ctx, endpoint, &repos); err != nil {
		return nil, fmt.Errorf("failed to list repos for %s: %w", username, err)
	}
	return repos, nil
}

// ListLanguages fetches the language byte breakdown for a repository.
func (c *RESTClient) ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	languages := make(map[string]int64)
	if err := c.getJSON(ctx, endpoint, &languages); err != nil {
		return nil, fmt.Errorf("failed to list languages for %s/%s: %w", owner, repo, err)
	}
	return languages, nil
}

// readmeResponse is the GitHub README endpoint payload. Content arrives
// base64-encoded with embedded newlines.
type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetReadme fetches and decodes a repository README.
func (c *RESTClient) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	var payload readmeResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return "", err
	}

	if payload.Encoding != "base64" {
		return payload.Content, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode README for %s/%s: %w", owner, repo, err)
	}
	return string(decoded), nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
// 404 maps to ErrNotFound.
func (c *RESTClient) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
