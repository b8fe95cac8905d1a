package connectors

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-profiler/internal/githubapi"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/types"
)

const (
	// maxRepos caps how many of the user's most-recently-updated public
	// repositories are analyzed.
	maxRepos = 10

	// repoFetchConcurrency limits parallel per-repo API calls.
	repoFetchConcurrency = 4
)

// GitHubResult is the GitHub connector's extraction output.
type GitHubResult struct {
	Source    string                 `json:"source"`
	Username  string                 `json:"username"`
	Languages []string               `json:"languages"`
	Skills    []types.SkillCandidate `json:"skills"`
	RepoCount int                    `json:"repo_count"`
}

// GitHubConnector derives skills from a user's public repositories:
// language breakdowns plus AI extraction over each repository README.
type GitHubConnector struct {
	api githubapi.Client
	ai  *llm.Client
}

// NewGitHubConnector creates a GitHub connector.
func NewGitHubConnector(api githubapi.Client, ai *llm.Client) *GitHubConnector {
	return &GitHubConnector{api: api, ai: ai}
}

// repoFacts is the per-repository fetch output.
type repoFacts struct {
	languages map[string]int64
	skills    []types.SkillCandidate
}

// Extract lists the user's repositories and folds languages and README
// skills together. A single repository's missing or unfetchable README is
// logged and skipped; it never aborts the extraction.
func (c *GitHubConnector) Extract(ctx context.Context, username string) (*GitHubResult, error) {
	repos, err := c.api.ListRepos(ctx, username, maxRepos, "updated")
	if err != nil {
		return nil, fmt.Errorf("failed to list GitHub repos for %s: %w", username, err)
	}

	var mu sync.Mutex
	facts := make([]repoFacts, 0, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(repoFetchConcurrency)
	for _, repo := range repos {
		g.Go(func() error {
			f := c.fetchRepo(gctx, username, repo.Name)
			mu.Lock()
			facts = append(facts, f)
			mu.Unlock()
			return nil
		})
	}
	// Per-repo failures are absorbed inside fetchRepo; the group error is
	// always nil.
	_ = g.Wait()

	languageSet := make(map[string]struct{})
	var skills []types.SkillCandidate
	for _, f := range facts {
		for lang := range f.languages {
			languageSet[lang] = struct{}{}
		}
		skills = append(skills, f.skills...)
	}

	languages := make([]string, 0, len(languageSet))
	for lang := range languageSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return &GitHubResult{
		Source:    SourceGitHub,
		Username:  username,
		Languages: languages,
		Skills:    skills,
		RepoCount: len(repos),
	}, nil
}

// fetchRepo gathers one repository's language breakdown and README skills.
// Every failure here is per-item skippable.
func (c *GitHubConnector) fetchRepo(ctx context.Context, owner, repo string) repoFacts {
	var facts repoFacts

	languages, err := c.api.ListLanguages(ctx, owner, repo)
	if err != nil {
		log.Printf("[github] skipping languages for %s/%s: %v", owner, repo, err)
	} else {
		facts.languages = languages
	}

	readme, err := c.api.GetReadme(ctx, owner, repo)
	if err != nil {
		if !errors.Is(err, githubapi.ErrNotFound) {
			log.Printf("[github] skipping README for %s/%s: %v", owner, repo, err)
		}
		return facts
	}

	result, err := c.ai.ExtractFromText(ctx, readme)
	if err != nil {
		// The AI client absorbs its own failures; this is belt and braces.
		log.Printf("[github] skipping README extraction for %s/%s: %v", owner, repo, err)
		return facts
	}
	facts.skills = result.Skills
	return facts
}
