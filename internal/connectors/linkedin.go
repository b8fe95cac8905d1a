package connectors

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/types"
)

// linkedInURLPattern accepts personal profile URLs only (in/ and pub/
// namespaces); company and other pages are rejected.
var linkedInURLPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/(in|pub)/[\w-]+/?$`)

// Channel tags for the three independent skill channels a LinkedIn profile
// yields.
const (
	channelListedSkills   = "listed_skills"
	channelExperience     = "experience"
	channelProfileSummary = "profile_summary"
)

// listedSkillConfidence is the fixed confidence for explicitly listed
// skills: the person claimed them directly, but nothing verified them.
const listedSkillConfidence = 0.9

// maxDescriptionEvidence bounds how much of an experience description is
// quoted as evidence.
const maxDescriptionEvidence = 150

// ErrInvalidLinkedInURL is a validation failure surfaced synchronously,
// before anything is enqueued.
type ErrInvalidLinkedInURL struct {
	URL string
}

func (e *ErrInvalidLinkedInURL) Error() string {
	return fmt.Sprintf("invalid LinkedIn profile URL: %s", e.URL)
}

// ValidateLinkedInURL checks a profile URL against the accepted pattern.
func ValidateLinkedInURL(profileURL string) error {
	if !linkedInURLPattern.MatchString(profileURL) {
		return &ErrInvalidLinkedInURL{URL: profileURL}
	}
	return nil
}

// LinkedInExperience is one position on a profile.
type LinkedInExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// LinkedInProfile is the fetched profile payload.
type LinkedInProfile struct {
	Headline   string               `json:"headline"`
	Summary    string               `json:"summary"`
	Skills     []string             `json:"skills"`
	Experience []LinkedInExperience `json:"experience"`
}

// ProfileFetcher retrieves a LinkedIn profile. Real OAuth against LinkedIn
// is not implemented; the default fetcher returns placeholder data. This is
// a documented limitation, not a stub to be hidden.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, profileURL string) (*LinkedInProfile, error)
}

// PlaceholderFetcher is the default ProfileFetcher. It returns a small
// representative profile so the downstream pipeline stays exercisable
// without LinkedIn API access.
type PlaceholderFetcher struct{}

// FetchProfile returns placeholder profile data for any valid URL.
func (PlaceholderFetcher) FetchProfile(_ context.Context, profileURL string) (*LinkedInProfile, error) {
	return &LinkedInProfile{
		Headline: "Software Engineer",
		Summary:  "Experienced engineer building backend systems.",
		Skills:   []string{"Python", "Docker", "Communication"},
		Experience: []LinkedInExperience{
			{
				Title:       "Senior Software Engineer",
				Company:     "Example Corp",
				Description: "Built and operated microservices on Kubernetes, mentored junior engineers.",
			},
		},
	}, nil
}

// LinkedInResult is the LinkedIn connector's extraction output.
type LinkedInResult struct {
	Source     string                 `json:"source"`
	ProfileURL string                 `json:"profile_url"`
	Skills     []types.SkillCandidate `json:"skills"`
}

// LinkedInConnector derives skills from a profile through three
// independent channels: explicitly listed skills, per-experience AI
// extraction, and headline+summary AI extraction.
type LinkedInConnector struct {
	fetcher ProfileFetcher
	ai      *llm.Client
}

// NewLinkedInConnector creates a LinkedIn connector. A nil fetcher uses the
// placeholder.
func NewLinkedInConnector(fetcher ProfileFetcher, ai *llm.Client) *LinkedInConnector {
	if fetcher == nil {
		fetcher = PlaceholderFetcher{}
	}
	return &LinkedInConnector{fetcher: fetcher, ai: ai}
}

// Extract validates the URL, fetches the profile, and merges the three
// skill channels into one candidate list.
func (c *LinkedInConnector) Extract(ctx context.Context, profileURL string) (*LinkedInResult, error) {
	if err := ValidateLinkedInURL(profileURL); err != nil {
		return nil, err
	}

	profile, err := c.fetcher.FetchProfile(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch LinkedIn profile: %w", err)
	}

	var skills []types.SkillCandidate

	// Channel 1: explicitly listed skills.
	for _, name := range profile.Skills {
		cand, ok := types.CoerceCandidate(name)
		if !ok {
			continue
		}
		cand.Category = types.SkillCategory("technical")
		cand.Confidence = listedSkillConfidence
		cand.Source = channelListedSkills
		skills = append(skills, cand)
	}

	// Channel 2: AI extraction over each experience description.
	for _, exp := range profile.Experience {
		if exp.Description == "" {
			continue
		}
		result, err := c.ai.ExtractFromText(ctx, exp.Description)
		if err != nil {
			continue
		}
		evidence := fmt.Sprintf("%s at %s: %s", exp.Title, exp.Company, truncate(exp.Description, maxDescriptionEvidence))
		for _, cand := range result.Skills {
			cand.Source = channelExperience
			cand.Evidence = []string{evidence}
			skills = append(skills, cand)
		}
	}

	// Channel 3: AI extraction over headline + summary.
	summaryText := profile.Headline
	if profile.Summary != "" {
		summaryText += "\n" + profile.Summary
	}
	if summaryText != "" {
		result, err := c.ai.ExtractFromText(ctx, summaryText)
		if err == nil {
			for _, cand := range result.Skills {
				cand.Source = channelProfileSummary
				skills = append(skills, cand)
			}
		}
	}

	return &LinkedInResult{
		Source:     SourceLinkedIn,
		ProfileURL: profileURL,
		Skills:     skills,
	}, nil
}

// truncate shortens s for evidence snippets, backing up to a rune boundary
// so the snippet stays valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}
