package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSkillGaps_Success(t *testing.T) {
	gen := &fakeGenerator{response: `{"gaps": [{"skill": "Kubernetes", "importance": "critical", "reason": "core to the role"}], "summary": "one major gap"}`}
	client := NewClient(gen)

	result := client.AnalyzeSkillGaps(context.Background(), []string{"Python", "Docker"}, "Platform Engineer")
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "Kubernetes", result.Gaps[0].Skill)
	assert.Equal(t, "one major gap", result.Summary)

	assert.Contains(t, gen.lastPrompt, "Platform Engineer")
	assert.Contains(t, gen.lastPrompt, "Python, Docker")
}

func TestAnalyzeSkillGaps_NoBackend(t *testing.T) {
	client := NewClient(nil)
	result := client.AnalyzeSkillGaps(context.Background(), []string{"Python"}, "SRE")
	assert.Empty(t, result.Gaps)
	assert.NotEmpty(t, result.Summary)
}

func TestAnalyzeSkillGaps_BackendError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("quota exceeded")}
	client := NewClient(gen)

	result := client.AnalyzeSkillGaps(context.Background(), []string{"Python"}, "SRE")
	assert.Empty(t, result.Gaps)
	assert.Contains(t, result.Summary, "temporarily unavailable")
}

func TestAnalyzeSkillGaps_UnparseableResponse(t *testing.T) {
	gen := &fakeGenerator{response: "no json here"}
	client := NewClient(gen)

	result := client.AnalyzeSkillGaps(context.Background(), nil, "SRE")
	assert.Empty(t, result.Gaps)
	assert.Contains(t, result.Summary, "could not be parsed")
}

func TestRecommendSkills_Success(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"recommendations\": [{\"skill\": \"Terraform\", \"reason\": \"pairs with AWS\", \"priority\": \"high\"}], \"summary\": \"solid base\"}\n```"}
	client := NewClient(gen)

	result := client.RecommendSkills(context.Background(), []string{"AWS"}, "")
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Terraform", result.Recommendations[0].Skill)
}

func TestRecommendSkills_OptionalTargetRole(t *testing.T) {
	gen := &fakeGenerator{response: `{"recommendations": [], "summary": "ok"}`}
	client := NewClient(gen)

	client.RecommendSkills(context.Background(), []string{"Go"}, "")
	assert.NotContains(t, gen.lastPrompt, "Target role")

	client.RecommendSkills(context.Background(), []string{"Go"}, "Backend Engineer")
	assert.Contains(t, gen.lastPrompt, "Backend Engineer")
}

func TestRecommendSkills_FailureReturnsEmptyWithSummary(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("timeout")}
	client := NewClient(gen)

	result := client.RecommendSkills(context.Background(), []string{"Go"}, "SRE")
	assert.Empty(t, result.Recommendations)
	assert.NotEmpty(t, result.Summary)
}
