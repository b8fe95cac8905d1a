package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCandidateFromString(t *testing.T) {
	cand, ok := CoerceCandidate("  Python  ")
	require.True(t, ok)

	assert.Equal(t, "Python", cand.Name)
	assert.Equal(t, CategoryOther, cand.Category)
	assert.Equal(t, ProficiencyIntermediate, cand.Proficiency)
	assert.Equal(t, 0.5, cand.Confidence)
	assert.NotNil(t, cand.Evidence)
	assert.Empty(t, cand.Evidence)
}

func TestCoerceCandidateFromObject(t *testing.T) {
	cand, ok := CoerceCandidate(map[string]any{
		"name":        "Docker",
		"category":    "tool",
		"proficiency": "advanced",
		"confidence":  0.9,
		"evidence":    []any{"Deployed services with Docker", 42},
	})
	require.True(t, ok)

	assert.Equal(t, "Docker", cand.Name)
	assert.Equal(t, CategoryTool, cand.Category)
	assert.Equal(t, ProficiencyAdvanced, cand.Proficiency)
	assert.Equal(t, 0.9, cand.Confidence)
	assert.Equal(t, []string{"Deployed services with Docker", "42"}, cand.Evidence)
}

func TestCoerceCandidateObjectDefaults(t *testing.T) {
	cand, ok := CoerceCandidate(map[string]any{"name": "Kanban"})
	require.True(t, ok)

	assert.Equal(t, CategoryOther, cand.Category)
	assert.Equal(t, ProficiencyIntermediate, cand.Proficiency)
	assert.Equal(t, 0.5, cand.Confidence)
	assert.Empty(t, cand.Evidence)
}

func TestCoerceCandidateEvidenceString(t *testing.T) {
	cand, ok := CoerceCandidate(map[string]any{
		"name":     "SQL",
		"evidence": "Wrote reporting queries",
	})
	require.True(t, ok)
	assert.Equal(t, []string{"Wrote reporting queries"}, cand.Evidence)
}

func TestCoerceCandidateRejectsInvalid(t *testing.T) {
	cases := []any{
		"",
		"   ",
		map[string]any{"category": "tool"},
		map[string]any{"name": ""},
		42,
		nil,
		[]string{"Python"},
	}
	for _, raw := range cases {
		_, ok := CoerceCandidate(raw)
		assert.False(t, ok, "expected rejection for %#v", raw)
	}
}

func TestMergeKeyNormalization(t *testing.T) {
	assert.Equal(t, MergeKey("Python"), MergeKey("  python  "))
	assert.Equal(t, "node.js", MergeKey("Node.js"))
	assert.NotEqual(t, MergeKey("Go"), MergeKey("Golang"))
}

func TestProfileRecomputeCounts(t *testing.T) {
	profile := Profile{
		UserID: "u1",
		Skills: []ProfileSkill{
			{Name: "Python", Sources: map[string]struct{}{"cv": {}, "github": {}}},
			{Name: "Docker", Sources: map[string]struct{}{"cv": {}}},
			{Name: "Leadership", Sources: map[string]struct{}{"linkedin": {}}},
		},
	}
	profile.RecomputeCounts()

	assert.Equal(t, 3, profile.SkillCount)
	assert.Equal(t, 3, profile.SourcesConnected)
}

func TestJobTerminal(t *testing.T) {
	for status, terminal := range map[JobStatus]bool{
		JobStatusPending:    false,
		JobStatusProcessing: false,
		JobStatusCompleted:  true,
		JobStatusFailed:     true,
	} {
		job := Job{Status: status}
		assert.Equal(t, terminal, job.Terminal(), "status %s", status)
	}
}
