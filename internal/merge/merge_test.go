package merge

import (
	"testing"
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name string, confidence float64, evidence ...string) types.SkillCandidate {
	return types.SkillCandidate{
		Name:       name,
		Confidence: confidence,
		Evidence:   evidence,
	}
}

func TestMerge_InsertNewSkill(t *testing.T) {
	cand := types.SkillCandidate{
		Name:        "Go",
		Category:    types.CategoryProgrammingLanguage,
		Proficiency: types.ProficiencyAdvanced,
		Confidence:  0.9,
		Evidence:    []string{"built services"},
	}

	result := Merge(nil, []types.SkillCandidate{cand}, "cv")
	require.Len(t, result, 1)

	skill := result[0]
	assert.Equal(t, "Go", skill.Name)
	assert.Equal(t, types.CategoryProgrammingLanguage, skill.Category)
	assert.Equal(t, 0.9, skill.Confidence)
	assert.False(t, skill.Verified)
	assert.Equal(t, 1, skill.Occurrences)
	assert.Equal(t, []string{"built services"}, skill.Evidence)
	assert.Equal(t, map[string]struct{}{"cv": {}}, skill.Sources)
	assert.False(t, skill.CreatedAt.IsZero())
}

func TestMerge_InsertDefaults(t *testing.T) {
	result := Merge(nil, []types.SkillCandidate{{Name: "mystery"}}, "github")
	require.Len(t, result, 1)
	assert.Equal(t, types.SkillCategory("Uncategorized"), result[0].Category)
	assert.Equal(t, 0.8, result[0].Confidence)
}

func TestMerge_KeyIsCaseAndWhitespaceInsensitive(t *testing.T) {
	candidates := []types.SkillCandidate{
		candidate("Docker", 0.6, "e1"),
		candidate("  docker ", 0.7, "e2"),
		candidate("DOCKER", 0.5, "e3"),
	}

	result := Merge(nil, candidates, "cv")
	require.Len(t, result, 1, "case/whitespace variants must merge into one skill")
	assert.Equal(t, 3, result[0].Occurrences)
}

func TestMerge_ConfidenceIsMonotonicMax(t *testing.T) {
	result := Merge(nil, []types.SkillCandidate{candidate("Python", 0.6)}, "cv")
	result = Merge(result, []types.SkillCandidate{candidate("Python", 0.9)}, "cv")
	require.Len(t, result, 1)
	assert.Equal(t, 0.9, result[0].Confidence)

	// A lower confidence later must not drag it back down.
	result = Merge(result, []types.SkillCandidate{candidate("Python", 0.3)}, "cv")
	assert.Equal(t, 0.9, result[0].Confidence)
}

func TestMerge_OccurrenceCounting(t *testing.T) {
	var result []types.ProfileSkill
	const n = 7
	for i := 0; i < n; i++ {
		result = Merge(result, []types.SkillCandidate{candidate("Git", 0.5)}, "github")
	}
	require.Len(t, result, 1)
	assert.Equal(t, n, result[0].Occurrences)
}

func TestMerge_EvidenceAccumulates(t *testing.T) {
	result := Merge(nil, []types.SkillCandidate{candidate("K8s", 0.5, "a", "b")}, "cv")
	result = Merge(result, []types.SkillCandidate{candidate("k8s", 0.5, "c")}, "github")
	result = Merge(result, []types.SkillCandidate{candidate("K8S", 0.5, "d", "e", "f")}, "linkedin")

	require.Len(t, result, 1)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, result[0].Evidence)
}

func TestMerge_SourceSetSemantics(t *testing.T) {
	result := Merge(nil, []types.SkillCandidate{candidate("Python", 0.5)}, "cv")
	result = Merge(result, []types.SkillCandidate{candidate("Python", 0.5)}, "cv")

	require.Len(t, result, 1)
	assert.Len(t, result[0].Sources, 1, "same source twice must not duplicate")

	result = Merge(result, []types.SkillCandidate{candidate("Python", 0.5)}, "github")
	assert.Len(t, result[0].Sources, 2)
}

func TestMerge_UnmatchedExistingUntouched(t *testing.T) {
	existing := []types.ProfileSkill{{
		Name:        "Rust",
		Confidence:  0.4,
		Occurrences: 2,
		Evidence:    []string{"old"},
		Sources:     map[string]struct{}{"cv": {}},
		CreatedAt:   time.Now(),
	}}

	result := Merge(existing, []types.SkillCandidate{candidate("Go", 0.8)}, "github")
	require.Len(t, result, 2)
	assert.Equal(t, "Rust", result[0].Name)
	assert.Equal(t, 0.4, result[0].Confidence)
	assert.Equal(t, 2, result[0].Occurrences)
}

func TestMerge_EmptyNameSkipped(t *testing.T) {
	result := Merge(nil, []types.SkillCandidate{candidate("  ", 0.9)}, "cv")
	assert.Empty(t, result)
}

// End-to-end scenario from the profile-merge contract: an existing cv skill
// gains a GitHub observation with higher confidence.
func TestMerge_CrossSourceScenario(t *testing.T) {
	existing := []types.ProfileSkill{{
		Name:        "docker",
		Confidence:  0.5,
		Occurrences: 1,
		Evidence:    []string{"e1"},
		Sources:     map[string]struct{}{"cv": {}},
		CreatedAt:   time.Now(),
	}}

	result := Merge(existing, []types.SkillCandidate{candidate("Docker", 0.8, "e2")}, "github")

	require.Len(t, result, 1)
	skill := result[0]
	assert.Equal(t, "docker", skill.Name)
	assert.Equal(t, 0.8, skill.Confidence)
	assert.Equal(t, 2, skill.Occurrences)
	assert.Equal(t, []string{"e1", "e2"}, skill.Evidence)
	assert.Equal(t, map[string]struct{}{"cv": {}, "github": {}}, skill.Sources)
}
