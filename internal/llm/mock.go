package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-profiler/internal/types"
)

// mockModelName appears in result metadata when the mock extractor ran.
const mockModelName = "mock-extractor"

// Mock extractor constants. Every matched skill is emitted with the same
// fixed proficiency and confidence so output is fully deterministic.
const (
	mockConfidence      = 0.7
	mockEvidenceSnippet = 100
)

// mockTaxonomy maps canonical skill names to categories. Matching is
// case-insensitive substring search over the input text.
var mockTaxonomy = []struct {
	name     string
	category types.SkillCategory
}{
	{"Python", types.CategoryProgrammingLanguage},
	{"JavaScript", types.CategoryProgrammingLanguage},
	{"TypeScript", types.CategoryProgrammingLanguage},
	{"Java", types.CategoryProgrammingLanguage},
	{"SQL", types.CategoryProgrammingLanguage},
	{"React", types.CategoryFramework},
	{"Angular", types.CategoryFramework},
	{"Node.js", types.CategoryFramework},
	{"Docker", types.CategoryTool},
	{"Kubernetes", types.CategoryTool},
	{"AWS", types.CategoryTool},
	{"Git", types.CategoryTool},
	{"Agile", types.CategoryMethodology},
	{"Leadership", types.CategorySoftSkill},
	{"Communication", types.CategorySoftSkill},
}

// mockExtract is the deterministic offline extractor. It runs when no
// generation backend is configured and as the fallback for every transport
// or model failure, so extraction never hard-fails.
func mockExtract(text string) []types.SkillCandidate {
	lower := strings.ToLower(text)
	evidence := fmt.Sprintf("Mentioned in text: \"%s...\"", truncate(text, mockEvidenceSnippet))

	skills := []types.SkillCandidate{}
	for _, entry := range mockTaxonomy {
		if !strings.Contains(lower, strings.ToLower(entry.name)) {
			continue
		}
		skills = append(skills, types.SkillCandidate{
			Name:        entry.name,
			Category:    entry.category,
			Proficiency: types.ProficiencyIntermediate,
			Evidence:    []string{evidence},
			Confidence:  mockConfidence,
		})
	}
	return skills
}

// truncate shortens s to at most limit bytes for evidence snippets,
// backing up to a rune boundary so the snippet stays valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
