// Package types provides type definitions for structured data used throughout the skill-profiler system.
package types

import (
	"time"
)

// SkillCategory classifies an extracted skill.
type SkillCategory string

// Allowed skill categories. The AI extraction prompt enumerates exactly
// these values; anything else is normalized to CategoryOther.
const (
	CategoryProgrammingLanguage SkillCategory = "programming_language"
	CategoryFramework           SkillCategory = "framework"
	CategoryTool                SkillCategory = "tool"
	CategorySoftSkill           SkillCategory = "soft_skill"
	CategoryDomainKnowledge     SkillCategory = "domain_knowledge"
	CategoryCertification       SkillCategory = "certification"
	CategoryMethodology         SkillCategory = "methodology"
	CategoryOther               SkillCategory = "other"
)

// AllCategories returns the allowed category values in prompt order.
func AllCategories() []SkillCategory {
	return []SkillCategory{
		CategoryProgrammingLanguage,
		CategoryFramework,
		CategoryTool,
		CategorySoftSkill,
		CategoryDomainKnowledge,
		CategoryCertification,
		CategoryMethodology,
		CategoryOther,
	}
}

// Proficiency is the self-assessed or inferred level for a skill.
type Proficiency string

// Allowed proficiency levels.
const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// SkillCandidate is a single unmerged skill fact produced by one extraction
// call. Candidates are produced fresh per call and never mutated.
type SkillCandidate struct {
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Proficiency Proficiency   `json:"proficiency"`
	Evidence    []string      `json:"evidence"`
	Confidence  float64       `json:"confidence"`
	// Source optionally tags which channel within a connector produced the
	// candidate (e.g. "listed_skills" vs "experience" for LinkedIn). The
	// cross-connector source tag lives on ProfileSkill.Sources instead.
	Source string `json:"source,omitempty"`
}

// ExtractionMetadata records provenance for one extraction call.
type ExtractionMetadata struct {
	Model      string    `json:"model"`
	Timestamp  time.Time `json:"timestamp"`
	TextLength int       `json:"text_length"`
}

// ExtractionResult is the output of one AI extraction call.
type ExtractionResult struct {
	Skills   []SkillCandidate   `json:"skills"`
	Metadata ExtractionMetadata `json:"metadata"`
}
