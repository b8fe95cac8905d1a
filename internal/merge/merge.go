// Package merge folds extracted skill candidates into a profile's skill
// list, deduplicating across sources.
package merge

import (
	"time"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Defaults applied when a candidate arrives without the field set.
const (
	defaultConfidence = 0.8
	defaultCategory   = types.SkillCategory("Uncategorized")
)

// Merge folds candidates into existing, keyed by the trimmed, lowercased
// skill name. Matching skills accumulate: confidence takes the max,
// occurrences increment, evidence concatenates (unbounded), and the source
// tag joins the source set. Unmatched candidates insert new skills.
//
// The returned slice is the full updated list. Callers are responsible for
// recomputing profile counts and persisting.
func Merge(existing []types.ProfileSkill, candidates []types.SkillCandidate, sourceTag string) []types.ProfileSkill {
	result := make([]types.ProfileSkill, len(existing))
	copy(result, existing)

	index := make(map[string]int, len(result))
	for i := range result {
		index[types.MergeKey(result[i].Name)] = i
	}

	now := time.Now()
	for _, cand := range candidates {
		key := types.MergeKey(cand.Name)
		if key == "" {
			continue
		}

		i, ok := index[key]
		if !ok {
			result = append(result, newProfileSkill(cand, sourceTag, now))
			index[key] = len(result) - 1
			continue
		}

		skill := &result[i]
		if conf := confidenceOrDefault(cand.Confidence); conf > skill.Confidence {
			skill.Confidence = conf
		}
		skill.Occurrences++
		skill.Evidence = append(skill.Evidence, cand.Evidence...)
		if skill.Sources == nil {
			skill.Sources = make(map[string]struct{})
		}
		skill.Sources[sourceTag] = struct{}{}
	}

	return result
}

// newProfileSkill builds the persisted record for a first-seen skill.
func newProfileSkill(cand types.SkillCandidate, sourceTag string, now time.Time) types.ProfileSkill {
	category := cand.Category
	if category == "" {
		category = defaultCategory
	}

	evidence := make([]string, len(cand.Evidence))
	copy(evidence, cand.Evidence)

	return types.ProfileSkill{
		Name:        cand.Name,
		Category:    category,
		Proficiency: cand.Proficiency,
		Confidence:  confidenceOrDefault(cand.Confidence),
		Verified:    false,
		Occurrences: 1,
		Evidence:    evidence,
		Sources:     map[string]struct{}{sourceTag: {}},
		CreatedAt:   now,
	}
}

func confidenceOrDefault(confidence float64) float64 {
	if confidence == 0 {
		return defaultConfidence
	}
	return confidence
}
