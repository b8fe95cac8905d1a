package types

import (
	"fmt"
	"strings"
)

// CoerceCandidate normalizes duck-typed skill input into a canonical
// SkillCandidate. Upstream sources (raw LLM output, third-party profile
// payloads) sometimes deliver a skill as a bare string and sometimes as an
// object; this is the single place that branches on the shape. Everything
// past this boundary works with SkillCandidate only.
func CoerceCandidate(raw any) (SkillCandidate, bool) {
	switch v := raw.(type) {
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return SkillCandidate{}, false
		}
		return SkillCandidate{
			Name:        name,
			Category:    CategoryOther,
			Proficiency: ProficiencyIntermediate,
			Evidence:    []string{},
			Confidence:  0.5,
		}, true
	case map[string]any:
		return coerceObject(v)
	case SkillCandidate:
		return normalizeCandidate(v), true
	default:
		return SkillCandidate{}, false
	}
}

func coerceObject(obj map[string]any) (SkillCandidate, bool) {
	name, _ := obj["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillCandidate{}, false
	}

	cand := SkillCandidate{Name: name}

	if cat, ok := obj["category"].(string); ok {
		cand.Category = SkillCategory(cat)
	}
	if prof, ok := obj["proficiency"].(string); ok {
		cand.Proficiency = Proficiency(prof)
	}
	if conf, ok := obj["confidence"].(float64); ok {
		cand.Confidence = conf
	}

	// Evidence may arrive as a bare string, a []string, or a JSON array
	// of any. Always coerce to a string slice.
	switch ev := obj["evidence"].(type) {
	case string:
		if ev != "" {
			cand.Evidence = []string{ev}
		}
	case []string:
		cand.Evidence = ev
	case []any:
		for _, item := range ev {
			cand.Evidence = append(cand.Evidence, fmt.Sprintf("%v", item))
		}
	}

	return normalizeCandidate(cand), true
}

// normalizeCandidate fills defaults for missing fields: category "other",
// proficiency "intermediate", confidence 0.5, non-nil evidence.
func normalizeCandidate(cand SkillCandidate) SkillCandidate {
	if cand.Category == "" {
		cand.Category = CategoryOther
	}
	if cand.Proficiency == "" {
		cand.Proficiency = ProficiencyIntermediate
	}
	if cand.Confidence == 0 {
		cand.Confidence = 0.5
	}
	if cand.Evidence == nil {
		cand.Evidence = []string{}
	}
	return cand
}
