package types

import (
	"sort"
	"strings"
	"time"
)

// ProfileSkill is the persisted, merged skill record owned by a Profile.
// Within one profile the trimmed, lowercased Name is unique; it is the
// merge key across sources. ProfileSkills are mutated only by the merge
// engine and never deleted automatically.
type ProfileSkill struct {
	Name        string              `json:"name"`
	Category    SkillCategory       `json:"category"`
	Proficiency Proficiency         `json:"proficiency,omitempty"`
	Confidence  float64             `json:"confidence"`
	Verified    bool                `json:"verified"`
	Occurrences int                 `json:"occurrences"`
	Evidence    []string            `json:"evidence"`
	Sources     map[string]struct{} `json:"sources"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MergeKey returns the case-insensitive, trimmed name used to deduplicate
// skills across sources.
func MergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SourceList returns the source tags as a sorted slice, for stable JSON
// output and logging.
func (s *ProfileSkill) SourceList() []string {
	out := make([]string, 0, len(s.Sources))
	for tag := range s.Sources {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Profile is the per-person document the merge engine writes into.
type Profile struct {
	UserID           string         `json:"user_id"`
	Skills           []ProfileSkill `json:"skills"`
	SkillCount       int            `json:"skill_count"`
	SourcesConnected int            `json:"sources_connected"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// RecomputeCounts refreshes SkillCount and SourcesConnected from the skill
// list. Callers must invoke this after every merge before persisting.
func (p *Profile) RecomputeCounts() {
	p.SkillCount = len(p.Skills)
	union := make(map[string]struct{})
	for i := range p.Skills {
		for tag := range p.Skills[i].Sources {
			union[tag] = struct{}{}
		}
	}
	p.SourcesConnected = len(union)
}
