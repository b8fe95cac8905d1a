package llm

import (
	"context"
	"fmt"
	"log"
)

// SkillGap is one missing skill identified by the gap analysis.
type SkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Reason     string `json:"reason"`
}

// GapAnalysis is the result of AnalyzeSkillGaps.
type GapAnalysis struct {
	Gaps    []SkillGap `json:"gaps"`
	Summary string     `json:"summary"`
}

// Recommendation is one suggested skill from RecommendSkills.
type Recommendation struct {
	Skill    string `json:"skill"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// Recommendations is the result of RecommendSkills.
type Recommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// AnalyzeSkillGaps compares the current skill set against a target role.
// Shares the extraction client's parsing discipline: on any failure it
// returns an empty result whose Summary explains what went wrong, never an
// error.
func (c *Client) AnalyzeSkillGaps(ctx context.Context, currentSkills []string, targetRole string) *GapAnalysis {
	empty := func(reason string) *GapAnalysis {
		return &GapAnalysis{
			Gaps:    []SkillGap{},
			Summary: reason,
		}
	}

	if c.gen == nil {
		return empty("Skill gap analysis requires a configured AI model; none is available.")
	}

	prompt := buildSkillGapPrompt(currentSkills, targetRole)
	raw, err := c.gen.StreamGenerate(ctx, prompt, "")
	if err != nil {
		log.Printf("[llm] skill gap analysis failed: %v", err)
		return empty(fmt.Sprintf("Skill gap analysis is temporarily unavailable: %v", err))
	}

	var result GapAnalysis
	if !parseObject(raw, &result) {
		return empty("The AI response could not be parsed; please try again.")
	}
	if result.Gaps == nil {
		result.Gaps = []SkillGap{}
	}
	return &result
}

// RecommendSkills suggests skills to learn next. targetRole may be empty.
// The failure contract matches AnalyzeSkillGaps.
func (c *Client) RecommendSkills(ctx context.Context, currentSkills []string, targetRole string) *Recommendations {
	empty := func(reason string) *Recommendations {
		return &Recommendations{
			Recommendations: []Recommendation{},
			Summary:         reason,
		}
	}

	if c.gen == nil {
		return empty("Skill recommendations require a configured AI model; none is available.")
	}

	prompt := buildRecommendationPrompt(currentSkills, targetRole)
	raw, err := c.gen.StreamGenerate(ctx, prompt, "")
	if err != nil {
		log.Printf("[llm] skill recommendation failed: %v", err)
		return empty(fmt.Sprintf("Skill recommendations are temporarily unavailable: %v", err))
	}

	var result Recommendations
	if !parseObject(raw, &result) {
		return empty("The AI response could not be parsed; please try again.")
	}
	if result.Recommendations == nil {
		result.Recommendations = []Recommendation{}
	}
	return &result
}
