package llm

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

// CleanJSONBlock removes markdown code block wrappers from LLM responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not
// to. The second return value reports whether a fence was found.
func CleanJSONBlock(text string) (string, bool) {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text), true
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") && !strings.Contains(firstLine, "[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text), true
	}

	return text, false
}

// extractJSONArray returns the first [...] bracketed substring of text, or
// text unchanged if no array brackets are found. Models sometimes prepend
// prose ("Here are the skills I found:") before the array.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// parseSkillArray defensively parses a raw model response into skill
// candidates. Any parse failure, including a non-array root, yields an
// empty list rather than an error: bad model output must never abort an
// extraction.
func parseSkillArray(raw string) []types.SkillCandidate {
	cleaned, fenced := CleanJSONBlock(raw)
	if !fenced {
		cleaned = extractJSONArray(cleaned)
	}

	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		log.Printf("[llm] failed to parse skill response as JSON array: %v", err)
		return []types.SkillCandidate{}
	}

	skills := make([]types.SkillCandidate, 0, len(items))
	for _, item := range items {
		if cand, ok := types.CoerceCandidate(item); ok {
			skills = append(skills, cand)
		}
	}
	return skills
}

// parseObject parses a raw model response expected to be a single JSON
// object into dst. Returns false (with a log line) on any failure; callers
// substitute an empty result rather than erroring.
func parseObject(raw string, dst any) bool {
	cleaned, fenced := CleanJSONBlock(raw)
	if !fenced {
		// Same salvage idea as extractJSONArray, for object roots.
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start >= 0 && end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		log.Printf("[llm] failed to parse object response: %v", err)
		return false
	}
	return true
}
