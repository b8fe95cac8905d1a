package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

// categoryList renders the allowed category values for prompt text.
func categoryList() string {
	cats := types.AllCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// skillArrayInstructions is the shared tail of every extraction prompt. It
// pins the output to a bare JSON array so the parser has a fighting chance.
func skillArrayInstructions() string {
	var sb strings.Builder
	sb.WriteString("Return ONLY a JSON array of skill objects, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("Each object must have this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"name\": \"skill name\",\n")
	sb.WriteString(fmt.Sprintf("  \"category\": one of [%s],\n", categoryList()))
	sb.WriteString("  \"proficiency\": one of [beginner, intermediate, advanced, expert],\n")
	sb.WriteString("  \"evidence\": [\"short quote or paraphrase supporting the skill\"],\n")
	sb.WriteString("  \"confidence\": number between 0 and 1\n")
	sb.WriteString("}\n")
	return sb.String()
}

// buildSkillExtractionPrompt constructs the text-mode extraction prompt.
func buildSkillExtractionPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert at analyzing professional documents and extracting discrete skills.\n")
	sb.WriteString("Extract every skill evidenced in the text below: languages, frameworks, tools, ")
	sb.WriteString("soft skills, domain knowledge, certifications, and methodologies.\n")
	sb.WriteString("Do not invent skills that are not supported by the text.\n\n")
	sb.WriteString(skillArrayInstructions())
	sb.WriteString("\nText:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// buildDocumentExtractionPrompt constructs the document-mode prompt. The
// document itself travels as a file reference next to the prompt, so the
// prompt only carries instructions.
func buildDocumentExtractionPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are an expert at analyzing CVs and resumes.\n")
	sb.WriteString("Read the attached document and extract every skill it evidences: languages, ")
	sb.WriteString("frameworks, tools, soft skills, domain knowledge, certifications, and methodologies.\n")
	sb.WriteString("Do not invent skills that are not supported by the document.\n\n")
	sb.WriteString(skillArrayInstructions())

	return sb.String()
}

// buildSkillGapPrompt constructs the gap-analysis prompt. Unlike
// extraction, this requests a single JSON object.
func buildSkillGapPrompt(currentSkills []string, targetRole string) string {
	var sb strings.Builder

	sb.WriteString("You are a career advisor analyzing skill gaps.\n\n")
	sb.WriteString(fmt.Sprintf("Target role: %s\n", targetRole))
	sb.WriteString(fmt.Sprintf("Current skills: %s\n\n", strings.Join(currentSkills, ", ")))
	sb.WriteString("Identify the skills the candidate is missing for the target role.\n")
	sb.WriteString("Return ONLY a JSON object, no markdown, no code blocks:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"gaps\": [{\"skill\": \"name\", \"importance\": \"critical|important|nice_to_have\", \"reason\": \"why it matters\"}],\n")
	sb.WriteString("  \"summary\": \"one paragraph assessment\"\n")
	sb.WriteString("}\n")

	return sb.String()
}

// buildRecommendationPrompt constructs the skill-recommendation prompt.
// targetRole may be empty, in which case recommendations are based on the
// current skill set alone.
func buildRecommendationPrompt(currentSkills []string, targetRole string) string {
	var sb strings.Builder

	sb.WriteString("You are a career advisor recommending skills to learn next.\n\n")
	sb.WriteString(fmt.Sprintf("Current skills: %s\n", strings.Join(currentSkills, ", ")))
	if targetRole != "" {
		sb.WriteString(fmt.Sprintf("Target role: %s\n", targetRole))
	}
	sb.WriteString("\nRecommend complementary skills that would most improve this profile.\n")
	sb.WriteString("Return ONLY a JSON object, no markdown, no code blocks:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"recommendations\": [{\"skill\": \"name\", \"reason\": \"why learn it\", \"priority\": \"high|medium|low\"}],\n")
	sb.WriteString("  \"summary\": \"one paragraph overview\"\n")
	sb.WriteString("}\n")

	return sb.String()
}
