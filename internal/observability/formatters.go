// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractionResult outputs a human-readable summary of one extraction
// pass: model, candidate count, and the highest-confidence candidates.
func (p *Printer) PrintExtractionResult(result *types.ExtractionResult, source string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:  %s\n", source))
	sb.WriteString(fmt.Sprintf("Model:   %s\n", result.Metadata.Model))
	sb.WriteString(fmt.Sprintf("Skills:  %d\n", len(result.Skills)))

	if len(result.Skills) > 0 {
		sb.WriteString("\n")
		count := min(len(result.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			cand := result.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s, %.2f)\n", cand.Name, cand.Category, cand.Confidence))
		}
		if len(result.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Skills)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a summary of a merged profile: counts plus the most
// frequently seen skills with their source tags.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:     %s\n", profile.UserID))
	sb.WriteString(fmt.Sprintf("Skills:   %d\n", profile.SkillCount))
	sb.WriteString(fmt.Sprintf("Sources:  %d\n", profile.SourcesConnected))

	if len(profile.Skills) > 0 {
		sb.WriteString("\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := profile.Skills[i]
			sources := strings.Join(skill.SourceList(), ", ")
			sb.WriteString(fmt.Sprintf("  • %s ×%d", skill.Name, skill.Occurrences))
			if sources != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", sources))
			}
			sb.WriteString("\n")
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("SKILL PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs the state of a queued job.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:     %s\n", job.ID))
	sb.WriteString(fmt.Sprintf("Type:    %s\n", job.Type))
	sb.WriteString(fmt.Sprintf("Status:  %s", job.Status))
	if job.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError:   %s", job.Error))
	}

	p.printBox("EXTRACTION JOB", sb.String())
}
