package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/types"
)

var (
	extractUserID   string
	extractCVPath   string
	extractGitHub   string
	extractLinkedIn string
	extractVerbose  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a CV file, GitHub account, or LinkedIn profile",
	Long: `Run one extraction pass and print the updated profile as JSON.
Exactly one of --cv, --github, or --linkedin must be given.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractUserID, "user", "", "User ID to merge skills into (required)")
	extractCmd.Flags().StringVar(&extractCVPath, "cv", "", "Path to a CV file")
	extractCmd.Flags().StringVar(&extractGitHub, "github", "", "GitHub username")
	extractCmd.Flags().StringVar(&extractLinkedIn, "linkedin", "", "LinkedIn profile URL")
	extractCmd.Flags().BoolVar(&extractVerbose, "verbose", false, "Print formatted extraction summaries")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractUserID == "" {
		return fmt.Errorf("--user is required")
	}
	sources := 0
	for _, v := range []string{extractCVPath, extractGitHub, extractLinkedIn} {
		if v != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of --cv, --github, or --linkedin must be given")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var printer *observability.Printer
	if extractVerbose {
		printer = observability.NewPrinter(os.Stdout)
		if !a.ai.Configured() {
			fmt.Println("No AI backend configured; results come from the deterministic mock extractor.")
		}
	}

	switch {
	case extractCVPath != "":
		data, err := os.ReadFile(extractCVPath)
		if err != nil {
			return fmt.Errorf("failed to read CV file: %w", err)
		}
		result, err := a.orch.ExtractFromCVFile(ctx, extractUserID, data,
			filepath.Base(extractCVPath), mimeTypeForFile(extractCVPath))
		if err != nil {
			return err
		}
		if printer != nil {
			printer.PrintExtractionResult(result.Result.Skills, "cv")
		}
		fmt.Printf("Extracted %d skills from %s\n", result.SkillsFound, extractCVPath)

	case extractGitHub != "":
		queued, err := a.orch.ExtractFromGitHub(extractUserID, extractGitHub)
		if err != nil {
			return err
		}
		if err := awaitJob(a, queued.JobID); err != nil {
			return err
		}

	case extractLinkedIn != "":
		queued, err := a.orch.ExtractFromLinkedIn(extractUserID, extractLinkedIn)
		if err != nil {
			return err
		}
		if err := awaitJob(a, queued.JobID); err != nil {
			return err
		}
	}

	profile, err := a.profiles.Get(ctx, extractUserID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if printer != nil {
		printer.PrintProfile(profile)
	}
	return printJSON(profile)
}

// awaitJob polls a queued job until it reaches a terminal state.
func awaitJob(a *app, jobID string) error {
	for {
		job, ok := a.orch.GetJobStatus(jobID)
		if !ok {
			return fmt.Errorf("job disappeared: %s", jobID)
		}
		if job.Terminal() {
			if job.Status == types.JobStatusFailed {
				return fmt.Errorf("extraction failed: %s", job.Error)
			}
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// mimeTypeForFile guesses the upload content type from the extension,
// defaulting to PDF like the document extraction path.
func mimeTypeForFile(path string) string {
	switch filepath.Ext(path) {
	case ".txt", ".md":
		return "text/plain"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
