package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/store"
)

var (
	gapsUserID string
	gapsRole   string
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Analyze skill gaps against a target role",
	Long:  `Compare a user's merged skill profile against a target role and print the gap analysis as JSON.`,
	RunE:  runGaps,
}

func init() {
	gapsCmd.Flags().StringVar(&gapsUserID, "user", "", "User ID whose profile to analyze (required)")
	gapsCmd.Flags().StringVar(&gapsRole, "role", "", "Target role, e.g. \"Senior Data Engineer\" (required)")
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(_ *cobra.Command, _ []string) error {
	if gapsUserID == "" || gapsRole == "" {
		return fmt.Errorf("--user and --role are required")
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

	skills, err := profileSkillNames(ctx, a.profiles, gapsUserID)
	if err != nil {
		return err
	}

	analysis := a.ai.AnalyzeSkillGaps(ctx, skills, gapsRole)
	return printJSON(analysis)
}

// profileSkillNames loads the user's profile and returns its skill names.
func profileSkillNames(ctx context.Context, profiles store.ProfileStore, userID string) ([]string, error) {
	profile, err := profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", userID, err)
	}

	names := make([]string, 0, len(profile.Skills))
	for i := range profile.Skills {
		names = append(names, profile.Skills[i].Name)
	}
	return names, nil
}
