package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recommendUserID string
	recommendRole   string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend skills to learn next",
	Long:  `Suggest skills a user should learn for a target role, based on their merged profile, and print them as JSON.`,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendUserID, "user", "", "User ID whose profile to use (required)")
	recommendCmd.Flags().StringVar(&recommendRole, "role", "", "Target role (required)")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	if recommendUserID == "" || recommendRole == "" {
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

	skills, err := profileSkillNames(ctx, a.profiles, recommendUserID)
	if err != nil {
		return err
	}

	recs := a.ai.RecommendSkills(ctx, skills, recommendRole)
	return printJSON(recs)
}
