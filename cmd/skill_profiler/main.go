// Package main provides the entry point for the skill profiler CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_profiler",
	Short: "Skill profile extraction service",
	Long:  "Skill profiler extracts skills from CVs, GitHub accounts, and LinkedIn profiles via AI, merging them into a per-user skill profile served over REST.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
