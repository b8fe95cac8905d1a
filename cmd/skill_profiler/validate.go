package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/schemas"
)

var validateSchemaName string

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate an extraction artifact against its JSON schema",
	Long: `Validate a JSON file against one of the bundled schemas:
  candidates  an array of skill candidates (one extraction pass)
  profile     a merged per-user skill profile`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchemaName, "schema", "candidates", "Schema to validate against: candidates or profile")
	rootCmd.AddCommand(validateCmd)
}

var schemaFiles = map[string]string{
	"candidates": "schemas/skill_candidates.schema.json",
	"profile":    "schemas/profile.schema.json",
}

func runValidate(_ *cobra.Command, args []string) error {
	relative, ok := schemaFiles[validateSchemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q (want candidates or profile)", validateSchemaName)
	}

	schemaPath := schemas.ResolveSchemaPath(relative)
	if schemaPath == "" {
		return fmt.Errorf("schema file not found: %s", relative)
	}

	if err := schemas.ValidateJSON(schemaPath, args[0]); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			fmt.Printf("Validation failed with %d error(s):\n", len(ve.Errors))
			for _, fe := range ve.Errors {
				fmt.Printf("  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s does not conform to the %s schema", args[0], validateSchemaName)
		}
		return err
	}

	fmt.Printf("%s is valid against the %s schema\n", args[0], validateSchemaName)
	return nil
}
