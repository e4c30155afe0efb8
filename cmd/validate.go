/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/manifestneat/internal/workflow"
	"github.com/fulmenhq/manifestneat/pkg/config"
	"github.com/fulmenhq/manifestneat/pkg/manifest"
	"github.com/spf13/cobra"
)

var validatePatterns []string

var validateCmd = &cobra.Command{
	Use:   "validate [target]",
	Short: "Batch-validate every manifest under the target tree",
	Long: `Validate all manifests regardless of update status: JSON syntax, required
fields, integration_type enum, and key ordering. Exits non-zero if any
manifest fails, so it is suitable for automated checks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateBatch,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringSliceVar(&validatePatterns, "pattern", nil, "Manifest glob patterns relative to target (doublestar supported)")
}

func runValidateBatch(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return fmt.Errorf("target does not exist: %s", target)
	}

	cfg, err := config.LoadProjectConfig()
	if err != nil {
		return err
	}
	patterns := cfg.Scan.Patterns
	if len(validatePatterns) > 0 {
		patterns = validatePatterns
	}

	batch, err := manifest.ValidateTree(target, patterns)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if batch.Total == 0 {
		fmt.Fprintln(out, "No manifest files found")
		return nil
	}

	fmt.Fprintf(out, "Validating %d manifest files...\n", batch.Total)
	workflow.WriteBatchReport(out, batch)

	if !batch.AllValid() {
		return fmt.Errorf("%d/%d manifests valid: %w", batch.Valid, batch.Total, errValidationFailed)
	}
	return nil
}
