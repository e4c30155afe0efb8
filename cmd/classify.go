/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/manifestneat/internal/workflow"
	"github.com/fulmenhq/manifestneat/pkg/classify"
	"github.com/fulmenhq/manifestneat/pkg/config"
	"github.com/fulmenhq/manifestneat/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	classifyReprompt bool
	classifyNoCommit bool
	classifyPatterns []string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [target]",
	Short: "Interactively classify integrations missing integration_type",
	Long: `Scan the target tree for manifests with config_flow: true and no
integration_type, prompt for a classification per integration, rewrite each
accepted manifest in canonical key order, validate it, and commit the change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyReprompt, "reprompt", false, "Re-prompt on unrecognized input instead of treating it as skip")
	classifyCmd.Flags().BoolVar(&classifyNoCommit, "no-commit", false, "Update manifests without recording commits")
	classifyCmd.Flags().StringSliceVar(&classifyPatterns, "pattern", nil, "Manifest glob patterns relative to target (doublestar supported)")
}

func runClassify(cmd *cobra.Command, args []string) error {
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
	if len(classifyPatterns) > 0 {
		patterns = classifyPatterns
	}
	reprompt := cfg.Prompt.Reprompt
	if cmd.Flags().Changed("reprompt") {
		reprompt = classifyReprompt
	}
	commitEnabled := cfg.Commit.Enabled && !classifyNoCommit

	out := cmd.OutOrStdout()
	runner := &workflow.Runner{
		Root:          target,
		Patterns:      patterns,
		Prompter:      classify.NewPrompter(cmd.InOrStdin(), out, reprompt),
		Out:           out,
		CommitEnabled: commitEnabled,
	}

	summary, err := runner.Run()
	if err != nil {
		return err
	}

	logger.Info("classification run complete",
		logger.Int("found", summary.Found),
		logger.Int("updated", summary.Updated),
		logger.Int("skipped", summary.Skipped),
		logger.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		return fmt.Errorf("%d manifest(s) failed: %w", summary.Failed, errValidationFailed)
	}
	if summary.Updated > 0 && summary.ValidationRan && !summary.ValidationPassed {
		return fmt.Errorf("full validation failed (%d/%d valid): %w", summary.ValidManifests, summary.TotalManifests, errValidationFailed)
	}
	return nil
}
