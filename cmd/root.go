/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/fulmenhq/manifestneat/pkg/buildinfo"
	"github.com/fulmenhq/manifestneat/pkg/exitcode"
	"github.com/fulmenhq/manifestneat/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifestneat",
		Short: "Manage integration_type in integration manifests",
		Long: `Manifestneat finds integration manifests that declare config_flow: true but
lack an integration_type, asks the operator to classify each one, rewrites the
manifest with canonical key ordering, validates it, and records each change as
an individual commit.

Examples:
   manifestneat classify            # Interactive classification workflow
   manifestneat validate            # Batch-validate every manifest
   manifestneat version             # Show version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("manifestneat {{.Version}}\n")

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// errValidationFailed marks runs that completed but found invalid or failed
// manifests, so Execute can exit with the validation code.
var errValidationFailed = errors.New("validation failed")

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, errValidationFailed) {
		os.Exit(exitcode.ValidationError)
	}
	logger.Error("Command execution failed", logger.Err(err))
	os.Exit(exitcode.GeneralError)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "manifestneat",
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
