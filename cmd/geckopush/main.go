// Package main is the entry point for the geckopush CLI.
//
// geckopush can be used either as a library or as a standalone binary with
// YAML configuration. This CLI provides the standalone binary approach,
// suited to cron jobs and CI pipelines.
//
// Usage:
//
//	geckopush push -c dashboard.yaml       # Push every widget
//	geckopush push -c dashboard.yaml --widget 123-abc
//	geckopush validate -c dashboard.yaml   # Check config without pushing
//	geckopush version                      # Show version info
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultEnvFile = ".env"

// newRootCmd builds the command tree. It is a function so tests get fresh
// flag state on every run.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geckopush",
		Short: "Push widget data to Geckoboard",
		Long: `geckopush pushes data to Geckoboard custom widgets.

Widgets and their data are described in a YAML file; each push sends the
data to https://push.geckoboard.com/v1/send/<widget key>.

Quick start:
  1. Create a config file (dashboard.yaml)
  2. Run: geckopush validate -c dashboard.yaml
  3. Run: geckopush push -c dashboard.yaml

Example config:
  api_key: ${GECKOBOARD_API_KEY}
  widgets:
    - type: funnel
      key: 123-abc
      steps:
        - {value: 5, label: Step1}`,
		SilenceUsage:      true,
		PersistentPreRunE: loadEnvFile,
		// No Run/RunE means this just shows help when called without subcommands
	}

	rootCmd.PersistentFlags().String("env-file", defaultEnvFile,
		"dotenv file loaded before the config is read (skipped if the default is absent)")

	rootCmd.AddCommand(newPushCmd(), newValidateCmd(), newVersionCmd())
	return rootCmd
}

// loadEnvFile loads variables from the --env-file dotenv file. Variables
// already set in the environment win. A missing default file is ignored; a
// missing file that was asked for explicitly is an error.
func loadEnvFile(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of this geckopush binary.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "geckopush %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}
