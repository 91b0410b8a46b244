package main

import (
	"encoding/json"
	"fmt"

	"github.com/jpalmerr/geckopush"
	"github.com/jpalmerr/geckopush/config"
	"github.com/spf13/cobra"
)

// newValidateCmd validates a config file without pushing anything.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file",
		Long: `Validate a geckopush configuration file without pushing.

This command parses the YAML, expands environment variables, builds every
widget and assembles its payload, so data errors (too many funnel steps, a
partly filled bullet graph, ...) are caught before anything is sent. It's
useful for CI/CD pipelines or pre-deployment checks.

With --print, each assembled payload is written as indented JSON with the
API key redacted.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  geckopush validate -c dashboard.yaml
  geckopush validate -c dashboard.yaml --print`,
		RunE: runValidate,
	}

	cmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().Bool("print", false, "print each assembled payload")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	envelopes, err := config.Validate(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  API key: %s\n", geckopush.RedactKey(cfg.APIKey))
	if cfg.BaseURL != "" {
		fmt.Fprintf(out, "  Base URL: %s\n", cfg.BaseURL)
	}
	fmt.Fprintf(out, "  Widgets: %d\n", len(envelopes))
	for _, env := range envelopes {
		fmt.Fprintf(out, "    - %s (%s)\n", env.Key, env.Kind)
	}

	printPayloads, _ := cmd.Flags().GetBool("print")
	if !printPayloads {
		return nil
	}

	for _, env := range envelopes {
		payload := env.Payload
		payload.APIKey = geckopush.RedactKey(payload.APIKey)

		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("%s: %w", env.Key, err)
		}
		fmt.Fprintf(out, "\n# %s (%s)\n%s\n", env.Key, env.Kind, b)
	}
	return nil
}
