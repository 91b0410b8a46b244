package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/geckopush"
	"github.com/jpalmerr/geckopush/config"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// newPushCmd pushes the configured widgets.
func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push widget data",
		Long: `Push the widgets described in a config file.

Every widget is pushed even if an earlier one fails. One line is printed
per widget; the command exits with status 1 if any push failed.

Use --widget (repeatable) to push a subset of the widgets.

Example:
  geckopush push -c dashboard.yaml
  geckopush push -c dashboard.yaml --widget 123-abc --widget 456-def
  geckopush push -c dashboard.yaml --json --log-level debug`,
		RunE: runPush,
	}

	cmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().StringArray("widget", nil, "only push the widget with this key (repeatable)")
	cmd.Flags().Bool("json", false, "print results as JSON lines")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

// pushLine is the --json output for one widget.
type pushLine struct {
	Widget     string `json:"widget"`
	Kind       string `json:"kind"`
	PushID     string `json:"push_id,omitempty"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	LatencyMs  int64  `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

func runPush(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	only, _ := cmd.Flags().GetStringArray("widget")
	if err := selectWidgets(cfg, only); err != nil {
		return err
	}

	logger.Info("config loaded",
		"widgets", len(cfg.Widgets),
		"api_key", geckopush.RedactKey(cfg.APIKey),
	)

	d, err := config.BuildDashboard(cfg, geckopush.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}
	defer d.Close()

	// cancel in-flight pushes on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, _ := d.PushAll(ctx)

	asJSON, _ := cmd.Flags().GetBool("json")
	if err := printResults(cmd.OutOrStdout(), results, asJSON); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pushes failed", failed, len(results))
	}
	return nil
}

// selectWidgets narrows cfg to the widgets named in keys, keeping file
// order. An empty keys list keeps everything.
func selectWidgets(cfg *config.Config, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	var selected []config.WidgetConfig
	for _, w := range cfg.Widgets {
		if want[w.Key] {
			selected = append(selected, w)
			delete(want, w.Key)
		}
	}
	for _, k := range keys {
		if want[k] {
			return fmt.Errorf("unknown widget %q (configured: %v)", k, cfg.Keys())
		}
	}

	cfg.Widgets = selected
	return nil
}

func printResults(w io.Writer, results []geckopush.PushResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, r := range results {
			line := pushLine{
				Widget:     r.WidgetKey,
				Kind:       r.Kind.String(),
				PushID:     r.ID,
				Success:    r.Success,
				StatusCode: r.StatusCode,
				LatencyMs:  r.Latency.Milliseconds(),
			}
			if r.Err != nil {
				line.Error = r.Err.Error()
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range results {
		if r.Success {
			fmt.Fprintf(w, "ok    %s (%s) %d %s\n", r.WidgetKey, r.Kind, r.StatusCode, r.Latency.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(w, "FAIL  %s (%s): %v\n", r.WidgetKey, r.Kind, r.Err)
	}
	return nil
}
