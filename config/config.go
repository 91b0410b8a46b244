// Package config provides YAML configuration parsing for geckopush.
//
// A configuration file describes one dashboard and the widgets on it, so
// that widgets can be pushed from the command line or a cron job without
// writing Go.
//
// Example configuration:
//
//	api_key: ${GECKOBOARD_API_KEY}
//	timeout: 5s
//
//	widgets:
//	  - type: funnel
//	    key: 123-abc
//	    funnel_type: reverse
//	    steps:
//	      - {value: 5, label: Step1}
//	      - {value: 3, label: Step2}
//
//	  - type: geckometer
//	    key: ${METER_KEY:-456-def}
//	    item: 42
//	    min: 0
//	    max: 100
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/jpalmerr/geckopush"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// APIKey is the Geckoboard API key. Required.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the push API base URL. Optional.
	// Supports environment variable substitution.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-push HTTP timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// MaxConcurrency is how many widgets are pushed at once. Defaults to 1.
	MaxConcurrency int `yaml:"max_concurrency"`

	// Widgets lists the widgets on the dashboard, in push order.
	Widgets []WidgetConfig `yaml:"widgets"`
}

// WidgetConfig is one entry of the widgets list.
//
// The type field selects which per-type fields are read from the same
// mapping:
//
//	- type: leaderboard
//	  key: 123-abc
//	  format: currency
//	  unit: USD
//	  items:
//	    - {label: Alice, value: 10, previous_rank: 2}
type WidgetConfig struct {
	// Type is the widget type, e.g. "funnel" or "line_chart".
	Type geckopush.Kind

	// Key is the widget key. Supports environment variable substitution.
	Key string

	// Spec holds the per-type fields. Its dynamic type matches Type.
	Spec WidgetSpec
}

// WidgetSpec is the per-type part of a [WidgetConfig].
//
// Implementations are [BarChartConfig], [BulletGraphConfig], [FunnelConfig],
// [GeckoMeterConfig], [HighChartsConfig], [LeaderboardConfig],
// [LineChartConfig] and [ListConfig].
type WidgetSpec interface {
	// build creates the widget on d and fills it with the configured data.
	build(d *geckopush.Dashboard, key string) (geckopush.Widget, error)
}

// UnmarshalYAML implements yaml.Unmarshaler for WidgetConfig.
func (w *WidgetConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: widget must be an object, got %v", node.Line, node.Kind)
	}

	var head struct {
		Type string `yaml:"type"`
		Key  string `yaml:"key"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	w.Type = geckopush.Kind(head.Type)
	w.Key = head.Key

	var spec WidgetSpec
	switch w.Type {
	case geckopush.KindBarChart:
		spec = &BarChartConfig{}
	case geckopush.KindBulletGraph:
		spec = &BulletGraphConfig{}
	case geckopush.KindFunnel:
		spec = &FunnelConfig{}
	case geckopush.KindGeckoMeter:
		spec = &GeckoMeterConfig{}
	case geckopush.KindHighCharts:
		spec = &HighChartsConfig{}
	case geckopush.KindLeaderboard:
		spec = &LeaderboardConfig{}
	case geckopush.KindLineChart:
		spec = &LineChartConfig{}
	case geckopush.KindList:
		spec = &ListConfig{}
	case "":
		return fmt.Errorf("line %d: widget type is required", node.Line)
	default:
		return fmt.Errorf("line %d: unknown widget type %q (expected one of %v)", node.Line, head.Type, geckopush.Kinds())
	}

	if err := node.Decode(spec); err != nil {
		return fmt.Errorf("line %d (%s): %w", node.Line, w.Type, err)
	}
	w.Spec = spec
	return nil
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in api_key, base_url and widget keys.
// The widget data itself is checked when the widgets are built; see
// [BuildDashboard].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	apiKey, err := expandEnvVars(c.APIKey)
	if err != nil {
		return fmt.Errorf("api_key: %w", err)
	}
	if apiKey == "" {
		return errors.New("api_key is required")
	}
	c.APIKey = apiKey

	if c.BaseURL != "" {
		expanded, err := expandEnvVars(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		c.BaseURL = expanded

		parsedURL, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("base_url scheme must be http or https, got %q", parsedURL.Scheme)
		}
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency cannot be negative, got %d", c.MaxConcurrency)
	}

	if len(c.Widgets) == 0 {
		return errors.New("at least one widget must be defined")
	}

	seen := make(map[string]int, len(c.Widgets))
	for i := range c.Widgets {
		w := &c.Widgets[i]

		if w.Key == "" {
			return fmt.Errorf("widgets[%d] (%s): key is required", i, w.Type)
		}
		expanded, err := expandEnvVars(w.Key)
		if err != nil {
			return fmt.Errorf("widgets[%d] (%s): key: %w", i, w.Type, err)
		}
		if expanded == "" {
			return fmt.Errorf("widgets[%d] (%s): key expanded to an empty string", i, w.Type)
		}
		w.Key = expanded

		if prev, exists := seen[w.Key]; exists {
			return fmt.Errorf("widgets[%d] (%s): duplicate key, first used by widgets[%d]", i, w.Key, prev)
		}
		seen[w.Key] = i
	}

	return nil
}

// Keys returns the widget keys in file order.
func (c *Config) Keys() []string {
	keys := make([]string, len(c.Widgets))
	for i, w := range c.Widgets {
		keys[i] = w.Key
	}
	return keys
}
