// Package config collects every tuned constant in one place. The thresholds
// are empirically chosen; treat them as knobs, not derived values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML overlays can use values like "800ms".
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a Go duration string or a bare number of milliseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var ms int64
	if err := node.Decode(&ms); err == nil {
		d.Duration = time.Duration(ms) * time.Millisecond
		return nil
	}
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("invalid duration value on line %d", node.Line)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration in Go's string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func millis(n int) Duration  { return Duration{time.Duration(n) * time.Millisecond} }
func seconds(n int) Duration { return Duration{time.Duration(n) * time.Second} }

// Config holds all tunable thresholds, intervals, and settle delays.
type Config struct {
	// Minimum fuzzy score to accept a window or native-element match.
	WindowMatchThreshold int `yaml:"window_match_threshold"`
	// Minimum fuzzy score for the accessibility tier's descendant scan.
	TreeScanThreshold int `yaml:"tree_scan_threshold"`
	// Minimum confidence-weighted fuzzy score for an OCR detection.
	// Lower than the others because recognition confidence already
	// discounts unreliable reads.
	OCRMatchThreshold float64 `yaml:"ocr_match_threshold"`

	// WindowPollInterval is the delay between window-enumeration passes.
	WindowPollInterval Duration `yaml:"window_poll_interval"`
	// SelectorWaitTimeout bounds the visibility wait per query candidate.
	SelectorWaitTimeout Duration `yaml:"selector_wait_timeout"`
	// SelectorPollInterval is the visibility re-check cadence.
	SelectorPollInterval Duration `yaml:"selector_poll_interval"`
	// VerifyPollInterval is the capture-and-recognize cadence of verify.
	VerifyPollInterval Duration `yaml:"verify_poll_interval"`

	// FocusSettle is the unobservable pause after focusing a window.
	FocusSettle Duration `yaml:"focus_settle"`
	// ClickSettle is the unobservable pause after a pointer click.
	ClickSettle Duration `yaml:"click_settle"`
	// TypeSettle is the unobservable pause after text entry.
	TypeSettle Duration `yaml:"type_settle"`

	// DebugPortMin/Max bound the linear probe for a debug endpoint.
	DebugPortMin int `yaml:"debug_port_min"`
	DebugPortMax int `yaml:"debug_port_max"`
	// DebugDialTimeout bounds each endpoint liveness check.
	DebugDialTimeout Duration `yaml:"debug_dial_timeout"`

	// CaptureMaxWidth/Height clamp window capture to the virtual screen.
	CaptureMaxWidth  int `yaml:"capture_max_width"`
	CaptureMaxHeight int `yaml:"capture_max_height"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		WindowMatchThreshold: 40,
		TreeScanThreshold:    45,
		OCRMatchThreshold:    20,

		WindowPollInterval:   millis(800),
		SelectorWaitTimeout:  seconds(3),
		SelectorPollInterval: millis(100),
		VerifyPollInterval:   millis(700),

		FocusSettle: millis(300),
		ClickSettle: millis(300),
		TypeSettle:  millis(200),

		DebugPortMin:     9222,
		DebugPortMax:     9250,
		DebugDialTimeout: millis(500),

		CaptureMaxWidth:  3840,
		CaptureMaxHeight: 2160,
	}
}

// Load returns the default config overlaid with values from the YAML file at
// path. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
