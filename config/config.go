// Package config loads run settings from YAML, the environment and
// command line overrides, in that order of precedence (lowest first).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/brensch/snakesaver/topology"
)

type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Seed     int64          `yaml:"seed"`
	MaxSteps int            `yaml:"max_steps"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type BoardConfig struct {
	Topology           string     `yaml:"topology"`
	Dimensions         Dimensions `yaml:"dimensions"`
	InitialSnakeLength int        `yaml:"initial_snake_length"`
}

type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PlaybackConfig struct {
	Enabled    bool          `yaml:"enabled"`
	FrameDelay time.Duration `yaml:"frame_delay"`
	Colour     bool          `yaml:"colour"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	// Dir receives one parquet file per run. Empty disables export.
	Dir string `yaml:"dir"`
}

type MetricsConfig struct {
	// File is a Prometheus textfile written after the run. Empty disables it.
	File string `yaml:"file"`
}

// Default is a 10x10 grid with a three segment snake and live playback.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Topology:           topology.KindRect,
			Dimensions:         Dimensions{Width: 10, Height: 10},
			InitialSnakeLength: 3,
		},
		Playback: PlaybackConfig{
			Enabled:    true,
			FrameDelay: 100 * time.Millisecond,
			Colour:     true,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// envKeys maps environment variables onto dotted config keys.
var envKeys = map[string]string{
	"SNAKESAVER_TOPOLOGY":       "board.topology",
	"SNAKESAVER_WIDTH":          "board.dimensions.width",
	"SNAKESAVER_HEIGHT":         "board.dimensions.height",
	"SNAKESAVER_SNAKE_LENGTH":   "board.initial_snake_length",
	"SNAKESAVER_SEED":           "seed",
	"SNAKESAVER_MAX_STEPS":      "max_steps",
	"SNAKESAVER_FRAME_DELAY":    "playback.frame_delay",
	"SNAKESAVER_LOG_LEVEL":      "log.level",
	"SNAKESAVER_LOG_FORMAT":     "log.format",
	"SNAKESAVER_EXPORT_DIR":     "export.dir",
	"SNAKESAVER_METRICS_FILE":   "metrics.file",
	"SNAKESAVER_PLAYBACK":       "playback.enabled",
	"SNAKESAVER_PLAYBACK_COLOR": "playback.colour",
}

// Load builds a Config from defaults, the YAML file at path (optional),
// SNAKESAVER_* environment variables and finally key=value overrides.
func Load(path string, overrides []string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decodeYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Apply(envOverrides(os.LookupEnv)); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Apply(overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML onto the defaults without touching the environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decodeYAML(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func envOverrides(lookup func(string) (string, bool)) []string {
	var out []string
	for env, key := range envKeys {
		if v, ok := lookup(env); ok && v != "" {
			out = append(out, key+"="+v)
		}
	}
	return out
}

// Apply sets dotted keys such as "board.dimensions.width=12". Values are
// weakly typed, so "true", "42" and "250ms" decode into their fields.
func (c *Config) Apply(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	tree := map[string]any{}
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("override %q: want key=value", o)
		}
		node := tree
		parts := strings.Split(key, ".")
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = strings.TrimSpace(value)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

// Cells is the number of cells the configured topology produces.
func (c Config) Cells() int {
	return topology.CellCount(c.Board.Topology, c.Board.Dimensions.Width, c.Board.Dimensions.Height)
}

func (c Config) Validate() error {
	var errs []error

	known := false
	for _, k := range topology.Kinds {
		if c.Board.Topology == k {
			known = true
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("board.topology %q: want one of %s", c.Board.Topology, strings.Join(topology.Kinds, ", ")))
	}

	d := c.Board.Dimensions
	if d.Width <= 0 || (c.Board.Topology != topology.KindRing && d.Height <= 0) {
		errs = append(errs, fmt.Errorf("board.dimensions %dx%d: must be positive", d.Width, d.Height))
	}
	if c.Board.InitialSnakeLength < 1 {
		errs = append(errs, fmt.Errorf("board.initial_snake_length %d: must be at least 1", c.Board.InitialSnakeLength))
	} else if known && c.Board.InitialSnakeLength+1 >= c.Cells() {
		// head, tail and at least one free cell for food
		errs = append(errs, fmt.Errorf("board.initial_snake_length %d: too long for %d cells", c.Board.InitialSnakeLength, c.Cells()))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps %d: must not be negative", c.MaxSteps))
	}
	if c.Playback.FrameDelay < 0 {
		errs = append(errs, fmt.Errorf("playback.frame_delay %s: must not be negative", c.Playback.FrameDelay))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q: %w", c.Log.Level, err))
	}
	switch c.Log.Format {
	case "text", "json", "pretty":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text, json or pretty", c.Log.Format))
	}

	return errors.Join(errs...)
}
