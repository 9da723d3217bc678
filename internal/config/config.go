// Package config assembles the settings for one picart run.
//
// Values are layered, lowest precedence first:
//  1. built-in defaults
//  2. an optional config file (any format viper reads: yaml, json, toml)
//  3. PICART_* environment variables, e.g. PICART_SCALE=0.5
//  4. command-line flags the user actually set
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ironsheep/picart/internal/apperr"
	"github.com/ironsheep/picart/internal/imaging"
	"github.com/ironsheep/picart/internal/logger"
)

// EnvPrefix is prepended to every key to form its environment variable.
const EnvPrefix = "PICART"

// Keys, shared by the config file, the environment and flag overrides.
const (
	KeyInput      = "input"
	KeyOutput     = "output"
	KeyScale      = "scale"
	KeyNoFit      = "no_fit"
	KeyResizer    = "resizer"
	KeyBackground = "background"
	KeyTermWidth  = "term_width"
	KeyTermHeight = "term_height"
	KeyLogLevel   = "log_level"
)

// Config holds the settings for one run.
type Config struct {
	// Input is the image path; empty reads standard input.
	Input string

	// Output is the text destination; empty writes standard output.
	Output string

	// Scale interpolates between the image's own size and the terminal size.
	Scale float64

	// NoFit disables terminal fitting: one character per source pixel.
	NoFit bool

	// Resizer names the resampler used when fitting.
	Resizer string

	// Background, when set, is a hex color transparent pixels are
	// composited onto before luminance is taken.
	Background string

	// TermWidth and TermHeight override the probed terminal size when > 0.
	TermWidth  int
	TermHeight int

	// LogLevel is a zap level name.
	LogLevel string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scale:    1.0,
		Resizer:  imaging.ResizerImaging,
		LogLevel: logger.DefaultLevel,
	}
}

// Load resolves the configuration from defaults, the config file at path
// (skipped when empty), the environment and overrides. Override keys are the
// Key* constants; values may be strings and are converted as needed.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyInput, def.Input)
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeyScale, def.Scale)
	v.SetDefault(KeyNoFit, def.NoFit)
	v.SetDefault(KeyResizer, def.Resizer)
	v.SetDefault(KeyBackground, def.Background)
	v.SetDefault(KeyTermWidth, def.TermWidth)
	v.SetDefault(KeyTermHeight, def.TermHeight)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			var unsupportedErr viper.UnsupportedConfigError
			if errors.As(err, &parseErr) || errors.As(err, &unsupportedErr) {
				return nil, fmt.Errorf("failed to parse config %s: %w: %w", path, apperr.ErrInvalidArgument, err)
			}
			return nil, fmt.Errorf("failed to read config %s: %w: %w", path, apperr.ErrIO, err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg := &Config{
		Input:      v.GetString(KeyInput),
		Output:     v.GetString(KeyOutput),
		Resizer:    v.GetString(KeyResizer),
		Background: v.GetString(KeyBackground),
		LogLevel:   v.GetString(KeyLogLevel),
	}

	// viper's typed getters turn unparseable values into zero values, so the
	// non-string keys are converted strictly.
	var err error
	if cfg.Scale, err = typed(v, KeyScale, cast.ToFloat64E); err != nil {
		return nil, err
	}
	if cfg.NoFit, err = typed(v, KeyNoFit, cast.ToBoolE); err != nil {
		return nil, err
	}
	if cfg.TermWidth, err = typed(v, KeyTermWidth, cast.ToIntE); err != nil {
		return nil, err
	}
	if cfg.TermHeight, err = typed(v, KeyTermHeight, cast.ToIntE); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// typed converts the resolved value of key with conv, reporting values that
// do not parse as ErrInvalidArgument.
func typed[T any](v *viper.Viper, key string, conv func(any) (T, error)) (T, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	val, err := conv(raw)
	if err != nil {
		return val, fmt.Errorf("invalid %s %q: %w: %w", key, fmt.Sprint(v.Get(key)), apperr.ErrInvalidArgument, err)
	}
	return val, nil
}

// Validate checks the values that can be checked without touching the input.
// A negative scale is rejected rather than clamped.
func (c *Config) Validate() error {
	if math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) || c.Scale < 0 {
		return fmt.Errorf("scale %v must be a finite value >= 0: %w", c.Scale, apperr.ErrInvalidArgument)
	}
	if c.TermWidth < 0 || c.TermHeight < 0 {
		return fmt.Errorf("terminal size %dx%d must not be negative: %w", c.TermWidth, c.TermHeight, apperr.ErrInvalidArgument)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := imaging.NewResizer(c.Resizer); err != nil {
		return err
	}
	if c.Background != "" {
		if _, err := imaging.ParseBackground(c.Background); err != nil {
			return err
		}
	}
	return nil
}
