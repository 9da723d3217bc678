package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/picart/internal/apperr"
)

// writeConfigFile writes content to a file named name in a temp dir.
func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("got %+v, want %+v", *cfg, *want)
	}
	if cfg.Scale != 1.0 {
		t.Errorf("Scale: got %v, want 1.0", cfg.Scale)
	}
	if cfg.Resizer != "imaging" {
		t.Errorf("Resizer: got %q, want imaging", cfg.Resizer)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PICART_SCALE", "0.25")
	t.Setenv("PICART_RESIZER", "bild")
	t.Setenv("PICART_TERM_WIDTH", "132")
	t.Setenv("PICART_NO_FIT", "true")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scale != 0.25 {
		t.Errorf("Scale: got %v, want 0.25", cfg.Scale)
	}
	if cfg.Resizer != "bild" {
		t.Errorf("Resizer: got %q, want bild", cfg.Resizer)
	}
	if cfg.TermWidth != 132 {
		t.Errorf("TermWidth: got %d, want 132", cfg.TermWidth)
	}
	if !cfg.NoFit {
		t.Error("NoFit: got false, want true")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, "picart.yaml", `
scale: 0.5
background: "#ffffff"
term_width: 100
term_height: 30
log_level: debug
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scale != 0.5 {
		t.Errorf("Scale: got %v, want 0.5", cfg.Scale)
	}
	if cfg.Background != "#ffffff" {
		t.Errorf("Background: got %q, want #ffffff", cfg.Background)
	}
	if cfg.TermWidth != 100 || cfg.TermHeight != 30 {
		t.Errorf("terminal: got %dx%d, want 100x30", cfg.TermWidth, cfg.TermHeight)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, "picart.json", `{"scale": 0.5, "resizer": "bild", "output": "from-file.txt"}`)
	t.Setenv("PICART_SCALE", "0.75")

	cfg, err := Load(path, map[string]any{KeyOutput: "from-flag.txt"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scale != 0.75 {
		t.Errorf("env should beat file: Scale got %v, want 0.75", cfg.Scale)
	}
	if cfg.Resizer != "bild" {
		t.Errorf("file should beat default: Resizer got %q, want bild", cfg.Resizer)
	}
	if cfg.Output != "from-flag.txt" {
		t.Errorf("flag should beat file: Output got %q, want from-flag.txt", cfg.Output)
	}

	cfg, err = Load(path, map[string]any{KeyScale: "0.1"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scale != 0.1 {
		t.Errorf("flag should beat env: Scale got %v, want 0.1", cfg.Scale)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if !errors.Is(err, apperr.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "picart.json", `{"scale": `)

	_, err := Load(path, nil)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"negative scale", map[string]any{KeyScale: "-0.5"}},
		{"negative terminal width", map[string]any{KeyTermWidth: "-1"}},
		{"unknown resizer", map[string]any{KeyResizer: "bicubic"}},
		{"bad background", map[string]any{KeyBackground: "#zzzzzz"}},
		{"bad log level", map[string]any{KeyLogLevel: "chatty"}},
		{"unparseable scale", map[string]any{KeyScale: "half"}},
		{"unparseable terminal height", map[string]any{KeyTermHeight: "tall"}},
		{"unparseable no-fit", map[string]any{KeyNoFit: "perhaps"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", tt.overrides)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestLoad_UnparseableEnvironment(t *testing.T) {
	tests := []struct {
		env, value string
	}{
		{"PICART_SCALE", "abc"},
		{"PICART_TERM_WIDTH", "wide"},
		{"PICART_TERM_HEIGHT", "12.5"},
		{"PICART_NO_FIT", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			cfg, err := Load("", nil)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Errorf("%s=%s: expected ErrInvalidArgument, got cfg=%+v err=%v", tt.env, tt.value, cfg, err)
			}
		})
	}
}

func TestLoad_UnparseableFileValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"scale", "scale: lots\n"},
		{"term_width", "term_width: wide\n"},
		{"no_fit", "no_fit: sometimes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, "picart.yaml", tt.content)

			cfg, err := Load(path, nil)
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got cfg=%+v err=%v", cfg, err)
			}
		})
	}
}

func TestLoad_TypedValuesFromStrings(t *testing.T) {
	t.Setenv("PICART_TERM_HEIGHT", " 30 ")

	cfg, err := Load("", map[string]any{KeyScale: "0.5", KeyNoFit: "true", KeyTermWidth: "100"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scale != 0.5 || !cfg.NoFit || cfg.TermWidth != 100 || cfg.TermHeight != 30 {
		t.Errorf("got %+v, want scale 0.5, no-fit, 100x30", *cfg)
	}
}

func TestValidate_ScaleAboveOneAccepted(t *testing.T) {
	cfg := Default()
	cfg.Scale = 3
	if err := cfg.Validate(); err != nil {
		t.Errorf("scale above one should be accepted, got %v", err)
	}
}
