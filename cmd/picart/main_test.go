package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/picart/internal/apperr"
)

// createTestImage writes a solid-color PNG into dir and returns its path.
func createTestImage(t *testing.T, dir string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin []byte, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, bytes.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, nil, "--version")
	if code != apperr.ExitOK {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.HasPrefix(out, "picart dev") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestRun_Help(t *testing.T) {
	code, out, errOut := runCLI(t, nil, "--help")
	if code != apperr.ExitOK {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if out != "" {
		t.Errorf("help should not write to stdout, got %q", out)
	}
	if !strings.Contains(errOut, "--scale") && !strings.Contains(errOut, "-scale") {
		t.Errorf("help output should list the scale flag: %q", errOut)
	}
}

func TestRun_ConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := createTestImage(t, dir, 200, 100, color.White)
	output := filepath.Join(dir, "art.txt")

	code, stdout, stderr := runCLI(t, nil,
		"--input", input, "--output", output,
		"--scale", "0", "--term-width", "80", "--term-height", "40")
	if code != apperr.ExitOK {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when --output is set, got %d bytes", len(stdout))
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 40 || len(lines[0]) != 80 {
		t.Errorf("dimensions: got %dx%d, want 80x40", len(lines[0]), len(lines))
	}
}

func TestRun_Stdin(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	code, out, stderr := runCLI(t, in.Bytes(), "--no-fit")
	if code != apperr.ExitOK {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}
	if out != "!!!\n!!!\n" {
		t.Errorf("got %q, want %q", out, "!!!\n!!!\n")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	input := createTestImage(t, dir, 10, 10, color.White)
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"negative scale", []string{"--input", input, "--scale", "-1"}, apperr.ExitInvalidArgument},
		{"unknown resizer", []string{"--input", input, "--resizer", "nearest"}, apperr.ExitInvalidArgument},
		{"unknown flag", []string{"--colour"}, apperr.ExitInvalidArgument},
		{"positional argument", []string{input}, apperr.ExitInvalidArgument},
		{"decode failure", []string{"--input", garbage, "--no-fit"}, apperr.ExitDecode},
		{"missing input", []string{"--input", filepath.Join(dir, "missing.png")}, apperr.ExitIO},
		{"missing config", []string{"--config", filepath.Join(dir, "missing.yaml")}, apperr.ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, nil, tt.args...)
			if code != tt.want {
				t.Errorf("exit code: got %d, want %d", code, tt.want)
			}
			if out != "" {
				t.Errorf("expected no output on failure, got %q", out)
			}
		})
	}
}

func TestParseFlags_OnlySetFlagsOverride(t *testing.T) {
	var stderr bytes.Buffer
	cli, err := parseFlags([]string{"--scale", "0.5", "--term-width", "100", "--config", "x.yaml"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	if cli.configFile != "x.yaml" {
		t.Errorf("configFile: got %q, want x.yaml", cli.configFile)
	}
	if len(cli.overrides) != 2 {
		t.Errorf("overrides: got %v, want scale and term_width only", cli.overrides)
	}
	if cli.overrides["scale"] != "0.5" {
		t.Errorf("scale override: got %v, want 0.5", cli.overrides["scale"])
	}
	if cli.overrides["term_width"] != "100" {
		t.Errorf("term_width override: got %v, want 100", cli.overrides["term_width"])
	}
}
