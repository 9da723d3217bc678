package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/picart/internal/config"
)

const (
	inputUsage      = "Input image file. Reads standard input when omitted."
	outputUsage     = "Output text file. Writes standard output when omitted."
	scaleUsage      = "Fit percentage: 0 shrinks the longer side onto the terminal, 1 keeps the image size. Values above 1 enlarge."
	noFitUsage      = "Do not fit to the terminal; emit one character per source pixel."
	resizerUsage    = "Resampler used when fitting: \"imaging\" or \"bild\"."
	backgroundUsage = "Hex color (e.g. #FFFFFF) to composite transparent pixels onto."
	termWidthUsage  = "Terminal width in columns. Probed when 0."
	termHeightUsage = "Terminal height in rows. Probed when 0."
	configUsage     = "Config file (yaml, json or toml)."
	logLevelUsage   = "Log level: debug, info, warn or error."
	versionUsage    = "Print version information and exit."
)

// cliArgs holds the parsed command line. Only flags the user set end up in
// overrides, so config files and the environment are not masked by flag
// defaults.
type cliArgs struct {
	configFile string
	version    bool
	overrides  map[string]any
}

// parseFlags parses args. flag.ErrHelp is returned for -h/--help.
func parseFlags(args []string, stderr io.Writer) (cliArgs, error) {
	fs := flag.NewFlagSet("picart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "picart - convert an image to ASCII art")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: picart [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Every option except --config and --version can also be set with a")
		fmt.Fprintln(stderr, "PICART_ environment variable, e.g. PICART_SCALE=0.5 or PICART_LOG_LEVEL=debug.")
	}

	def := config.Default()
	var a cliArgs
	fs.String("input", def.Input, inputUsage)
	fs.String("output", def.Output, outputUsage)
	fs.Float64("scale", def.Scale, scaleUsage)
	fs.Bool("no-fit", def.NoFit, noFitUsage)
	fs.String("resizer", def.Resizer, resizerUsage)
	fs.String("background", def.Background, backgroundUsage)
	fs.Int("term-width", def.TermWidth, termWidthUsage)
	fs.Int("term-height", def.TermHeight, termHeightUsage)
	fs.String("log-level", def.LogLevel, logLevelUsage)
	fs.StringVar(&a.configFile, "config", "", configUsage)
	fs.BoolVar(&a.version, "version", false, versionUsage)
	fs.BoolVar(&a.version, "v", false, "alias for --version")

	if err := fs.Parse(args); err != nil {
		return cliArgs{}, err
	}
	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	a.overrides = make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config", "version", "v":
			return
		}
		a.overrides[strings.ReplaceAll(f.Name, "-", "_")] = f.Value.String()
	})

	return a, nil
}
