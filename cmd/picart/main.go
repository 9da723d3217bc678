package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/ironsheep/picart/internal/apperr"
	"github.com/ironsheep/picart/internal/config"
	"github.com/ironsheep/picart/internal/convert"
	"github.com/ironsheep/picart/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return apperr.ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "picart: %v\n", err)
		return apperr.ExitInvalidArgument
	}

	if cli.version {
		fmt.Fprintf(stdout, "picart %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return apperr.ExitOK
	}

	cfg, err := config.Load(cli.configFile, cli.overrides)
	if err != nil {
		fmt.Fprintf(stderr, "picart: %v\n", err)
		return apperr.ExitCode(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "picart: %v\n", err)
		return apperr.ExitCode(err)
	}
	defer log.Sync()

	log.Debug("starting",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.Float64("scale", cfg.Scale),
		zap.Bool("no_fit", cfg.NoFit),
		zap.String("resizer", cfg.Resizer))

	conv := convert.New(cfg, log)
	conv.Stdin = stdin
	conv.Stdout = stdout
	if err := conv.Run(ctx); err != nil {
		log.Error("conversion failed", zap.Error(err))
		return apperr.ExitCode(err)
	}

	return apperr.ExitOK
}
