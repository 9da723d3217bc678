// Package convert runs one image-to-ASCII conversion from input stream to
// output stream.
//
// A run decodes the input, fits it to the terminal, optionally flattens it
// onto a background and renders it as text:
//
//	conv := convert.New(cfg, log)
//	if err := conv.Run(ctx); err != nil {
//	    os.Exit(apperr.ExitCode(err))
//	}
//
// Nothing is written when decoding fails. Regular output files are written
// to a temporary sibling and renamed into place only after the last row, so
// a failed run never leaves a truncated file behind. Symlinks are followed,
// and device files or FIFOs are written in place.
package convert

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/picart/internal/apperr"
	"github.com/ironsheep/picart/internal/ascii"
	"github.com/ironsheep/picart/internal/config"
	"github.com/ironsheep/picart/internal/imaging"
	"github.com/ironsheep/picart/internal/scaler"
	"github.com/ironsheep/picart/internal/terminal"
)

// Converter performs conversions for a single configuration.
type Converter struct {
	cfg *config.Config
	log *zap.Logger

	// Stdin is read when no input path is configured.
	Stdin io.Reader

	// Stdout is written when no output path is configured.
	Stdout io.Writer
}

// New returns a Converter reading os.Stdin and writing os.Stdout by default.
// A nil logger disables logging.
func New(cfg *config.Config, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		cfg:    cfg,
		log:    log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Run performs the conversion. The context is checked between stages.
func (c *Converter) Run(ctx context.Context) error {
	resizer, err := imaging.NewResizer(c.cfg.Resizer)
	if err != nil {
		return err
	}

	img, err := c.load()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !c.cfg.NoFit {
		img, err = c.fit(img, resizer)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if c.cfg.Background != "" {
		bg, err := imaging.ParseBackground(c.cfg.Background)
		if err != nil {
			return err
		}
		img = imaging.Flatten(img, bg)
		c.log.Debug("flattened onto background", zap.String("background", c.cfg.Background))
	}

	if err := c.write(img); err != nil {
		return err
	}

	c.log.Info("conversion complete",
		zap.String("output", c.outputName()),
		zap.Int("columns", img.Bounds().Dx()),
		zap.Int("rows", img.Bounds().Dy()))
	return nil
}

// load decodes the configured input, closing any opened file before
// returning.
func (c *Converter) load() (image.Image, error) {
	var (
		img  image.Image
		info *imaging.ImageInfo
		err  error
	)
	if c.cfg.Input == "" {
		img, info, err = imaging.Decode(c.Stdin)
	} else {
		img, info, err = imaging.Load(c.cfg.Input)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("decoded image",
		zap.String("input", c.inputName()),
		zap.String("format", info.Format),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Bool("has_alpha", info.HasAlpha),
		zap.Int64("size_bytes", info.SizeBytes))
	return img, nil
}

// fit resizes img so its controlling axis matches the terminal per the
// configured scale. An image whose factor is exactly 1 is returned as is.
func (c *Converter) fit(img image.Image, resizer imaging.Resizer) (image.Image, error) {
	bounds := img.Bounds()
	src := scaler.Size{Width: bounds.Dx(), Height: bounds.Dy()}
	term := scaler.Size(terminal.Resolve(c.cfg.TermWidth, c.cfg.TermHeight))

	factor, err := scaler.Factor(src, term, c.cfg.Scale)
	if err != nil {
		return nil, err
	}
	if factor == 1 {
		c.log.Debug("image already fits", zap.Stringer("size", src), zap.Stringer("terminal", term))
		return img, nil
	}

	dst, err := scaler.Fit(src, factor)
	if err != nil {
		return nil, err
	}

	c.log.Debug("resizing image",
		zap.Stringer("from", src),
		zap.Stringer("to", dst),
		zap.Stringer("terminal", term),
		zap.Float64("scale", c.cfg.Scale),
		zap.Float64("factor", factor),
		zap.String("resizer", c.cfg.Resizer))

	return imaging.Resize(resizer, img, dst.Width, dst.Height)
}

// write renders img to the configured output.
func (c *Converter) write(img image.Image) error {
	if c.cfg.Output == "" {
		if err := ascii.Render(c.Stdout, img); err != nil {
			return fmt.Errorf("failed to write output: %w: %w", apperr.ErrIO, err)
		}
		return nil
	}

	return writeFile(c.cfg.Output, func(w io.Writer) error {
		return ascii.Render(w, img)
	})
}

func (c *Converter) inputName() string {
	if c.cfg.Input == "" {
		return "<stdin>"
	}
	return c.cfg.Input
}

func (c *Converter) outputName() string {
	if c.cfg.Output == "" {
		return "<stdout>"
	}
	return c.cfg.Output
}
