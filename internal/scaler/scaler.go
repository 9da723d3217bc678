// Package scaler computes how much to resize an image so that it fits the
// terminal it will be printed on.
//
// The image's longer side is the controlling axis: a portrait image is fit
// to the terminal height, anything else to the terminal width. A single
// factor is then applied to both sides, which keeps the pixel aspect ratio.
// Terminal cells are taller than they are wide, so the printed art appears
// vertically stretched; that is accepted and not corrected here.
package scaler

import (
	"fmt"
	"math"

	"github.com/ironsheep/picart/internal/apperr"
)

// MaxDimension bounds either side of a fitted image. Scales above 1 can grow
// an image past the terminal; this keeps such a request from allocating an
// absurdly large buffer.
const MaxDimension = 16384

// Size is a width and height, in pixels for images and in character cells
// for terminals.
type Size struct {
	Width  int
	Height int
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Factor returns the multiplicative factor that fits img to term.
//
// With dim the controlling image dimension and tdim the matching terminal
// dimension, high = max(dim, tdim) and low = min(dim, tdim):
//
//	factor = ((high - low) * scale + low) / high
//
// scale interpolates between low/high at 0 and 1 at 1. For an image larger
// than the terminal, scale 0 shrinks it exactly to the terminal. For a
// smaller image, scale 0 shrinks it further by low/high. When dim equals
// tdim the factor is 1 for every scale. The result is always > 0.
//
// scale must be finite and non-negative; anything else is rejected with
// ErrInvalidArgument. Both sizes must be positive.
func Factor(img, term Size, scale float64) (float64, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 0 {
		return 0, fmt.Errorf("scale %v must be a finite value >= 0: %w", scale, apperr.ErrInvalidArgument)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return 0, fmt.Errorf("image size %s must be positive: %w", img, apperr.ErrInvalidArgument)
	}
	if term.Width <= 0 || term.Height <= 0 {
		return 0, fmt.Errorf("terminal size %s must be positive: %w", term, apperr.ErrInvalidArgument)
	}

	dim, tdim := img.Width, term.Width
	if img.Height > img.Width {
		dim, tdim = img.Height, term.Height
	}

	high := float64(max(dim, tdim))
	low := float64(min(dim, tdim))
	return ((high-low)*scale + low) / high, nil
}

// Fit applies factor to both sides of img, rounding to the nearest pixel.
// Each side is at least 1 and at most MaxDimension.
func Fit(img Size, factor float64) (Size, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return Size{}, fmt.Errorf("factor %v must be a finite value > 0: %w", factor, apperr.ErrInvalidArgument)
	}

	w := math.Round(float64(img.Width) * factor)
	h := math.Round(float64(img.Height) * factor)
	if w > MaxDimension || h > MaxDimension {
		return Size{}, fmt.Errorf("fitted size %.0fx%.0f exceeds %d: %w", w, h, MaxDimension, apperr.ErrInvalidArgument)
	}

	return Size{
		Width:  max(int(w), 1),
		Height: max(int(h), 1),
	}, nil
}
