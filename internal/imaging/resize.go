package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/picart/internal/apperr"
)

// Resizer names accepted by NewResizer.
const (
	ResizerImaging = "imaging"
	ResizerBild    = "bild"
)

// Resizer resamples an image to exact pixel dimensions.
//
// Implementations never modify src and always return an image whose bounds
// start at (0,0) and measure exactly width x height.
type Resizer interface {
	Resize(src image.Image, width, height int) image.Image
}

// LanczosResizer resamples with disintegration/imaging's Lanczos filter.
type LanczosResizer struct{}

// Resize implements Resizer.
func (LanczosResizer) Resize(src image.Image, width, height int) image.Image {
	return imaging.Resize(src, width, height, imaging.Lanczos)
}

// BildResizer resamples with bild's Lanczos filter.
type BildResizer struct{}

// Resize implements Resizer.
func (BildResizer) Resize(src image.Image, width, height int) image.Image {
	return transform.Resize(src, width, height, transform.Lanczos)
}

var resizers = map[string]Resizer{
	ResizerImaging: LanczosResizer{},
	ResizerBild:    BildResizer{},
}

// NewResizer returns the resizer registered under name.
//
// Parameters:
//   - name: ResizerImaging, ResizerBild, or empty for the default
//     (ResizerImaging).
//
// Returns:
//   - Resizer: The resizer for name.
//   - error: Non-nil if name is not registered.
//
// # Errors
//
//   - Returns ErrInvalidArgument for an unknown name; the message lists the
//     accepted names
func NewResizer(name string) (Resizer, error) {
	if name == "" {
		name = ResizerImaging
	}
	r, ok := resizers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resizer %q (want one of %v): %w", name, Resizers(), apperr.ErrInvalidArgument)
	}
	return r, nil
}

// Resizers lists the accepted resizer names in sorted order.
func Resizers() []string {
	names := make([]string, 0, len(resizers))
	for name := range resizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resize scales img to width x height with r.
//
// Parameters:
//   - r: The resampler to use.
//   - img: The source image. It is never modified.
//   - width, height: Target dimensions in pixels. Both must be positive.
//
// Returns:
//   - image.Image: The resized image with bounds (0,0)-(width,height), or img
//     itself when it already has the requested dimensions.
//   - error: Non-nil if the target dimensions are invalid.
//
// # Errors
//
//   - Returns ErrInvalidArgument if width or height is zero or negative
func Resize(r Resizer, img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d: %w", width, height, apperr.ErrInvalidArgument)
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img, nil
	}

	return r.Resize(img, width, height), nil
}
