package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/picart/internal/apperr"
)

// MaxPixels bounds the width x height an input may declare. The header is
// checked before the pixel data is decoded, so a small file claiming huge
// dimensions is rejected without allocating for it.
const MaxPixels = 100_000_000

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels, after orientation correction.
	Width int

	// Height is the image height in pixels, after orientation correction.
	Height int

	// Format is the name the decoder registered under: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp".
	Format string

	// HasAlpha indicates whether the decoded image has an alpha channel.
	HasAlpha bool

	// SizeBytes is the length of the encoded input in bytes.
	SizeBytes int64
}

// Load opens the file at path and decodes it.
//
// Parameters:
//   - path: Absolute or relative file path to the image.
//
// Returns:
//   - image.Image: The decoded image, upright.
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The file is closed before Load returns, whether or not decoding succeeds.
//
// # Errors
//
//   - Returns ErrIO if the file does not exist or cannot be read
//   - Returns ErrDecode if the file is not a supported image
func Load(path string) (image.Image, *ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w: %w", apperr.ErrIO, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads r to the end and decodes the image it contains.
//
// Parameters:
//   - r: The encoded image stream. It is read to EOF but not closed.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the format
//     and on whether an orientation fix was applied (e.g., *image.RGBA,
//     *image.NRGBA, *image.YCbCr).
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the stream cannot be read or decoded.
//
// The format is detected from the data itself, never from a file name.
// Decoding uses disintegration/imaging with auto-orientation enabled, so a
// JPEG taken in portrait is returned upright and ImageInfo reports the
// upright dimensions.
//
// # Errors
//
//   - Returns ErrIO if reading r fails
//   - Returns ErrDecode if the data is empty or not a supported image
//   - Returns ErrDecode if the header declares more than MaxPixels pixels;
//     this is checked before any pixel data is decoded
func Decode(r io.Reader) (image.Image, *ImageInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w: %w", apperr.ErrIO, err)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty image data: %w", apperr.ErrDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect image format: %w: %w", apperr.ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, nil, fmt.Errorf("%s image declares %dx%d pixels, limit is %d: %w",
			format, cfg.Width, cfg.Height, MaxPixels, apperr.ErrDecode)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s image: %w: %w", format, apperr.ErrDecode, err)
	}

	bounds := img.Bounds()
	return img, &ImageInfo{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    format,
		HasAlpha:  hasAlpha(img),
		SizeBytes: int64(len(data)),
	}, nil
}

// hasAlpha reports whether the concrete image type carries an alpha channel.
// Paletted images count when any palette entry is not fully opaque.
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
