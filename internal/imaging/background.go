package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/picart/internal/apperr"
)

// ParseBackground parses a hex color such as "#FFFFFF", "fff" or "#1e1e1e".
// The leading '#' is optional.
func ParseBackground(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid background color %q: %w", hex, apperr.ErrInvalidArgument)
	}
	return c, nil
}

// Flatten composites img over a solid background and returns an opaque copy.
//
// Each pixel's straight (non-premultiplied) color is blended toward bg by its
// alpha: a fully transparent pixel becomes bg, a fully opaque pixel is kept.
// The result always has alpha 255.
func Flatten(img image.Image, bg colorful.Color) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)

			var out color.NRGBA
			switch px.A {
			case 0xff:
				out = px
			case 0:
				r, g, b := bg.Clamped().RGB255()
				out = color.NRGBA{R: r, G: g, B: b, A: 0xff}
			default:
				fg := colorful.Color{
					R: float64(px.R) / 255.0,
					G: float64(px.G) / 255.0,
					B: float64(px.B) / 255.0,
				}
				r, g, b := bg.BlendRgb(fg, float64(px.A)/255.0).Clamped().RGB255()
				out = color.NRGBA{R: r, G: g, B: b, A: 0xff}
			}
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, out)
		}
	}

	return dst
}
