// Package ascii converts images into rows of printable ASCII characters.
//
// Every pixel maps to exactly one character through its luminance, so an
// image of W x H pixels renders as H lines of W characters. Rendering is a
// pure function of pixel data: the same image always produces the same text.
package ascii

import (
	"bufio"
	"image"
	"image/color"
	"io"
)

// Printable ASCII bounds. Space and control characters are never emitted.
const (
	FirstPrintable = '!' // 33
	LastPrintable  = '~' // 126
)

// Luminance returns the perceived brightness of c as 0.3R + 0.59G + 0.11B.
//
// Channels are taken non-premultiplied at 8 bits, so a transparent pixel is
// weighted by its color and not by its alpha. The weighted sum is computed in
// integers and truncated, which matches casting the floating-point sum to a
// byte: white is 255, black is 0 and (100,150,200) is 140.
func Luminance(c color.Color) uint8 {
	px := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((30*uint32(px.R) + 59*uint32(px.G) + 11*uint32(px.B)) / 100)
}

// Char maps a luminance value to a character code in [FirstPrintable,
// LastPrintable] by dividing by three and clamping.
//
// Dark pixels all collapse onto '!'. Since 255/3 is 85, the brightest pixel
// maps to 'U' and the upper clamp only guards the contract.
func Char(lum uint8) byte {
	c := lum / 3
	if c < FirstPrintable {
		return FirstPrintable
	}
	if c > LastPrintable {
		return LastPrintable
	}
	return c
}

// Render writes img to w, one line per pixel row from top to bottom and one
// character per pixel from left to right. Every line, the last included, is
// terminated by '\n'. An empty image writes nothing.
func Render(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)

	bounds := img.Bounds()
	row := make([]byte, 0, bounds.Dx()+1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row = appendRow(row[:0], img, y)
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Lines renders img the same way as Render and returns the rows without
// their line terminators.
func Lines(img image.Image) []string {
	bounds := img.Bounds()
	lines := make([]string, 0, bounds.Dy())

	row := make([]byte, 0, bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row = appendRow(row[:0], img, y)
		lines = append(lines, string(row))
	}

	return lines
}

func appendRow(dst []byte, img image.Image, y int) []byte {
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		dst = append(dst, Char(Luminance(img.At(x, y))))
	}
	return dst
}
