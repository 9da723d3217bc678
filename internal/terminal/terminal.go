// Package terminal reports the size of the terminal the art will be printed
// on, falling back to a fixed default when no terminal is attached.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Size is a terminal size in character cells.
type Size struct {
	Width  int
	Height int
}

// Default is used when no attached terminal reports a size.
var Default = Size{Width: 80, Height: 24}

// getSize is replaced in tests.
var getSize = term.GetSize

// probeFDs are tried in order. stdout is first since that is where the art
// usually goes; stderr and stdin still identify the terminal when stdout is
// redirected to a file or pipe.
var probeFDs = []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}

// Probe returns the size of the first attached terminal, or Default.
func Probe() Size {
	for _, fd := range probeFDs {
		w, h, err := getSize(int(fd))
		if err == nil && w > 0 && h > 0 {
			return Size{Width: w, Height: h}
		}
	}
	return Default
}

// Resolve returns the terminal size with explicit overrides applied. A
// positive width or height replaces the probed value; the terminal is only
// probed when at least one of them is unset.
func Resolve(width, height int) Size {
	if width > 0 && height > 0 {
		return Size{Width: width, Height: height}
	}

	s := Probe()
	if width > 0 {
		s.Width = width
	}
	if height > 0 {
		s.Height = height
	}
	return s
}
