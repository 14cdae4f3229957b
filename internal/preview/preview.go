// Package preview draws images in the terminal.
package preview

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/eliukblau/pixterm/pkg/ansimage"
	"github.com/mattn/go-sixel"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	ModeNone  = "none"
	ModeANSI  = "ansi"
	ModeSixel = "sixel"
)

const (
	defaultCols = 80
	defaultRows = 24
)

// TermSize returns the size of the terminal behind f, or 80x24 when f is not a terminal.
func TermSize(f *os.File) (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return defaultCols, defaultRows
	}
	return int(ws.Col), int(ws.Row)
}

// Write renders img on f sized to f's terminal.
func Write(f *os.File, mode string, img image.Image) error {
	cols, rows := TermSize(f)
	return Render(f, mode, img, cols, rows)
}

// Render writes img to w. ANSI output is scaled to fit cols x rows character cells,
// one cell holding two vertically stacked pixels; sixel output is full size.
func Render(w io.Writer, mode string, img image.Image, cols, rows int) error {
	switch mode {
	case ModeNone:
		return nil
	case ModeSixel:
		return errors.Wrap(sixel.NewEncoder(w).Encode(img), "sixel.Encode")
	case ModeANSI:
		ansi, err := ansimage.NewScaledFromImage(img, 2*rows, cols, color.Black, ansimage.ScaleModeFit, ansimage.NoDithering)
		if err != nil {
			return errors.Wrap(err, "ansimage.NewScaledFromImage")
		}
		_, err = io.WriteString(w, ansi.Render())
		return errors.Wrap(err, "WriteString")
	}
	return errors.Errorf("unknown preview mode %q", mode)
}
