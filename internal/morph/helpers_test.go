package morph

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func grayFromRows(rows [][]uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, v := range row {
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
	return img
}

func randomGray(rng *rand.Rand, w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	return img
}

func invert(img *image.Gray) *image.Gray {
	out := clone(img)
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// requirePointwise checks cmp(a, b) for every pixel of two images with equal bounds.
func requirePointwise(t *testing.T, a, b *image.Gray, cmp func(a, b uint8) bool, msg string) {
	t.Helper()
	require.Equal(t, a.Rect, b.Rect)
	r := a.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			va, vb := a.GrayAt(x, y).Y, b.GrayAt(x, y).Y
			if !cmp(va, vb) {
				t.Fatalf("%s at (%d,%d): %d vs %d", msg, x, y, va, vb)
			}
		}
	}
}

func le(a, b uint8) bool { return a <= b }
func ge(a, b uint8) bool { return a >= b }

func grayAt(v uint8) color.Gray { return color.Gray{Y: v} }
