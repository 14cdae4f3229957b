package morph

import (
	"image"
	"math/rand"
	"testing"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/stretchr/testify/require"
)

var allShapes = []element.Shape{element.Square, element.Circle, element.Plus}

func singlePixel() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	img.SetGray(2, 2, grayAt(255))
	return img
}

func TestDilateSinglePixel(t *testing.T) {
	out := Dilate(singlePixel(), element.MustGenerate(element.Square, 2))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := uint8(0)
			if x >= 1 && x <= 3 && y >= 1 && y <= 3 {
				want = 255
			}
			require.Equal(t, want, out.GrayAt(x, y).Y, "(%d,%d)", x, y)
		}
	}
}

func TestErodeSinglePixel(t *testing.T) {
	out := Erode(singlePixel(), element.MustGenerate(element.Square, 2))
	require.Equal(t, make([]uint8, 25), out.Pix)
}

func TestScanSkipsOutOfBounds(t *testing.T) {
	img := grayFromRows([][]uint8{
		{50, 60, 70},
		{80, 90, 100},
		{110, 120, 130},
	})
	el := element.MustGenerate(element.Square, 3) // reaches two pixels past every edge

	eroded := Erode(img, el)
	dilated := Dilate(img, el)
	require.Equal(t, uint8(50), eroded.GrayAt(2, 2).Y, "no synthetic dark border")
	require.Equal(t, uint8(130), dilated.GrayAt(0, 0).Y, "no synthetic bright border")

	// an element pointing only off the image leaves every pixel as it was
	away := element.Element{{-10, 0}, {0, 10}}
	require.Equal(t, img.Pix, Erode(img, away).Pix)
	require.Equal(t, img.Pix, Dilate(img, away).Pix)
}

func TestScanCorner(t *testing.T) {
	img := grayFromRows([][]uint8{
		{100, 200, 0},
		{150, 250, 0},
		{0, 0, 0},
	})
	el := element.MustGenerate(element.Plus, 2)
	require.Equal(t, uint8(100), Erode(img, el).GrayAt(0, 0).Y)
	require.Equal(t, uint8(200), Dilate(img, el).GrayAt(0, 0).Y)
}

func TestScanAsymmetricElement(t *testing.T) {
	img := grayFromRows([][]uint8{{1, 2, 3, 4}})
	out := Dilate(img, element.Element{{1, 0}})
	require.Equal(t, []uint8{2, 3, 4, 4}, out.Pix)
	out = Erode(img, element.Element{{-1, 0}})
	require.Equal(t, []uint8{1, 1, 2, 3}, out.Pix)
}

func TestScanSubImage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	parent := randomGray(rng, 20, 20)
	sub := parent.SubImage(image.Rect(5, 6, 15, 13)).(*image.Gray)
	el := element.MustGenerate(element.Circle, 3)

	out := Erode(sub, el)
	require.Equal(t, sub.Rect, out.Rect)

	// same result as scanning a standalone copy of the region
	standalone := clone(sub)
	want := Erode(standalone, el)
	requirePointwise(t, want, out, func(a, b uint8) bool { return a == b }, "sub image erosion")
}

func TestErodeDilateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, s := range allShapes {
		for r := 1; r <= 4; r++ {
			img := randomGray(rng, 17, 11)
			el := element.MustGenerate(s, r)
			requirePointwise(t, Erode(img, el), img, le, "erosion above input")
			requirePointwise(t, Dilate(img, el), img, ge, "dilation below input")
		}
	}
}

func TestDuality(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	img := randomGray(rng, 16, 16)
	for _, s := range allShapes {
		el := element.MustGenerate(s, 3)
		require.Equal(t, invert(Erode(img, el)).Pix, Dilate(invert(img), el).Pix, s.String())
		require.Equal(t, invert(Dilate(img, el)).Pix, Erode(invert(img), el).Pix, s.String())
	}
}

func TestScanDoesNotModifyInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	img := randomGray(rng, 9, 9)
	before := clone(img)
	out := Dilate(img, element.MustGenerate(element.Square, 3))
	require.Equal(t, before.Pix, img.Pix)
	require.NotSame(t, &img.Pix[0], &out.Pix[0])
}

func BenchmarkScan(b *testing.B) {
	const (
		xDim = 720
		yDim = 576
	)
	rng := rand.New(rand.NewSource(4))
	img := randomGray(rng, xDim, yDim)
	for _, s := range allShapes {
		el := element.MustGenerate(s, 3)
		b.Run(s.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Erode(img, el)
			}
		})
	}
}
