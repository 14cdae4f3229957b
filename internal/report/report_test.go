package report

import (
	"context"
	"image"
	"math/rand"
	"testing"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/WIZARDISHUNGRY/morphology/internal/morph"
	"github.com/stretchr/testify/require"
)

func noise(seed int64, w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	rand.New(rand.NewSource(seed)).Read(img.Pix)
	return img
}

func TestCompareIdentity(t *testing.T) {
	img := noise(1, 64, 64)
	r, err := Compare(context.Background(), img, img)
	require.NoError(t, err)
	require.Zero(t, r.HashDistance)
	require.Zero(t, r.ChangedPixels)
	require.Equal(t, r.InputBytesPerPixel, r.OutputBytesPerPixel)
	require.Greater(t, r.InputBytesPerPixel, 0.0)
}

func TestCompareErosionRemovesDetail(t *testing.T) {
	img := noise(2, 96, 64)
	out := morph.Erode(img, element.MustGenerate(element.Square, 3))

	r, err := Compare(context.Background(), img, out)
	require.NoError(t, err)
	require.Greater(t, r.ChangedPixels, 0)
	require.Less(t, r.OutputBytesPerPixel, r.InputBytesPerPixel)
	require.Len(t, r.Fields(), 4)
}

func TestCompareBoundsMismatch(t *testing.T) {
	_, err := Compare(context.Background(), noise(3, 8, 8), noise(3, 8, 9))
	require.Error(t, err)
}

func TestPngBytesPerPixelEmpty(t *testing.T) {
	bpp, err := pngBytesPerPixel(image.NewGray(image.Rect(0, 0, 0, 0)))
	require.NoError(t, err)
	require.Zero(t, bpp)
}
