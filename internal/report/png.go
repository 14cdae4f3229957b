package report

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

type discardCounter struct {
	count int
}

var _ io.Writer = &discardCounter{}

func (dc *discardCounter) Write(p []byte) (n int, err error) {
	dc.count += len(p)
	return len(p), nil
}

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

func pngBytesPerPixel(img image.Image) (float64, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, nil
	}
	buf := &discardCounter{}
	if err := encoder.Encode(buf, img); err != nil {
		return 0, errors.Wrap(err, "png.Encode")
	}
	return float64(buf.count) / float64(b.Dx()*b.Dy()), nil
}
