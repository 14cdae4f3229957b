// Package report measures what an operator did to an image.
package report

import (
	"context"
	"image"

	"github.com/WIZARDISHUNGRY/morphology/internal/logger"
	"github.com/corona10/goimagehash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const hashDim = 16 // should be power of 2

type Report struct {
	// HashDistance is the ExtPerceptionHash distance from input to output.
	HashDistance int
	// ChangedPixels counts pixels whose value differs.
	ChangedPixels int
	// InputBytesPerPixel and OutputBytesPerPixel are PNG compressed sizes, a
	// rough measure of how much detail each image holds.
	InputBytesPerPixel  float64
	OutputBytesPerPixel float64
}

func (r *Report) Fields() logrus.Fields {
	return logrus.Fields{
		"hash_distance":  r.HashDistance,
		"changed_pixels": r.ChangedPixels,
		"input_png_bpp":  r.InputBytesPerPixel,
		"output_png_bpp": r.OutputBytesPerPixel,
	}
}

type measurement struct {
	hash *goimagehash.ExtImageHash
	bpp  float64
}

func measure(img *image.Gray) (measurement, error) {
	hash, err := goimagehash.ExtPerceptionHash(img, hashDim, hashDim)
	if err != nil {
		return measurement{}, errors.Wrap(err, "goimagehash.ExtPerceptionHash")
	}
	bpp, err := pngBytesPerPixel(img)
	if err != nil {
		return measurement{}, err
	}
	return measurement{hash: hash, bpp: bpp}, nil
}

// Compare measures in and out concurrently; both must share bounds and neither is modified.
func Compare(ctx context.Context, in, out *image.Gray) (*Report, error) {
	if in.Rect != out.Rect {
		return nil, errors.Errorf("bounds differ: %v vs %v", in.Rect, out.Rect)
	}
	var mIn, mOut measurement
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		mIn, err = measure(in)
		return errors.Wrap(err, "input")
	})
	g.Go(func() (err error) {
		mOut, err = measure(out)
		return errors.Wrap(err, "output")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dist, err := mIn.hash.Distance(mOut.hash)
	if err != nil {
		return nil, errors.Wrap(err, "hash.Distance")
	}
	r := &Report{
		HashDistance:        dist,
		ChangedPixels:       changedPixels(in, out),
		InputBytesPerPixel:  mIn.bpp,
		OutputBytesPerPixel: mOut.bpp,
	}
	logger.Entry(ctx).WithFields(r.Fields()).Info("report")
	return r, nil
}

func changedPixels(a, b *image.Gray) int {
	var n int
	r := a.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.Pix[a.PixOffset(x, y)] != b.Pix[b.PixOffset(x, y)] {
				n++
			}
		}
	}
	return n
}
