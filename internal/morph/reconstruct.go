package morph

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/WIZARDISHUNGRY/morphology/internal/logger"
	"github.com/sirupsen/logrus"
)

// Connectivity is the neighborhood a marker grows by on each reconstruction step:
// the 4-connected cross of radius 2, independent of the caller's element.
var Connectivity = element.MustGenerate(element.Plus, 2)

// Stats describes a finished reconstruction.
type Stats struct {
	Iterations int
	Elapsed    time.Duration
}

// Reconstructor runs morphological reconstruction. The zero value uses
// time.Now and the package Connectivity.
type Reconstructor struct {
	Clock        func() time.Time
	Connectivity element.Element
}

func (rc Reconstructor) clock() func() time.Time {
	if rc.Clock == nil {
		return time.Now
	}
	return rc.Clock
}

func (rc Reconstructor) connectivity() element.Element {
	if rc.Connectivity == nil {
		return Connectivity
	}
	return rc.Connectivity
}

var defaultReconstructor = Reconstructor{
	Clock:        time.Now,
	Connectivity: Connectivity,
}

// Reconstruct grows marker by Connectivity in direction grow, holding it under
// mask (Max) or over mask (Min) after every step, until a step changes nothing.
// Reconstruct panics if marker and mask do not share bounds.
func (rc Reconstructor) Reconstruct(ctx context.Context, marker, mask *image.Gray, grow Mode) (*image.Gray, Stats) {
	if marker.Rect != mask.Rect {
		panic(fmt.Sprintf("morph: marker bounds %v differ from mask bounds %v", marker.Rect, mask.Rect))
	}
	var (
		log   = logger.Entry(ctx).WithField("grow", grow)
		clock = rc.clock()
		conn  = rc.connectivity()
		start = clock()
		f     = NewReconstructionFSM(log)
		r     = mask.Rect
		cur   = clone(marker)
		stats Stats
	)

	for {
		pushEvent(log, f, eventStep)
		stats.Iterations++

		next := Scan(cur, conn, grow)
		changed := false
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				i := next.PixOffset(x, y)
				v := grow.clamp(next.Pix[i], mask.Pix[mask.PixOffset(x, y)])
				next.Pix[i] = v
				if v != cur.Pix[cur.PixOffset(x, y)] {
					changed = true
				}
			}
		}
		if !changed {
			pushEvent(log, f, eventSettle)
			break
		}
		cur = next
	}

	stats.Elapsed = clock().Sub(start)
	log.WithFields(logrus.Fields{
		"iterations": stats.Iterations,
		"elapsed":    stats.Elapsed,
		"state":      f.Current(),
	}).Info("reconstruction converged")
	return cur, stats
}

// OpenByReconstruction erodes img by el and reconstructs the result under img,
// recovering every bright structure the erosion did not remove entirely.
func OpenByReconstruction(ctx context.Context, img *image.Gray, el element.Element) *image.Gray {
	out, _ := defaultReconstructor.Reconstruct(ctx, Erode(img, el), img, Max)
	return out
}

// CloseByReconstruction is the dual of OpenByReconstruction.
func CloseByReconstruction(ctx context.Context, img *image.Gray, el element.Element) *image.Gray {
	out, _ := defaultReconstructor.Reconstruct(ctx, Dilate(img, el), img, Min)
	return out
}
