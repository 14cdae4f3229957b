package morph

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
	"github.com/WIZARDISHUNGRY/morphology/internal/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrOperator = errors.New("unknown operator")

type Operator int

const (
	Erosion Operator = iota
	Dilation
	Opening
	Closing
	OpeningByReconstruction
	ClosingByReconstruction
)

var operatorNames = map[Operator]string{
	Erosion:                 "erosion",
	Dilation:                "dilation",
	Opening:                 "opening",
	Closing:                 "closing",
	OpeningByReconstruction: "opening-by-reconstruction",
	ClosingByReconstruction: "closing-by-reconstruction",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

func ParseOperator(name string) (Operator, error) {
	for op, n := range operatorNames {
		if n == name {
			return op, nil
		}
	}
	return 0, errors.Wrapf(ErrOperator, "%q", name)
}

// Operators lists every known operator name in sorted order.
func Operators() []string {
	names := maps.Values(operatorNames)
	slices.Sort(names)
	return names
}

// OperatorFunc maps an image to a new image of the same bounds. It must not modify img.
type OperatorFunc func(ctx context.Context, img *image.Gray, el element.Element) *image.Gray

func plain(fxn func(*image.Gray, element.Element) *image.Gray) OperatorFunc {
	return func(_ context.Context, img *image.Gray, el element.Element) *image.Gray {
		return fxn(img, el)
	}
}

var operators = map[Operator]OperatorFunc{
	Erosion:                 plain(Erode),
	Dilation:                plain(Dilate),
	Opening:                 plain(Open),
	Closing:                 plain(Close),
	OpeningByReconstruction: OpenByReconstruction,
	ClosingByReconstruction: CloseByReconstruction,
}

// Apply runs op over img with structuring element el.
func Apply(ctx context.Context, op Operator, img *image.Gray, el element.Element) (*image.Gray, error) {
	fxn, ok := operators[op]
	if !ok {
		return nil, errors.Wrapf(ErrOperator, "%v", op)
	}
	ctx, log := logger.WithFields(ctx, logrus.Fields{"operator": op})
	start := time.Now()
	out := fxn(ctx, img, el)
	log.WithFields(logrus.Fields{
		"offsets": len(el),
		"bounds":  img.Rect,
		"elapsed": time.Since(start),
	}).Debug("operator applied")
	return out, nil
}
