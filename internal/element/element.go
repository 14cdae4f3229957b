// Package element builds structuring elements: the neighborhood offsets a
// morphological scan visits around every pixel.
package element

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrShape  = errors.New("unknown window shape")
	ErrRadius = errors.New("window radius must be a positive integer")
)

type Shape int

const (
	Square Shape = iota
	Circle
	Plus
)

var shapeNames = map[Shape]string{
	Square: "square",
	Circle: "circle",
	Plus:   "plus",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape maps a window name to its Shape.
func ParseShape(name string) (Shape, error) {
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Wrapf(ErrShape, "%q", name)
}

// Shapes lists every known window name in sorted order.
func Shapes() []string {
	names := maps.Values(shapeNames)
	slices.Sort(names)
	return names
}

// Element is a set of offsets relative to the pixel being scanned. Order carries
// no meaning for the operators but is stable for a given shape and radius.
type Element []image.Point

// MaxRadius is the largest radius whose square window still counts its offsets in an int.
var MaxRadius = maxRadius(math.MaxInt)

func maxRadius(limit int) int {
	side := int(math.Sqrt(float64(limit)))
	for side > 0 && side > limit/side {
		side--
	}
	if side%2 == 0 {
		side--
	}
	return side/2 + 1
}

// Generate enumerates the offsets of shape at radius. A radius of 1 yields only
// the origin for every shape.
func Generate(shape Shape, radius int) (Element, error) {
	if radius < 1 || radius > MaxRadius {
		return nil, errors.Wrapf(ErrRadius, "got %d, want 1..%d", radius, MaxRadius)
	}
	h := radius - 1
	switch shape {
	case Square:
		return square(h), nil
	case Circle:
		return circle(h), nil
	case Plus:
		return plus(h), nil
	}
	return nil, errors.Wrapf(ErrShape, "%v", shape)
}

// Fit lowers radius to the smallest one that reaches every offset landing inside
// an image of the given size. Anything further out is skipped at every pixel, so
// the operators give the same result for radius and Fit(shape, radius, size).
func Fit(shape Shape, radius int, size image.Point) int {
	limit := size.X
	if size.Y > limit {
		limit = size.Y
	}
	if shape == Circle {
		// the disc must cover the corners of the in-bounds square
		limit *= 2
	}
	if limit < 1 {
		limit = 1
	}
	if radius > limit {
		return limit
	}
	return radius
}

// MustGenerate is Generate for package level elements known to be valid.
func MustGenerate(shape Shape, radius int) Element {
	el, err := Generate(shape, radius)
	if err != nil {
		panic(err)
	}
	return el
}

func square(h int) Element {
	el := make(Element, 0, (2*h+1)*(2*h+1))
	for dx := -h; dx <= h; dx++ {
		for dy := -h; dy <= h; dy++ {
			el = append(el, image.Pt(dx, dy))
		}
	}
	return el
}

func circle(h int) Element {
	var el Element
	for _, p := range square(h) {
		if p.X*p.X+p.Y*p.Y <= h*h {
			el = append(el, p)
		}
	}
	return el
}

func plus(h int) Element {
	el := make(Element, 0, 4*h+1)
	for d := -h; d <= h; d++ {
		if d != 0 {
			el = append(el, image.Pt(d, 0))
		}
		el = append(el, image.Pt(0, d))
	}
	return el
}
