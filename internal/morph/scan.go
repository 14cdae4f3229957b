// Package morph implements grayscale morphological operators over *image.Gray.
// Every operator allocates its result and leaves its input untouched.
package morph

import (
	"image"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
)

// Mode selects which extreme a neighborhood scan keeps.
type Mode int

const (
	Min Mode = iota // erosion
	Max             // dilation
)

func (m Mode) String() string {
	if m == Max {
		return "max"
	}
	return "min"
}

// replaces reports whether candidate is strictly more extremal than current.
func (m Mode) replaces(candidate, current uint8) bool {
	if m == Max {
		return candidate > current
	}
	return candidate < current
}

// clamp holds v on the near side of mask: min(v, mask) when growing by Max,
// max(v, mask) when growing by Min.
func (m Mode) clamp(v, mask uint8) uint8 {
	if m.replaces(mask, v) {
		return v
	}
	return mask
}

// Scan replaces every pixel with the extreme value of its neighborhood. The
// pixel itself always takes part; offsets that fall outside img are ignored.
func Scan(img *image.Gray, el element.Element, mode Mode) *image.Gray {
	r := img.Rect
	out := image.NewGray(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := img.Pix[img.PixOffset(x, y)]
			for _, d := range el {
				p := image.Pt(x+d.X, y+d.Y)
				if !p.In(r) {
					continue
				}
				if n := img.Pix[img.PixOffset(p.X, p.Y)]; mode.replaces(n, v) {
					v = n
				}
			}
			out.Pix[out.PixOffset(x, y)] = v
		}
	}
	return out
}

func Erode(img *image.Gray, el element.Element) *image.Gray {
	return Scan(img, el, Min)
}

func Dilate(img *image.Gray, el element.Element) *image.Gray {
	return Scan(img, el, Max)
}

func clone(img *image.Gray) *image.Gray {
	r := img.Rect
	out := image.NewGray(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out.Pix[out.PixOffset(r.Min.X, y):out.PixOffset(r.Max.X, y)], img.Pix[img.PixOffset(r.Min.X, y):])
	}
	return out
}
