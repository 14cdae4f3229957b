package morph

import (
	"image"

	"github.com/WIZARDISHUNGRY/morphology/internal/element"
)

// Open removes bright detail smaller than el.
func Open(img *image.Gray, el element.Element) *image.Gray {
	return Dilate(Erode(img, el), el)
}

// Close fills dark gaps smaller than el.
func Close(img *image.Gray, el element.Element) *image.Gray {
	return Erode(Dilate(img, el), el)
}
