// Package imageio loads images as 8-bit grayscale and writes results back out.
package imageio

import (
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"gopkg.in/h2non/filetype.v1"
)

var ErrNotImage = errors.New("not a recognized image")

// sniffLen is how much of a file filetype needs to match every signature it knows.
const sniffLen = 261

// Load decodes the image at path and converts it to grayscale. EXIF orientation is applied.
func Load(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Wrap(err, "io.ReadFull")
	}
	if !filetype.IsImage(head[:n]) {
		return nil, errors.Wrapf(ErrNotImage, "%s", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Seek")
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "imaging.Decode %s", path)
	}
	return ToGray(img), nil
}

// ToGray returns img unchanged when it already is *image.Gray, otherwise a
// converted copy with the same bounds.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// CheckOutput reports whether path names a format Save can write.
func CheckOutput(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.Wrapf(err, "output %s", path)
	}
	return nil
}

// Save encodes img in the format implied by the extension of path. The file
// only appears once it is completely written.
func Save(img image.Image, path string) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return errors.Wrapf(err, "output %s", path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".morph-*")
	if err != nil {
		return errors.Wrap(err, "os.CreateTemp")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := imaging.Encode(tmp, img, format); err != nil {
		return errors.Wrap(err, "imaging.Encode")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "Close")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "os.Rename")
	}
	return nil
}

// Exists reports whether something is already at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
