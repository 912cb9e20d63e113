// Package overlay loads the image placed over the center exclusion zone of a
// layout and computes where it goes.
//
// Placement is independent of shape emission: a layout never contains the
// overlay, and [Place] only reads the layout's center rectangle. Sinks run the
// two steps one after the other, in either order.
package overlay

import (
	"bytes"
	"encoding/base64"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/layout"
)

// Image is a decoded overlay image.
type Image struct {
	img image.Image
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Image {
	return &Image{img: img}
}

// Decode reads an image in any format imaging supports (PNG, JPEG, GIF, BMP,
// TIFF). EXIF orientation is applied.
func Decode(r io.Reader) (*Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode overlay image")
	}
	return &Image{img: img}, nil
}

// Load reads and decodes the image at path.
func Load(path string) (*Image, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "overlay %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open overlay %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Image returns the underlying image.
func (i *Image) Image() image.Image { return i.img }

// Size returns the pixel dimensions of the image.
func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fit scales the image down to fit within width x height, keeping its aspect
// ratio. Images that already fit are returned unchanged.
func (i *Image) Fit(width, height int) *Image {
	w, h := i.Size()
	if w <= width && h <= height {
		return i
	}
	return &Image{img: imaging.Fit(i.img, width, height, imaging.Lanczos)}
}

// Resize scales the image to exactly width x height.
func (i *Image) Resize(width, height int) *Image {
	return &Image{img: imaging.Resize(i.img, width, height, imaging.Lanczos)}
}

// PNG encodes the image as PNG.
func (i *Image) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, i.img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode overlay")
	}
	return buf.Bytes(), nil
}

// DataURI returns the image as a base64 PNG data URI for embedding in SVG.
func (i *Image) DataURI() (string, error) {
	data, err := i.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Placement is an overlay positioned in layout coordinates.
type Placement struct {
	Image *Image
	Rect  layout.Rect
}

// Place fits img inside the center rectangle of l, keeping its aspect ratio
// and centring it. It returns false when the layout excludes no cells or the
// image is empty.
func Place(l layout.Layout, img *Image) (Placement, bool) {
	if img == nil {
		return Placement{}, false
	}
	area := l.CenterBounds()
	w, h := img.Size()
	if area.Empty() || w == 0 || h == 0 {
		return Placement{}, false
	}

	s := min(area.Width()/float64(w), area.Height()/float64(h))
	fw, fh := float64(w)*s, float64(h)*s
	c := area.Center()
	return Placement{
		Image: img,
		Rect: layout.Rect{
			MinX: c.X - fw/2,
			MinY: c.Y - fh/2,
			MaxX: c.X + fw/2,
			MaxY: c.Y + fh/2,
		},
	}, true
}
