package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/overlay"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// maxPNGPixels caps the rasterized canvas at 64 megapixels.
const maxPNGPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style     styles.Style
	palette   styles.Palette
	overlay   *overlay.Image
	scale     float64
	margin    float64
	hasMargin bool
}

// WithScale sets the PNG scale factor in pixels per layout unit (default 2.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

func WithPNGStyle(s styles.Style) PNGOption       { return func(r *pngRenderer) { r.style = s } }
func WithPNGPalette(p styles.Palette) PNGOption   { return func(r *pngRenderer) { r.palette = p } }
func WithPNGOverlay(img *overlay.Image) PNGOption { return func(r *pngRenderer) { r.overlay = img } }

// WithPNGMargin sets the blank border in layout units (default one block).
func WithPNGMargin(m float64) PNGOption {
	return func(r *pngRenderer) { r.margin = m; r.hasMargin = true }
}

// RenderPNG rasterizes the layout with the same geometry RenderSVG uses.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: styles.Dots{}, palette: styles.DefaultPalette, scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.hasMargin {
		r.margin = defaultMargin(l)
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidParams, "png scale must be positive, got %v", r.scale)
	}

	c := newCanvas(l, r.margin)
	// Checked in float64 before converting; int products overflow for
	// large block sizes.
	if fw, fh := c.width*r.scale, c.height*r.scale; !(fw*fh <= maxPNGPixels) {
		return nil, errors.New(errors.ErrCodeInvalidParams, "png canvas %.0fx%.0f exceeds %d pixels", fw, fh, maxPNGPixels)
	}
	w, h := c.pixels(r.scale)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParams, "png canvas is empty")
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	for _, s := range c.shapes(l, r.palette) {
		drawOutline(dc, r.style.Outline(s))
		if err := setFill(dc, s.Fill); err != nil {
			return nil, err
		}
		dc.Fill()
	}

	if p, ok := overlay.Place(l, r.overlay); ok {
		drawOverlay(dc, &r, c, p)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawOutline(dc *gg.Context, o styles.Outline) {
	switch {
	case o.Circle:
		dc.DrawCircle(o.CX, o.CY, o.R)
	case o.RX > 0:
		dc.DrawRoundedRectangle(o.X, o.Y, o.W, o.H, o.RX)
	default:
		dc.DrawRectangle(o.X, o.Y, o.W, o.H)
	}
}

func setFill(dc *gg.Context, hex string) error {
	c, err := styles.ParseHexColor(hex)
	if err != nil {
		return err
	}
	dc.SetColor(c)
	return nil
}

// drawOverlay resizes the overlay to its pixel footprint and draws it
// unscaled, clipped to the style's overlay outline.
func drawOverlay(dc *gg.Context, r *pngRenderer, c canvas, p overlay.Placement) {
	o := c.overlay(p, "")
	pw := max(1, int(math.Round(o.W*r.scale)))
	ph := max(1, int(math.Round(o.H*r.scale)))
	img := p.Image.Resize(pw, ph)

	dc.Push()
	defer dc.Pop()
	drawOutline(dc, r.style.OverlayOutline(o))
	dc.Clip()
	dc.Identity()
	cx := int(math.Round((o.X + o.W/2) * r.scale))
	cy := int(math.Round((o.Y + o.H/2) * r.scale))
	dc.DrawImageAnchored(img.Image(), cx, cy, 0.5, 0.5)
}
