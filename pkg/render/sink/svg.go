package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/overlay"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// overlayPixelsPerUnit sets the resolution of embedded overlay images.
const overlayPixelsPerUnit = 4

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	palette   styles.Palette
	overlay   *overlay.Image
	margin    float64
	hasMargin bool
}

func WithStyle(s styles.Style) SVGOption       { return func(r *svgRenderer) { r.style = s } }
func WithPalette(p styles.Palette) SVGOption   { return func(r *svgRenderer) { r.palette = p } }
func WithOverlay(img *overlay.Image) SVGOption { return func(r *svgRenderer) { r.overlay = img } }

// WithMargin sets the blank border around the shapes in layout units
// (default one block).
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) { r.margin = m; r.hasMargin = true }
}

// RenderSVG renders the layout as SVG. Shapes are drawn plate first; the
// overlay, if any, is drawn last inside the center exclusion zone.
func RenderSVG(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(l, opts...)
	c := newCanvas(l, r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		styles.Num(c.width), styles.Num(c.height), math.Ceil(c.width), math.Ceil(c.height))

	r.style.RenderDefs(&buf)
	for _, s := range c.shapes(l, r.palette) {
		r.style.RenderShape(&buf, s)
	}
	if err := renderOverlay(&buf, &r, l, c); err != nil {
		return nil, err
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func newSVGRenderer(l layout.Layout, opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Dots{}, palette: styles.DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.hasMargin {
		r.margin = defaultMargin(l)
	}
	return r
}

func renderOverlay(buf *bytes.Buffer, r *svgRenderer, l layout.Layout, c canvas) error {
	p, ok := overlay.Place(l, r.overlay)
	if !ok {
		return nil
	}
	w := int(math.Ceil(p.Rect.Width() * overlayPixelsPerUnit))
	h := int(math.Ceil(p.Rect.Height() * overlayPixelsPerUnit))
	uri, err := p.Image.Fit(w, h).DataURI()
	if err != nil {
		return err
	}
	r.style.RenderOverlay(buf, c.overlay(p, uri))
	return nil
}
