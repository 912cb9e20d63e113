package sink

import (
	"math"

	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/overlay"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// canvas maps layout coordinates (origin at the grid centre, y up) onto
// output coordinates (origin top-left, y down).
type canvas struct {
	minX, maxY    float64
	width, height float64
}

// newCanvas sizes the output to the layout's shape extent plus margin on
// every side. Module shapes reach half a block past the plate, so the plate
// alone is not enough.
func newCanvas(l layout.Layout, margin float64) canvas {
	b := l.Bounds()
	return canvas{
		minX:   b.MinX - margin,
		maxY:   b.MaxY + margin,
		width:  b.Width() + 2*margin,
		height: b.Height() + 2*margin,
	}
}

func (c canvas) x(v float64) float64 { return v - c.minX }
func (c canvas) y(v float64) float64 { return c.maxY - v }

func (c canvas) shape(s layout.Shape, p styles.Palette) styles.Shape {
	cx, cy := c.x(s.Center.X), c.y(s.Center.Y)
	return styles.Shape{
		Kind:  s.Kind,
		X:     cx - s.Width/2,
		Y:     cy - s.Height/2,
		W:     s.Width,
		H:     s.Height,
		CX:    cx,
		CY:    cy,
		Fill:  p.Fill(s.Color),
		Row:   s.Row,
		Col:   s.Col,
		Plate: s.IsPlate(),
	}
}

func (c canvas) overlay(p overlay.Placement, href string) styles.Overlay {
	return styles.Overlay{
		X:    c.x(p.Rect.MinX),
		Y:    c.y(p.Rect.MaxY),
		W:    p.Rect.Width(),
		H:    p.Rect.Height(),
		Href: href,
	}
}

func (c canvas) pixels(scale float64) (int, int) {
	return int(math.Ceil(c.width * scale)), int(math.Ceil(c.height * scale))
}

// shapes converts the layout's shapes in draw order.
func (c canvas) shapes(l layout.Layout, p styles.Palette) []styles.Shape {
	order := l.DrawOrder()
	out := make([]styles.Shape, len(order))
	for i, s := range order {
		out[i] = c.shape(s, p)
	}
	return out
}

// defaultMargin is one block on every side.
func defaultMargin(l layout.Layout) float64 { return l.Params.BlockSize }
