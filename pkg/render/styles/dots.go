package styles

import (
	"bytes"

	"github.com/matzehuels/qrdots/pkg/layout"
)

// Dots draws modules as touching circles and finder modules as flush squares.
type Dots struct{}

func (Dots) Name() string { return "dots" }

func (Dots) RenderDefs(*bytes.Buffer) {}

func (Dots) Outline(s Shape) Outline {
	if s.Kind == layout.Circle && !s.Plate {
		return Outline{Circle: true, CX: s.CX, CY: s.CY, R: min(s.W, s.H) / 2}
	}
	return squareOutline(s, 0)
}

func (Dots) OverlayOutline(o Overlay) Outline { return overlayOutline(o, 0) }

func (d Dots) RenderShape(buf *bytes.Buffer, s Shape) {
	writeOutline(buf, d.Outline(s), s.Fill)
}

func (Dots) RenderOverlay(buf *bytes.Buffer, o Overlay) {
	writeImage(buf, o, "")
}
