package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/qrdots/pkg/layout"
)

const (
	roundedCornerRatio = 0.3
	roundedInset       = 0.9
	overlayClipID      = "qrdots-overlay-clip"
)

// Rounded draws slightly inset circles and finder squares with soft corners.
// The overlay image is clipped to a rounded rectangle.
type Rounded struct{}

func (Rounded) Name() string { return "rounded" }

func (Rounded) RenderDefs(*bytes.Buffer) {}

func (Rounded) Outline(s Shape) Outline {
	if s.Plate {
		return squareOutline(s, 0)
	}
	if s.Kind == layout.Circle {
		return Outline{Circle: true, CX: s.CX, CY: s.CY, R: min(s.W, s.H) / 2 * roundedInset}
	}
	return squareOutline(s, min(s.W, s.H)*roundedCornerRatio)
}

func (r Rounded) RenderShape(buf *bytes.Buffer, s Shape) {
	writeOutline(buf, r.Outline(s), s.Fill)
}

func (Rounded) OverlayOutline(o Overlay) Outline {
	return overlayOutline(o, min(o.W, o.H)*roundedCornerRatio/2)
}

func (r Rounded) RenderOverlay(buf *bytes.Buffer, o Overlay) {
	c := r.OverlayOutline(o)
	fmt.Fprintf(buf, `  <clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
		overlayClipID, Num(c.X), Num(c.Y), Num(c.W), Num(c.H), Num(c.RX))
	writeImage(buf, o, overlayClipID)
}
