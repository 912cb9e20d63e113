// Package styles defines how layout shapes are drawn and coloured.
//
// A [Style] turns one [Shape] into SVG markup and also exposes the geometry
// it would draw as an [Outline], so raster sinks can reproduce the same look
// without parsing SVG. A [Palette] maps the two logical layout colours onto
// concrete hex colours.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/layout"
)

// Style defines the visual appearance of rendered shapes.
type Style interface {
	// Name returns the identifier used in options and layout metadata.
	Name() string
	// RenderDefs writes SVG <defs> content (clip paths, filters).
	RenderDefs(buf *bytes.Buffer)
	// Outline returns the geometry drawn for s.
	Outline(s Shape) Outline
	// OverlayOutline returns the clip geometry of the overlay image.
	OverlayOutline(o Overlay) Outline
	// RenderShape writes the SVG for a single shape.
	RenderShape(buf *bytes.Buffer, s Shape)
	// RenderOverlay writes the SVG for the center overlay image.
	RenderOverlay(buf *bytes.Buffer, o Overlay)
}

// Shape is a layout shape converted to canvas coordinates (origin top-left,
// y down).
type Shape struct {
	Kind       layout.Kind
	X, Y, W, H float64 // Top-left corner and size
	CX, CY     float64 // Centre
	Fill       string  // Hex colour
	Row, Col   int     // Cell coordinates, -1 for the plate
	Plate      bool
}

// Overlay is a positioned image in canvas coordinates.
type Overlay struct {
	X, Y, W, H float64
	Href       string // Usually a data URI
}

// Outline is the drawn geometry of a shape. Circles use CX, CY and R;
// rectangles use X, Y, W, H and the corner radius RX.
type Outline struct {
	Circle     bool
	CX, CY, R  float64
	X, Y, W, H float64
	RX         float64
}

// Names lists the available style names.
func Names() []string { return []string{"dots", "rounded"} }

// Lookup returns the style registered under name.
func Lookup(name string) (Style, error) {
	switch name {
	case "", "dots":
		return Dots{}, nil
	case "rounded":
		return Rounded{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %v)", name, Names())
}

// EscapeXML escapes s for use inside an XML attribute or text node.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a coordinate with the shortest exact representation.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeOutline(buf *bytes.Buffer, o Outline, fill string) {
	if o.Circle {
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			Num(o.CX), Num(o.CY), Num(o.R), fill)
		return
	}
	if o.RX > 0 {
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
			Num(o.X), Num(o.Y), Num(o.W), Num(o.H), Num(o.RX), fill)
		return
	}
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		Num(o.X), Num(o.Y), Num(o.W), Num(o.H), fill)
}

func overlayOutline(o Overlay, rx float64) Outline {
	return Outline{X: o.X, Y: o.Y, W: o.W, H: o.H, RX: rx}
}

func writeImage(buf *bytes.Buffer, o Overlay, clip string) {
	attr := ""
	if clip != "" {
		attr = fmt.Sprintf(` clip-path="url(#%s)"`, clip)
	}
	fmt.Fprintf(buf, `  <image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" href="%s"%s/>`+"\n",
		Num(o.X), Num(o.Y), Num(o.W), Num(o.H), EscapeXML(o.Href), attr)
}

func squareOutline(s Shape, rx float64) Outline {
	return Outline{X: s.X, Y: s.Y, W: s.W, H: s.H, RX: rx}
}
