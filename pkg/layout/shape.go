package layout

import "fmt"

// Kind is the geometric primitive used to draw a shape.
type Kind uint8

const (
	// Circle is a disc whose diameter equals the block size.
	Circle Kind = iota
	// Square is an axis-aligned square (or the rectangular plate).
	Square
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "circle":
		*k = Circle
	case "square":
		*k = Square
	default:
		return fmt.Errorf("unknown shape kind %q", b)
	}
	return nil
}

// Color is the logical fill of a shape. Concrete colours are chosen by the renderer.
type Color uint8

const (
	// Foreground fills dark modules.
	Foreground Color = iota
	// Background fills light modules and the plate.
	Background
)

func (c Color) String() string {
	switch c {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "foreground":
		*c = Foreground
	case "background":
		*c = Background
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

// Depth values for compositing. Lower depths are drawn first.
const (
	PlateDepth  = -1
	ModuleDepth = 0
)

// Point is a position in layout coordinates (origin at the frame centre, y up).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is one drawable unit of a layout.
type Shape struct {
	Kind   Kind    `json:"kind"`
	Color  Color   `json:"color"`
	Center Point   `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  int     `json:"depth"`
	Row    int     `json:"row"` // -1 for the plate
	Col    int     `json:"col"` // -1 for the plate
}

// IsPlate reports whether s is the backing plate rather than a module.
func (s Shape) IsPlate() bool { return s.Row < 0 }

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// Contains reports whether p lies in the half-open rectangle [Min, Max).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Bounds returns the rectangle covered by the shape.
func (s Shape) Bounds() Rect {
	return Rect{
		MinX: s.Center.X - s.Width/2,
		MinY: s.Center.Y - s.Height/2,
		MaxX: s.Center.X + s.Width/2,
		MaxY: s.Center.Y + s.Height/2,
	}
}
