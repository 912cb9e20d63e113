package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/qrdots/pkg/grid"
)

// Layout is the result of a layout pass.
type Layout struct {
	Params      Params
	Columns     int     // grid width in modules
	Rows        int     // grid height in modules
	FrameWidth  float64 // Columns * BlockSize
	FrameHeight float64 // Rows * BlockSize
	Center      Zone
	Corners     []Zone
	Shapes      []Shape // plate first, then modules in row-major order
}

// Counts tallies the shapes of a layout.
type Counts struct {
	Circles  int
	Squares  int // corner modules, excluding the plate
	Dark     int
	Excluded int
}

// Generate lays out g using p. The plate is always Shapes[0]; the remaining
// shapes follow row-major order and skip the center exclusion zone.
//
// p must be valid (see Params.Validate). Generate has no side effects and
// returns identical output for identical input.
func Generate(g grid.Grid, p Params) Layout {
	width, height := g.Width(), g.Height()
	bs := p.BlockSize

	l := Layout{
		Params:      p,
		Columns:     width,
		Rows:        height,
		FrameWidth:  float64(width) * bs,
		FrameHeight: float64(height) * bs,
		Center:      centerZone(width, height, p.CenterSpan()),
		Corners:     cornerZones(width, height, p.CornerMarkerSize),
	}

	l.Shapes = make([]Shape, 0, 1+width*height-l.Center.Cells())
	l.Shapes = append(l.Shapes, Shape{
		Kind:   Square,
		Color:  Background,
		Center: Point{},
		Width:  l.FrameWidth,
		Height: l.FrameHeight,
		Depth:  PlateDepth,
		Row:    -1,
		Col:    -1,
	})

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if l.Center.Contains(row, col) {
				continue
			}
			color := Background
			if g.Dark(row, col) {
				color = Foreground
			}
			kind := Circle
			if l.InCorner(row, col) {
				kind = Square
			}
			l.Shapes = append(l.Shapes, Shape{
				Kind:   kind,
				Color:  color,
				Center: l.Position(row, col),
				Width:  bs,
				Height: bs,
				Depth:  ModuleDepth,
				Row:    row,
				Col:    col,
			})
		}
	}
	return l
}

// Position returns the layout coordinates of the cell (row, col).
func (l Layout) Position(row, col int) Point {
	bs := l.Params.BlockSize
	return Point{
		X: -l.FrameWidth/2 + float64(col)*bs,
		Y: l.FrameHeight/2 - float64(row)*bs,
	}
}

// InCenter reports whether the cell (row, col) is inside the exclusion zone.
func (l Layout) InCenter(row, col int) bool {
	return l.Center.Contains(row, col)
}

// InCorner reports whether the cell (row, col) is inside any corner zone.
func (l Layout) InCorner(row, col int) bool {
	for _, z := range l.Corners {
		if z.Contains(row, col) {
			return true
		}
	}
	return false
}

// CenterBounds returns the rectangle covered by the excluded cells. Overlay
// images are placed here. It is empty when nothing is excluded.
func (l Layout) CenterBounds() Rect {
	if l.Center.Cells() == 0 {
		return Rect{}
	}
	half := l.Params.BlockSize / 2
	tl := l.Position(l.Center.Top, l.Center.Left)
	br := l.Position(l.Center.Bottom, l.Center.Right)
	return Rect{
		MinX: tl.X - half,
		MaxX: br.X - half,
		MinY: br.Y + half,
		MaxY: tl.Y + half,
	}
}

// Bounds returns the rectangle covered by every shape, including the plate.
// Module shapes are centred on their positions, so the extent reaches half a
// block past the plate on the left and top edges.
func (l Layout) Bounds() Rect {
	var r Rect
	for _, s := range l.Shapes {
		r = r.Union(s.Bounds())
	}
	return r
}

// Plate returns the backing plate, or false if the layout has no shapes.
func (l Layout) Plate() (Shape, bool) {
	if len(l.Shapes) == 0 || !l.Shapes[0].IsPlate() {
		return Shape{}, false
	}
	return l.Shapes[0], true
}

// Modules returns the shapes without the plate.
func (l Layout) Modules() []Shape {
	if _, ok := l.Plate(); ok {
		return l.Shapes[1:]
	}
	return l.Shapes
}

// Counts tallies circles, squares and dark modules.
func (l Layout) Counts() Counts {
	c := Counts{Excluded: l.Center.Cells()}
	for _, s := range l.Modules() {
		switch s.Kind {
		case Circle:
			c.Circles++
		case Square:
			c.Squares++
		}
		if s.Color == Foreground {
			c.Dark++
		}
	}
	return c
}

// DrawOrder returns the shapes sorted by depth. Shapes at equal depth keep
// their emission order.
func (l Layout) DrawOrder() []Shape {
	out := slices.Clone(l.Shapes)
	slices.SortStableFunc(out, func(a, b Shape) int {
		return cmp.Compare(a.Depth, b.Depth)
	})
	return out
}
