package grid

import (
	"strings"

	"github.com/matzehuels/qrdots/pkg/errors"
)

const (
	// DarkRune marks a dark module in the text and JSON forms.
	DarkRune = '#'
	// LightRune marks a light module in the text and JSON forms.
	LightRune = '.'
)

// Grid is an immutable rectangular matrix of QR modules.
// The zero value is an empty grid; use New or Parse to build a usable one.
type Grid struct {
	cells  []bool
	width  int
	height int
}

// New builds a Grid from rows of modules. Every row must have the same,
// non-zero length. The input is copied.
func New(rows [][]bool) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one row")
	}
	width := len(rows[0])
	if width == 0 {
		return Grid{}, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one column")
	}

	cells := make([]bool, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Grid{}, errors.New(errors.ErrCodeInvalidGrid,
				"row %d has %d modules, want %d", i, len(row), width)
		}
		cells = append(cells, row...)
	}
	return Grid{cells: cells, width: width, height: len(rows)}, nil
}

// Parse builds a Grid from a text pattern with one line per row. Runes equal
// to dark are dark modules; any other rune is light. A trailing newline and
// carriage returns are ignored.
func Parse(pattern string, dark rune) (Grid, error) {
	pattern = strings.ReplaceAll(pattern, "\r", "")
	pattern = strings.TrimSuffix(pattern, "\n")
	if pattern == "" {
		return Grid{}, errors.New(errors.ErrCodeInvalidGrid, "pattern is empty")
	}

	lines := strings.Split(pattern, "\n")
	rows := make([][]bool, len(lines))
	for i, line := range lines {
		row := make([]bool, 0, len(line))
		for _, r := range line {
			row = append(row, r == dark)
		}
		rows[i] = row
	}
	return New(rows)
}

// Width returns the number of modules per row.
func (g Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g Grid) Height() int { return g.height }

// Empty reports whether g is the zero Grid.
func (g Grid) Empty() bool { return g.width == 0 || g.height == 0 }

// Dark reports whether the module at (row, col) is dark.
// Coordinates outside the grid are light.
func (g Grid) Dark(row, col int) bool {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return false
	}
	return g.cells[row*g.width+col]
}

// Rows returns a copy of the modules as a slice of rows.
func (g Grid) Rows() [][]bool {
	rows := make([][]bool, g.height)
	for r := range rows {
		rows[r] = append([]bool(nil), g.cells[r*g.width:(r+1)*g.width]...)
	}
	return rows
}

// DarkCount returns the number of dark modules.
func (g Grid) DarkCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// FlipRows returns a copy of g with the row order reversed.
func (g Grid) FlipRows() Grid {
	out := Grid{cells: make([]bool, len(g.cells)), width: g.width, height: g.height}
	for r := 0; r < g.height; r++ {
		src := g.cells[r*g.width : (r+1)*g.width]
		copy(out.cells[(g.height-1-r)*g.width:], src)
	}
	return out
}

// Equal reports whether two grids have the same shape and modules.
func (g Grid) Equal(o Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid in text form using DarkRune and LightRune.
func (g Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for r := 0; r < g.height; r++ {
		b.WriteString(g.row(r))
		b.WriteByte('\n')
	}
	return b.String()
}

func (g Grid) row(r int) string {
	buf := make([]byte, g.width)
	for c := 0; c < g.width; c++ {
		if g.cells[r*g.width+c] {
			buf[c] = DarkRune
		} else {
			buf[c] = LightRune
		}
	}
	return string(buf)
}
