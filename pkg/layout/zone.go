package layout

// Zone is a half-open block of grid cells: rows [Top, Bottom), cols [Left, Right).
type Zone struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Contains reports whether the cell (row, col) lies in the zone.
func (z Zone) Contains(row, col int) bool {
	return row >= z.Top && row < z.Bottom && col >= z.Left && col < z.Right
}

// Cells returns the number of cells in the zone.
func (z Zone) Cells() int {
	if z.Bottom <= z.Top || z.Right <= z.Left {
		return 0
	}
	return (z.Bottom - z.Top) * (z.Right - z.Left)
}

// centerZone computes the exclusion zone centred on a width x height grid.
// The zone is clamped to the grid so oversized spans exclude everything
// rather than wrapping.
func centerZone(width, height, span int) Zone {
	left := width/2 - span/2
	top := height/2 - span/2
	return clampZone(Zone{Top: top, Bottom: top + span, Left: left, Right: left + span}, width, height)
}

// cornerZones returns the top-left, top-right and bottom-left finder zones.
// Zones larger than the grid are clamped and may overlap.
func cornerZones(width, height, size int) []Zone {
	return []Zone{
		clampZone(Zone{Top: 0, Bottom: size, Left: 0, Right: size}, width, height),
		clampZone(Zone{Top: 0, Bottom: size, Left: width - size, Right: width}, width, height),
		clampZone(Zone{Top: height - size, Bottom: height, Left: 0, Right: size}, width, height),
	}
}

func clampZone(z Zone, width, height int) Zone {
	z.Top = clamp(z.Top, 0, height)
	z.Bottom = clamp(z.Bottom, 0, height)
	z.Left = clamp(z.Left, 0, width)
	z.Right = clamp(z.Right, 0, width)
	return z
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
