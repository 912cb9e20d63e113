// Package grid defines the QR module grid that the layout generator consumes.
//
// # Overview
//
// A [Grid] is a rectangular matrix of booleans where true marks a dark
// (foreground) module. Grids are immutable values: they can only be built
// through [New] or [Parse], both of which reject empty and ragged input, so
// every Grid in circulation is well-formed. Accessors never expose the
// underlying storage.
//
// # Text Form
//
// [Parse] reads the character pattern produced by QR text renderers, one
// line per row with a chosen rune for dark modules:
//
//	g, err := grid.Parse("###\n# #\n###", '#')
//
// [Grid.String] writes the same form using [DarkRune] and [LightRune].
//
// # Serialization
//
// Grids serialize to a compact JSON document with one string per row:
//
//	{
//	  "width": 21,
//	  "height": 21,
//	  "rows": ["#######.#...", ...]
//	}
//
// Use [Marshal]/[Unmarshal] for bytes, [Write]/[Read] for streams and
// [WriteFile]/[ReadFile] for files. Decoding re-validates the shape.
package grid
