// Package layout maps a QR module grid to positioned 2D shapes.
//
// # Overview
//
// [Generate] is the heart of qrdots. Given a [grid.Grid] and [Params] it
// produces a [Layout] whose Shapes slice holds one drawable [Shape] per grid
// cell plus a backing plate:
//
//   - The plate is a Background square covering the whole frame, emitted
//     first and tagged with a lower depth so renderers draw it underneath.
//   - Cells inside the three finder-pattern corner zones become squares.
//   - Every other cell becomes a circle.
//   - Cells inside the center exclusion zone emit nothing, leaving room for
//     an overlay image.
//
// Colour is Foreground for dark modules and Background for light ones. No
// other colours exist at this level; sinks map them to concrete palettes.
//
// # Coordinates
//
// Positions use the units of [Params.BlockSize] with the origin at the
// frame's centre and y pointing up. Row 0 is at the top and column 0 at the
// left:
//
//	x = -FrameWidth/2  + col*BlockSize
//	y =  FrameHeight/2 - row*BlockSize
//
// # Zones
//
// Corner zones are CornerMarkerSize modules square at the top-left,
// top-right and bottom-left corners. There is no bottom-right zone, matching
// QR finder-pattern placement.
//
// The center zone is sized in pixels: it spans
// floor(CenterExclusionSize/BlockSize) modules in each dimension, centred on
// the grid midpoint using integer module arithmetic. With the defaults
// (block 10, center 70) a 21x21 symbol excludes modules [7,14) in both axes.
//
// # Serialization
//
// [Layout.Export] converts a layout into a [Document] for JSON output and
// caching; [Parse] converts it back. Documents are self-describing: they
// carry the parameters and zones alongside the shapes.
package layout
