// Package sink provides output format renderers for QR layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: vector output drawn by a [styles.Style]
//   - PNG: raster output drawn with fogleman/gg, no external tools needed
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the layout document, for caching and re-rendering
//
// # Coordinates
//
// Layouts use a y-up coordinate system centred on the grid. Sinks flip the
// y axis and size the canvas from [layout.Layout.Bounds] plus a margin, which
// defaults to one block. Shapes are drawn in depth order, so the background
// plate always lands underneath every module.
//
// # Overlay
//
// An overlay image passed with [WithOverlay] or [WithPNGOverlay] is fitted
// into the center exclusion zone, keeping its aspect ratio, and drawn after
// the shapes:
//
//	img, err := overlay.Load("face.png")
//	svg, err := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Rounded{}),
//	    sink.WithOverlay(img),
//	)
//
// [layout.Layout]: github.com/matzehuels/qrdots/pkg/layout.Layout
// [layout.Layout.Bounds]: github.com/matzehuels/qrdots/pkg/layout.Layout.Bounds
// [styles.Style]: github.com/matzehuels/qrdots/pkg/render/styles.Style
package sink
