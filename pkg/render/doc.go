// Package render turns layouts into images.
//
// # Overview
//
// Rendering is split into three layers:
//
//   - [styles]: how a single [layout.Shape] is drawn as SVG, plus colour palettes
//   - [sink]: output formats (SVG, PNG, PDF, JSON) built on a computed layout
//   - this package: format conversion helpers shared by the sinks
//
// # Format Conversion
//
// [ToPDF] converts any SVG document to PDF using the external rsvg-convert
// tool (from librsvg):
//
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Dots{}))
//	pdf, err := render.ToPDF(ctx, svg)
//
// PNG output does not need rsvg-convert; [sink.RenderPNG] rasterizes directly.
//
// [styles]: github.com/matzehuels/qrdots/pkg/render/styles
// [sink]: github.com/matzehuels/qrdots/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/qrdots/pkg/render/sink.RenderPNG
// [layout.Shape]: github.com/matzehuels/qrdots/pkg/layout.Shape
package render
