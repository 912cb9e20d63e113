// Package pkg provides the core libraries for qrdots QR layouts.
//
// # Overview
//
// qrdots turns a payload into a QR code drawn as dots: each dark data module
// becomes a circle, the three finder patterns become squares, and a square
// zone in the middle is left empty for an overlay image. The pkg directory is
// organized by pipeline stage:
//
//  1. [qr] and [grid] - Encode payloads into module grids
//  2. [layout] - Map grids to positioned shapes
//  3. [overlay] - Load and place the center image
//  4. [render] - Draw layouts as SVG, PNG, PDF or JSON
//  5. [pipeline] - Orchestration (encode → layout → render) with caching
//  6. [cache] - File, Redis and MongoDB artifact caches
//
// # Architecture
//
// The typical data flow:
//
//	payload
//	   ↓
//	[qr] package (error correction level, version selection)
//	   ↓
//	[grid] package (square boolean matrix, no quiet zone)
//	   ↓
//	[layout] package (plate, circles, finder squares, center zone)
//	   ↓
//	[render/sink] package (+ [overlay] in the center zone)
//	   ↓
//	SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/qrdots/pkg/layout"
//	    "github.com/matzehuels/qrdots/pkg/qr"
//	    "github.com/matzehuels/qrdots/pkg/render/sink"
//	)
//
//	g, err := qr.Encode([]byte("https://example.com"), qr.Medium)
//	if err != nil {
//	    return err
//	}
//	l, err := layout.Generate(g, layout.Params{})
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(l)
//
// Most callers should use [pipeline.Runner], which applies defaults,
// validates options and caches every stage.
package pkg
