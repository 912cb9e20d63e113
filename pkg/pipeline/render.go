package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/overlay"
	"github.com/matzehuels/qrdots/pkg/render/sink"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
//
// Shape drawing and overlay placement are independent steps; every sink
// draws the shapes first and then places the overlay in the center zone.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := opts.LoadOverlay(ctx); err != nil {
		return nil, err
	}

	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	img, err := decodeOverlay(opts)
	if err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(style, img, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(style, img, opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l,
				sink.WithJSONPayload(opts.Payload),
				sink.WithJSONLevel(opts.Level),
				sink.WithJSONStyle(opts.Style))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from a serialized layout document.
// Style, payload and level recorded in the document fill unset options.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	doc, err := layout.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	l, err := layout.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return Render(ctx, l, applyLayoutMetadata(opts, doc.Meta))
}

// applyLayoutMetadata applies document metadata to options if not already set.
// This ensures that serialized layouts keep their original rendering settings.
func applyLayoutMetadata(opts Options, meta *layout.Meta) Options {
	if meta == nil {
		return opts
	}
	if opts.Style == "" {
		opts.Style = meta.Style
	}
	if opts.Payload == "" {
		opts.Payload = meta.Payload
	}
	if opts.Level == "" {
		opts.Level = meta.Level
	}
	return opts
}

func decodeOverlay(opts Options) (*overlay.Image, error) {
	if len(opts.OverlayData) == 0 {
		return nil, nil
	}
	img, err := overlay.Decode(bytes.NewReader(opts.OverlayData))
	if err != nil {
		return nil, err
	}
	w, h := img.Size()
	opts.Logger.Debug("loaded overlay", "width", w, "height", h)
	return img, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(style styles.Style, img *overlay.Image, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithPalette(opts.Palette()),
	}
	if img != nil {
		svgOpts = append(svgOpts, sink.WithOverlay(img))
	}
	if opts.Margin != nil {
		svgOpts = append(svgOpts, sink.WithMargin(*opts.Margin))
	}
	return svgOpts
}

// buildPNGOptions builds PNG rendering options.
func buildPNGOptions(style styles.Style, img *overlay.Image, opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{
		sink.WithPNGStyle(style),
		sink.WithPNGPalette(opts.Palette()),
		sink.WithScale(opts.Scale),
	}
	if img != nil {
		pngOpts = append(pngOpts, sink.WithPNGOverlay(img))
	}
	if opts.Margin != nil {
		pngOpts = append(pngOpts, sink.WithPNGMargin(*opts.Margin))
	}
	return pngOpts
}
