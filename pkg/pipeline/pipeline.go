// Package pipeline provides the encode → layout → render pipeline for qrdots.
//
// This package implements the complete pipeline used by every CLI command and
// by the preview server. By centralizing this logic, every entry point
// applies the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Encode: Turn the payload into a QR module grid (no quiet zone)
//  2. Layout: Map the grid to shapes (plate, circles, finder squares)
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Payload: "https://example.com",
//	    Formats: []string{"svg", "png"},
//	    Overlay: "face.png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Encode(ctx, opts)
//	l, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrdots/pkg/cache"
	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/httputil"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/qr"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = "dots"

	// DefaultScale is the default PNG scale (pixels per layout unit).
	DefaultScale = 2.0

	// MaxScale bounds PNG output for untrusted requests.
	MaxScale = 16.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Encode options
	Payload string `json:"payload"`
	Level   string `json:"level,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	BlockSize           float64 `json:"block_size,omitempty"`
	CornerMarkerSize    int     `json:"corner_marker_size,omitempty"`
	CenterExclusionSize float64 `json:"center_exclusion_size,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Foreground string   `json:"foreground,omitempty"`
	Background string   `json:"background,omitempty"`
	Overlay    string   `json:"overlay,omitempty"` // Path or http(s) URL of the overlay image
	Scale      float64  `json:"scale,omitempty"`
	Margin     *float64 `json:"margin,omitempty"` // nil means one block

	// Runtime options (not serialized)
	Logger      *log.Logger `json:"-"`
	OverlayData []byte      `json:"-"` // Encoded overlay image; takes precedence over Overlay

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the encoded module grid.
	Grid grid.Grid

	// GridHash is the content hash of the grid.
	GridHash string

	// Layout is the computed shape layout.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Modules    int // Grid edge length
	Version    int // QR version, 0 for non-symbol grids
	Shapes     int
	Circles    int
	Squares    int
	EncodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	EncodeHit bool // Whether the grid came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForEncode(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForEncode checks the payload and normalizes the recovery level.
// An empty payload falls back to qr.DefaultPayload.
func (o *Options) ValidateForEncode() error {
	if o.Payload == "" {
		o.Payload = qr.DefaultPayload
	}
	if err := errors.ValidatePayload([]byte(o.Payload)); err != nil {
		return err
	}
	level, err := qr.ParseLevel(o.Level)
	if err != nil {
		return err
	}
	o.Level = string(level)
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	p := o.Params().WithDefaults()
	o.BlockSize = p.BlockSize
	o.CornerMarkerSize = p.CornerMarkerSize
	o.CenterExclusionSize = p.CenterExclusionSize
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Params().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	palette, err := o.Palette().Normalize()
	if err != nil {
		return err
	}
	o.Foreground, o.Background = palette.Foreground, palette.Background
	if !(o.Scale > 0) || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidParams, "scale must be in (0, %v], got %v", MaxScale, o.Scale)
	}
	if o.Margin != nil && (*o.Margin < 0 || math.IsNaN(*o.Margin) || math.IsInf(*o.Margin, 0)) {
		return errors.New(errors.ErrCodeInvalidParams, "margin must be non-negative, got %v", *o.Margin)
	}
	if o.OverlayData == nil && o.Overlay != "" && !httputil.IsURL(o.Overlay) {
		if err := errors.ValidatePath(o.Overlay); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Params returns the layout parameters.
func (o *Options) Params() layout.Params {
	return layout.Params{
		BlockSize:           o.BlockSize,
		CornerMarkerSize:    o.CornerMarkerSize,
		CenterExclusionSize: o.CenterExclusionSize,
	}
}

// Palette returns the render colours.
func (o *Options) Palette() styles.Palette {
	return styles.Palette{Foreground: o.Foreground, Background: o.Background}
}

// HasOverlay reports whether an overlay image was requested.
func (o *Options) HasOverlay() bool {
	return len(o.OverlayData) > 0 || o.Overlay != ""
}

// LoadOverlay reads the overlay into OverlayData if it is not loaded yet.
// Overlay may be a file path or an http(s) URL.
func (o *Options) LoadOverlay(ctx context.Context) error {
	if o.OverlayData != nil || o.Overlay == "" {
		return nil
	}
	if httputil.IsURL(o.Overlay) {
		o.setLogger()
		o.Logger.Debug("fetching overlay", "url", o.Overlay)
		data, err := httputil.Fetch(ctx, o.Overlay, httputil.FetchOptions{})
		if err != nil {
			return err
		}
		o.OverlayData = data
		return nil
	}
	data, err := os.ReadFile(o.Overlay)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "overlay %s", o.Overlay)
		}
		return fmt.Errorf("read overlay: %w", err)
	}
	o.OverlayData = data
	return nil
}

// GridKeyOpts returns cache key options for encoding.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{Level: o.Level}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		BlockSize:           o.BlockSize,
		CornerMarkerSize:    o.CornerMarkerSize,
		CenterExclusionSize: o.CenterExclusionSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out so they share entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	if format == FormatJSON {
		return cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	}
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Foreground: o.Foreground,
		Background: o.Background,
		Margin:     -1,
	}
	if o.Margin != nil {
		k.Margin = *o.Margin
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if len(o.OverlayData) > 0 {
		k.OverlayHash = cache.Hash(o.OverlayData)
	}
	return k
}
