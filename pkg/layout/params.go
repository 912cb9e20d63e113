package layout

import (
	"math"

	"github.com/matzehuels/qrdots/pkg/errors"
)

const (
	// DefaultBlockSize is the distance between adjacent module centres.
	DefaultBlockSize = 10.0

	// DefaultCornerMarkerSize is the edge length of a finder pattern in modules.
	DefaultCornerMarkerSize = 7

	// DefaultCenterExclusionSize is the edge length of the overlay area in pixels.
	DefaultCenterExclusionSize = 70.0
)

// Params configures a layout pass.
type Params struct {
	BlockSize           float64 `json:"block_size" toml:"block_size"`
	CornerMarkerSize    int     `json:"corner_marker_size" toml:"corner_marker_size"`
	CenterExclusionSize float64 `json:"center_exclusion_size" toml:"center_exclusion_size"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		BlockSize:           DefaultBlockSize,
		CornerMarkerSize:    DefaultCornerMarkerSize,
		CenterExclusionSize: DefaultCenterExclusionSize,
	}
}

// NewParams builds validated parameters.
func NewParams(blockSize float64, cornerMarkerSize int, centerExclusionSize float64) (Params, error) {
	p := Params{
		BlockSize:           blockSize,
		CornerMarkerSize:    cornerMarkerSize,
		CenterExclusionSize: centerExclusionSize,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that every size is positive and finite.
func (p Params) Validate() error {
	if !(p.BlockSize > 0) || math.IsInf(p.BlockSize, 0) {
		return errors.New(errors.ErrCodeInvalidParams, "block size must be positive, got %v", p.BlockSize)
	}
	if p.CornerMarkerSize <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "corner marker size must be positive, got %d", p.CornerMarkerSize)
	}
	if !(p.CenterExclusionSize > 0) || math.IsInf(p.CenterExclusionSize, 0) {
		return errors.New(errors.ErrCodeInvalidParams, "center exclusion size must be positive, got %v", p.CenterExclusionSize)
	}
	return nil
}

// WithDefaults returns p with zero fields replaced by their defaults.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.BlockSize == 0 {
		p.BlockSize = d.BlockSize
	}
	if p.CornerMarkerSize == 0 {
		p.CornerMarkerSize = d.CornerMarkerSize
	}
	if p.CenterExclusionSize == 0 {
		p.CenterExclusionSize = d.CenterExclusionSize
	}
	return p
}

// CenterSpan returns the edge length of the center exclusion zone in modules.
// The exclusion size is given in pixels and converted with the block size,
// rounding down. Spans too large to represent saturate at math.MaxInt32,
// which already exceeds any QR grid.
func (p Params) CenterSpan() int {
	q := math.Floor(p.CenterExclusionSize / p.BlockSize)
	if !(q > 0) {
		return 0
	}
	return int(min(q, math.MaxInt32))
}
