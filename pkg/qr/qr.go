// Package qr encodes payloads into module grids using github.com/skip2/go-qrcode.
//
// The encoder runs with the quiet zone disabled so that the resulting
// [grid.Grid] has exactly one cell per module, which is what the layout
// generator expects.
//
//	g, err := qr.Encode([]byte(qr.DefaultPayload), qr.Medium)
package qr

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/grid"
)

// DefaultPayload is the text rendered when no payload is given.
const DefaultPayload = "Merry christmas NERDS!"

// Level is the error recovery level of the encoded symbol.
type Level string

// Recovery levels, from least to most redundant.
const (
	Low     Level = "low"     // ~7% recovery
	Medium  Level = "medium"  // ~15% recovery
	High    Level = "high"    // ~25% recovery
	Highest Level = "highest" // ~30% recovery
)

// DefaultLevel is the recovery level used when none is given.
const DefaultLevel = Medium

var levels = map[Level]qrcode.RecoveryLevel{
	Low:     qrcode.Low,
	Medium:  qrcode.Medium,
	High:    qrcode.High,
	Highest: qrcode.Highest,
}

// ParseLevel parses a recovery level name. Single-letter aliases l, m, q and h
// are accepted (q maps to high, h to highest). Empty input yields DefaultLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel, nil
	case "low", "l":
		return Low, nil
	case "medium", "m":
		return Medium, nil
	case "high", "q":
		return High, nil
	case "highest", "h":
		return Highest, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLevel,
		"invalid recovery level: %q (must be one of: low, medium, high, highest)", s)
}

// Encode encodes payload at the given recovery level and returns the module grid.
// An empty level means DefaultLevel.
func Encode(payload []byte, level Level) (grid.Grid, error) {
	if err := errors.ValidatePayload(payload); err != nil {
		return grid.Grid{}, err
	}
	if level == "" {
		level = DefaultLevel
	}
	rl, ok := levels[level]
	if !ok {
		return grid.Grid{}, errors.New(errors.ErrCodeInvalidLevel, "unknown recovery level: %q", level)
	}

	code, err := qrcode.New(string(payload), rl)
	if err != nil {
		return grid.Grid{}, errors.Wrap(errors.ErrCodeEncode, err, "encode %d bytes at %s recovery", len(payload), level)
	}
	code.DisableBorder = true

	g, err := grid.New(code.Bitmap())
	if err != nil {
		return grid.Grid{}, errors.Wrap(errors.ErrCodeInternal, err, "encoder produced a malformed bitmap")
	}
	return g, nil
}

// Version returns the QR version (1-40) of a symbol with the given edge length
// in modules, or 0 if the size is not a valid symbol size.
func Version(size int) int {
	if size < 21 || size > 177 || (size-17)%4 != 0 {
		return 0
	}
	return (size - 17) / 4
}
