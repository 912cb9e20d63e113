package pipeline

import (
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/qr"
)

// Encode turns the payload into a module grid.
// Failures are fatal: there is no fallback payload or level.
func Encode(opts Options) (grid.Grid, error) {
	if err := opts.ValidateForEncode(); err != nil {
		return grid.Grid{}, err
	}
	g, err := qr.Encode([]byte(opts.Payload), qr.Level(opts.Level))
	if err != nil {
		return grid.Grid{}, err
	}
	opts.Logger.Debug("encoded payload",
		"bytes", len(opts.Payload),
		"level", opts.Level,
		"modules", g.Width(),
		"version", qr.Version(g.Width()))
	return g, nil
}
