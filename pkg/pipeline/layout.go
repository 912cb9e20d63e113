package pipeline

import (
	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
)

// GenerateLayout maps a grid to shapes using the layout options.
func GenerateLayout(g grid.Grid, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	if g.Empty() {
		return layout.Layout{}, errors.New(errors.ErrCodeInvalidGrid, "grid is empty")
	}
	l := layout.Generate(g, opts.Params())

	c := l.Counts()
	opts.Logger.Debug("generated layout",
		"shapes", len(l.Shapes),
		"circles", c.Circles,
		"squares", c.Squares,
		"excluded", c.Excluded,
		"center", l.Center)
	return l, nil
}
