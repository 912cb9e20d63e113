package styles

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/qrdots/pkg/errors"
	"github.com/matzehuels/qrdots/pkg/layout"
)

// Palette maps the logical layout colours to hex colours.
type Palette struct {
	Foreground string `json:"foreground" toml:"foreground"`
	Background string `json:"background" toml:"background"`
}

// DefaultPalette is black modules on a white plate.
var DefaultPalette = Palette{Foreground: "#000000", Background: "#ffffff"}

// Fill returns the hex colour for c.
func (p Palette) Fill(c layout.Color) string {
	if c == layout.Foreground {
		return p.Foreground
	}
	return p.Background
}

// Invert swaps foreground and background.
func (p Palette) Invert() Palette {
	return Palette{Foreground: p.Background, Background: p.Foreground}
}

// Normalize validates both colours and returns them in #rrggbb form.
// Empty fields fall back to DefaultPalette.
func (p Palette) Normalize() (Palette, error) {
	if p.Foreground == "" {
		p.Foreground = DefaultPalette.Foreground
	}
	if p.Background == "" {
		p.Background = DefaultPalette.Background
	}
	fg, err := ParseHexColor(p.Foreground)
	if err != nil {
		return Palette{}, err
	}
	bg, err := ParseHexColor(p.Background)
	if err != nil {
		return Palette{}, err
	}
	return Palette{Foreground: Hex(fg), Background: Hex(bg)}, nil
}

// ParseHexColor parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	var c color.NRGBA
	if len(h) != 6 {
		return c, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
