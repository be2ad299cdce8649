package starter

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Pixel is a straight-alpha RGBA value as read and written by PixelMode.
type Pixel struct {
	R, G, B, A uint8
}

// RGB returns an opaque pixel.
func RGB(r, g, b uint8) Pixel { return Pixel{r, g, b, 255} }

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{p.R, p.G, p.B, p.A}.RGBA()
}

func (p Pixel) nrgba() color.NRGBA { return color.NRGBA{p.R, p.G, p.B, p.A} }

// Style is the presentation of one character cell. A nil Color or
// Background means the mode default.
type Style struct {
	Color      color.Color
	Background color.Color
	Bold       bool
	Italic     bool
	Underline  bool
}

// StyleOption changes one field of a Style.
type StyleOption func(*Style)

// WithColor sets the glyph color. A nil color leaves the field unchanged.
func WithColor(c color.Color) StyleOption {
	return func(s *Style) {
		if c != nil {
			s.Color = c
		}
	}
}

// WithBackground sets the cell background. A nil color leaves the field
// unchanged.
func WithBackground(c color.Color) StyleOption {
	return func(s *Style) {
		if c != nil {
			s.Background = c
		}
	}
}

// Bold, Italic and Underline turn on the matching attribute. Attributes are
// only ever added by SetCharStyle; start from a fresh Style with
// ResetCharStyle to clear them.
func Bold() StyleOption      { return func(s *Style) { s.Bold = true } }
func Italic() StyleOption    { return func(s *Style) { s.Italic = true } }
func Underline() StyleOption { return func(s *Style) { s.Underline = true } }

// ParseColor accepts a CSS color name, "transparent", or a hex form
// #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// MustParseColor is like ParseColor but panics on error. For literals.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
