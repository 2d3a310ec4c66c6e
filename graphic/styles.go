package graphic

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Styles are the colors of both views.
type Styles struct {
	Background color.RGBA
	Trace      color.RGBA
	Grid       color.RGBA
	Center     color.RGBA
	Label      color.RGBA
}

// DefaultStyles is green on near-black.
func DefaultStyles() Styles {
	return Styles{
		Background: color.RGBA{0x10, 0x10, 0x14, 0xff},
		Trace:      color.RGBA{0x4c, 0xff, 0x7a, 0xff},
		Grid:       color.RGBA{0x2e, 0x34, 0x40, 0xff},
		Center:     color.RGBA{0xff, 0xb6, 0xc1, 0xff},
		Label:      color.RGBA{0x8a, 0x93, 0xa6, 0xff},
	}
}

// ParseColor accepts anything tcell knows: names ("lightpink") or "#rrggbb".
func ParseColor(name string) (color.RGBA, error) {
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}

	r, g, b := c.RGB()
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}, nil
}

// Hex formats a color the way ParseColor reads it.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// StylesFromStrings parses the five colors in field order. Empty strings keep
// the default for that field.
func StylesFromStrings(bg, trace, grid, center, label string) (Styles, error) {
	s := DefaultStyles()

	for _, f := range []struct {
		dst  *color.RGBA
		name string
	}{
		{&s.Background, bg},
		{&s.Trace, trace},
		{&s.Grid, grid},
		{&s.Center, center},
		{&s.Label, label},
	} {
		if f.name == "" {
			continue
		}

		c, err := ParseColor(f.name)
		if err != nil {
			return s, err
		}
		*f.dst = c
	}

	return s, nil
}

// AsStrings returns the five colors in the order StylesFromStrings takes them.
func (s Styles) AsStrings() (bg, trace, grid, center, label string) {
	return Hex(s.Background), Hex(s.Trace), Hex(s.Grid), Hex(s.Center), Hex(s.Label)
}

// Cell returns the terminal style for a foreground color on the background.
func (s Styles) Cell(fg color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
}
