package display

import (
	"image"
	"image/color"

	"github.com/noriah/synthscope/graphic"
)

const (
	brailleBase rune = '⠀'

	dotsWide = 2
	dotsTall = 4

	// threshold is the summed channel distance from the background a dot
	// needs before it counts as lit.
	threshold = 96
)

// dotBits is the braille bit for each dot, indexed [y][x].
var dotBits = [dotsTall][dotsWide]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell returns the braille glyph for the 2x4 dots at (col, row) of img and
// the color of its brightest dot. ok is false when no dot is lit.
func Cell(img *image.RGBA, bg color.RGBA, col, row int) (r rune, fg color.RGBA, ok bool) {
	best := 0
	r = brailleBase

	for dy := 0; dy < dotsTall; dy++ {
		for dx := 0; dx < dotsWide; dx++ {
			p := image.Pt(col*dotsWide+dx, row*dotsTall+dy)
			if !p.In(img.Rect) {
				continue
			}

			c := img.RGBAAt(p.X, p.Y)
			d := distance(c, bg)
			if d < threshold {
				continue
			}

			r |= dotBits[dy][dx]
			if d > best {
				best, fg = d, c
			}
		}
	}

	return r, fg, best > 0
}

func distance(a, b color.RGBA) int {
	return abs(int(a.R)-int(b.R)) + abs(int(a.G)-int(b.G)) + abs(int(a.B)-int(b.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// blit draws s at its bounds. Labels are written as plain text over the dots.
func (t *Terminal) blit(s *graphic.Surface) {
	img := s.Image()
	if img.Rect.Empty() {
		return
	}

	b := s.Bounds()
	col0 := int(b.X)
	row0 := int(b.Y) / unitsPerRow

	cols := (img.Rect.Dx() + dotsWide - 1) / dotsWide
	rows := (img.Rect.Dy() + dotsTall - 1) / dotsTall

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, fg, ok := Cell(img, t.styles.Background, col, row)
			if !ok {
				continue
			}

			t.screen.SetContent(col0+col, row0+row, r, nil, t.styles.Cell(fg))
		}
	}

	for _, l := range s.Labels() {
		fg, ok := l.Color.(color.RGBA)
		if !ok {
			fg = t.styles.Label
		}

		row := int(b.Y+l.At.Y) / unitsPerRow
		if row >= row0+rows {
			row = row0 + rows - 1
		}

		t.print(col0+int(l.At.X), row, l.Text, t.styles.Cell(fg))
	}
}
