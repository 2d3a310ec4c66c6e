package graphic

import (
	"github.com/noriah/synthscope/input"
)

// Stroke widths in logical units.
const (
	GridWidth   = 1.0
	CenterWidth = 2.0
	TraceWidth  = 1.5

	labelInset = 4.0
)

// CenterLabel marks the zero line.
const CenterLabel = "0dB"

// Linear draws the time-domain trace over dB gridlines.
type Linear struct {
	Styles Styles

	pts []Point
}

// Draw renders one frame of snap onto c.
func (l *Linear) Draw(c Canvas, snap input.Snapshot) {
	w, h := c.Size()

	c.Clear(l.Styles.Background)

	if h <= 0 {
		return
	}

	cy := h / 2

	for _, g := range Calibrate(cy) {
		c.Line(Point{0, g.Above}, Point{w, g.Above}, GridWidth, l.Styles.Grid)
		c.Line(Point{0, g.Below}, Point{w, g.Below}, GridWidth, l.Styles.Grid)

		c.Text(Point{labelInset, g.Above}, g.Label(), l.Styles.Label)
		c.Text(Point{labelInset, g.Below}, g.Label(), l.Styles.Label)
	}

	c.Line(Point{0, cy}, Point{w, cy}, CenterWidth, l.Styles.Center)
	c.Text(Point{labelInset, cy}, CenterLabel, l.Styles.Center)

	if len(snap) == 0 || w <= 0 {
		return
	}

	l.pts = appendLinear(l.pts[:0], snap, w, h)
	c.Path(l.pts, TraceWidth, l.Styles.Trace)
}

// LinearTrace maps every sample of snap onto a w by h surface.
func LinearTrace(snap input.Snapshot, w, h float64) []Point {
	return appendLinear(make([]Point, 0, len(snap)), snap, w, h)
}

func appendLinear(dst []Point, snap input.Snapshot, w, h float64) []Point {
	n := float64(len(snap))
	cy := h / 2

	for i := range snap {
		v := snap.Amplitude(i)
		dst = append(dst, Point{
			X: float64(i) * w / n,
			Y: cy - v*cy,
		})
	}

	return dst
}
