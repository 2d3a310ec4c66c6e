package graphic

import (
	"math"

	"github.com/noriah/synthscope/input"
)

// Margin keeps the polar trace off the surface edge.
const Margin = 20.0

// Circular draws the samples around a full turn, the distance from the
// center following the magnitude of each sample. The sign is dropped.
type Circular struct {
	Styles Styles

	pts []Point
}

// MaxRadius is the largest distance from center a sample can reach.
func MaxRadius(w, h float64) float64 {
	return math.Min(w/2, h/2) - Margin
}

// Draw renders one frame of snap onto c.
func (r *Circular) Draw(c Canvas, snap input.Snapshot) {
	w, h := c.Size()

	c.Clear(r.Styles.Background)

	if len(snap) == 0 || MaxRadius(w, h) <= 0 {
		return
	}

	r.pts = appendPolar(r.pts[:0], snap, w, h)
	c.Path(r.pts, TraceWidth, r.Styles.Trace)
}

// PolarTrace maps every sample of snap onto a w by h surface.
func PolarTrace(snap input.Snapshot, w, h float64) []Point {
	return appendPolar(make([]Point, 0, len(snap)), snap, w, h)
}

func appendPolar(dst []Point, snap input.Snapshot, w, h float64) []Point {
	n := float64(len(snap))
	cx, cy := w/2, h/2
	maxR := math.Max(MaxRadius(w, h), 0)

	for i := range snap {
		angle := float64(i) / n * 2 * math.Pi
		radius := math.Abs(snap.Amplitude(i)) * maxR

		dst = append(dst, Point{
			X: cx + math.Cos(angle)*radius,
			Y: cy + math.Sin(angle)*radius,
		})
	}

	return dst
}
