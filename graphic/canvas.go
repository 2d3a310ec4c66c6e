// Package graphic holds the drawing surfaces and the two waveform views.
// Everything here works in logical units; a Surface maps them onto physical
// pixels using its device pixel ratio.
package graphic

import "image/color"

// Point is a position in logical units.
type Point struct {
	X, Y float64
}

// Rect is an on-screen rectangle in logical units.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Canvas is a 2D drawing target addressed in logical units.
type Canvas interface {
	// Size returns the logical width and height.
	Size() (w, h float64)
	Clear(c color.Color)
	Line(a, b Point, width float64, c color.Color)
	// Path strokes a single open polyline through pts.
	Path(pts []Point, width float64, c color.Color)
	// Text labels the line passing through p, starting at p.X.
	Text(p Point, s string, c color.Color)
}
