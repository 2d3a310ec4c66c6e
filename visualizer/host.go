package visualizer

import (
	"github.com/noriah/synthscope/frame"
	"github.com/noriah/synthscope/graphic"
)

// SurfaceID names one of the two drawing surfaces.
type SurfaceID int

// Surfaces
const (
	LinearSurface SurfaceID = iota
	CircularSurface

	surfaceCount
)

func (id SurfaceID) String() string {
	switch id {
	case LinearSurface:
		return "linear"
	case CircularSurface:
		return "circular"
	default:
		return "unknown"
	}
}

// Host is the display environment the controller runs in. Every method is
// called from the host's frame loop goroutine.
type Host interface {
	// Surface returns the drawing surface shown for id.
	Surface(id SurfaceID) *graphic.Surface
	// Bounds returns the current on-screen rectangle of id in logical units.
	Bounds(id SurfaceID) graphic.Rect
	DevicePixelRatio() float64
	// OnResize subscribes fn to viewport changes and returns its unsubscribe.
	OnResize(fn func()) (remove func())
	RequestFrame(cb frame.Callback) frame.Handle
	CancelFrame(h frame.Handle)
}
