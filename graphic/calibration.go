package graphic

import (
	"fmt"
	"math"
)

// Levels are the calibrated dB marks, loudest first.
var Levels = [...]float64{0, -6, -12, -18, -24, -30}

// DBToAmplitude converts decibels to a linear amplitude.
func DBToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}

// Gridline is one calibration level placed on a surface.
type Gridline struct {
	DB     float64
	Offset float64 // distance from the center line
	Above  float64 // y of the line above center
	Below  float64 // y of the line below center
}

// Label is the text drawn next to the line.
func (g Gridline) Label() string {
	return fmt.Sprintf("%gdB", g.DB)
}

// Calibrate places every level around centerY. A full-scale signal reaches
// the surface edge, so 0 dB sits exactly centerY away from the center.
func Calibrate(centerY float64) []Gridline {
	lines := make([]Gridline, len(Levels))

	for i, db := range Levels {
		off := DBToAmplitude(db) * centerY
		lines[i] = Gridline{
			DB:     db,
			Offset: off,
			Above:  centerY - off,
			Below:  centerY + off,
		}
	}

	return lines
}
