// Package window provides Window Functions for shaping sample buffers
//
// See https://wikipedia.org/wiki/Window_function
package window

import "math"

// CosSum modifies the buffer to conform to a cosine sum window following a0
func CosSum(buf []float64, a0 float64) {
	var size = len(buf)
	var a1 = 1.0 - a0
	var coef = 2.0 * math.Pi / float64(size)
	for n := 0; n < size; n++ {
		buf[n] *= (a0 - a1*math.Cos(coef*float64(n)))
	}
}

// Hann modifies the buffer to a Hann window
func Hann(buf []float64) {
	CosSum(buf, 0.5)
}

// FadeIn ramps the first n samples up along the rising half of a Hann window.
func FadeIn(buf []float64, n int) {
	n = min(n, len(buf))
	for i, w := range ramp(n) {
		buf[i] *= w
	}
}

// FadeOut ramps the last n samples down to zero, mirroring FadeIn.
func FadeOut(buf []float64, n int) {
	n = min(n, len(buf))
	last := len(buf) - 1
	for i, w := range ramp(n) {
		buf[last-i] *= w
	}
}

// ramp is the first n points of a Hann window 2n long.
func ramp(n int) []float64 {
	if n <= 0 {
		return nil
	}

	w := make([]float64, 2*n)
	for i := range w {
		w[i] = 1
	}
	Hann(w)

	return w[:n]
}
