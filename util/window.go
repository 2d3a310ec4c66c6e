package util

import (
	"math"
)

// MovingWindow keeps the running mean and standard deviation of the last
// Cap values pushed into it.
type MovingWindow struct {
	values []float64
	next   int
	length int

	sum   float64
	sumSq float64
}

// NewMovingWindow returns a new moving window.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{
		values: make([]float64, size),
	}
}

// Update pushes value, evicting the oldest one when full, and returns the new
// mean and standard deviation.
func (mw *MovingWindow) Update(value float64) (float64, float64) {
	if mw.length == len(mw.values) {
		old := mw.values[mw.next]
		mw.sum -= old
		mw.sumSq -= old * old
	} else {
		mw.length++
	}

	mw.values[mw.next] = value
	mw.sum += value
	mw.sumSq += value * value

	if mw.next++; mw.next == len(mw.values) {
		mw.next = 0
	}

	return mw.Stats()
}

// Reset empties the window.
func (mw *MovingWindow) Reset() {
	mw.next = 0
	mw.length = 0
	mw.sum = 0
	mw.sumSq = 0
}

// Len returns how many items in the window
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns max size of window
func (mw *MovingWindow) Cap() int {
	return len(mw.values)
}

// Mean is the moving window average
func (mw *MovingWindow) Mean() float64 {
	if mw.length == 0 {
		return 0
	}
	return mw.sum / float64(mw.length)
}

// StdDev is the population standard deviation of the window.
func (mw *MovingWindow) StdDev() float64 {
	if mw.length < 2 {
		return 0
	}

	mean := mw.Mean()
	// rounding can push this slightly below zero
	return math.Sqrt(math.Abs(mw.sumSq/float64(mw.length) - mean*mean))
}

// Stats returns the statistics of this window
func (mw *MovingWindow) Stats() (float64, float64) {
	return mw.Mean(), mw.StdDev()
}
