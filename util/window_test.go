package util

import (
	"math"
	"testing"
)

func TestMovingWindow(t *testing.T) {
	mw := NewMovingWindow(3)

	if mw.Cap() != 3 || mw.Len() != 0 || mw.Mean() != 0 {
		t.Fatalf("new window not empty")
	}

	mean, sd := mw.Update(2)
	if mean != 2 || sd != 0 {
		t.Errorf("one value: %v %v", mean, sd)
	}

	mw.Update(4)
	mean, sd = mw.Update(6)
	if mean != 4 || math.Abs(sd-math.Sqrt(8.0/3)) > 1e-9 {
		t.Errorf("full window: %v %v", mean, sd)
	}

	// evicts the 2
	mean, _ = mw.Update(8)
	if mean != 6 || mw.Len() != 3 {
		t.Errorf("after eviction: mean %v len %d", mean, mw.Len())
	}

	mw.Reset()
	if mw.Len() != 0 || mw.Mean() != 0 || mw.StdDev() != 0 {
		t.Errorf("reset window not empty")
	}

	if NewMovingWindow(0).Cap() != 1 {
		t.Errorf("zero size not raised to one")
	}
}
