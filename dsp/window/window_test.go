package window

import (
	"math"
	"testing"
)

func ones(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestHann(t *testing.T) {
	buf := ones(8)
	Hann(buf)

	if buf[0] != 0 || math.Abs(buf[4]-1) > 1e-12 {
		t.Errorf("hann = %v", buf)
	}

	if math.Abs(buf[2]-buf[6]) > 1e-12 {
		t.Errorf("hann not symmetric: %v", buf)
	}
}

func TestFades(t *testing.T) {
	buf := ones(10)
	FadeIn(buf, 4)
	FadeOut(buf, 4)

	if buf[0] != 0 || buf[9] != 0 {
		t.Errorf("edges = %v, %v", buf[0], buf[9])
	}

	for i := 1; i < 4; i++ {
		if buf[i] <= buf[i-1] {
			t.Errorf("fade in not rising at %d: %v", i, buf)
		}

		if math.Abs(buf[i]-buf[9-i]) > 1e-12 {
			t.Errorf("fades differ at %d: %v", i, buf)
		}
	}

	for i := 4; i < 6; i++ {
		if buf[i] != 1 {
			t.Errorf("middle sample %d = %v", i, buf[i])
		}
	}

	short := ones(2)
	FadeOut(short, 10)
	if short[1] != 0 {
		t.Errorf("fade longer than buffer = %v", short)
	}
}

func TestFadeFollowsHann(t *testing.T) {
	const n = 6

	full := ones(2 * n)
	Hann(full)

	buf := ones(n + 2)
	FadeIn(buf, n)

	for i := 0; i < n; i++ {
		if math.Abs(buf[i]-full[i]) > 1e-12 {
			t.Errorf("fade in %d = %v, hann = %v", i, buf[i], full[i])
		}
	}

	if buf[n] != 1 || buf[n+1] != 1 {
		t.Errorf("samples past the fade changed: %v", buf)
	}

	FadeIn(buf, 0)
	FadeOut(buf, -1)
}
