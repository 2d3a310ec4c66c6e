package dsp

import (
	"math"
	"math/rand"
	"time"

	"github.com/noriah/synthscope/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Headroom is the peak level drum one-shots are normalized to.
const Headroom = 0.89

// Edge fades keep the one-shots from clicking.
const (
	fadeIn  = time.Millisecond
	fadeOut = 10 * time.Millisecond
)

// Drum renders a one-shot at a sample rate.
type Drum struct {
	Name   string
	Length time.Duration
	render func(buf []float64, sampleRate float64, rng *rand.Rand)
}

// Drums is the kit written by drumkit.
var Drums = []Drum{
	{Name: "kick", Length: 500 * time.Millisecond, render: kick},
	{Name: "snare", Length: 250 * time.Millisecond, render: snare},
	{Name: "hat", Length: 80 * time.Millisecond, render: hat},
	{Name: "tom", Length: 400 * time.Millisecond, render: tom},
}

// FindDrum returns the kit piece called name.
func FindDrum(name string) (Drum, bool) {
	for _, d := range Drums {
		if d.Name == name {
			return d, true
		}
	}
	return Drum{}, false
}

// Render returns the one-shot normalized to Headroom. The noise source is
// seeded so renders are reproducible.
func (d Drum) Render(sampleRate float64) []float64 {
	buf := make([]float64, int(d.Length.Seconds()*sampleRate))
	if len(buf) == 0 {
		return buf
	}

	d.render(buf, sampleRate, rand.New(rand.NewSource(1)))

	window.FadeIn(buf, int(fadeIn.Seconds()*sampleRate))
	window.FadeOut(buf, int(fadeOut.Seconds()*sampleRate))
	Normalize(buf, Headroom)

	return buf
}

// Normalize scales buf so its largest magnitude equals peak. Silence is left
// untouched.
func Normalize(buf []float64, peak float64) {
	if len(buf) == 0 {
		return
	}

	m := math.Max(floats.Max(buf), -floats.Min(buf))
	if m == 0 {
		return
	}

	floats.Scale(peak/m, buf)
}

// sweep is a decaying sine whose pitch falls from hi to lo.
func sweep(buf []float64, sampleRate, hi, lo, decay float64) {
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(len(buf))
		phase += 2 * math.Pi * (hi - (hi-lo)*t) / sampleRate
		buf[i] = math.Sin(phase) * math.Exp(-decay*t)
	}
}

func kick(buf []float64, sampleRate float64, _ *rand.Rand) {
	sweep(buf, sampleRate, 150, 50, 5)
}

func tom(buf []float64, sampleRate float64, _ *rand.Rand) {
	sweep(buf, sampleRate, 220, 110, 6)
}

func snare(buf []float64, sampleRate float64, rng *rand.Rand) {
	body := make([]float64, len(buf))
	sweep(body, sampleRate, 190, 160, 12)

	for i := range buf {
		t := float64(i) / float64(len(buf))
		noise := (rng.Float64()*2 - 1) * math.Exp(-8*t)
		buf[i] = 0.6*noise + 0.4*body[i]
	}
}

// hat is first-differenced noise, which tilts the spectrum upward.
func hat(buf []float64, _ float64, rng *rand.Rand) {
	prev := 0.0
	for i := range buf {
		t := float64(i) / float64(len(buf))
		n := rng.Float64()*2 - 1
		buf[i] = (n - prev) * math.Exp(-10*t)
		prev = n
	}
}
