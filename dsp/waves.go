package dsp

import (
	"fmt"
	"math"
	"strings"
)

// Waveform is the shape of an oscillator.
type Waveform int

// Waveforms
const (
	Sine Waveform = iota
	Square
	Saw
	Triangle
)

var waveformNames = [...]string{"sine", "square", "saw", "triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform accepts the names printed by String.
func ParseWaveform(name string) (Waveform, error) {
	for i, n := range waveformNames {
		if strings.EqualFold(n, name) {
			return Waveform(i), nil
		}
	}

	return Sine, fmt.Errorf("unknown waveform %q (one of %s)",
		name, strings.Join(waveformNames[:], ", "))
}

// At returns the value of the waveform at phase, where one cycle spans [0, 1).
func (w Waveform) At(phase float64) float64 {
	phase -= math.Floor(phase)

	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1

	case Saw:
		return 2*phase - 1

	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase

	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NoteFreq converts a MIDI note number to Hz (A4 = 69 = 440 Hz).
func NoteFreq(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

// Oscillator is a phase accumulator driving a Waveform.
type Oscillator struct {
	Shape Waveform

	sampleRate float64
	phase      float64
	step       float64
}

func NewOscillator(shape Waveform, sampleRate float64) *Oscillator {
	return &Oscillator{
		Shape:      shape,
		sampleRate: sampleRate,
	}
}

// SetFreq changes pitch without resetting phase, so there is no click.
func (o *Oscillator) SetFreq(hz float64) {
	o.step = hz / o.sampleRate
}

// Next returns the current value and advances one sample.
func (o *Oscillator) Next() float64 {
	v := o.Shape.At(o.phase)

	o.phase += o.step
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}

	return v
}
