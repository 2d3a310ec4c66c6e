package dsp

import (
	"math"
	"time"
)

// Envelope is a linear attack followed by an exponential decay toward zero.
type Envelope struct {
	attack int     // samples
	decay  float64 // per-sample multiplier after the attack

	pos   int
	level float64
}

// NewEnvelope builds an envelope whose decay falls by 60 dB over decay.
func NewEnvelope(sampleRate float64, attack, decay time.Duration) *Envelope {
	e := &Envelope{
		attack: int(attack.Seconds() * sampleRate),
		decay:  1,
	}

	if n := decay.Seconds() * sampleRate; n > 0 {
		e.decay = math.Pow(10, -3/n)
	}

	e.pos = math.MaxInt
	return e
}

// Trigger restarts the envelope from silence.
func (e *Envelope) Trigger() {
	e.pos = 0
	e.level = 0
}

// Next returns the gain for the current sample in [0, 1] and advances.
func (e *Envelope) Next() float64 {
	switch {
	case e.pos == math.MaxInt:
		return 0

	case e.pos < e.attack:
		e.level = float64(e.pos+1) / float64(e.attack)

	default:
		if e.pos == e.attack {
			e.level = 1
		} else {
			e.level *= e.decay
		}
	}

	e.pos++
	return e.level
}
