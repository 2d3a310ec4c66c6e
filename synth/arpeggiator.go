package synth

import (
	"github.com/noriah/synthscope/dsp"
)

// arpeggiator cycles through the patch notes, retriggering the envelope on
// every step.
type arpeggiator struct {
	osc   *dsp.Oscillator
	env   *dsp.Envelope
	notes []float64

	step int // samples per note
	pos  int
	note int
}

func newArpeggiator(sampleRate float64, p Patch) *arpeggiator {
	a := &arpeggiator{
		osc:   dsp.NewOscillator(p.Waveform, sampleRate),
		env:   dsp.NewEnvelope(sampleRate, p.Attack, p.Decay),
		notes: p.Notes,
		step:  int(p.Step.Seconds() * sampleRate),
	}

	if a.step < 1 {
		a.step = 1
	}

	return a
}

func (a *arpeggiator) Stream(samples [][2]float64) (int, bool) {
	if len(a.notes) == 0 {
		clear(samples)
		return len(samples), true
	}

	for i := range samples {
		if a.pos == 0 {
			a.osc.SetFreq(dsp.NoteFreq(a.notes[a.note]))
			a.env.Trigger()
			a.note = (a.note + 1) % len(a.notes)
		}

		v := a.osc.Next() * a.env.Next()
		samples[i][0] = v
		samples[i][1] = v

		if a.pos++; a.pos >= a.step {
			a.pos = 0
		}
	}

	return len(samples), true
}

func (a *arpeggiator) Err() error {
	return nil
}
