// Package synth is a small arpeggiating synthesizer. Its output is a
// beep.Streamer, and it hands out analysis taps that see exactly what it
// plays.
package synth

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/noriah/synthscope/dsp"
	"github.com/noriah/synthscope/input"
)

// DefaultFFTSize matches the analyser default of browser audio graphs.
const DefaultFFTSize = 2048

// Patch describes the sound.
type Patch struct {
	Waveform dsp.Waveform
	Notes    []float64     // MIDI note numbers, cycled
	Step     time.Duration // time per note
	Attack   time.Duration
	Decay    time.Duration
	Gain     float64 // linear output gain
}

// DefaultPatch is a minor arpeggio on a saw.
func DefaultPatch() Patch {
	return Patch{
		Waveform: dsp.Saw,
		Notes:    []float64{57, 60, 64, 69, 64, 60},
		Step:     180 * time.Millisecond,
		Attack:   5 * time.Millisecond,
		Decay:    400 * time.Millisecond,
		Gain:     0.5,
	}
}

// Option configures a Synth.
type Option func(*Synth)

// WithFFTSize sets the length of snapshots taken from taps.
func WithFFTSize(n int) Option {
	return func(s *Synth) {
		s.fftSize = n
	}
}

// WithoutAnalyser builds a synth that exposes no tap.
func WithoutAnalyser() Option {
	return func(s *Synth) {
		s.noTap = true
	}
}

// Synth mixes the arpeggiator through a gain stage and feeds every connected
// tap.
type Synth struct {
	sr      beep.SampleRate
	out     beep.Streamer
	fftSize int
	noTap   bool

	mu   sync.Mutex
	taps map[*Analyser]struct{}
}

func New(sr beep.SampleRate, patch Patch, opts ...Option) *Synth {
	s := &Synth{
		sr:      sr,
		fftSize: DefaultFFTSize,
		taps:    make(map[*Analyser]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.out = &effects.Gain{
		Streamer: newArpeggiator(float64(sr), patch),
		Gain:     patch.Gain - 1,
	}

	return s
}

// SampleRate returns the rate the synth renders at.
func (s *Synth) SampleRate() beep.SampleRate {
	return s.sr
}

// Stream renders the next len(samples) frames and copies them into every tap.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.out.Stream(samples)

	s.mu.Lock()
	for tap := range s.taps {
		tap.write(samples[:n])
	}
	s.mu.Unlock()

	return n, ok
}

func (s *Synth) Err() error {
	return nil
}

// Analyser connects a new tap. It reports false for a nil synth or one built
// WithoutAnalyser.
func (s *Synth) Analyser() (input.Tap, bool) {
	if s == nil || s.noTap {
		return nil, false
	}

	a := newAnalyser(s, s.fftSize)

	s.mu.Lock()
	s.taps[a] = struct{}{}
	s.mu.Unlock()

	return a, true
}

// Taps returns how many taps are connected.
func (s *Synth) Taps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.taps)
}

func (s *Synth) disconnect(a *Analyser) {
	s.mu.Lock()
	delete(s.taps, a)
	s.mu.Unlock()
}
