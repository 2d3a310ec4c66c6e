// Package input binds the visualizer to an audio source. It holds the
// analysis tap contract the synth exposes and the registry of audio output
// backends that keep the synth running.
package input

import (
	"fmt"

	"github.com/gopxl/beep/v2"
)

// Midpoint is the sample value that encodes zero amplitude.
const Midpoint = 128

// Snapshot is one batch of time-domain samples in [0, 255].
type Snapshot []uint8

// Amplitude returns sample idx normalized to [-1, 1).
func (s Snapshot) Amplitude(idx int) float64 {
	return (float64(s[idx]) - Midpoint) / Midpoint
}

// Tap is a read-only view onto the latest samples of a signal.
type Tap interface {
	// Len is the fixed number of samples written by Fill.
	Len() int
	// Fill overwrites buf with the most recent samples. It must not block.
	Fill(buf []uint8)
	// Disconnect detaches the tap from its signal. Safe to call more than once.
	Disconnect()
}

// Source is anything that can hand out an analysis tap.
type Source interface {
	Analyser() (Tap, bool)
}

// Device is an output device a backend can play to.
type Device interface {
	fmt.Stringer
}

// SessionConfig is the configuration for a running audio context.
type SessionConfig struct {
	Device     Device        // device to play to
	SampleRate float64       // rate the stream is pulled at
	BufferSize int           // frames per pull
	Stream     beep.Streamer // signal to keep running
}

// Session is a running audio context. It pulls from its stream until closed.
type Session interface {
	SampleRate() float64
	Close() error
}
