package synth

import (
	"math"
	"sync"

	"github.com/noriah/synthscope/input"
)

// Analyser keeps the last Len mono samples of the synth in a ring and encodes
// them as bytes around input.Midpoint.
type Analyser struct {
	synth *Synth

	mu   sync.Mutex
	ring []float64
	pos  int

	once sync.Once
}

var _ input.Tap = (*Analyser)(nil)

func newAnalyser(s *Synth, size int) *Analyser {
	return &Analyser{
		synth: s,
		ring:  make([]float64, size),
	}
}

func (a *Analyser) Len() int {
	return len(a.ring)
}

// write is called from the audio goroutine.
func (a *Analyser) write(frames [][2]float64) {
	if len(a.ring) == 0 {
		return
	}

	a.mu.Lock()
	for _, f := range frames {
		a.ring[a.pos] = (f[0] + f[1]) / 2
		if a.pos++; a.pos == len(a.ring) {
			a.pos = 0
		}
	}
	a.mu.Unlock()
}

// Fill writes the most recent samples, oldest first.
func (a *Analyser) Fill(buf []uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.ring)
	if len(buf) < n {
		n = len(buf)
	}

	start := a.pos - n
	if start < 0 {
		start += len(a.ring)
	}

	for i := 0; i < n; i++ {
		buf[i] = Encode(a.ring[(start+i)%len(a.ring)])
	}
}

// Disconnect stops the synth from writing to the tap.
func (a *Analyser) Disconnect() {
	a.once.Do(func() {
		a.synth.disconnect(a)
	})
}

// Encode maps an amplitude in [-1, 1] to a byte, clamping outside that range.
func Encode(v float64) uint8 {
	b := math.Floor(input.Midpoint * (v + 1))

	switch {
	case b < 0:
		return 0
	case b > math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(b)
	}
}
