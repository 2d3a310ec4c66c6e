// Package oto plays the stream through the system sound device.
package oto

import (
	"encoding/binary"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"github.com/lawl/pulseaudio"
	"github.com/noriah/synthscope/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("oto", &Backend{})
}

// bytesPerFrame is two float32 channels.
const bytesPerFrame = 8

// Backend owns the process-wide oto context. oto allows only one context per
// process, so the first session fixes the sample rate.
type Backend struct {
	mu   sync.Mutex
	ctx  *oto.Context
	rate int
}

func (b *Backend) Init() error {
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		return b.ctx.Suspend()
	}

	return nil
}

// Devices lists the PulseAudio sinks. The chosen sink is handed to the ALSA
// pulse plugin through PULSE_SINK.
func (b *Backend) Devices() ([]input.Device, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	defer c.Close()

	sinks, err := c.Sinks()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sinks")
	}

	devices := make([]input.Device, len(sinks))
	for i, sink := range sinks {
		devices[i] = Sink(sink.Name)
	}

	return devices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		// No pulse server; the system default is all we have.
		return Sink("default"), nil
	}
	defer c.Close()

	info, err := c.ServerInfo()
	if err != nil || info.DefaultSink == "" {
		return Sink("default"), nil
	}

	return Sink(info.DefaultSink), nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	if cfg.Stream == nil {
		return nil, errors.New("no stream to play")
	}

	ctx, err := b.context(cfg)
	if err != nil {
		return nil, err
	}

	player := ctx.NewPlayer(&reader{stream: cfg.Stream})
	player.Play()

	return &Session{
		player: player,
		rate:   float64(b.rate),
	}, nil
}

func (b *Backend) context(cfg input.SessionConfig) (*oto.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rate := int(cfg.SampleRate)

	if b.ctx != nil {
		if rate != b.rate {
			return nil, errors.Errorf(
				"audio context already running at %d Hz, cannot switch to %d Hz",
				b.rate, rate)
		}

		return b.ctx, errors.Wrap(b.ctx.Resume(), "failed to resume audio context")
	}

	if sink, ok := cfg.Device.(Sink); ok && sink != "default" {
		os.Setenv("PULSE_SINK", string(sink))
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(time.Second) * float64(cfg.BufferSize) / cfg.SampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create audio context")
	}
	<-ready

	b.ctx = ctx
	b.rate = rate

	return ctx, nil
}

// Sink is a PulseAudio sink name.
type Sink string

func (s Sink) String() string {
	return string(s)
}

// Session is one player on the shared context.
type Session struct {
	player *oto.Player
	rate   float64
	once   sync.Once
}

func (s *Session) SampleRate() float64 {
	return s.rate
}

func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		err = s.player.Close()
	})

	return errors.Wrap(err, "failed to close player")
}

// reader adapts a beep.Streamer to the interleaved float32 bytes oto reads.
type reader struct {
	stream beep.Streamer
	buf    [][2]float64
}

func (r *reader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, ok := r.stream.Stream(buf)
	if !ok {
		n = 0
	}
	clear(buf[n:])

	for i, frame := range buf {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(float32(frame[0])))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(float32(frame[1])))
	}

	return frames * bytesPerFrame, nil
}
