// Package null is a silent backend. It runs the stream in real time without
// a sound device, which keeps taps filling on headless machines.
package null

import (
	"context"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/noriah/synthscope/input"
	"github.com/noriah/synthscope/input/common/timer"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("null", Backend{})
}

type Backend struct{}

func (Backend) Init() error {
	return nil
}

func (Backend) Close() error {
	return nil
}

func (Backend) Devices() ([]input.Device, error) {
	return []input.Device{Device{}}, nil
}

func (Backend) DefaultDevice() (input.Device, error) {
	return Device{}, nil
}

func (Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(cfg)
}

// Device is the only device of the null backend.
type Device struct{}

func (Device) String() string {
	return "null"
}

// Session pulls BufferSize frames from the stream every buffer period.
type Session struct {
	rate   float64
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewSession starts pulling from cfg.Stream right away.
func NewSession(cfg input.SessionConfig) (*Session, error) {
	if cfg.Stream == nil {
		return nil, errors.New("no stream to run")
	}

	if cfg.BufferSize <= 0 {
		return nil, errors.Errorf("invalid buffer size %d", cfg.BufferSize)
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		rate:   cfg.SampleRate,
		cancel: cancel,
	}

	buf := make([][2]float64, cfg.BufferSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer.Process(ctx, cfg, func() {
			drain(cfg.Stream, buf)
		})
	}()

	return s, nil
}

// drain pulls len(buf) frames, keeping the stream's clock in step even when
// it has gone quiet.
func drain(s beep.Streamer, buf [][2]float64) {
	if _, ok := s.Stream(buf); !ok {
		clear(buf)
	}
}

func (s *Session) SampleRate() float64 {
	return s.rate
}

// Close stops the pull loop and waits for it to exit.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})

	return nil
}
