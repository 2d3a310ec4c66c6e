// Package synthscope wires a synth, an audio backend, a host and the
// visualizer into one running pipeline.
package synthscope

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gopxl/beep/v2"
	"github.com/noriah/synthscope/display"
	"github.com/noriah/synthscope/display/window"
	"github.com/noriah/synthscope/dsp"
	"github.com/noriah/synthscope/frame"
	"github.com/noriah/synthscope/graphic"
	"github.com/noriah/synthscope/input"
	"github.com/noriah/synthscope/synth"
	"github.com/noriah/synthscope/visualizer"
	pkgerrors "github.com/pkg/errors"
)

// WindowTitle is shown by the window host.
const WindowTitle = "synthscope"

// Host is a visualizer host that can be run until closed.
type Host interface {
	visualizer.Host
	io.Closer
	Run(ctx context.Context) error
	OnKey(fn func(rune))
}

type statusHost interface {
	SetStatus(fn func() string)
}

// Patch builds the synth patch described by cfg.
func (cfg *Config) Patch() (synth.Patch, error) {
	wave, err := dsp.ParseWaveform(cfg.Waveform)
	if err != nil {
		return synth.Patch{}, err
	}

	return synth.Patch{
		Waveform: wave,
		Notes:    cfg.Notes,
		Step:     cfg.Step,
		Attack:   cfg.Attack,
		Decay:    cfg.Decay,
		Gain:     cfg.Gain,
	}, nil
}

// NewSynth builds the synth described by cfg.
func NewSynth(cfg *Config) (*synth.Synth, error) {
	patch, err := cfg.Patch()
	if err != nil {
		return nil, err
	}

	opts := []synth.Option{synth.WithFFTSize(cfg.FFTSize)}
	if cfg.NoTap {
		opts = append(opts, synth.WithoutAnalyser())
	}

	return synth.New(beep.SampleRate(int(cfg.SampleRate)), patch, opts...), nil
}

// NewHost builds the host named by cfg.Host around loop.
func NewHost(cfg *Config, loop *frame.Loop, styles graphic.Styles) (Host, error) {
	switch cfg.Host {
	case HostWindow:
		return window.New(loop, styles, WindowTitle), nil

	case HostTerminal, "":
		term, err := display.NewTerminal(loop, styles)
		if err != nil {
			return nil, err
		}
		return term, nil
	}

	return nil, pkgerrors.Errorf("unknown host %q", cfg.Host)
}

// Run starts the audio session and shows it on the configured host until
// ctx is done or the host quits. The window host must run on the main
// goroutine.
func Run(ctx context.Context, cfg *Config, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := cfg.Validate(); err != nil {
		return pkgerrors.Wrap(err, "invalid config")
	}

	styles, err := cfg.Styles()
	if err != nil {
		return err
	}

	name := cfg.Backend
	if name == "" {
		name = input.DefaultBackend()
	}

	backend, err := input.InitBackend(name)
	if err != nil {
		return err
	}

	defer backend.Close()

	device, err := input.GetDevice(backend, cfg.Device)
	if err != nil {
		return err
	}

	syn, err := NewSynth(cfg)
	if err != nil {
		return err
	}

	session, err := backend.Start(input.SessionConfig{
		Device:     device,
		SampleRate: cfg.SampleRate,
		BufferSize: cfg.BufferSize,
		Stream:     syn,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to start audio session")
	}

	defer session.Close()

	log.Info("audio started", "backend", name, "device", device.String(),
		"rate", session.SampleRate(), "waveform", cfg.Waveform)

	loop := frame.NewLoop(cfg.FrameRate)

	host, err := NewHost(cfg, loop, styles)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create host")
	}

	defer host.Close()

	ctrl := visualizer.New(host, styles, log)

	if sh, ok := host.(statusHost); ok {
		sh.SetStatus(ctrl.Status)
	}

	host.OnKey(func(r rune) {
		if r == 'r' || r == 'R' {
			log.Debug("remount requested")
			ctrl.Remount()
		}
	})

	loop.Post(func() {
		ctrl.Mount(session, syn)
	})

	log.Info("host running", "host", cfg.Host)

	err = host.Run(ctx)

	// The host no longer drives the loop, so this runs on the last goroutine
	// that touched the controller.
	ctrl.Teardown()

	if err := syn.Err(); err != nil {
		log.Warn("synth stopped", "err", err)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(err, "host stopped")
	}

	log.Info("stopped", "frames", ctrl.Frames())

	return nil
}
