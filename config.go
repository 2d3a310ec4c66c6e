package synthscope

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/noriah/synthscope/dsp"
	"github.com/noriah/synthscope/graphic"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Limits
const (
	MinFFTSize = 32
	MaxFFTSize = 32768
)

// Hosts
const (
	HostTerminal = "term"
	HostWindow   = "window"
)

type Config struct {
	// The name of the backend from the input package. Empty picks the default
	Backend string `yaml:"backend"`
	// The name of the device to play to
	Device string `yaml:"device"`
	// Where to show the views: "term" or "window"
	Host string `yaml:"host"`
	// The rate the synth renders at
	SampleRate float64 `yaml:"sample_rate"`
	// The number of frames the backend pulls at once
	BufferSize int `yaml:"buffer_size"`
	// The number of samples in each snapshot
	FFTSize int `yaml:"fft_size"`
	// The number of frames drawn per second (terminal host only; the window
	// follows vsync)
	FrameRate int `yaml:"frame_rate"`

	// Synth patch
	Waveform string        `yaml:"waveform"`
	Notes    []float64     `yaml:"notes"`
	Step     time.Duration `yaml:"step"`
	Attack   time.Duration `yaml:"attack"`
	Decay    time.Duration `yaml:"decay"`
	Gain     float64       `yaml:"gain"`
	// Build the synth without an analysis tap
	NoTap bool `yaml:"no_tap"`

	Colors ColorConfig `yaml:"colors"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// ColorConfig holds color names or "#rrggbb" values.
type ColorConfig struct {
	Background string `yaml:"background"`
	Trace      string `yaml:"trace"`
	Grid       string `yaml:"grid"`
	Center     string `yaml:"center"`
	Label      string `yaml:"label"`
}

func NewZeroConfig() Config {
	bg, trace, grid, center, label := graphic.DefaultStyles().AsStrings()

	return Config{
		Backend:    "",
		Host:       HostTerminal,
		SampleRate: 44100,
		BufferSize: 512,
		FFTSize:    2048,
		FrameRate:  60,
		Waveform:   dsp.Saw.String(),
		Notes:      []float64{57, 60, 64, 69, 64, 60},
		Step:       180 * time.Millisecond,
		Attack:     5 * time.Millisecond,
		Decay:      400 * time.Millisecond,
		Gain:       0.5,
		Colors: ColorConfig{
			Background: bg,
			Trace:      trace,
			Grid:       grid,
			Center:     center,
			Label:      label,
		},
		LogLevel: "info",
	}
}

// LoadConfigFile reads a YAML file over cfg. Keys missing from the file keep
// their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return pkgerrors.Wrapf(err, "failed to parse %s", path)
	}

	return nil
}

func (cfg *Config) Validate() error {
	if cfg.SampleRate < float64(cfg.FFTSize) {
		return errors.New("sample rate lower than fft size")
	}

	switch {
	case cfg.FFTSize < MinFFTSize:
		return fmt.Errorf("fft size too small (%d min)", MinFFTSize)

	case cfg.FFTSize > MaxFFTSize:
		return fmt.Errorf("fft size too large (%d max)", MaxFFTSize)

	case cfg.FFTSize&(cfg.FFTSize-1) != 0:
		return errors.New("fft size must be a power of two")

	case cfg.BufferSize < 1:
		return errors.New("buffer size too small (1 min)")

	case cfg.FrameRate < 0:
		return errors.New("frame rate cannot be negative")

	case cfg.Gain < 0 || cfg.Gain > 1:
		return errors.New("gain must be within [0, 1]")

	case cfg.Step <= 0:
		return errors.New("step must be positive")
	}

	switch cfg.Host {
	case HostTerminal, HostWindow:
	default:
		return fmt.Errorf("unknown host %q (%s or %s)", cfg.Host, HostTerminal, HostWindow)
	}

	if _, err := dsp.ParseWaveform(cfg.Waveform); err != nil {
		return err
	}

	if _, err := cfg.Styles(); err != nil {
		return err
	}

	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	return nil
}

// Styles parses the configured colors.
func (cfg *Config) Styles() (graphic.Styles, error) {
	c := cfg.Colors
	return graphic.StylesFromStrings(c.Background, c.Trace, c.Grid, c.Center, c.Label)
}
