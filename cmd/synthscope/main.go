package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/noriah/synthscope"
	"github.com/noriah/synthscope/input"

	_ "github.com/noriah/synthscope/input/all"

	"github.com/integrii/flaggy"
	"golang.org/x/term"
)

// AppName is the app name
const AppName = "synthscope"

// AppDesc is the app description
const AppDesc = "Live linear and polar scope for a software synth"

// AppSite is the app website
const AppSite = "https://github.com/noriah/synthscope"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	if path := findConfigArg(os.Args[1:]); path != "" {
		chk(synthscope.LoadConfigFile(path, &cfg.Config), "failed to load config")
		cfg.notes = formatNotes(cfg.Notes)
	}

	if doFlags(&cfg) {
		return
	}

	chk(cfg.finish(), "invalid config")

	if cfg.Host == synthscope.HostTerminal && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalln("stdout is not a terminal; use --window for the window host")
	}

	logger, closer, err := synthscope.NewLogger(cfg.LogLevel, cfg.LogFile)
	chk(err, "failed to create logger")
	defer closer.Close()

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(synthscope.Run(ctx, &cfg.Config, logger), "failed to run synthscope")
}

func doFlags(cfg *config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.configPath, "c", "config", "yaml config file, read before flags")
	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name")
	parser.Bool(&cfg.window, "w", "window", "draw in a desktop window instead of the terminal")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.BufferSize, "bs", "buffer", "frames pulled per audio buffer")
	parser.Int(&cfg.FFTSize, "n", "samples", "snapshot size (power of two)")
	parser.Int(&cfg.FrameRate, "f", "fps", "terminal frame rate")
	parser.String(&cfg.Waveform, "wf", "waveform", "sine, square, saw or triangle")
	parser.String(&cfg.notes, "nn", "notes", "comma separated midi notes to arpeggiate")
	parser.Duration(&cfg.Step, "s", "step", "time per note")
	parser.Duration(&cfg.Attack, "a", "attack", "envelope attack")
	parser.Duration(&cfg.Decay, "dc", "decay", "envelope decay")
	parser.Float64(&cfg.Gain, "g", "gain", "output gain [0, 1]")
	parser.Bool(&cfg.NoTap, "nt", "no-tap", "build the synth without an analysis tap")

	parser.String(&cfg.Colors.Background, "bg", "background", "background color name or #rrggbb")
	parser.String(&cfg.Colors.Trace, "fg", "trace", "trace color name or #rrggbb")
	parser.String(&cfg.Colors.Grid, "gc", "grid", "gridline color name or #rrggbb")
	parser.String(&cfg.Colors.Center, "ct", "center", "center line color name or #rrggbb")
	parser.String(&cfg.Colors.Label, "lc", "label", "label color name or #rrggbb")

	parser.String(&cfg.LogLevel, "l", "log-level", "debug, info, warn or error")
	parser.String(&cfg.LogFile, "lf", "log-file", "file to write logs to")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listBackendsCmd.Used:
		def := input.DefaultBackend()
		for _, backend := range input.Backends {
			star := ' '
			if backend.Name == def {
				star = '*'
			}

			fmt.Printf("- %s %c\n", backend.Name, star)
		}

		return true

	case listDevicesCmd.Used:
		name := cfg.Backend
		if name == "" {
			name = input.DefaultBackend()
		}

		backend, err := input.InitBackend(name)
		chk(err, "failed to init backend")
		defer backend.Close()

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", name)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
