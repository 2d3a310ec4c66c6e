package main

import (
	"strconv"
	"strings"

	"github.com/noriah/synthscope"
	"github.com/pkg/errors"
)

// config is the root config plus the options that only exist on the command
// line.
type config struct {
	synthscope.Config

	// configPath is the yaml file read before flags
	configPath string
	// window selects the window host
	window bool
	// notes is the comma separated form of Config.Notes
	notes string
}

func newZeroConfig() config {
	cfg := config{Config: synthscope.NewZeroConfig()}
	cfg.notes = formatNotes(cfg.Notes)
	return cfg
}

// finish folds the command line only options into the root config and
// validates it.
func (cfg *config) finish() error {
	if cfg.window {
		cfg.Host = synthscope.HostWindow
	}

	notes, err := parseNotes(cfg.notes)
	if err != nil {
		return err
	}

	if len(notes) > 0 {
		cfg.Notes = notes
	}

	return cfg.Validate()
}

// findConfigArg returns the value of -c/--config so the file can be loaded
// before flags are parsed over it.
func findConfigArg(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}

		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")

		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		}
	}

	return ""
}

func parseNotes(s string) ([]float64, error) {
	var notes []float64

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		n, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad note %q", field)
		}

		notes = append(notes, n)
	}

	return notes, nil
}

func formatNotes(notes []float64) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}
