package display

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// normalizeTerminal unsets TERMINFO inside tmux, where a TERMINFO left over
// from the outer terminal makes tcell load the wrong database.
//
// The returned function puts the environment back.
func normalizeTerminal() (func(), error) {
	prev, had := os.LookupEnv("TERMINFO")

	if !had || !strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		return func() {}, nil
	}

	if err := os.Unsetenv("TERMINFO"); err != nil {
		return nil, errors.Wrap(err, "failed to unset TERMINFO")
	}

	return func() {
		os.Setenv("TERMINFO", prev)
	}, nil
}
