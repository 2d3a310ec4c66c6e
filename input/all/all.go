// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/synthscope/input/null"
	_ "github.com/noriah/synthscope/input/oto"
)
