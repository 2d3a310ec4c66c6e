package visualizer

import (
	"github.com/noriah/synthscope/graphic"
	"github.com/noriah/synthscope/input"
)

// Renderer draws one snapshot onto both views.
type Renderer struct {
	linear   graphic.Linear
	circular graphic.Circular
}

func NewRenderer(styles graphic.Styles) *Renderer {
	return &Renderer{
		linear:   graphic.Linear{Styles: styles},
		circular: graphic.Circular{Styles: styles},
	}
}

// Render hands the same snapshot to both views, so they always show the same
// instant.
func (r *Renderer) Render(snap input.Snapshot, linear, circular graphic.Canvas) {
	if linear != nil {
		r.linear.Draw(linear, snap)
	}

	if circular != nil {
		r.circular.Draw(circular, snap)
	}
}
