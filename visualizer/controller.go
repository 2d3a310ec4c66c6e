// Package visualizer runs the per-frame redraw of the scope views and ties
// its resources to the lifetime of one audio context and synth pair.
package visualizer

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/noriah/synthscope/frame"
	"github.com/noriah/synthscope/graphic"
	"github.com/noriah/synthscope/input"
	"github.com/noriah/synthscope/util"
)

// State is the lifecycle state of a Controller.
type State int

// States
const (
	Idle State = iota
	Armed
	Running
	TornDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Running:
		return "running"
	case TornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// intervalWindow is how many frame intervals the stats average over.
const intervalWindow = 120

// Controller binds to a session and synth, keeps the surfaces sized and
// redraws once per frame until torn down. All methods must be called from
// the host's loop goroutine.
type Controller struct {
	host     Host
	renderer *Renderer
	log      *slog.Logger

	state   State
	session input.Session
	source  input.Source

	binding      *input.Binding
	handle       frame.Handle
	removeResize func()

	frames    uint64
	lastFrame time.Time
	intervals *util.MovingWindow

	now func() time.Time
}

// New returns an Idle controller. A nil logger discards.
func New(host Host, styles graphic.Styles, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Controller{
		host:      host,
		renderer:  NewRenderer(styles),
		log:       log,
		intervals: util.NewMovingWindow(intervalWindow),
		now:       time.Now,
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Frames returns how many frames the current mount cycle has drawn.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// FrameInterval returns the mean time between frames.
func (c *Controller) FrameInterval() time.Duration {
	return time.Duration(c.intervals.Mean() * float64(time.Second))
}

// Status is a one-line summary for hosts to show.
func (c *Controller) Status() string {
	fps := 0.0
	if d := c.FrameInterval(); d > 0 {
		fps = float64(time.Second) / float64(d)
	}

	return fmt.Sprintf("%s | frame %d | %.1f fps", c.state, c.frames, fps)
}

// Mount starts a mount cycle for session and src. Mounting the pair that is
// already running does nothing; any other pair tears the current cycle down
// first. With either one missing, or no tap on offer, the controller stays
// Idle and schedules nothing.
func (c *Controller) Mount(session input.Session, src input.Source) {
	if c.state == Running && session == c.session && src == c.source {
		return
	}

	c.Teardown()

	c.state = Idle
	c.frames = 0
	c.lastFrame = time.Time{}
	c.intervals.Reset()

	if session == nil || src == nil {
		c.log.Debug("waiting for audio context and synth")
		return
	}

	// kept even without a tap so Remount can retry the pair
	c.session, c.source = session, src

	binding, ok := input.Bind(src)
	if !ok {
		c.log.Debug("synth exposes no analysis tap")
		return
	}

	c.binding = binding

	c.resize()
	c.removeResize = c.host.OnResize(c.resize)
	c.state = Armed
	c.log.Debug("armed", "snapshot", binding.Len())

	c.state = Running
	c.frame(c.now())
}

// Remount tears down and mounts the same pair again with a fresh tap.
func (c *Controller) Remount() {
	session, src := c.session, c.source
	c.Teardown()
	c.Mount(session, src)
}

// Teardown removes the resize listener, cancels the pending frame and
// releases the tap, in that order. It is safe to call at any time and any
// number of times.
func (c *Controller) Teardown() {
	held := c.binding != nil

	if c.removeResize != nil {
		c.removeResize()
		c.removeResize = nil
	}

	if c.handle != 0 {
		c.host.CancelFrame(c.handle)
		c.handle = 0
	}

	if c.binding != nil {
		c.binding.Release()
		c.binding = nil
	}

	if held {
		c.log.Debug("torn down", "frames", c.frames)
	}

	c.session, c.source = nil, nil
	c.state = TornDown
}

// resize keeps both surfaces at their on-screen size.
func (c *Controller) resize() {
	dpr := c.host.DevicePixelRatio()

	for id := SurfaceID(0); id < surfaceCount; id++ {
		if s := c.host.Surface(id); s != nil {
			s.Resize(c.host.Bounds(id), dpr)
		}
	}
}

// frame draws one snapshot and asks for the next frame.
func (c *Controller) frame(now time.Time) {
	c.handle = 0

	if c.state != Running {
		return
	}

	snap := c.binding.Snapshot()
	c.renderer.Render(snap,
		canvas(c.host.Surface(LinearSurface)),
		canvas(c.host.Surface(CircularSurface)))

	if !c.lastFrame.IsZero() {
		c.intervals.Update(now.Sub(c.lastFrame).Seconds())
	}
	c.lastFrame = now
	c.frames++

	c.handle = c.host.RequestFrame(c.frame)
}

// canvas keeps a nil *Surface from becoming a non-nil interface.
func canvas(s *graphic.Surface) graphic.Canvas {
	if s == nil {
		return nil
	}
	return s
}
