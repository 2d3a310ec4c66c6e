// Package display shows the scope views in a terminal. Surfaces are drawn in
// braille: one cell is one logical unit wide and two tall, at a device pixel
// ratio of 2, so every cell holds the 2x4 dots of a braille glyph.
package display

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/noriah/synthscope/frame"
	"github.com/noriah/synthscope/graphic"
	"github.com/noriah/synthscope/visualizer"
	"github.com/pkg/errors"
)

const (
	// PixelRatio is the number of braille dots per logical unit.
	PixelRatio = 2

	// unitsPerRow is the logical height of a terminal row.
	unitsPerRow = 2

	// gap is the number of columns between the two views.
	gap = 1
)

// Terminal is a visualizer.Host on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	loop   *frame.Loop
	styles graphic.Styles

	surfaces [2]*graphic.Surface
	bounds   [2]graphic.Rect

	listeners map[int]func()
	nextID    int

	status  func() string
	onKey   func(rune)
	restore func()
}

var _ visualizer.Host = (*Terminal)(nil)

// NewTerminal sets up the terminal screen.
func NewTerminal(loop *frame.Loop, styles graphic.Styles) (*Terminal, error) {
	restore, err := normalizeTerminal()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to create screen")
	}

	if err = screen.Init(); err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to init screen")
	}

	t := NewTerminalScreen(screen, loop, styles)
	t.restore = restore

	return t, nil
}

// NewTerminalScreen uses an already initialized screen.
func NewTerminalScreen(screen tcell.Screen, loop *frame.Loop, styles graphic.Styles) *Terminal {
	screen.DisableMouse()
	screen.HideCursor()
	screen.SetStyle(styles.Cell(styles.Label))

	t := &Terminal{
		screen:    screen,
		loop:      loop,
		styles:    styles,
		surfaces:  [2]*graphic.Surface{graphic.NewSurface(), graphic.NewSurface()},
		listeners: make(map[int]func()),
	}

	t.layout()

	return t
}

// SetStatus sets the source of the bottom status line.
func (t *Terminal) SetStatus(fn func() string) {
	t.status = fn
}

// OnKey sets the handler for runes other than quit keys. It runs on the loop.
func (t *Terminal) OnKey(fn func(rune)) {
	t.onKey = fn
}

// Run polls terminal events and drives the loop until ctx is done or the
// user quits.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go eventPoller(ctx, cancel, t)

	err := t.loop.Run(ctx, t.Present)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Close will stop display and clean up the terminal
func (t *Terminal) Close() error {
	t.screen.Fini()

	if t.restore != nil {
		t.restore()
		t.restore = nil
	}

	return nil
}

// eventPoller forwards resizes and keys onto the loop.
func eventPoller(ctx context.Context, fn context.CancelFunc, t *Terminal) {
	defer fn()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return

				default:
					r := ev.Rune()
					t.loop.Post(func() {
						if t.onKey != nil {
							t.onKey(r)
						}
					})
				}

			case tcell.KeyCtrlC, tcell.KeyEscape:
				return

			default:
			}

		case *tcell.EventResize:
			t.loop.Post(t.resized)

		default:
		}
	}
}

// resized recomputes the layout and notifies listeners.
func (t *Terminal) resized() {
	t.screen.Sync()
	t.layout()

	for _, fn := range t.listeners {
		fn()
	}
}

// layout puts the linear view on the left and a square circular view on
// the right, leaving the last row for status.
func (t *Terminal) layout() {
	cols, rows := t.screen.Size()

	rows--
	if rows < 0 {
		rows = 0
	}

	height := rows * unitsPerRow

	side := height
	if half := cols / 2; half < side {
		side = half
	}

	// keep the square on whole rows
	side -= side % unitsPerRow

	linearW := cols - side - gap
	if linearW < 0 {
		linearW = 0
	}

	top := (height - side) / 2
	top -= top % unitsPerRow

	t.bounds[visualizer.LinearSurface] = graphic.Rect{X: 0, Y: 0, W: float64(linearW), H: float64(height)}
	t.bounds[visualizer.CircularSurface] = graphic.Rect{X: float64(cols - side), Y: float64(top), W: float64(side), H: float64(side)}
}

func (t *Terminal) Surface(id visualizer.SurfaceID) *graphic.Surface {
	return t.surfaces[id]
}

func (t *Terminal) Bounds(id visualizer.SurfaceID) graphic.Rect {
	return t.bounds[id]
}

func (t *Terminal) DevicePixelRatio() float64 {
	return PixelRatio
}

func (t *Terminal) OnResize(fn func()) func() {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	return func() {
		delete(t.listeners, id)
	}
}

// Listeners returns how many resize listeners are attached.
func (t *Terminal) Listeners() int {
	return len(t.listeners)
}

func (t *Terminal) RequestFrame(cb frame.Callback) frame.Handle {
	return t.loop.RequestFrame(cb)
}

func (t *Terminal) CancelFrame(h frame.Handle) {
	t.loop.CancelFrame(h)
}

// Present copies both surfaces and the status line to the screen.
func (t *Terminal) Present() {
	t.screen.Clear()

	for _, s := range t.surfaces {
		t.blit(s)
	}

	if t.status != nil {
		_, rows := t.screen.Size()
		t.print(0, rows-1, t.status(), t.styles.Cell(t.styles.Label))
	}

	t.screen.Show()
}

func (t *Terminal) print(col, row int, text string, style tcell.Style) {
	for _, r := range text {
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
}
