// Package window shows the scope views in a desktop window. Surfaces follow
// the monitor's device scale factor, so lines stay sharp on HiDPI screens.
package window

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/noriah/synthscope/frame"
	"github.com/noriah/synthscope/graphic"
	"github.com/noriah/synthscope/visualizer"
)

const (
	defaultWidth  = 960
	defaultHeight = 640

	// linearShare is the part of the window height given to the linear view.
	linearShare = 0.4

	padding = 8
)

// Window is a visualizer.Host backed by ebiten. Update, Draw and Layout all
// run on ebiten's game goroutine, which is also the loop goroutine.
type Window struct {
	loop   *frame.Loop
	styles graphic.Styles
	title  string
	ctx    context.Context

	surfaces [2]*graphic.Surface
	images   [2]*ebiten.Image
	bounds   [2]graphic.Rect

	outW, outH int
	dpr        float64

	listeners map[int]func()
	nextID    int

	onKey func(rune)
}

var _ visualizer.Host = (*Window)(nil)

func New(loop *frame.Loop, styles graphic.Styles, title string) *Window {
	w := &Window{
		loop:      loop,
		styles:    styles,
		title:     title,
		dpr:       1,
		listeners: make(map[int]func()),
	}

	for i := range w.surfaces {
		w.surfaces[i] = graphic.NewSurface()
		w.surfaces[i].RasterText = true
	}

	return w
}

// OnKey sets the handler for runes other than the quit key.
func (w *Window) OnKey(fn func(rune)) {
	w.onKey = fn
}

// Run opens the window and blocks until it is closed or ctx is done. It must
// be called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	return ebiten.RunGame(w)
}

// Close drops the GPU images. The game loop has stopped by then, so they are
// not deallocated here.
func (w *Window) Close() error {
	for i := range w.images {
		w.images[i] = nil
	}
	return nil
}

func (w *Window) Update() error {
	if w.ctx != nil && w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if w.onKey != nil {
		for _, r := range ebiten.AppendInputChars(nil) {
			w.onKey(r)
		}
	}

	w.loop.Tick(time.Now())
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.styles.Background)

	for i, s := range w.surfaces {
		pw, ph := s.PhysicalSize()
		if pw == 0 || ph == 0 {
			continue
		}

		img := w.images[i]
		if img == nil || img.Bounds().Dx() != pw || img.Bounds().Dy() != ph {
			if img != nil {
				img.Deallocate()
			}
			img = ebiten.NewImage(pw, ph)
			w.images[i] = img
		}

		img.WritePixels(s.Image().Pix)

		b := s.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(b.X*s.Scale(), b.Y*s.Scale())
		screen.DrawImage(img, op)
	}
}

// Layout tracks the outside size and scale factor. A change in either is a
// viewport resize.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	if dpr <= 0 {
		dpr = 1
	}

	w.setViewport(outsideWidth, outsideHeight, dpr)

	return int(float64(outsideWidth) * dpr), int(float64(outsideHeight) * dpr)
}

func (w *Window) setViewport(width, height int, dpr float64) {
	if width == w.outW && height == w.outH && dpr == w.dpr {
		return
	}

	w.outW, w.outH, w.dpr = width, height, dpr
	w.layout()

	for _, fn := range w.listeners {
		fn()
	}
}

// layout stacks a wide linear view over a centered square circular view.
func (w *Window) layout() {
	width, height := float64(w.outW), float64(w.outH)

	linearH := height * linearShare
	w.bounds[visualizer.LinearSurface] = graphic.Rect{
		X: padding,
		Y: padding,
		W: width - 2*padding,
		H: linearH - 2*padding,
	}

	side := min(width, height-linearH) - 2*padding
	w.bounds[visualizer.CircularSurface] = graphic.Rect{
		X: (width - side) / 2,
		Y: linearH + padding,
		W: side,
		H: side,
	}
}

func (w *Window) Surface(id visualizer.SurfaceID) *graphic.Surface {
	return w.surfaces[id]
}

func (w *Window) Bounds(id visualizer.SurfaceID) graphic.Rect {
	return w.bounds[id]
}

func (w *Window) DevicePixelRatio() float64 {
	return w.dpr
}

func (w *Window) OnResize(fn func()) func() {
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn

	return func() {
		delete(w.listeners, id)
	}
}

func (w *Window) RequestFrame(cb frame.Callback) frame.Handle {
	return w.loop.RequestFrame(cb)
}

func (w *Window) CancelFrame(h frame.Handle) {
	w.loop.CancelFrame(h)
}
