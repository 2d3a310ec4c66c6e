package graphic

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/noriah/synthscope/input"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalibrate(t *testing.T) {
	const cy = 100.0

	lines := Calibrate(cy)
	if len(lines) != len(Levels) {
		t.Fatalf("got %d lines, want %d", len(lines), len(Levels))
	}

	if lines[0].DB != 0 || !near(lines[0].Offset, cy) {
		t.Errorf("0dB offset = %v, want %v", lines[0].Offset, cy)
	}

	if lines[0].Above != 0 || lines[0].Below != 2*cy {
		t.Errorf("0dB lines at %v/%v, want 0/%v", lines[0].Above, lines[0].Below, 2*cy)
	}

	for i := 1; i < len(lines); i++ {
		if lines[i].Offset >= lines[i-1].Offset {
			t.Errorf("offset of %v not below %v", lines[i].DB, lines[i-1].DB)
		}
	}

	for _, g := range lines {
		if g.Offset <= 0 || g.Offset > cy {
			t.Errorf("%v offset %v out of (0, %v]", g.DB, g.Offset, cy)
		}

		if !near(g.Above+g.Below, 2*cy) {
			t.Errorf("%v lines not symmetric: %v %v", g.DB, g.Above, g.Below)
		}
	}

	if got := lines[1].Label(); got != "-6dB" {
		t.Errorf("label = %q", got)
	}
}

func TestDBToAmplitude(t *testing.T) {
	if DBToAmplitude(0) != 1 {
		t.Errorf("0dB = %v", DBToAmplitude(0))
	}

	if a := DBToAmplitude(-6); !near(a, 0.501187233627) {
		t.Errorf("-6dB = %v", a)
	}
}

func TestLinearTraceScenario(t *testing.T) {
	pts := LinearTrace(input.Snapshot{128, 255, 128, 0}, 400, 200)

	want := []Point{
		{0, 100},
		{100, 100 - 100*127.0/128},
		{200, 100},
		{300, 200},
	}

	if len(pts) != len(want) {
		t.Fatalf("got %d points", len(pts))
	}

	for i := range want {
		if !near(pts[i].X, want[i].X) || !near(pts[i].Y, want[i].Y) {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}

	if !near(pts[1].Y, 0.78125) {
		t.Errorf("peak y = %v", pts[1].Y)
	}
}

func TestLinearTraceFlat(t *testing.T) {
	snap := make(input.Snapshot, 64)
	for i := range snap {
		snap[i] = input.Midpoint
	}

	for i, p := range LinearTrace(snap, 320, 90) {
		if p.Y != 45 {
			t.Fatalf("point %d y = %v, want 45", i, p.Y)
		}
	}
}

func TestLinearTraceMonotonic(t *testing.T) {
	snap := make(input.Snapshot, 256)
	for i := range snap {
		snap[i] = uint8(i)
	}

	pts := LinearTrace(snap, 256, 100)
	for i := 1; i < len(pts); i++ {
		if pts[i].Y >= pts[i-1].Y {
			t.Fatalf("y did not fall from sample %d to %d", i-1, i)
		}
	}
}

func TestPolarTraceScenario(t *testing.T) {
	const maxR = 80.0

	if r := MaxRadius(200, 200); r != maxR {
		t.Fatalf("max radius = %v", r)
	}

	pts := PolarTrace(input.Snapshot{128, 255, 128, 0}, 200, 200)
	radii := []float64{0, maxR * 127 / 128, 0, maxR}

	for i, p := range pts {
		r := math.Hypot(p.X-100, p.Y-100)
		if !near(r, radii[i]) {
			t.Errorf("radius %d = %v, want %v", i, r, radii[i])
		}
	}

	if !near(pts[3].X, 100) || !near(pts[3].Y, 20) {
		t.Errorf("last point = %v, want (100, 20)", pts[3])
	}
}

func TestPolarTraceBounds(t *testing.T) {
	snap := make(input.Snapshot, 256)
	for i := range snap {
		snap[i] = uint8(i)
	}

	w, h := 300.0, 180.0
	maxR := MaxRadius(w, h)

	for i, p := range PolarTrace(snap, w, h) {
		r := math.Hypot(p.X-w/2, p.Y-h/2)
		if r > maxR+epsilon {
			t.Errorf("sample %d radius %v beyond %v", i, r, maxR)
		}

		if snap[i] == input.Midpoint && r > epsilon {
			t.Errorf("midpoint sample %d off center by %v", i, r)
		}
	}
}

func TestPolarTraceTooSmall(t *testing.T) {
	for _, p := range PolarTrace(input.Snapshot{0, 255, 40}, 30, 30) {
		if p.X != 15 || p.Y != 15 {
			t.Errorf("point %v should collapse to the center", p)
		}
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface()

	s.Resize(Rect{W: 400, H: 200}, 2)
	if w, h := s.PhysicalSize(); w != 800 || h != 400 {
		t.Fatalf("physical = %dx%d", w, h)
	}

	img := s.Image()
	s.Resize(Rect{W: 400, H: 200}, 2)

	if w, h := s.PhysicalSize(); w != 800 || h != 400 {
		t.Errorf("second resize changed size to %dx%d", w, h)
	}

	if s.Image() != img {
		t.Errorf("same size reallocated the buffer")
	}

	s.Resize(Rect{W: 100.4, H: 50.6}, 1.5)
	if w, h := s.PhysicalSize(); w != 151 || h != 76 {
		t.Errorf("rounded physical = %dx%d", w, h)
	}

	if lw, lh := s.Size(); lw != 100.4 || lh != 50.6 {
		t.Errorf("logical = %vx%v", lw, lh)
	}
}

func TestSurfaceZeroRect(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 0, H: 120}, 2)

	if w, h := s.PhysicalSize(); w != 0 || h != 0 {
		t.Fatalf("physical = %dx%d", w, h)
	}

	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("size = %vx%v", w, h)
	}

	// every call is a no-op
	s.Clear(color.White)
	s.Line(Point{0, 0}, Point{10, 10}, 1, color.White)
	s.Text(Point{0, 0}, "0dB", color.White)

	if len(s.Labels()) != 0 {
		t.Errorf("labels recorded on an empty surface")
	}

	var l Linear
	l.Draw(s, input.Snapshot{0, 255})
}

func TestSurfacePath(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 20, H: 20}, 1)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	s.Clear(color.Black)
	s.Line(Point{0, 10}, Point{20, 10}, 2, white)

	img := s.Image()
	if c := img.RGBAAt(10, 10); c.R < 0x80 {
		t.Errorf("line pixel = %v", c)
	}

	if c := img.RGBAAt(10, 2); c.R != 0 {
		t.Errorf("background pixel = %v", c)
	}
}

func TestSurfacePathChunks(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 100, H: 100}, 1)

	pts := make([]Point, 101)
	for i := range pts {
		pts[i] = Point{float64(i), float64(i)}
	}

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	s.Clear(color.Black)
	s.Path(pts, 1, white)

	img := s.Image()
	for k := 1; k < 99; k++ {
		if c := img.RGBAAt(k, k); c.R < 0x80 {
			t.Fatalf("diagonal pixel %d = %v", k, c)
		}
	}

	if c := img.RGBAAt(90, 10); c.R != 0 {
		t.Errorf("background pixel = %v", c)
	}
}

func TestSurfaceVerticalLine(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 10, H: 10}, 2)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	s.Clear(color.Black)
	s.Line(Point{5, 0}, Point{5, 10}, 2, white)

	img := s.Image()
	for x := 8; x < 12; x++ {
		if c := img.RGBAAt(x, 10); c.R != 0xff {
			t.Errorf("line pixel %d = %v", x, c)
		}
	}

	for _, x := range []int{7, 12} {
		if c := img.RGBAAt(x, 10); c.R != 0 {
			t.Errorf("background pixel %d = %v", x, c)
		}
	}
}

func TestStrokeBounds(t *testing.T) {
	got := strokeBounds([]Point{{10, 10}, {20, 30}}, 2, 1)
	want := image.Rect(19, 19, 41, 61)
	if got != want {
		t.Errorf("strokeBounds = %v, want %v", got, want)
	}
}

func TestLinearDraw(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 400, H: 200}, 1)

	l := Linear{Styles: DefaultStyles()}
	l.Draw(s, input.Snapshot{128, 255, 128, 0})

	labels := s.Labels()
	if len(labels) != 2*len(Levels)+1 {
		t.Fatalf("got %d labels", len(labels))
	}

	last := labels[len(labels)-1]
	if last.Text != CenterLabel || last.At.Y != 100 {
		t.Errorf("center label = %+v", last)
	}

	if labels[0].Text != "0dB" || labels[0].At.Y != 0 {
		t.Errorf("first label = %+v", labels[0])
	}

	if c := s.Image().RGBAAt(200, 100); c == DefaultStyles().Background {
		t.Errorf("center line missing")
	}
}

func TestCircularDraw(t *testing.T) {
	s := NewSurface()
	s.Resize(Rect{W: 200, H: 200}, 1)

	st := DefaultStyles()
	r := Circular{Styles: st}
	r.Draw(s, input.Snapshot{128, 255, 128, 0})

	if c := s.Image().RGBAAt(0, 0); c != st.Background {
		t.Errorf("corner = %v, want background", c)
	}

	// the last segment runs straight up from the center
	if c := s.Image().RGBAAt(100, 60); c == st.Background {
		t.Errorf("trace pixel missing")
	}

	if len(s.Labels()) != 0 {
		t.Errorf("circular view drew labels")
	}
}

func TestStyles(t *testing.T) {
	s, err := StylesFromStrings("", "#ff0000", "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	if s.Trace != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("trace = %v", s.Trace)
	}

	if s.Background != DefaultStyles().Background {
		t.Errorf("empty string changed the background")
	}

	if _, err := StylesFromStrings("nocolor", "", "", "", ""); err == nil {
		t.Errorf("expected an error for an unknown color")
	}

	bg, trace, grid, center, label := DefaultStyles().AsStrings()
	back, err := StylesFromStrings(bg, trace, grid, center, label)
	if err != nil || back != DefaultStyles() {
		t.Errorf("AsStrings round trip = %v, %v", back, err)
	}
}

func BenchmarkLinearDraw(b *testing.B) {
	s := NewSurface()
	s.Resize(Rect{W: 800, H: 300}, 2)

	snap := make(input.Snapshot, 2048)
	for i := range snap {
		snap[i] = uint8(128 + 100*math.Sin(float64(i)/20))
	}

	l := Linear{Styles: DefaultStyles()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Draw(s, snap)
	}
}

func BenchmarkGridline(b *testing.B) {
	s := NewSurface()
	s.Resize(Rect{W: 800, H: 300}, 2)

	grey := color.RGBA{0x40, 0x40, 0x40, 0xff}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Line(Point{0, 150}, Point{800, 150}, 1, grey)
	}
}
