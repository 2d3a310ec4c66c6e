package graphic

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// textGap is the physical distance between a label and its line.
const textGap = 2

// pathChunk is the number of segments stroked per rasterizer pass.
const pathChunk = 16

// Label is a piece of text drawn on a surface, kept so hosts that cannot show
// rasterized text (the terminal) can place it themselves.
type Label struct {
	At    Point // a point on the labelled line
	Text  string
	Color color.Color
}

// Surface is a raster drawing target. Its physical buffer is always the
// logical size times the device pixel ratio, rounded.
type Surface struct {
	// RasterText draws labels into the pixel buffer as well as recording them.
	RasterText bool

	bounds Rect
	scale  float64

	img    *image.RGBA
	ras    *vector.Rasterizer
	labels []Label
}

var _ Canvas = (*Surface)(nil)

// NewSurface returns a detached, zero-sized surface.
func NewSurface() *Surface {
	return &Surface{
		scale: 1,
		img:   image.NewRGBA(image.Rectangle{}),
	}
}

// Resize matches the physical buffer to r and dpr and sets the logical to
// physical scale. A surface that is not laid out yet (empty r) gets an empty
// buffer and ignores draw calls until the next resize.
func (s *Surface) Resize(r Rect, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}

	s.bounds = r
	s.scale = dpr

	pw, ph := physical(r.W, dpr), physical(r.H, dpr)
	if pw == 0 || ph == 0 {
		pw, ph = 0, 0
	}

	if b := s.img.Rect; b.Dx() != pw || b.Dy() != ph {
		s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
		s.ras = nil
	}

	s.labels = s.labels[:0]
}

func physical(v, dpr float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v * dpr))
}

// Bounds is the on-screen rectangle from the last resize.
func (s *Surface) Bounds() Rect {
	return s.bounds
}

// Scale is the device pixel ratio from the last resize.
func (s *Surface) Scale() float64 {
	return s.scale
}

// PhysicalSize returns the pixel buffer dimensions.
func (s *Surface) PhysicalSize() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Image returns the pixel buffer. It is replaced when the size changes.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Labels returns the text drawn since the last Clear.
func (s *Surface) Labels() []Label {
	return s.labels
}

func (s *Surface) empty() bool {
	return s.img.Rect.Empty()
}

func (s *Surface) Size() (float64, float64) {
	if s.empty() {
		return 0, 0
	}
	return s.bounds.W, s.bounds.H
}

func (s *Surface) Clear(c color.Color) {
	s.labels = s.labels[:0]
	if s.empty() {
		return
	}

	draw.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Line draws a segment. Horizontal and vertical lines are filled as
// rectangles.
func (s *Surface) Line(a, b Point, width float64, c color.Color) {
	if s.empty() {
		return
	}

	if a.X == b.X || a.Y == b.Y {
		s.fillLine(a, b, width, c)
		return
	}

	s.Path([]Point{a, b}, width, c)
}

func (s *Surface) halfWidth(width float64) float64 {
	return math.Max(width*s.scale, 1) / 2
}

// fillLine draws an axis-aligned segment as a solid rectangle at least one
// pixel thick.
func (s *Surface) fillLine(a, b Point, width float64, c color.Color) {
	half := s.halfWidth(width)

	x0, x1 := math.Min(a.X, b.X)*s.scale, math.Max(a.X, b.X)*s.scale
	y0, y1 := math.Min(a.Y, b.Y)*s.scale, math.Max(a.Y, b.Y)*s.scale

	if a.Y == b.Y {
		y0, y1 = y0-half, y1+half
	}
	if a.X == b.X {
		x0, x1 = x0-half, x1+half
	}

	r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	if r.Dx() == 0 {
		r.Max.X++
	}
	if r.Dy() == 0 {
		r.Max.Y++
	}

	draw.Draw(s.img, r.Intersect(s.img.Rect), image.NewUniform(c), image.Point{}, draw.Over)
}

// Path strokes the polyline in runs of pathChunk segments, each rasterized
// inside its own bounding box. All quads of a run share one winding so
// overlapping joints add up instead of cancelling.
func (s *Surface) Path(pts []Point, width float64, c color.Color) {
	if s.empty() || len(pts) < 2 {
		return
	}

	src := image.NewUniform(c)
	half := s.halfWidth(width)

	for i := 0; i < len(pts)-1; i += pathChunk {
		end := min(i+pathChunk, len(pts)-1)
		s.stroke(pts[i:end+1], half, src)
	}
}

func (s *Surface) stroke(pts []Point, half float64, src image.Image) {
	r := strokeBounds(pts, s.scale, half).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}

	if s.ras == nil {
		s.ras = vector.NewRasterizer(r.Dx(), r.Dy())
	} else {
		s.ras.Reset(r.Dx(), r.Dy())
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)

	for i := 1; i < len(pts); i++ {
		ax, ay := pts[i-1].X*s.scale-ox, pts[i-1].Y*s.scale-oy
		bx, by := pts[i].X*s.scale-ox, pts[i].Y*s.scale-oy

		dx, dy := bx-ax, by-ay
		l := math.Hypot(dx, dy)
		if l == 0 {
			// a dot still gets drawn as a square
			dx, dy, l = 1, 0, 1
			ax -= half
			bx += half
		}

		nx, ny := -dy/l*half, dx/l*half

		s.ras.MoveTo(float32(ax+nx), float32(ay+ny))
		s.ras.LineTo(float32(bx+nx), float32(by+ny))
		s.ras.LineTo(float32(bx-nx), float32(by-ny))
		s.ras.LineTo(float32(ax-nx), float32(ay-ny))
		s.ras.ClosePath()
	}

	s.ras.Draw(s.img, r, src, image.Point{})
}

// strokeBounds is the pixel rectangle covering pts stroked half pixels to
// either side.
func strokeBounds(pts []Point, scale, half float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X*scale), math.Max(maxX, p.X*scale)
		minY, maxY = math.Min(minY, p.Y*scale), math.Max(maxY, p.Y*scale)
	}

	return image.Rect(
		int(math.Floor(minX-half)), int(math.Floor(minY-half)),
		int(math.Ceil(maxX+half)), int(math.Ceil(maxY+half)))
}

func (s *Surface) Text(p Point, text string, c color.Color) {
	if s.empty() {
		return
	}

	s.labels = append(s.labels, Label{At: p, Text: text, Color: c})

	if !s.RasterText {
		return
	}

	face := basicfont.Face7x13

	// sit just above the line unless that leaves the top edge
	x, y := int(p.X*s.scale), int(p.Y*s.scale)-textGap
	if y-face.Ascent < 0 {
		y += face.Ascent + 2*textGap
	}

	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
