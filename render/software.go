package render

import (
	"fmt"
	"math"

	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/annotation"
	"github.com/Thane5/mrv2/area"
	"github.com/Thane5/mrv2/raster"
	"github.com/Thane5/mrv2/text"
)

// SoftwareRenderer draws into a SoftwareOffscreen on the CPU. It exists for
// headless tools and tests; interactive playback uses the wgpu backend.
// Video layers are sampled nearest-neighbor, shapes are rasterized with
// unantialiased coverage, and glyph drawing is a no-op (glyph rasterization
// lives in the GPU atlas path).
type SoftwareRenderer struct {
	target *SoftwareOffscreen
	w, h   int
	bound  bool
}

// NewSoftwareRenderer creates a renderer over the given CPU target.
func NewSoftwareRenderer(target *SoftwareOffscreen) *SoftwareRenderer {
	return &SoftwareRenderer{target: target}
}

// Begin binds the target, resizing it if the render size changed, and
// clears it to transparent black.
func (r *SoftwareRenderer) Begin(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("render: invalid render size %dx%d", w, h)
	}
	if r.target.Width() != w || r.target.Height() != h {
		if err := r.target.Resize(w, h); err != nil {
			return err
		}
	}
	pix := r.target.Pixels()
	for i := range pix {
		pix[i] = 0
	}
	r.w, r.h = w, h
	r.bound = true
	return nil
}

// End unbinds the target.
func (r *SoftwareRenderer) End() error {
	r.bound = false
	return nil
}

// DrawVideo composites the frame's video layers. A dissolve layer is
// cross-faded with the layer that follows it; everything else is composited
// source-over in order.
func (r *SoftwareRenderer) DrawVideo(layers []VideoLayer) error {
	for i := 0; i < len(layers); i++ {
		layer := layers[i]
		if layer.Image == nil {
			continue
		}
		if layer.Transition == TransitionDissolve && i+1 < len(layers) && layers[i+1].Image != nil {
			r.drawDissolve(layer.Image, layers[i+1].Image, layer.TransitionValue)
			i++
			continue
		}
		r.drawImage(layer.Image, 1)
	}
	return nil
}

func (r *SoftwareRenderer) drawImage(img *raster.Image, weight float32) {
	for y := 0; y < r.h; y++ {
		sy := y * img.Height / r.h
		for x := 0; x < r.w; x++ {
			sx := x * img.Width / r.w
			c := raster.Decode(img, sx, sy, raster.DecodeOptions{})
			r.blendPixel(x, y, c, weight)
		}
	}
}

func (r *SoftwareRenderer) drawDissolve(a, b *raster.Image, t float32) {
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			ca := raster.Decode(a, x*a.Width/r.w, y*a.Height/r.h, raster.DecodeOptions{})
			cb := raster.Decode(b, x*b.Width/r.w, y*b.Height/r.h, raster.DecodeOptions{})
			r.blendPixel(x, y, ca.Lerp(cb, t), 1)
		}
	}
}

// blendPixel composites c source-over onto the target pixel. weight scales
// the source alpha.
func (r *SoftwareRenderer) blendPixel(x, y int, c mrv2.Color4f, weight float32) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	a := c.A * weight
	pix := r.target.Pixels()
	off := (y*r.w + x) * 4
	// Stored B,G,R,A.
	pix[off] = c.B*a + pix[off]*(1-a)
	pix[off+1] = c.G*a + pix[off+1]*(1-a)
	pix[off+2] = c.R*a + pix[off+2]*(1-a)
	pix[off+3] = a + pix[off+3]*(1-a)
}

// erasePixel multiplies the destination down by coverage, punching a hole.
func (r *SoftwareRenderer) erasePixel(x, y int, cov float32) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	pix := r.target.Pixels()
	off := (y*r.w + x) * 4
	k := 1 - cov
	pix[off] *= k
	pix[off+1] *= k
	pix[off+2] *= k
	pix[off+3] *= k
}

// DrawRect fills box with a solid color.
func (r *SoftwareRenderer) DrawRect(box area.Box, c mrv2.Color4f) {
	b := clipBox(box, r.w, r.h)
	for y := b.MinY; y < b.MaxY; y++ {
		for x := b.MinX; x < b.MaxX; x++ {
			r.blendPixel(x, y, c, 1)
		}
	}
}

// DrawRectOutline strokes the box edges at the given line width.
func (r *SoftwareRenderer) DrawRectOutline(box area.Box, c mrv2.Color4f, width float32) {
	w := int(width + 0.5)
	if w < 1 {
		w = 1
	}
	r.DrawRect(area.Box{MinX: box.MinX, MinY: box.MinY, MaxX: box.MaxX, MaxY: box.MinY + w}, c)
	r.DrawRect(area.Box{MinX: box.MinX, MinY: box.MaxY - w, MaxX: box.MaxX, MaxY: box.MaxY}, c)
	r.DrawRect(area.Box{MinX: box.MinX, MinY: box.MinY + w, MaxX: box.MinX + w, MaxY: box.MaxY - w}, c)
	r.DrawRect(area.Box{MinX: box.MaxX - w, MinY: box.MinY + w, MaxX: box.MaxX, MaxY: box.MaxY - w}, c)
}

// DrawGlyphs is a no-op in the software renderer.
func (r *SoftwareRenderer) DrawGlyphs(glyphs []text.Glyph, pos annotation.Point, c mrv2.Color4f) {
}

// DrawShape rasterizes one annotation shape, dispatching on the variant tag.
// effectiveAlpha replaces the shape's stored alpha, so ghosted frames fade
// without mutating the shape.
func (r *SoftwareRenderer) DrawShape(s annotation.Shape, effectiveAlpha float32) {
	if effectiveAlpha <= 0 {
		return
	}
	switch s.Kind() {
	case annotation.KindStroke:
		sh := s.(*annotation.Stroke)
		c := sh.Color.WithAlpha(effectiveAlpha)
		for i := 1; i < len(sh.Points); i++ {
			r.drawSegment(sh.Points[i-1], sh.Points[i], c, sh.Width, false)
		}
	case annotation.KindRect:
		sh := s.(*annotation.Rect)
		c := sh.Color.WithAlpha(effectiveAlpha)
		box := area.Box{
			MinX: int(sh.Min.X), MinY: int(sh.Min.Y),
			MaxX: int(sh.Max.X), MaxY: int(sh.Max.Y),
		}
		r.DrawRectOutline(box.Normalized(), c, sh.LineWidth)
	case annotation.KindCircle:
		r.drawCircle(s.(*annotation.Circle), effectiveAlpha)
	case annotation.KindArrow:
		sh := s.(*annotation.Arrow)
		c := sh.Color.WithAlpha(effectiveAlpha)
		r.drawSegment(sh.From, sh.To, c, sh.LineWidth, false)
		head1, head2 := arrowHead(sh.From, sh.To)
		r.drawSegment(sh.To, head1, c, sh.LineWidth, false)
		r.drawSegment(sh.To, head2, c, sh.LineWidth, false)
	case annotation.KindText:
		// Text shapes are shaped and drawn through DrawGlyphs by the
		// caller; nothing to rasterize here.
	case annotation.KindErase:
		sh := s.(*annotation.Erase)
		for i := 1; i < len(sh.Points); i++ {
			r.drawSegment(sh.Points[i-1], sh.Points[i], mrv2.Color4f{A: effectiveAlpha}, sh.Width, true)
		}
	}
}

// drawSegment draws a thick line segment by distance test over its bounding
// box. erase punches the destination out instead of blending.
func (r *SoftwareRenderer) drawSegment(p0, p1 annotation.Point, c mrv2.Color4f, width float32, erase bool) {
	half := float64(width) / 2
	if half < 0.5 {
		half = 0.5
	}
	minX := int(math.Floor(math.Min(float64(p0.X), float64(p1.X)) - half))
	maxX := int(math.Ceil(math.Max(float64(p0.X), float64(p1.X)) + half))
	minY := int(math.Floor(math.Min(float64(p0.Y), float64(p1.Y)) - half))
	maxY := int(math.Ceil(math.Max(float64(p0.Y), float64(p1.Y)) + half))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := segmentDistance(float64(x)+0.5, float64(y)+0.5, p0, p1)
			if d > half {
				continue
			}
			if erase {
				r.erasePixel(x, y, c.A)
			} else {
				r.blendPixel(x, y, c, 1)
			}
		}
	}
}

func (r *SoftwareRenderer) drawCircle(sh *annotation.Circle, alpha float32) {
	c := sh.Color.WithAlpha(alpha)
	half := float64(sh.LineWidth) / 2
	if half < 0.5 {
		half = 0.5
	}
	rad := float64(sh.Radius)
	minX := int(math.Floor(float64(sh.Center.X) - rad - half))
	maxX := int(math.Ceil(float64(sh.Center.X) + rad + half))
	minY := int(math.Floor(float64(sh.Center.Y) - rad - half))
	maxY := int(math.Ceil(float64(sh.Center.Y) + rad + half))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - float64(sh.Center.X)
			dy := float64(y) + 0.5 - float64(sh.Center.Y)
			if math.Abs(math.Hypot(dx, dy)-rad) <= half {
				r.blendPixel(x, y, c, 1)
			}
		}
	}
}

// segmentDistance returns the distance from (x, y) to segment p0-p1.
func segmentDistance(x, y float64, p0, p1 annotation.Point) float64 {
	vx := float64(p1.X - p0.X)
	vy := float64(p1.Y - p0.Y)
	wx := x - float64(p0.X)
	wy := y - float64(p0.Y)
	lenSq := vx*vx + vy*vy
	t := 0.0
	if lenSq > 0 {
		t = (wx*vx + wy*vy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return math.Hypot(wx-t*vx, wy-t*vy)
}

// arrowHead returns the two barb endpoints of an arrow tip.
func arrowHead(from, to annotation.Point) (annotation.Point, annotation.Point) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return to, to
	}
	size := length * 0.2
	if size < 4 {
		size = 4
	}
	angle := math.Atan2(dy, dx)
	const spread = math.Pi / 6
	h1 := annotation.Point{
		X: to.X - float32(size*math.Cos(angle-spread)),
		Y: to.Y - float32(size*math.Sin(angle-spread)),
	}
	h2 := annotation.Point{
		X: to.X - float32(size*math.Cos(angle+spread)),
		Y: to.Y - float32(size*math.Sin(angle+spread)),
	}
	return h1, h2
}

func clipBox(b area.Box, w, h int) area.Box {
	b = b.Normalized()
	if b.MinX < 0 {
		b.MinX = 0
	}
	if b.MinY < 0 {
		b.MinY = 0
	}
	if b.MaxX > w {
		b.MaxX = w
	}
	if b.MaxY > h {
		b.MaxY = h
	}
	return b
}

// Ensure SoftwareRenderer implements Renderer.
var _ Renderer = (*SoftwareRenderer)(nil)
