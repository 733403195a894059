// Package area computes color statistics over a rectangular selection of a
// mapped readback buffer, feeding the color-area, histogram and vectorscope
// panels.
package area

import (
	"errors"
	"math"

	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/colorspace"
)

// Errors reported by Analyze.
var (
	// ErrZeroRegion indicates a selection with no pixels. Guarded here so
	// a degenerate drag never produces NaN statistics.
	ErrZeroRegion = errors.New("area: selection region has zero area")
	// ErrRegionBounds indicates the region extends past the mapped buffer.
	ErrRegionBounds = errors.New("area: region outside mapped buffer")
)

// Box is a pixel-space rectangle with exclusive max corner.
type Box struct {
	MinX, MinY, MaxX, MaxY int
}

// NewBox builds a box from origin and size.
func NewBox(x, y, w, h int) Box {
	return Box{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// W returns the box width.
func (b Box) W() int { return b.MaxX - b.MinX }

// H returns the box height.
func (b Box) H() int { return b.MaxY - b.MinY }

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool { return b.W() <= 0 || b.H() <= 0 }

// Normalized returns the box with min and max corners swapped where needed,
// so a selection dragged in any direction yields min <= max.
func (b Box) Normalized() Box {
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
	return b
}

// Stats holds per-channel extremes and averages for one colorspace.
// Diff is max minus min per channel.
type Stats struct {
	Min, Max, Mean, Diff mrv2.Color4f
}

// Info is the result of one region analysis: statistics in RGBA and in the
// selected secondary colorspace. In the secondary statistics the alpha slot
// carries the selected brightness scalar, not alpha (see colorspace.Brightness).
// An Info is created fresh per request and discarded after the panels
// consume it.
type Info struct {
	Box       Box
	Mode      colorspace.Mode
	RGBA      Stats
	Secondary Stats
}

// Analyze iterates every pixel of box within the mapped buffer and produces
// region statistics.
//
// The buffer is the reversed-channel readback layout: four float32 per pixel
// in B, G, R, A order, rows of stride pixels. Min/max are tracked on the
// unclamped values; the secondary-space conversion and brightness use the
// sample clamped to [0, 1].
//
// The box must be normalized (use Box.Normalized) and fully inside the
// buffer; violations return ErrRegionBounds rather than reading out of
// bounds. A zero-area box returns ErrZeroRegion.
func Analyze(buf []float32, stride int, box Box, mode colorspace.Mode, brightness colorspace.BrightnessMode) (Info, error) {
	info := Info{Box: box, Mode: mode}
	if box.Empty() {
		return info, ErrZeroRegion
	}
	if box.MinX < 0 || box.MinY < 0 || stride <= 0 || box.MaxX > stride ||
		(box.MaxY-1)*stride+box.MaxX > len(buf)/4 {
		return info, ErrRegionBounds
	}

	info.RGBA = newStats()
	info.Secondary = newStats()

	for y := box.MinY; y < box.MaxY; y++ {
		for x := box.MinX; x < box.MaxX; x++ {
			off := (x + y*stride) * 4
			// Readback is BGRA; swap R and B while reading.
			px := mrv2.Color4f{
				R: buf[off+2],
				G: buf[off+1],
				B: buf[off],
				A: buf[off+3],
			}
			info.RGBA.accumulate(px)

			sec := colorspace.Convert(mode, px.Clamped())
			sec.A = colorspace.Brightness(brightness, px.Clamped())
			info.Secondary.accumulate(sec)
		}
	}

	n := float32(box.W() * box.H())
	info.RGBA.finish(n)
	info.Secondary.finish(n)
	return info, nil
}

func newStats() Stats {
	inf := float32(math.Inf(1))
	return Stats{
		Min: mrv2.Color4f{R: inf, G: inf, B: inf, A: inf},
		Max: mrv2.Color4f{R: -inf, G: -inf, B: -inf, A: -inf},
	}
}

func (s *Stats) accumulate(px mrv2.Color4f) {
	s.Mean = s.Mean.Add(px)
	s.Min.R = minf(s.Min.R, px.R)
	s.Min.G = minf(s.Min.G, px.G)
	s.Min.B = minf(s.Min.B, px.B)
	s.Min.A = minf(s.Min.A, px.A)
	s.Max.R = maxf(s.Max.R, px.R)
	s.Max.G = maxf(s.Max.G, px.G)
	s.Max.B = maxf(s.Max.B, px.B)
	s.Max.A = maxf(s.Max.A, px.A)
}

func (s *Stats) finish(n float32) {
	s.Mean.R /= n
	s.Mean.G /= n
	s.Mean.B /= n
	s.Mean.A /= n
	s.Diff = mrv2.Color4f{
		R: s.Max.R - s.Min.R,
		G: s.Max.G - s.Min.G,
		B: s.Max.B - s.Min.B,
		A: s.Max.A - s.Min.A,
	}
}

func minf(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func maxf(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}
