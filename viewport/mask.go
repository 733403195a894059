package viewport

import "github.com/Thane5/mrv2/area"

// maskBars computes the two opaque crop-mask bars for a render size and a
// target mask aspect. The orientation comes from comparing the leftover
// fraction on each axis: the vertical amount 0.5 - (1/masking)*aspect/2
// against the horizontal amount 0.5 - masking*inverseAspect/2; the smaller
// one picks the axis that needs no bars.
func maskBars(w, h int, masking float32) (bars [2]area.Box, vertical bool) {
	aspectY := float64(w) / float64(h)
	aspectX := float64(h) / float64(w)

	targetAspect := 1.0 / float64(masking)
	amountY := 0.5 - targetAspect*aspectY/2
	amountX := 0.5 - float64(masking)*aspectX/2

	vertical = amountY >= amountX
	if vertical {
		y := int(float64(h) * amountY)
		bars[0] = area.Box{MinX: 0, MinY: 0, MaxX: w, MaxY: y}
		bars[1] = area.Box{MinX: 0, MinY: h - y, MaxX: w, MaxY: h}
	} else {
		x := int(float64(w) * amountX)
		bars[0] = area.Box{MinX: 0, MinY: 0, MaxX: x, MaxY: h}
		bars[1] = area.Box{MinX: w - x, MinY: 0, MaxX: w, MaxY: h}
	}
	return bars, vertical
}
