package annotation

import mrv2 "github.com/Thane5/mrv2"

// GhostWindow sets how many frames before and after an annotation's native
// frame it remains visible, with opacity ramping linearly from full down to
// zero across the window. Zero disables ghosting in that direction.
type GhostWindow struct {
	Previous int16
	Next     int16
}

// DrawFunc draws one shape with an explicit opacity override. The override
// replaces the shape's base alpha for this draw only; the shape itself is
// never mutated.
type DrawFunc func(s Shape, effectiveAlpha float32)

// GhostAlpha computes the opacity multiplier of an annotation at the given
// playback frame.
//
// An annotation on its native frame, or marked AllFrames, draws at full
// opacity. Otherwise the frame distance d into the previous or next window
// attenuates it to 1 - d/window. Only distances 1..window-1 are visible;
// at the window edge the multiplier reaches zero and the annotation is
// culled.
//
// Tie-break: the multiplier is a pure function of the signed frame distance,
// so the closest interpretation always wins. The distance is unique per
// annotation, which makes the previous/next scans mutually exclusive.
func GhostAlpha(currentFrame int64, a *Annotation, ghost GhostWindow) float32 {
	if a.AllFrames || a.Frame == currentFrame {
		return 1
	}
	if ghost.Previous > 0 {
		if d := currentFrame - a.Frame; d >= 1 && d < int64(ghost.Previous) {
			return 1 - float32(d)/float32(ghost.Previous)
		}
	}
	if ghost.Next > 0 {
		if d := a.Frame - currentFrame; d >= 1 && d < int64(ghost.Next) {
			return 1 - float32(d)/float32(ghost.Next)
		}
	}
	return 0
}

// Composite draws every visible annotation for the current frame, back to
// front in list order.
//
// Within one annotation, shapes are drawn in reverse of their stored order:
// the last-added shape draws first. Erase strokes rely on this, since they
// must composite before the strokes they erase under the stencil blend mode.
//
// Annotations whose ghost multiplier is zero are skipped entirely: no draw
// call, no state change. The effective alpha handed to draw is the shape's
// base alpha times the ghost multiplier.
func Composite(currentFrame int64, annotations []*Annotation, ghost GhostWindow, draw DrawFunc) {
	for _, a := range annotations {
		alphaMult := GhostAlpha(currentFrame, a, ghost)
		if alphaMult == 0 {
			continue
		}
		for i := len(a.Shapes) - 1; i >= 0; i-- {
			s := a.Shapes[i]
			draw(s, s.BaseColor().A*alphaMult)
		}
	}
}

// EffectiveColor is a convenience for backends: the shape's base color with
// its alpha replaced by the effective alpha from Composite.
func EffectiveColor(s Shape, effectiveAlpha float32) mrv2.Color4f {
	return s.BaseColor().WithAlpha(effectiveAlpha)
}
