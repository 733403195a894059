package render

import (
	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/annotation"
	"github.com/Thane5/mrv2/area"
	"github.com/Thane5/mrv2/raster"
	"github.com/Thane5/mrv2/text"
)

// Transition describes how two timeline layers combine during playback.
type Transition int

const (
	// TransitionNone shows the layer as-is.
	TransitionNone Transition = iota
	// TransitionDissolve cross-fades the layer with the next by
	// TransitionValue.
	TransitionDissolve
)

// VideoLayer is one image of the current frame's video data, delivered by
// the playback engine with its pixel-format tag.
type VideoLayer struct {
	Image           *raster.Image
	Transition      Transition
	TransitionValue float32
}

// Renderer is the draw-call surface the viewport orchestrator drives. The
// heavy lifting (color-managed video compositing, shader setup) lives in
// implementations; the orchestrator only sequences calls.
//
// Calls between Begin and End draw into the bound offscreen target; the
// implementation owns binding and unbinding.
type Renderer interface {
	// Begin binds the offscreen target and prepares a frame of the given
	// render size.
	Begin(w, h int) error

	// End flushes the frame and unbinds the target.
	End() error

	// DrawVideo composites the frame's video layers into the target.
	DrawVideo(layers []VideoLayer) error

	// DrawRect fills box with a solid color.
	DrawRect(box area.Box, c mrv2.Color4f)

	// DrawRectOutline strokes the box edges at the given line width.
	DrawRectOutline(box area.Box, c mrv2.Color4f, width float32)

	// DrawGlyphs draws shaped glyphs with their pen origin at pos.
	DrawGlyphs(glyphs []text.Glyph, pos annotation.Point, c mrv2.Color4f)

	// DrawShape draws one annotation shape with an explicit opacity
	// override in place of the shape's base alpha.
	DrawShape(s annotation.Shape, effectiveAlpha float32)
}
