// Package annotation holds time-stamped drawing records and composites them
// over the viewport with ghosting: annotations near the current frame are
// shown with linearly reduced opacity to preview the motion of on-screen
// drawings.
package annotation

import (
	"github.com/google/uuid"

	mrv2 "github.com/Thane5/mrv2"
)

// ShapeKind tags the concrete shape variant. Draw dispatch switches on this
// tag, narrowing to the concrete type only inside the matched branch.
type ShapeKind int

// Shape variants.
const (
	KindStroke ShapeKind = iota
	KindRect
	KindCircle
	KindArrow
	KindText
	KindErase
)

var kindNames = [...]string{"Stroke", "Rect", "Circle", "Arrow", "Text", "Erase"}

// String returns the variant name.
func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Point is a 2D position in render coordinates.
type Point struct {
	X, Y float32
}

// Shape is one drawable element of an annotation. Implementations are plain
// data: drawing is performed by the render backend, and opacity attenuation
// is passed alongside the shape rather than written into it, so compositing
// never mutates annotation state.
type Shape interface {
	// Kind returns the variant tag used for draw dispatch.
	Kind() ShapeKind
	// BaseColor returns the shape's stored color including its base alpha.
	BaseColor() mrv2.Color4f
}

// Stroke is a freehand pen path.
type Stroke struct {
	Color  mrv2.Color4f
	Points []Point
	Width  float32
}

// Kind returns KindStroke.
func (s *Stroke) Kind() ShapeKind { return KindStroke }

// BaseColor returns the stored color.
func (s *Stroke) BaseColor() mrv2.Color4f { return s.Color }

// Rect is an outlined rectangle.
type Rect struct {
	Color     mrv2.Color4f
	Min, Max  Point
	LineWidth float32
}

// Kind returns KindRect.
func (r *Rect) Kind() ShapeKind { return KindRect }

// BaseColor returns the stored color.
func (r *Rect) BaseColor() mrv2.Color4f { return r.Color }

// Circle is an outlined circle.
type Circle struct {
	Color     mrv2.Color4f
	Center    Point
	Radius    float32
	LineWidth float32
}

// Kind returns KindCircle.
func (c *Circle) Kind() ShapeKind { return KindCircle }

// BaseColor returns the stored color.
func (c *Circle) BaseColor() mrv2.Color4f { return c.Color }

// Arrow is a line with an arrowhead at its end point.
type Arrow struct {
	Color     mrv2.Color4f
	From, To  Point
	LineWidth float32
}

// Kind returns KindArrow.
func (a *Arrow) Kind() ShapeKind { return KindArrow }

// BaseColor returns the stored color.
func (a *Arrow) BaseColor() mrv2.Color4f { return a.Color }

// Text is a label placed on the image.
type Text struct {
	Color mrv2.Color4f
	Pos   Point
	Size  float32
	Text  string
}

// Kind returns KindText.
func (t *Text) Kind() ShapeKind { return KindText }

// BaseColor returns the stored color.
func (t *Text) BaseColor() mrv2.Color4f { return t.Color }

// Erase is a stroke that removes earlier strokes where it passes. It is
// stored as a regular shape; the reverse draw order within an annotation is
// what makes erasing composite correctly under the stencil blend.
type Erase struct {
	Color  mrv2.Color4f
	Points []Point
	Width  float32
}

// Kind returns KindErase.
func (e *Erase) Kind() ShapeKind { return KindErase }

// BaseColor returns the stored color.
func (e *Erase) BaseColor() mrv2.Color4f { return e.Color }

// Annotation is one time-indexed drawing record. It is owned by the playback
// subsystem; the compositor only reads it.
type Annotation struct {
	// ID identifies the record across collaboration sessions.
	ID uuid.UUID
	// Frame is the native frame of the drawing.
	Frame int64
	// AllFrames pins the drawing to every frame, disabling ghosting.
	AllFrames bool
	// Shapes in creation order. Later entries (such as erase strokes) are
	// drawn first by the compositor.
	Shapes []Shape
}

// New creates an empty annotation for the given frame.
func New(frame int64) *Annotation {
	return &Annotation{ID: uuid.New(), Frame: frame}
}

// Append adds a shape at the end of the creation order.
func (a *Annotation) Append(s Shape) {
	a.Shapes = append(a.Shapes, s)
}
