package text

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew).
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// Glyph is one positioned glyph of a shaped label. Positions are in pixels
// relative to the pen origin at (0, 0) on the baseline.
type Glyph struct {
	// GID is the glyph index in the face's font.
	GID uint32
	// Cluster is the rune index this glyph maps back to.
	Cluster int
	// X and Y position the glyph relative to the pen origin.
	X, Y float64
	// XAdvance is the pen advance after this glyph.
	XAdvance float64
}

// Metrics are the vertical line metrics of a shaped run, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Gap     float64
}

// LineHeight returns the baseline-to-baseline distance for stacked lines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.Gap
}
