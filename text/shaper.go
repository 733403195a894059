package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Shaper converts label strings into positioned glyphs using HarfBuzz
// shaping via go-text/typesetting.
//
// Shaper is safe for concurrent use: HarfbuzzShaper instances have internal
// mutable state and are pooled, and each Shape call builds its own
// lightweight font.Face around the shared read-only font.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Shape converts a label into positioned glyphs and returns the run's line
// metrics. The base direction is detected from the label content, so RTL
// file names and attributes render correctly in the HUD.
func (s *Shaper) Shape(label string, face *Face) ([]Glyph, Metrics) {
	if label == "" || face == nil {
		return nil, Metrics{}
	}

	runes := []rune(label)
	dir := di.DirectionLTR
	if DetectBaseDirection(label) == DirectionRTL {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(face.fnt),
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	metrics := Metrics{
		Ascent:  fixedToFloat(output.LineBounds.Ascent),
		Descent: -fixedToFloat(output.LineBounds.Descent),
		Gap:     fixedToFloat(output.LineBounds.Gap),
	}
	return convertGlyphs(output.Glyphs), metrics
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Labels are single-script in practice; mixed-script
// text would need run splitting, which the HUD does not require.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// convertGlyphs walks the shaped glyphs accumulating the pen position.
func convertGlyphs(glyphs []shaping.Glyph) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]Glyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fixedToFloat(g.Advance)
		result[i] = Glyph{
			GID:      uint32(g.GlyphID),
			Cluster:  g.TextIndex(),
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}

// Advance returns the total pen advance of shaped glyphs, used to
// right-align safe-area labels.
func Advance(glyphs []Glyph) float64 {
	var x float64
	for _, g := range glyphs {
		x += g.XAdvance
	}
	return x
}
