package text

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

func TestDetectBaseDirection(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Direction
	}{
		{"empty", "", DirectionLTR},
		{"latin", "shot_042.exr", DirectionLTR},
		{"digits only", "1920x1080", DirectionLTR},
		{"hebrew", "שלום", DirectionRTL},
		{"arabic", "مرحبا", DirectionRTL},
		{"hebrew with digits", "שלום 42", DirectionRTL},
		{"latin then hebrew", "take שלום", DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBaseDirection(tt.label); got != tt.want {
				t.Errorf("DetectBaseDirection(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if got := DirectionLTR.String(); got != "LTR" {
		t.Errorf("DirectionLTR.String() = %q, want LTR", got)
	}
	if got := DirectionRTL.String(); got != "RTL" {
		t.Errorf("DirectionRTL.String() = %q, want RTL", got)
	}
}

func TestConvertGlyphs(t *testing.T) {
	// Two glyphs: first advances 10px, second is offset (+1, -2)
	// from a pen that has already moved.
	in := []shaping.Glyph{
		{GlyphID: 7, Advance: fixed.I(10)},
		{GlyphID: 9, Advance: fixed.I(8), XOffset: fixed.I(1), YOffset: fixed.I(2)},
	}
	out := convertGlyphs(in)
	if len(out) != 2 {
		t.Fatalf("convertGlyphs returned %d glyphs, want 2", len(out))
	}
	if out[0].GID != 7 || out[0].X != 0 || out[0].XAdvance != 10 {
		t.Errorf("glyph 0 = %+v, want GID 7 at x=0 advance 10", out[0])
	}
	if out[1].GID != 9 || out[1].X != 11 || out[1].Y != -2 {
		t.Errorf("glyph 1 = %+v, want GID 9 at (11, -2)", out[1])
	}
}

func TestConvertGlyphsEmpty(t *testing.T) {
	if out := convertGlyphs(nil); out != nil {
		t.Errorf("convertGlyphs(nil) = %v, want nil", out)
	}
}

func TestAdvance(t *testing.T) {
	glyphs := []Glyph{{XAdvance: 10}, {XAdvance: 8.5}, {XAdvance: 3}}
	if got := Advance(glyphs); got != 21.5 {
		t.Errorf("Advance = %v, want 21.5", got)
	}
	if got := Advance(nil); got != 0 {
		t.Errorf("Advance(nil) = %v, want 0", got)
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name  string
		runes []rune
		want  language.Script
	}{
		{"latin", []rune("abc"), language.LookupScript('a')},
		{"leading space", []rune("  x"), language.LookupScript('x')},
		{"hebrew", []rune("ש"), language.LookupScript('ש')},
		{"all space", []rune("   "), language.Latin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectScript(tt.runes); got != tt.want {
				t.Errorf("detectScript = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetricsLineHeight(t *testing.T) {
	m := Metrics{Ascent: 12, Descent: 4, Gap: 2}
	if got := m.LineHeight(); got != 18 {
		t.Errorf("LineHeight = %v, want 18", got)
	}
}

func TestShapeEmpty(t *testing.T) {
	s := NewShaper()
	glyphs, metrics := s.Shape("", nil)
	if glyphs != nil {
		t.Errorf("Shape of empty label returned glyphs: %v", glyphs)
	}
	if metrics != (Metrics{}) {
		t.Errorf("Shape of empty label returned metrics: %+v", metrics)
	}
}
