package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// Face is a parsed font at a specific size. The parsed font.Font is
// read-only and safe for concurrent use; per-call font.Face instances are
// created by the shaper, which is the part that is not concurrency-safe.
type Face struct {
	fnt  *font.Font
	size float64
}

// NewFace parses TTF/OTF font data at the given pixel size.
func NewFace(data []byte, size float64) (*Face, error) {
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Face{fnt: parsed.Font, size: size}, nil
}

// Size returns the face size in pixels.
func (f *Face) Size() float64 { return f.size }

// WithSize returns a face sharing the parsed font at a different size.
// HUD text scales with pixels-per-unit, so this is called per frame.
func (f *Face) WithSize(size float64) *Face {
	return &Face{fnt: f.fnt, size: size}
}
