package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Errors reported by render targets.
var (
	// ErrDestroyed indicates an operation on a target whose resources have
	// been released (window hidden, context invalidated).
	ErrDestroyed = errors.New("render: target destroyed")
	// ErrSizeMismatch indicates a destination buffer that does not match
	// the target dimensions.
	ErrSizeMismatch = errors.New("render: buffer size mismatch")
)

// Offscreen is the composited-video render target. The viewport draws video
// frames into it, then blits it to screen and reads pixels back from it.
//
// BeginRead issues an asynchronous copy of the full target into dst as
// float32 BGRA and returns immediately. GPU implementations must never block
// on the device here; completion is guaranteed only one frame later, which
// is exactly the contract ReadbackRing builds on.
type Offscreen interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the texture format of the target.
	Format() gputypes.TextureFormat

	// BeginRead starts an asynchronous copy of the whole target into dst,
	// which must hold Width*Height*4 float32 in B,G,R,A order.
	BeginRead(dst []float32) error

	// Resize destroys and recreates the target storage at the new size.
	// Contents are not preserved.
	Resize(w, h int) error

	// Destroy releases the target's resources. Further operations return
	// ErrDestroyed.
	Destroy()
}

// SoftwareOffscreen is a CPU-backed Offscreen holding float32 BGRA pixels.
// It backs the software renderer, headless tools and tests. The "async" read
// is a plain copy, which trivially satisfies the non-blocking contract.
type SoftwareOffscreen struct {
	w, h      int
	pix       []float32
	destroyed bool
}

// NewSoftwareOffscreen creates a CPU-backed target of the given size.
func NewSoftwareOffscreen(w, h int) *SoftwareOffscreen {
	return &SoftwareOffscreen{w: w, h: h, pix: make([]float32, w*h*4)}
}

// Width returns the target width in pixels.
func (t *SoftwareOffscreen) Width() int { return t.w }

// Height returns the target height in pixels.
func (t *SoftwareOffscreen) Height() int { return t.h }

// Format returns the float pixel format of the target.
func (t *SoftwareOffscreen) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA32Float
}

// BeginRead copies the target into dst.
func (t *SoftwareOffscreen) BeginRead(dst []float32) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if len(dst) != len(t.pix) {
		return fmt.Errorf("%w: have %d, need %d", ErrSizeMismatch, len(dst), len(t.pix))
	}
	copy(dst, t.pix)
	return nil
}

// Resize recreates the pixel storage at the new size.
func (t *SoftwareOffscreen) Resize(w, h int) error {
	if t.destroyed {
		return ErrDestroyed
	}
	t.w, t.h = w, h
	t.pix = make([]float32, w*h*4)
	return nil
}

// Destroy releases the pixel storage.
func (t *SoftwareOffscreen) Destroy() {
	t.destroyed = true
	t.pix = nil
}

// Pixels exposes the underlying BGRA float buffer. Shared memory, not a copy.
func (t *SoftwareOffscreen) Pixels() []float32 { return t.pix }

// SetPixel writes one pixel in canonical RGBA order, storing it reversed.
func (t *SoftwareOffscreen) SetPixel(x, y int, r, g, b, a float32) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h || t.destroyed {
		return
	}
	off := (y*t.w + x) * 4
	t.pix[off] = b
	t.pix[off+1] = g
	t.pix[off+2] = r
	t.pix[off+3] = a
}

// Ensure SoftwareOffscreen implements Offscreen.
var _ Offscreen = (*SoftwareOffscreen)(nil)
