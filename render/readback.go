package render

import (
	"errors"
	"log/slog"

	mrv2 "github.com/Thane5/mrv2"
)

// Errors reported by the readback ring.
var (
	// ErrMapped indicates Begin was called while a mapping is live.
	ErrMapped = errors.New("render: readback slot still mapped")
	// ErrInvalidated indicates the ring's buffers have been destroyed.
	ErrInvalidated = errors.New("render: readback ring invalidated")
)

// ReadbackRing manages a two-slot ping-pong buffer pair bound to an
// Offscreen target so the CPU never stalls waiting on the GPU.
//
// Each frame, Begin starts an asynchronous device copy into the slot
// selected by the frame's parity, and Map returns the other slot, the one
// written the previous cycle and guaranteed complete. The slot assignment is
// a pure function of the frame number (frame N writes slot N mod 2 and reads
// slot (N+1) mod 2), so the alternation is deterministic and directly
// testable. One frame of staleness is the fixed price for zero stalls;
// there is no cancellation, each frame's request is superseded by the next.
type ReadbackRing struct {
	target  Offscreen
	slots   [2][]float32
	frame   int64
	begun   bool
	mapped  bool
	invalid bool
}

// NewReadbackRing creates the ring and both slot buffers sized to the
// target.
func NewReadbackRing(target Offscreen) *ReadbackRing {
	r := &ReadbackRing{target: target}
	r.allocate()
	return r
}

func (r *ReadbackRing) allocate() {
	n := r.target.Width() * r.target.Height() * 4
	r.slots[0] = make([]float32, n)
	r.slots[1] = make([]float32, n)
}

// writeSlot returns the slot index frame N fills.
func writeSlot(frame int64) int {
	// Negative frames keep a non-negative parity.
	return int(((frame % 2) + 2) % 2)
}

// Begin issues the asynchronous copy of the current target contents into
// this frame's write slot. Any live mapping must be released first.
func (r *ReadbackRing) Begin(frame int64) error {
	if r.invalid {
		return ErrInvalidated
	}
	if r.mapped {
		return ErrMapped
	}
	slot := writeSlot(frame)
	if err := r.target.BeginRead(r.slots[slot]); err != nil {
		return err
	}
	r.frame = frame
	r.begun = true
	mrv2.Logger().Debug("readback begin",
		slog.Int64("frame", frame), slog.Int("slot", slot))
	return nil
}

// Map returns the CPU-visible buffer of the previous cycle's slot, never
// the slot an in-flight copy targets. The first cycle maps a zeroed buffer,
// which is the documented one-frame latency. Call Unmap before the next
// Begin.
func (r *ReadbackRing) Map() ([]float32, error) {
	if r.invalid {
		return nil, ErrInvalidated
	}
	r.mapped = true
	return r.slots[1-writeSlot(r.frame)], nil
}

// Unmap releases the mapping returned by Map.
func (r *ReadbackRing) Unmap() {
	r.mapped = false
}

// Resize releases any live mapping, destroys both slots and recreates them
// at the target's current size. Call after the offscreen target is resized
// or after a hide/show cycle.
func (r *ReadbackRing) Resize() error {
	if r.invalid {
		return ErrInvalidated
	}
	r.mapped = false
	r.begun = false
	r.allocate()
	return nil
}

// Invalidate releases the mapping and drops both slots; the ring is
// unusable until recreated. Used on context loss.
func (r *ReadbackRing) Invalidate() {
	r.mapped = false
	r.invalid = true
	r.slots[0] = nil
	r.slots[1] = nil
}
