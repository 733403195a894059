// Package viewport orchestrates the per-frame draw of the player's main
// view: composited video into an offscreen target, crop mask, selection
// readback and color-area statistics, annotations with ghosting, safe-area
// guides, cursor and HUD text, in that fixed order.
//
// The viewport owns the offscreen target and the readback ring; everything
// else (video layers, annotations, playback state) arrives each frame from
// the playback engine. All work happens on the caller's thread inside Draw;
// the only asynchrony is the GPU readback, which is absorbed by the ring's
// one frame of latency.
package viewport
