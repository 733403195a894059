// Package mrv2 provides the core of a professional flipbook player:
// a color-managed video compositing and pixel-inspection pipeline.
//
// # Overview
//
// mrv2 implements the viewport internals of a movie / image-sequence review
// tool: per-format pixel decoding into normalized RGBA, colorspace conversion
// for scopes and statistics, asynchronous GPU pixel readback, rectangular
// color-area analysis, and time-ghosted annotation compositing.
//
// # Packages
//
//   - raster: pixel-format descriptors and scanline decoding (interleaved
//     and planar YUV layouts, 8/10/16/32-bit integer and half/float depths)
//   - colorspace: RGB to HSV/HSL/CIE/YUV-family conversions and brightness
//   - area: min/max/mean/diff statistics over a selection region
//   - annotation: time-stamped drawing records and ghosted compositing
//   - render: render targets, the renderer interface, and the double-buffered
//     readback ring
//   - viewport: the per-frame orchestrator tying everything together
//   - text: HUD label shaping
//   - backend/wgpu: GPU-backed offscreen target and readback
//
// # Quick Start
//
//	img, err := raster.NewImage(buf, w, h, raster.RGBA_U8)
//	if err != nil {
//		// handle err
//	}
//	px := raster.Decode(img, x, y, raster.DecodeOptions{})
//
// The root package holds the shared Color4f sample type and the logger
// configuration used by every subpackage.
package mrv2
