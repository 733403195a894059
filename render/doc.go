// Package render defines where viewport output goes and how the CPU reads
// it back.
//
// The package provides three pieces:
//
//   - Offscreen: the composited-video render target, with an asynchronous
//     full-target read. GPU implementations issue a device copy and return
//     immediately; the CPU never waits on the device.
//   - ReadbackRing: a two-slot ping-pong buffer over an Offscreen. Each frame
//     writes one slot and maps the other, trading one frame of staleness for
//     zero pipeline stalls.
//   - Renderer: the draw-call surface the viewport orchestrator uses for
//     video compositing, rectangles, text and annotation shapes. A software
//     implementation backs tests and headless tools; backend/wgpu provides
//     the GPU path.
//
// Readback buffers use a reversed-channel layout: four float32 per pixel in
// B, G, R, A order, matching the source's natural byte order so no swizzle
// pass is needed. Consumers swap R and B when reading.
package render
