// Package wgpu is the GPU-backed render target and readback path, built on
// the pure-Go wgpu-core bindings.
//
// The package owns the offscreen color texture the viewport composites into,
// the textured-quad blit shader that puts it on screen, and the staging
// buffers the readback ring copies into. Where the wgpu-core command API is
// still incomplete the copy submission is stubbed behind typed placeholder
// IDs; the surrounding resource lifecycle, sizes and shader compilation are
// real, so the package swaps to live submission without interface changes.
package wgpu
