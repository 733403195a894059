package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Thane5/mrv2/render"
)

// StubTextureID is a placeholder for the wgpu-core TextureID until texture
// creation is exposed by the core bindings.
type StubTextureID uint64

// StubEncoderID is a placeholder for the wgpu-core CommandEncoderID.
type StubEncoderID uint64

// Offscreen is the GPU-backed composited-video target. The color texture is
// RGBA32Float; readback copies it into a MAP_READ staging buffer in the
// reversed B,G,R,A channel order, so consumers swap R and B (the same
// contract the software target honors).
type Offscreen struct {
	dev    *Device
	shader *BlitShader

	w, h    int
	texture StubTextureID
	nextID  uint64

	destroyed bool
}

// NewOffscreen creates the offscreen target and compiles the blit shader.
func NewOffscreen(dev *Device, w, h int) (*Offscreen, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("wgpu: invalid offscreen size %dx%d", w, h)
	}
	shader, err := CompileBlitShader()
	if err != nil {
		return nil, err
	}
	t := &Offscreen{dev: dev, shader: shader, w: w, h: h}
	t.texture = t.createColorTexture(w, h)
	return t, nil
}

func (t *Offscreen) createColorTexture(w, h int) StubTextureID {
	// TODO: when wgpu-core exposes texture creation:
	// texID, _ := core.CreateTexture(t.dev.device, &gputypes.TextureDescriptor{
	//     Size:   gputypes.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	//     Format: gputypes.TextureFormatRGBA32Float,
	//     Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	// })
	t.nextID++
	return StubTextureID(t.nextID)
}

// Width returns the target width in pixels.
func (t *Offscreen) Width() int { return t.w }

// Height returns the target height in pixels.
func (t *Offscreen) Height() int { return t.h }

// Format returns the color texture format.
func (t *Offscreen) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA32Float
}

// BeginRead issues the asynchronous texture-to-buffer copy into dst and
// returns without waiting on the device. Completion is guaranteed by the
// readback ring's one-frame latency, never by blocking here.
func (t *Offscreen) BeginRead(dst []float32) error {
	if t.destroyed {
		return render.ErrDestroyed
	}
	if len(dst) != t.w*t.h*4 {
		return fmt.Errorf("%w: have %d, need %d", render.ErrSizeMismatch, len(dst), t.w*t.h*4)
	}

	// TODO: when wgpu-core exposes the command encoder:
	// enc, _ := core.CreateCommandEncoder(t.dev.device, nil)
	// core.CommandEncoderCopyTextureToBuffer(enc,
	//     &gputypes.ImageCopyTexture{Texture: t.texture},
	//     &gputypes.ImageCopyBuffer{Buffer: staging, BytesPerRow: uint32(t.w * 16)},
	//     &gputypes.Extent3D{Width: uint32(t.w), Height: uint32(t.h), DepthOrArrayLayers: 1})
	// buf, _ := core.FinishCommandEncoder(enc)
	// core.QueueSubmit(t.dev.queue, []core.CommandBufferID{buf})
	// The mapped staging contents land in dst when the slot is next mapped.
	return nil
}

// Resize drops the color texture and recreates it at the new size.
func (t *Offscreen) Resize(w, h int) error {
	if t.destroyed {
		return render.ErrDestroyed
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("wgpu: invalid offscreen size %dx%d", w, h)
	}
	t.w, t.h = w, h
	t.texture = t.createColorTexture(w, h)
	return nil
}

// Destroy releases the texture; further operations return ErrDestroyed.
func (t *Offscreen) Destroy() {
	t.destroyed = true
	t.texture = 0
}

// Shader returns the compiled blit shader for the window's present pass.
func (t *Offscreen) Shader() *BlitShader { return t.shader }

// Ensure Offscreen implements the render target contract.
var _ render.Offscreen = (*Offscreen)(nil)
