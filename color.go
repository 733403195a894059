package mrv2

import "image/color"

// Color4f is a single decoded pixel sample with red, green, blue, and alpha
// components. Components are normalized to [0, 1] for integer pixel formats
// and left unclamped for half/float formats, so HDR values survive decoding.
//
// Some consumers repurpose the A slot: colorspace conversions store a computed
// brightness value there instead of the converted alpha. See package
// colorspace for the exact contract.
type Color4f struct {
	R, G, B, A float32
}

// Gray creates an opaque gray sample with all color channels set to v.
func Gray(v float32) Color4f {
	return Color4f{R: v, G: v, B: v, A: 1}
}

// RGB creates an opaque sample from RGB components.
func RGB(r, g, b float32) Color4f {
	return Color4f{R: r, G: g, B: b, A: 1}
}

// Color converts the sample to the standard color.Color interface,
// clamping to the displayable [0, 1] range.
func (c Color4f) Color() color.Color {
	return color.NRGBA64{
		R: uint16(clamp01(c.R) * 65535),
		G: uint16(clamp01(c.G) * 65535),
		B: uint16(clamp01(c.B) * 65535),
		A: uint16(clamp01(c.A) * 65535),
	}
}

// RGBA implements color.Color with premultiplied 16-bit channels.
func (c Color4f) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Clamped returns the sample with R, G and B clamped to [0, 1].
// The alpha channel is passed through untouched.
func (c Color4f) Clamped() Color4f {
	return Color4f{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: c.A,
	}
}

// WithAlpha returns the sample with the alpha channel replaced by a.
func (c Color4f) WithAlpha(a float32) Color4f {
	c.A = a
	return c
}

// Lerp linearly interpolates between c and other by t in [0, 1].
// Used for dissolve transitions when probing across timeline layers.
func (c Color4f) Lerp(other Color4f, t float32) Color4f {
	f := 1 - t
	return Color4f{
		R: c.R*f + other.R*t,
		G: c.G*f + other.G*t,
		B: c.B*f + other.B*t,
		A: c.A*f + other.A*t,
	}
}

// Add returns the channel-wise sum of c and other.
func (c Color4f) Add(other Color4f) Color4f {
	return Color4f{
		R: c.R + other.R,
		G: c.G + other.G,
		B: c.B + other.B,
		A: c.A + other.A,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
