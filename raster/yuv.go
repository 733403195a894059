package raster

import (
	mrv2 "github.com/Thane5/mrv2"
)

// VideoLevels selects the convention mapping digital sample values to
// intensity. Legal (broadcast) range reserves headroom and footroom; full
// range uses the whole code space.
type VideoLevels int

const (
	// FullRange maps the entire code space to [0, 1].
	FullRange VideoLevels = iota
	// LegalRange maps the broadcast-legal sub-range (16-235 luma, 16-240
	// chroma at 8 bits) to [0, 1]. Samples are expanded before any
	// YUV-to-RGB conversion, never after.
	LegalRange
)

// String returns the level convention name.
func (v VideoLevels) String() string {
	if v == LegalRange {
		return "LegalRange"
	}
	return "FullRange"
}

// Coefficients selects the luma/chroma matrix for YUV conversion. The four
// values plug into the inverse transform as
//
//	R = Y + (V-0.5)*c[0]
//	G = Y - (U-0.5)*c[2] - (V-0.5)*c[3]
//	B = Y + (U-0.5)*c[1]
//
// A zero Coefficients value is invalid: every YUV conversion requires an
// explicit standard.
type Coefficients [4]float32

// Named coefficient standards.
var (
	// BT601 is the ITU-R BT.601 (SD) matrix.
	BT601 = Coefficients{1.402, 1.772, 0.344136, 0.714136}
	// BT709 is the ITU-R BT.709 (HD) matrix.
	BT709 = Coefficients{1.5748, 1.8556, 0.187324, 0.468124}
	// BT2020 is the ITU-R BT.2020 (UHD) matrix.
	BT2020 = Coefficients{1.4746, 1.8814, 0.164553, 0.571353}
)

// IsZero reports whether no standard has been selected.
func (c Coefficients) IsZero() bool {
	return c == Coefficients{}
}

// Legal-range bounds for normalized 8-bit-equivalent code values.
const (
	legalBlack       = 16.0 / 255.0
	legalLumaScale   = 255.0 / 219.0
	legalChromaScale = 255.0 / 224.0
)

// expandLevels rescales a raw YUV triple (carried in R=Y, G=U, B=V) from
// legal to full range. Full-range samples pass through untouched.
func expandLevels(s mrv2.Color4f, levels VideoLevels) mrv2.Color4f {
	if levels != LegalRange {
		return s
	}
	s.R = (s.R - legalBlack) * legalLumaScale
	s.G = (s.G - legalBlack) * legalChromaScale
	s.B = (s.B - legalBlack) * legalChromaScale
	return s
}

// yuvToRGB applies the coefficient matrix to a full-range YUV triple carried
// in R=Y, G=U, B=V. Alpha is preserved.
func yuvToRGB(s mrv2.Color4f, c Coefficients) mrv2.Color4f {
	y, u, v := s.R, s.G-0.5, s.B-0.5
	return mrv2.Color4f{
		R: y + v*c[0],
		G: y - u*c[2] - v*c[3],
		B: y + u*c[1],
		A: s.A,
	}
}

// krKb returns the luma weights consistent with the inverse matrix, used by
// the forward encoder.
func krKb(c Coefficients) (kr, kb float32) {
	switch c {
	case BT601:
		return 0.299, 0.114
	case BT2020:
		return 0.2627, 0.0593
	default:
		return 0.2126, 0.0722
	}
}

// rgbToYUV is the forward transform matching yuvToRGB. Used to build
// synthetic planar buffers (see EncodeYUV) and round-trip tests.
func rgbToYUV(s mrv2.Color4f, c Coefficients) (y, u, v float32) {
	kr, kb := krKb(c)
	kg := 1 - kr - kb
	y = kr*s.R + kg*s.G + kb*s.B
	u = (s.B-y)/c[1] + 0.5
	v = (s.R-y)/c[0] + 0.5
	return y, u, v
}

// compressLevels is the inverse of expandLevels, used by the encoder.
func compressLevels(y, u, v float32, levels VideoLevels) (float32, float32, float32) {
	if levels != LegalRange {
		return y, u, v
	}
	y = y/legalLumaScale + legalBlack
	u = u/legalChromaScale + legalBlack
	v = v/legalChromaScale + legalBlack
	return y, u, v
}
