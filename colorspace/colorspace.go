// Package colorspace converts RGBA samples into alternate representations
// for statistics, histogram and vectorscope display.
//
// All conversions are pure and stateless. Callers clamp R, G and B to [0, 1]
// before converting (Color4f.Clamped); min/max tracking for statistics is
// done on the unclamped values beforehand, so recorded extremes reflect the
// true pixel range even though hue and lightness use clamped inputs.
package colorspace

import (
	"math"

	mrv2 "github.com/Thane5/mrv2"
)

// Mode selects the secondary colorspace for region statistics.
type Mode int

// Secondary colorspace modes.
const (
	RGB Mode = iota
	HSV
	HSL
	CIEXYZ
	CIExyY
	CIELab
	CIELuv
	YUV
	YDbDr
	YIQ
	ITU601
	ITU709
)

var modeNames = [...]string{
	"RGB", "HSV", "HSL", "CIE XYZ", "CIE xyY", "CIE L*a*b*", "CIE L*u*v*",
	"YUV", "YDbDr", "YIQ", "ITU-601", "ITU-709",
}

// String returns the display name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Unknown"
	}
	return modeNames[m]
}

// Convert maps a clamped RGB sample into the selected colorspace. The three
// converted components are returned in the R, G and B slots; the alpha slot
// is passed through unchanged (consumers that need brightness overwrite it,
// see Brightness).
func Convert(m Mode, c mrv2.Color4f) mrv2.Color4f {
	switch m {
	case HSV:
		return ToHSV(c)
	case HSL:
		return ToHSL(c)
	case CIEXYZ:
		return ToXYZ(c)
	case CIExyY:
		return ToxyY(c)
	case CIELab:
		return ToLab(c)
	case CIELuv:
		return ToLuv(c)
	case YUV:
		return ToYUV(c)
	case YDbDr:
		return ToYDbDr(c)
	case YIQ:
		return ToYIQ(c)
	case ITU601:
		return ToITU601(c)
	case ITU709:
		return ToITU709(c)
	}
	return c
}

// ToHSV converts to hue (in turns, [0,1)), saturation and value.
func ToHSV(c mrv2.Color4f) mrv2.Color4f {
	maxc := max3(c.R, c.G, c.B)
	minc := min3(c.R, c.G, c.B)
	v := maxc
	delta := maxc - minc

	var s, h float32
	if maxc > 0 {
		s = delta / maxc
	}
	if delta > 0 {
		switch maxc {
		case c.R:
			h = (c.G - c.B) / delta
		case c.G:
			h = 2 + (c.B-c.R)/delta
		default:
			h = 4 + (c.R-c.G)/delta
		}
		h /= 6
		if h < 0 {
			h++
		}
	}
	return mrv2.Color4f{R: h, G: s, B: v, A: c.A}
}

// ToHSL converts to hue (in turns), saturation and lightness.
func ToHSL(c mrv2.Color4f) mrv2.Color4f {
	maxc := max3(c.R, c.G, c.B)
	minc := min3(c.R, c.G, c.B)
	l := (maxc + minc) / 2
	delta := maxc - minc

	var h, s float32
	if delta > 0 {
		if l < 0.5 {
			s = delta / (maxc + minc)
		} else {
			s = delta / (2 - maxc - minc)
		}
		switch maxc {
		case c.R:
			h = (c.G - c.B) / delta
		case c.G:
			h = 2 + (c.B-c.R)/delta
		default:
			h = 4 + (c.R-c.G)/delta
		}
		h /= 6
		if h < 0 {
			h++
		}
	}
	return mrv2.Color4f{R: h, G: s, B: l, A: c.A}
}

// sRGB (Rec. 709 primaries, D65 white) to CIE XYZ matrix, linear light
// assumed: the viewer's offscreen buffer is already display-linear.
func xyz(c mrv2.Color4f) (x, y, z float32) {
	x = 0.4124564*c.R + 0.3575761*c.G + 0.1804375*c.B
	y = 0.2126729*c.R + 0.7151522*c.G + 0.0721750*c.B
	z = 0.0193339*c.R + 0.1191920*c.G + 0.9503041*c.B
	return x, y, z
}

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// ToXYZ converts to CIE XYZ.
func ToXYZ(c mrv2.Color4f) mrv2.Color4f {
	x, y, z := xyz(c)
	return mrv2.Color4f{R: x, G: y, B: z, A: c.A}
}

// ToxyY converts to CIE xyY chromaticity plus luminance.
func ToxyY(c mrv2.Color4f) mrv2.Color4f {
	x, y, z := xyz(c)
	sum := x + y + z
	if sum <= 0 {
		return mrv2.Color4f{A: c.A}
	}
	return mrv2.Color4f{R: x / sum, G: y / sum, B: y, A: c.A}
}

// labF is the CIE L* transfer function.
func labF(t float32) float32 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return float32(math.Cbrt(float64(t)))
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// ToLab converts to CIE L*a*b* (D65 white). L* is scaled to [0, 100].
func ToLab(c mrv2.Color4f) mrv2.Color4f {
	x, y, z := xyz(c)
	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)
	return mrv2.Color4f{
		R: 116*fy - 16,
		G: 500 * (fx - fy),
		B: 200 * (fy - fz),
		A: c.A,
	}
}

// ToLuv converts to CIE L*u*v* (D65 white). L* is scaled to [0, 100].
func ToLuv(c mrv2.Color4f) mrv2.Color4f {
	x, y, z := xyz(c)
	denom := x + 15*y + 3*z
	if denom <= 0 {
		return mrv2.Color4f{A: c.A}
	}
	up := 4 * x / denom
	vp := 9 * y / denom

	const wDenom = whiteX + 15*whiteY + 3*whiteZ
	upn := float32(4 * whiteX / wDenom)
	vpn := float32(9 * whiteY / wDenom)

	var l float32
	yr := y / whiteY
	if yr > 0.008856 {
		l = 116*float32(math.Cbrt(float64(yr))) - 16
	} else {
		l = 903.3 * yr
	}
	return mrv2.Color4f{
		R: l,
		G: 13 * l * (up - upn),
		B: 13 * l * (vp - vpn),
		A: c.A,
	}
}

// lumaBT601 is the SD luma weighting shared by the analog-era spaces.
func lumaBT601(c mrv2.Color4f) float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ToYUV converts to analog YUV (BT.470).
func ToYUV(c mrv2.Color4f) mrv2.Color4f {
	y := lumaBT601(c)
	return mrv2.Color4f{
		R: y,
		G: 0.492 * (c.B - y),
		B: 0.877 * (c.R - y),
		A: c.A,
	}
}

// ToYDbDr converts to SECAM YDbDr.
func ToYDbDr(c mrv2.Color4f) mrv2.Color4f {
	return mrv2.Color4f{
		R: lumaBT601(c),
		G: -0.450*c.R - 0.883*c.G + 1.333*c.B,
		B: -1.333*c.R + 1.116*c.G + 0.217*c.B,
		A: c.A,
	}
}

// ToYIQ converts to NTSC YIQ.
func ToYIQ(c mrv2.Color4f) mrv2.Color4f {
	return mrv2.Color4f{
		R: lumaBT601(c),
		G: 0.596*c.R - 0.274*c.G - 0.322*c.B,
		B: 0.211*c.R - 0.523*c.G + 0.312*c.B,
		A: c.A,
	}
}

// ToITU601 converts to digital Y'CbCr with BT.601 weights and legal-range
// offsets (luma footroom 16/255, chroma centered at 128/255).
func ToITU601(c mrv2.Color4f) mrv2.Color4f {
	return mrv2.Color4f{
		R: 0.257*c.R + 0.504*c.G + 0.098*c.B + 16.0/255,
		G: -0.148*c.R - 0.291*c.G + 0.439*c.B + 128.0/255,
		B: 0.439*c.R - 0.368*c.G - 0.071*c.B + 128.0/255,
		A: c.A,
	}
}

// ToITU709 converts to digital Y'CbCr with BT.709 weights and legal-range
// offsets.
func ToITU709(c mrv2.Color4f) mrv2.Color4f {
	return mrv2.Color4f{
		R: 0.183*c.R + 0.614*c.G + 0.062*c.B + 16.0/255,
		G: -0.101*c.R - 0.339*c.G + 0.439*c.B + 128.0/255,
		B: 0.439*c.R - 0.399*c.G - 0.040*c.B + 128.0/255,
		A: c.A,
	}
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
