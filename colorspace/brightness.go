package colorspace

import (
	"math"

	mrv2 "github.com/Thane5/mrv2"
)

// BrightnessMode selects the scalar brightness computed per pixel for the
// color-area panel. The computed value is carried in the ALPHA slot of the
// converted sample: region statistics repurpose that slot for a brightness
// scalar instead of the converted alpha. The repurposing is intentional; the
// panel displays min/max/mean brightness alongside the converted triple.
type BrightnessMode int

const (
	// LuminanceRec709 is the Rec. 709 luma weighting of the linear RGB.
	LuminanceRec709 BrightnessMode = iota
	// Lightness is CIE L* scaled to [0, 1].
	Lightness
	// Lumma is the plain channel average (R+G+B)/3.
	Lumma
)

var brightnessNames = [...]string{"Luminance", "Lightness", "Lumma"}

// String returns the display name of the mode.
func (m BrightnessMode) String() string {
	if m < 0 || int(m) >= len(brightnessNames) {
		return "Unknown"
	}
	return brightnessNames[m]
}

// Brightness computes the selected brightness scalar from a clamped RGB
// sample.
func Brightness(m BrightnessMode, c mrv2.Color4f) float32 {
	switch m {
	case Lightness:
		y := 0.2126729*c.R + 0.7151522*c.G + 0.0721750*c.B
		if y > 0.008856 {
			return (116*float32(math.Cbrt(float64(y))) - 16) / 100
		}
		return 903.3 * y / 100
	case Lumma:
		return (c.R + c.G + c.B) / 3
	default:
		return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	}
}
