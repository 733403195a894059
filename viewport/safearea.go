package viewport

import (
	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/area"
)

// safeArea is one guide rectangle with its label.
type safeArea struct {
	percentX float64
	percentY float64
	color    mrv2.Color4f
	label    string
}

var (
	safeRed     = mrv2.Color4f{R: 1, A: 1}
	safeYellow  = mrv2.Color4f{R: 1, G: 1, A: 1}
	safeCyan    = mrv2.Color4f{G: 1, B: 1, A: 1}
	safeMagenta = mrv2.Color4f{R: 1, B: 1, A: 1}
)

// safeAreaSet picks the guide preset for a render aspect and pixel aspect
// ratio. Narrow and 16:9 footage gets the TV action/title pair; square-pixel
// wide footage is assumed film and gets the cinema aspect set plus hdtv;
// anamorphic wide footage gets TV guides widened for a 4:3 fit.
func safeAreaSet(w, h int, pixelAspect float64) []safeArea {
	aspect := float64(w) / float64(h)
	if aspect < 1.66 || (aspect >= 1.77 && aspect <= 1.78) {
		return []safeArea{
			{0.9, 0.9, safeRed, "tv action"},
			{0.8, 0.8, safeRed, "tv title"},
		}
	}
	if pixelAspect == 1 {
		// 1.85 is drawn slightly wide so the guide clears the 1.85
		// extraction line itself.
		return []safeArea{
			{2.35, 1, safeRed, "2.35"},
			{1.89, 1, safeYellow, "1.85"},
			{1.66, 1, safeCyan, "1.66"},
			{1.77, 1, safeMagenta, "hdtv"},
		}
	}
	const f = 1.33
	return []safeArea{
		{f * 0.9, 0.9, safeRed, "tv action"},
		{f * 0.8, 0.8, safeRed, "tv title"},
	}
}

// safeAreaBox computes one guide rectangle. The same leftover-fraction
// comparison as the crop mask picks which axis the percentage applies to;
// the other axis is centered by its leftover amount, corrected by the pixel
// aspect ratio in the horizontal case.
func safeAreaBox(w, h int, sa safeArea, pixelAspect float64) area.Box {
	aspectY := float64(w) / float64(h)
	aspectX := float64(h) / float64(w)

	amountY := 0.5 - sa.percentY*aspectY/2
	amountX := 0.5 - sa.percentX*aspectX/2

	var x, y int
	if amountY >= amountX {
		x = int(float64(w) * sa.percentX)
		y = int(float64(h) * amountY)
	} else {
		x = int(float64(w) * amountX / pixelAspect)
		y = int(float64(h) * sa.percentY)
	}
	return area.Box{MinX: w - x, MinY: h - y, MaxX: x, MaxY: y}.Normalized()
}
