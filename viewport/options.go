package viewport

import (
	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/annotation"
	"github.com/Thane5/mrv2/colorspace"
)

// CropRatios is the preset crop-mask aspect table the preferences UI indexes
// into. Index 0 disables the mask.
var CropRatios = []float32{
	0, 1.19, 1.37, 1.5, 1.56, 1.66, 1.7, 1.85, 2, 2.1, 2.2, 2.35, 2.39,
}

// Options mirrors the viewer preferences the viewport consumes. A zero
// Options draws video only: no mask, no guides, no HUD, ghosting disabled.
type Options struct {
	// Ghost sets the annotation ghosting window.
	Ghost annotation.GhostWindow
	// Colorspace selects the secondary space of color-area statistics.
	Colorspace colorspace.Mode
	// Brightness selects the brightness metric of color-area statistics.
	Brightness colorspace.BrightnessMode
	// CropIndex indexes CropRatios; out-of-range values disable the mask.
	CropIndex int
	// SafeAreas toggles the safe-area guide overlay.
	SafeAreas bool
	// HUD selects which heads-up lines are drawn. Zero hides the HUD.
	HUD HUDFlags
	// ShowAnnotations toggles annotation compositing.
	ShowAnnotations bool
	// HUDColor is the HUD label color.
	HUDColor mrv2.Color4f
	// SelectionColor is the selection outline color.
	SelectionColor mrv2.Color4f
}

// Masking returns the active crop-mask aspect, or 0 when disabled.
func (o Options) Masking() float32 {
	if o.CropIndex <= 0 || o.CropIndex >= len(CropRatios) {
		return 0
	}
	return CropRatios[o.CropIndex]
}

// Option configures a Viewport at construction.
type Option func(*Options)

// WithGhostWindow sets the annotation ghosting window.
func WithGhostWindow(g annotation.GhostWindow) Option {
	return func(o *Options) { o.Ghost = g }
}

// WithColorspace selects the secondary statistics space.
func WithColorspace(m colorspace.Mode) Option {
	return func(o *Options) { o.Colorspace = m }
}

// WithBrightness selects the brightness metric.
func WithBrightness(m colorspace.BrightnessMode) Option {
	return func(o *Options) { o.Brightness = m }
}

// WithCropIndex selects the crop-mask preset.
func WithCropIndex(i int) Option {
	return func(o *Options) { o.CropIndex = i }
}

// WithSafeAreas toggles the safe-area guides.
func WithSafeAreas(on bool) Option {
	return func(o *Options) { o.SafeAreas = on }
}

// WithHUD selects the HUD lines to draw.
func WithHUD(flags HUDFlags) Option {
	return func(o *Options) { o.HUD = flags }
}

// WithAnnotations toggles annotation compositing.
func WithAnnotations(on bool) Option {
	return func(o *Options) { o.ShowAnnotations = on }
}

func defaultOptions() Options {
	return Options{
		ShowAnnotations: true,
		HUDColor:        mrv2.Color4f{R: 1, G: 1, B: 1, A: 1},
		SelectionColor:  mrv2.Color4f{R: 1, G: 1, A: 1},
	}
}
