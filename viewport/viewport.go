package viewport

import (
	"errors"
	"fmt"
	"log/slog"

	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/annotation"
	"github.com/Thane5/mrv2/area"
	"github.com/Thane5/mrv2/render"
	"github.com/Thane5/mrv2/text"
)

// Errors reported by the viewport.
var (
	// ErrNoTarget indicates a draw or probe without an offscreen target
	// installed (before Show, or after Hide).
	ErrNoTarget = errors.New("viewport: no offscreen target")
)

// State tracks the viewport's GPU-resource lifecycle.
type State int

// Lifecycle states. The viewport starts Invalid, initializes lazily on the
// first draw, and thereafter alternates between Steady and Resizing. Hide
// drops it back to Invalid.
const (
	StateInvalid State = iota
	StateInitialized
	StateSteady
	StateResizing
)

var stateNames = [...]string{"Invalid", "Initialized", "Steady", "Resizing"}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// StatsSink receives fresh region statistics whenever a selection is active.
// The color-area, histogram and vectorscope panels implement this.
type StatsSink interface {
	UpdateStats(area.Info)
}

// FrameInput is everything the playback engine hands the viewport for one
// displayed frame.
type FrameInput struct {
	// Frame is the current playback frame.
	Frame int64
	// Playing reports whether playback is running. Stopped playback lets
	// the pixel probe read the target directly instead of going through
	// the ring.
	Playing bool
	// Layers is the frame's video data in compositing order.
	Layers []render.VideoLayer
	// Annotations are the records overlapping this clip.
	Annotations []*annotation.Annotation
	// Width and Height are the render size in pixels.
	Width, Height int
	// Selection is the active color-area region. An empty box disables
	// readback and analysis for the frame.
	Selection area.Box
	// Cursor is the drawing-tool cursor, or nil when hidden.
	Cursor *annotation.Circle
	// Info feeds the HUD lines.
	Info HUDInfo
}

// Viewport sequences the per-frame draw. It owns the offscreen target and
// the readback ring; the renderer and all frame data are external.
//
// Not safe for concurrent use: all methods are called from the event loop.
type Viewport struct {
	device   render.DeviceHandle
	renderer render.Renderer
	target   render.Offscreen
	ring     *render.ReadbackRing
	opts     Options
	state    State
	sinks    []StatsSink
	face     *text.Face
	shaper   *text.Shaper
	frame    int64
}

// New creates a viewport drawing through renderer into target. The device
// handle comes from the host that owns the window's GPU context; software
// rendering passes render.NullDeviceHandle{} (a nil handle is treated the
// same way).
func New(device render.DeviceHandle, renderer render.Renderer, target render.Offscreen, opts ...Option) *Viewport {
	if device == nil {
		device = render.NullDeviceHandle{}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Viewport{
		device:   device,
		renderer: renderer,
		target:   target,
		opts:     o,
		shaper:   text.NewShaper(),
	}
}

// Device returns the host's device handle.
func (v *Viewport) Device() render.DeviceHandle { return v.device }

// SetOptions replaces the preference-driven options.
func (v *Viewport) SetOptions(o Options) { v.opts = o }

// Options returns the active options.
func (v *Viewport) Options() Options { return v.opts }

// State returns the lifecycle state.
func (v *Viewport) State() State { return v.state }

// SetFont installs the HUD/label font. Without a font, HUD and safe-area
// labels are skipped; guides and video still draw.
func (v *Viewport) SetFont(face *text.Face) { v.face = face }

// AddStatsSink registers a panel for region statistics.
func (v *Viewport) AddStatsSink(s StatsSink) {
	v.sinks = append(v.sinks, s)
}

// Hide releases the GPU-backed resources. The next Show plus Draw recreates
// them; meanwhile draws and probes fail with ErrNoTarget.
func (v *Viewport) Hide() {
	if v.ring != nil {
		v.ring.Invalidate()
		v.ring = nil
	}
	if v.target != nil {
		v.target.Destroy()
		v.target = nil
	}
	v.state = StateInvalid
	mrv2.Logger().Info("viewport hidden, resources released")
}

// Show installs a fresh offscreen target after a hide cycle. The ring is
// recreated lazily on the next Draw.
func (v *Viewport) Show(target render.Offscreen) {
	v.target = target
	v.state = StateInvalid
}

// Draw runs the fixed per-frame sequence: ensure target size, composite
// video, crop mask, selection readback and statistics, selection outline,
// annotations, safe areas, cursor, HUD. Later draws land on top.
//
// Renderer failures and panics never escape: the frame is abandoned with the
// previous contents retained, the cause is logged, and the error is returned
// for callers that want it. The viewport stays usable for the next frame.
func (v *Viewport) Draw(in FrameInput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("viewport: draw panic: %v", r)
			mrv2.Logger().Error("frame abandoned",
				slog.Int64("frame", in.Frame), slog.Any("panic", r))
		}
	}()

	if v.target == nil {
		return ErrNoTarget
	}
	if v.state == StateInvalid {
		v.ring = render.NewReadbackRing(v.target)
		v.state = StateInitialized
		mrv2.Logger().Info("viewport initialized",
			slog.Int("width", in.Width), slog.Int("height", in.Height),
			slog.Any("surface_format", v.device.SurfaceFormat()))
	}
	v.frame = in.Frame

	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Errorf("viewport: invalid render size %dx%d", in.Width, in.Height)
	}
	resized := false
	if v.target.Width() != in.Width || v.target.Height() != in.Height {
		if err := v.target.Resize(in.Width, in.Height); err != nil {
			return v.abandon(in.Frame, fmt.Errorf("resize target: %w", err))
		}
		if err := v.ring.Resize(); err != nil {
			return v.abandon(in.Frame, fmt.Errorf("resize ring: %w", err))
		}
		resized = true
	}

	if err := v.renderer.Begin(in.Width, in.Height); err != nil {
		return v.abandon(in.Frame, fmt.Errorf("begin frame: %w", err))
	}
	if err := v.renderer.DrawVideo(in.Layers); err != nil {
		_ = v.renderer.End()
		return v.abandon(in.Frame, fmt.Errorf("draw video: %w", err))
	}

	if masking := v.opts.Masking(); masking > 0.0001 {
		bars, _ := maskBars(in.Width, in.Height, masking)
		black := mrv2.Color4f{A: 1}
		v.renderer.DrawRect(bars[0], black)
		v.renderer.DrawRect(bars[1], black)
	}

	v.analyzeSelection(in)

	if !in.Selection.Empty() {
		v.renderer.DrawRectOutline(in.Selection.Normalized(), v.opts.SelectionColor, 2)
	}
	if v.opts.ShowAnnotations {
		annotation.Composite(in.Frame, in.Annotations, v.opts.Ghost, v.drawShape)
	}
	if v.opts.SafeAreas {
		v.drawSafeAreas(in)
	}
	if in.Cursor != nil {
		v.renderer.DrawShape(in.Cursor, in.Cursor.Color.A)
	}
	if v.opts.HUD != HUDNone {
		v.drawHUD(in)
	}

	if err := v.renderer.End(); err != nil {
		return v.abandon(in.Frame, fmt.Errorf("end frame: %w", err))
	}
	if resized {
		v.state = StateResizing
	} else {
		v.state = StateSteady
	}
	return nil
}

func (v *Viewport) abandon(frame int64, err error) error {
	mrv2.Logger().Error("frame abandoned",
		slog.Int64("frame", frame), slog.Any("error", err))
	return err
}

// analyzeSelection runs the readback and statistics path when a selection is
// active, publishing the result to every sink. The box is normalized first;
// an empty box skips readback entirely. Analysis errors degrade to a warning
// without touching the sinks.
func (v *Viewport) analyzeSelection(in FrameInput) {
	if in.Selection.Empty() || len(v.sinks) == 0 {
		return
	}
	sel := in.Selection.Normalized()

	if err := v.ring.Begin(in.Frame); err != nil {
		mrv2.Logger().Warn("readback skipped", slog.Any("error", err))
		return
	}
	buf, err := v.ring.Map()
	if err != nil {
		mrv2.Logger().Warn("readback map failed", slog.Any("error", err))
		return
	}
	defer v.ring.Unmap()

	info, err := area.Analyze(buf, v.target.Width(), sel, v.opts.Colorspace, v.opts.Brightness)
	if err != nil {
		mrv2.Logger().Warn("color area analysis failed",
			slog.Any("error", err), slog.Int("w", sel.W()), slog.Int("h", sel.H()))
		return
	}
	for _, sink := range v.sinks {
		sink.UpdateStats(info)
	}
}

// drawShape is the compositor's pen. Text shapes go through the shaper when
// a font is installed; every other kind is handed to the renderer directly.
func (v *Viewport) drawShape(s annotation.Shape, effectiveAlpha float32) {
	if s.Kind() == annotation.KindText && v.face != nil {
		t := s.(*annotation.Text)
		glyphs, _ := v.shaper.Shape(t.Text, v.face.WithSize(float64(t.Size)))
		v.renderer.DrawGlyphs(glyphs, t.Pos, annotation.EffectiveColor(s, effectiveAlpha))
		return
	}
	v.renderer.DrawShape(s, effectiveAlpha)
}

func (v *Viewport) drawSafeAreas(in FrameInput) {
	par := in.Info.PixelAspect
	if par == 0 {
		par = 1
	}
	for _, sa := range safeAreaSet(in.Width, in.Height, par) {
		box := safeAreaBox(in.Width, in.Height, sa, par)
		v.renderer.DrawRectOutline(box, sa.color, 2)
		if v.face == nil {
			continue
		}
		glyphs, _ := v.shaper.Shape(sa.label, v.face)
		// Right-align the label so it ends at the guide's corner instead of
		// spilling past it.
		v.renderer.DrawGlyphs(glyphs, annotation.Point{
			X: float32(box.MaxX) - float32(text.Advance(glyphs)),
			Y: float32(box.MaxY),
		}, sa.color)
	}
}

// drawHUD renders the enabled HUD lines down the top-left corner, each with
// a dark drop shadow behind it.
func (v *Viewport) drawHUD(in FrameInput) {
	if v.face == nil {
		return
	}
	lines := buildHUDLines(v.opts.HUD, in.Info)
	if len(lines) == 0 {
		return
	}
	shadow := mrv2.Color4f{A: 0.7}

	var lineHeight float32
	pos := annotation.Point{X: 20}
	for i, line := range lines {
		glyphs, metrics := v.shaper.Shape(line, v.face)
		if i == 0 {
			lineHeight = float32(metrics.LineHeight())
			pos.Y = lineHeight * 2
		}
		v.renderer.DrawGlyphs(glyphs, annotation.Point{X: pos.X + 2, Y: pos.Y + 2}, shadow)
		v.renderer.DrawGlyphs(glyphs, pos, v.opts.HUDColor)
		pos.Y += lineHeight
	}
}

// ProbePixel reads the color-managed composite at one render-space pixel.
//
// During playback the sample comes from the readback ring's last completed
// slot and is one frame stale. When playback is stopped the target is read
// directly, trading a synchronous copy for an exact current-frame value.
func (v *Viewport) ProbePixel(x, y int, playing bool) (mrv2.Color4f, error) {
	if v.target == nil || v.ring == nil {
		return mrv2.Color4f{}, ErrNoTarget
	}
	stride := v.target.Width()

	if !playing {
		scratch := make([]float32, stride*v.target.Height()*4)
		if err := v.target.BeginRead(scratch); err != nil {
			return mrv2.Color4f{}, err
		}
		return ProbeBuffer(scratch, stride, x, y), nil
	}

	if err := v.ring.Begin(v.frame); err != nil {
		return mrv2.Color4f{}, err
	}
	buf, err := v.ring.Map()
	if err != nil {
		return mrv2.Color4f{}, err
	}
	defer v.ring.Unmap()
	return ProbeBuffer(buf, stride, x, y), nil
}
