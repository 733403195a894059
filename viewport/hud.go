package viewport

import (
	"fmt"
	"strings"
)

// HUDFlags select which heads-up display lines are drawn.
type HUDFlags uint16

// HUD line flags.
const (
	HUDDirectory HUDFlags = 1 << iota
	HUDFilename
	HUDResolution
	HUDFrame
	HUDFrameRange
	HUDTimecode
	HUDFPS
	HUDFrameCount
	HUDAttributes

	// HUDNone hides the HUD entirely.
	HUDNone HUDFlags = 0
)

// Attribute is one media metadata tag shown by HUDAttributes.
type Attribute struct {
	Name, Value string
}

// HUDInfo is the per-clip metadata the playback engine provides for HUD
// lines. Timecode is preformatted by the engine.
type HUDInfo struct {
	Directory   string
	Filename    string
	Width       int
	Height      int
	PixelAspect float64
	Frame       int64
	StartFrame  int64
	EndFrame    int64
	Timecode    string
	FPS         float64
	Attributes  []Attribute
}

// buildHUDLines assembles the HUD text lines for the enabled flags. Frame,
// range, timecode and FPS share one line; frame count sits on its own, and
// each attribute gets a line.
func buildHUDLines(flags HUDFlags, info HUDInfo) []string {
	var lines []string

	if flags&HUDDirectory != 0 && info.Directory != "" {
		lines = append(lines, info.Directory)
	}
	if flags&HUDFilename != 0 && info.Filename != "" {
		lines = append(lines, info.Filename)
	}
	if flags&HUDResolution != 0 && info.Width > 0 {
		if info.PixelAspect != 0 && info.PixelAspect != 1 {
			scaled := int(float64(info.Width) * info.PixelAspect)
			lines = append(lines, fmt.Sprintf("%d x %d  ( %.3g )  %d x %d",
				info.Width, info.Height, info.PixelAspect, scaled, info.Height))
		} else {
			lines = append(lines, fmt.Sprintf("%d x %d", info.Width, info.Height))
		}
	}

	var parts []string
	if flags&HUDFrame != 0 {
		parts = append(parts, fmt.Sprintf("F: %d", info.Frame))
	}
	if flags&HUDFrameRange != 0 {
		parts = append(parts, fmt.Sprintf("Range: %d - %d", info.StartFrame, info.EndFrame))
	}
	if flags&HUDTimecode != 0 && info.Timecode != "" {
		parts = append(parts, fmt.Sprintf("TC: %s", info.Timecode))
	}
	if flags&HUDFPS != 0 {
		parts = append(parts, fmt.Sprintf("FPS: %.3f", info.FPS))
	}
	if len(parts) > 0 {
		lines = append(lines, strings.Join(parts, " "))
	}

	if flags&HUDFrameCount != 0 {
		lines = append(lines, fmt.Sprintf("FC: %d", info.EndFrame-info.StartFrame+1))
	}
	if flags&HUDAttributes != 0 {
		for _, tag := range info.Attributes {
			lines = append(lines, fmt.Sprintf("%s = %s", tag.Name, tag.Value))
		}
	}
	return lines
}
