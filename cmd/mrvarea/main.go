// Command mrvarea runs the viewer's color-area analysis over a region of a
// raw frame dump, printing the statistics the color-area panel would show.
//
// The frame is decoded with the viewer's own pixel pipeline: the raw buffer
// is composited through the software renderer into a float target, read back
// and analyzed, so the numbers match the interactive viewer exactly.
//
// Example:
//
//	mrvarea --input frame.raw --size 1920x1080 --pix-fmt yuv420p \
//	    --box 100,100,256,256 --mode HSV
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/GreatValueCreamSoda/gopixfmts"
	"github.com/spf13/pflag"

	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/area"
	"github.com/Thane5/mrv2/colorspace"
	"github.com/Thane5/mrv2/raster"
	"github.com/Thane5/mrv2/render"
)

// pixFmtNames maps ffmpeg pixel-format names to the viewer's decode tags.
// Names are validated against the gopixfmts descriptor table, so a typo
// reports the real unknown-format error instead of silently failing.
var pixFmtNames = map[string]raster.PixelFormat{
	"gray":        raster.L_U8,
	"gray16le":    raster.L_U16,
	"grayf32le":   raster.L_F32,
	"ya8":         raster.LA_U8,
	"ya16le":      raster.LA_U16,
	"rgb24":       raster.RGB_U8,
	"rgb48le":     raster.RGB_U16,
	"rgbf32le":    raster.RGB_F32,
	"rgba":        raster.RGBA_U8,
	"rgba64le":    raster.RGBA_U16,
	"rgbaf16le":   raster.RGBA_F16,
	"rgbaf32le":   raster.RGBA_F32,
	"yuv420p":     raster.YUV_420P_U8,
	"yuv422p":     raster.YUV_422P_U8,
	"yuv444p":     raster.YUV_444P_U8,
	"yuv420p16le": raster.YUV_420P_U16,
	"yuv422p16le": raster.YUV_422P_U16,
	"yuv444p16le": raster.YUV_444P_U16,
}

var colorspaceModes = map[string]colorspace.Mode{
	"RGB":    colorspace.RGB,
	"HSV":    colorspace.HSV,
	"HSL":    colorspace.HSL,
	"XYZ":    colorspace.CIEXYZ,
	"xyY":    colorspace.CIExyY,
	"Lab":    colorspace.CIELab,
	"Luv":    colorspace.CIELuv,
	"YUV":    colorspace.YUV,
	"YDbDr":  colorspace.YDbDr,
	"YIQ":    colorspace.YIQ,
	"ITU601": colorspace.ITU601,
	"ITU709": colorspace.ITU709,
}

var brightnessModes = map[string]colorspace.BrightnessMode{
	"luminance": colorspace.LuminanceRec709,
	"lightness": colorspace.Lightness,
	"lumma":     colorspace.Lumma,
}

func main() {
	input := pflag.String("input", "", "Raw frame file to analyze")
	size := pflag.String("size", "", "Frame size as WxH, e.g. 1920x1080")
	pixFmt := pflag.String("pix-fmt", "rgb24", "Pixel format (ffmpeg name)")
	boxSpec := pflag.IntSlice("box", nil, "Region as x,y,w,h (default: full frame)")
	mode := pflag.String("mode", "HSV", "Secondary colorspace for statistics")
	brightness := pflag.String("brightness", "luminance", "Brightness metric: luminance, lightness, lumma")
	levels := pflag.String("levels", "full", "YUV video levels: full or legal")
	matrix := pflag.String("matrix", "709", "YUV matrix: 601, 709 or 2020")
	verbose := pflag.BoolP("verbose", "v", false, "Debug logging to stderr")
	pflag.Parse()

	if *verbose {
		mrv2.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*input, *size, *pixFmt, *boxSpec, *mode, *brightness, *levels, *matrix); err != nil {
		fmt.Fprintf(os.Stderr, "mrvarea: %v\n", err)
		os.Exit(1)
	}
}

func run(input, size, pixFmt string, boxSpec []int, modeName, brightnessName, levelsName, matrixName string) error {
	if input == "" {
		return fmt.Errorf("--input is required")
	}
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("--size must be WxH, got %q", size)
	}

	format, err := resolveFormat(pixFmt)
	if err != nil {
		return err
	}
	mode, ok := colorspaceModes[modeName]
	if !ok {
		return fmt.Errorf("unknown colorspace mode %q", modeName)
	}
	bright, ok := brightnessModes[strings.ToLower(brightnessName)]
	if !ok {
		return fmt.Errorf("unknown brightness mode %q", brightnessName)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	img, err := buildImage(data, w, h, format, levelsName, matrixName)
	if err != nil {
		return err
	}

	box := area.NewBox(0, 0, w, h)
	if len(boxSpec) > 0 {
		if len(boxSpec) != 4 {
			return fmt.Errorf("--box needs x,y,w,h")
		}
		box = area.NewBox(boxSpec[0], boxSpec[1], boxSpec[2], boxSpec[3])
	}

	info, err := analyze(img, box, mode, bright)
	if err != nil {
		return err
	}
	printStats(os.Stdout, info)
	return nil
}

// resolveFormat maps an ffmpeg pixel-format name to a decode tag, after
// validating the name against the gopixfmts descriptor table. The table is
// keyed by numeric ID, so the name lookup walks it.
func resolveFormat(name string) (raster.PixelFormat, error) {
	for i := 0; i < 256; i++ {
		desc, err := gopixfmts.PixFmtDescGet(gopixfmts.PixelFormat(i))
		if err != nil || desc.Name() != name {
			continue
		}
		format, ok := pixFmtNames[name]
		if !ok {
			return raster.FormatNone, fmt.Errorf("pixel format %q is not supported by the viewer decoder", name)
		}
		if comp, err := desc.Component(0); err == nil {
			mrv2.Logger().Debug("pixel format resolved",
				slog.String("name", name),
				slog.Int("depth", int(comp.Depth)),
				slog.Bool("rgb", desc.Flags()&uint64(gopixfmts.PixFmtFlagRGB) != 0),
				slog.Int("log2_chroma_w", int(desc.Log2ChromaW())),
				slog.Int("log2_chroma_h", int(desc.Log2ChromaH())))
		}
		return format, nil
	}
	return raster.FormatNone, fmt.Errorf("unknown pixel format %q", name)
}

func buildImage(data []byte, w, h int, format raster.PixelFormat, levelsName, matrixName string) (*raster.Image, error) {
	if !format.IsPlanar() {
		return raster.NewImage(data, w, h, format)
	}

	levels := raster.FullRange
	if strings.EqualFold(levelsName, "legal") {
		levels = raster.LegalRange
	}
	var coeff raster.Coefficients
	switch matrixName {
	case "601":
		coeff = raster.BT601
	case "709":
		coeff = raster.BT709
	case "2020":
		coeff = raster.BT2020
	default:
		return nil, fmt.Errorf("unknown YUV matrix %q", matrixName)
	}
	return raster.NewYUVImage(data, w, h, format, levels, coeff)
}

// analyze composites the frame through the software pipeline and runs the
// region statistics over the read-back buffer, exactly as the viewer does.
func analyze(img *raster.Image, box area.Box, mode colorspace.Mode, bright colorspace.BrightnessMode) (area.Info, error) {
	target := render.NewSoftwareOffscreen(img.Width, img.Height)
	r := render.NewSoftwareRenderer(target)
	if err := r.Begin(img.Width, img.Height); err != nil {
		return area.Info{}, err
	}
	if err := r.DrawVideo([]render.VideoLayer{{Image: img}}); err != nil {
		return area.Info{}, err
	}
	if err := r.End(); err != nil {
		return area.Info{}, err
	}

	buf := make([]float32, img.Width*img.Height*4)
	if err := target.BeginRead(buf); err != nil {
		return area.Info{}, err
	}
	return area.Analyze(buf, img.Width, box.Normalized(), mode, bright)
}

func printStats(out *os.File, info area.Info) {
	fmt.Fprintf(out, "region: %d,%d %dx%d\n",
		info.Box.MinX, info.Box.MinY, info.Box.W(), info.Box.H())
	fmt.Fprintln(out, "RGBA:")
	printSpace(out, info.RGBA)
	fmt.Fprintf(out, "%s:\n", info.Mode)
	printSpace(out, info.Secondary)
}

func printSpace(out *os.File, s area.Stats) {
	row := func(label string, c mrv2.Color4f) {
		fmt.Fprintf(out, "  %-5s %9.5f %9.5f %9.5f %9.5f\n", label, c.R, c.G, c.B, c.A)
	}
	row("min", s.Min)
	row("max", s.Max)
	row("mean", s.Mean)
	row("diff", s.Diff)
}
