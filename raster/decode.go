package raster

import (
	"encoding/binary"
	"math"

	"github.com/mrjoshuak/go-openexr/half"

	mrv2 "github.com/Thane5/mrv2"
)

// DecodeOptions mirror the display orientation: when set, the pixel
// coordinate is reflected (size - coord - 1) on that axis before lookup.
type DecodeOptions struct {
	MirrorX bool
	MirrorY bool
}

// Decode reads the pixel at image-space (x, y) and returns it as a
// normalized RGBA sample.
//
// Boundary behavior: coordinates that fall outside the image after mirroring
// are a silent no-op returning the zero sample. This matches permissive
// pointer-probe tooling, where the cursor routinely leaves the image; it is
// deliberate, not a missing check. An unrecognized format likewise returns
// an opaque zero sample rather than failing.
//
// For YUV formats the raw Y/U/V samples are normalized, expanded from legal
// to full range if the image says so, and only then run through the
// coefficient matrix. That order is fixed.
func Decode(img *Image, x, y int, opts DecodeOptions) mrv2.Color4f {
	if img == nil {
		return mrv2.Color4f{}
	}
	if opts.MirrorX {
		x = img.Width - x - 1
	}
	if opts.MirrorY {
		y = img.Height - y - 1
	}
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return mrv2.Color4f{}
	}

	d := img.Data
	w := img.Width
	pos := y*w + x
	s := mrv2.Color4f{A: 1}

	switch img.Format {
	case L_U8:
		v := u8(d[pos])
		s.R, s.G, s.B = v, v, v
	case LA_U8:
		off := pos * 2
		v := u8(d[off])
		s.R, s.G, s.B, s.A = v, v, v, u8(d[off+1])
	case L_U16:
		v := u16At(d, pos*2)
		s.R, s.G, s.B = v, v, v
	case LA_U16:
		off := pos * 4
		v := u16At(d, off)
		s.R, s.G, s.B, s.A = v, v, v, u16At(d, off+2)
	case L_U32:
		v := u32At(d, pos*4)
		s.R, s.G, s.B = v, v, v
	case LA_U32:
		off := pos * 8
		v := u32At(d, off)
		s.R, s.G, s.B, s.A = v, v, v, u32At(d, off+4)
	case L_F16:
		v := f16At(d, pos*2)
		s.R, s.G, s.B = v, v, v
	case LA_F16:
		off := pos * 4
		v := f16At(d, off)
		s.R, s.G, s.B, s.A = v, v, v, f16At(d, off+2)
	case L_F32:
		v := f32At(d, pos*4)
		s.R, s.G, s.B = v, v, v
	case LA_F32:
		off := pos * 8
		v := f32At(d, off)
		s.R, s.G, s.B, s.A = v, v, v, f32At(d, off+4)

	case RGB_U8:
		off := pos * 3
		s.R, s.G, s.B = u8(d[off]), u8(d[off+1]), u8(d[off+2])
	case RGB_U10:
		// Three 10-bit fields in one little-endian 32-bit word:
		// red in bits 0-9, green in 10-19, blue in 20-29, top two unused.
		word := binary.LittleEndian.Uint32(d[pos*4:])
		s.R = float32(word&0x3FF) / 1023
		s.G = float32((word>>10)&0x3FF) / 1023
		s.B = float32((word>>20)&0x3FF) / 1023
	case RGB_U16:
		off := pos * 6
		s.R, s.G, s.B = u16At(d, off), u16At(d, off+2), u16At(d, off+4)
	case RGB_U32:
		off := pos * 12
		s.R, s.G, s.B = u32At(d, off), u32At(d, off+4), u32At(d, off+8)
	case RGB_F16:
		off := pos * 6
		s.R, s.G, s.B = f16At(d, off), f16At(d, off+2), f16At(d, off+4)
	case RGB_F32:
		off := pos * 12
		s.R, s.G, s.B = f32At(d, off), f32At(d, off+4), f32At(d, off+8)

	case RGBA_U8:
		off := pos * 4
		s.R, s.G, s.B, s.A = u8(d[off]), u8(d[off+1]), u8(d[off+2]), u8(d[off+3])
	case RGBA_U16:
		off := pos * 8
		s.R, s.G, s.B, s.A = u16At(d, off), u16At(d, off+2), u16At(d, off+4), u16At(d, off+6)
	case RGBA_U32:
		off := pos * 16
		s.R, s.G, s.B, s.A = u32At(d, off), u32At(d, off+4), u32At(d, off+8), u32At(d, off+12)
	case RGBA_F16:
		off := pos * 8
		s.R, s.G, s.B, s.A = f16At(d, off), f16At(d, off+2), f16At(d, off+4), f16At(d, off+6)
	case RGBA_F32:
		off := pos * 16
		s.R, s.G, s.B, s.A = f32At(d, off), f32At(d, off+4), f32At(d, off+8), f32At(d, off+12)

	case YUV_420P_U8, YUV_422P_U8, YUV_444P_U8:
		yv, uv, vv := planarSamples8(img, x, y)
		return decodeYUV(img, yv, uv, vv)
	case YUV_420P_U16, YUV_422P_U16, YUV_444P_U16:
		yv, uv, vv := planarSamples16(img, x, y)
		return decodeYUV(img, yv, uv, vv)
	}

	return s
}

// planarOffsets returns the sample offsets (in samples, not bytes) of the
// luma and chroma values for (x, y), and the chroma plane size.
func planarOffsets(f PixelFormat, w, h, x, y int) (luma, chroma, chromaPlane int) {
	subX, subY := f.Subsampling()
	luma = y*w + x
	chroma = (y/subY)*(w/subX) + x/subX
	chromaPlane = (w / subX) * (h / subY)
	return luma, chroma, chromaPlane
}

func planarSamples8(img *Image, x, y int) (yv, uv, vv float32) {
	luma, chroma, chromaPlane := planarOffsets(img.Format, img.Width, img.Height, x, y)
	lumaPlane := img.Width * img.Height
	d := img.Data
	yv = u8(d[luma])
	uv = u8(d[lumaPlane+chroma])
	vv = u8(d[lumaPlane+chromaPlane+chroma])
	return yv, uv, vv
}

func planarSamples16(img *Image, x, y int) (yv, uv, vv float32) {
	luma, chroma, chromaPlane := planarOffsets(img.Format, img.Width, img.Height, x, y)
	lumaPlane := img.Width * img.Height
	d := img.Data
	yv = u16At(d, luma*2)
	uv = u16At(d, (lumaPlane+chroma)*2)
	vv = u16At(d, (lumaPlane+chromaPlane+chroma)*2)
	return yv, uv, vv
}

// decodeYUV runs the fixed pipeline: levels expansion first, matrix second.
func decodeYUV(img *Image, y, u, v float32) mrv2.Color4f {
	s := mrv2.Color4f{R: y, G: u, B: v, A: 1}
	s = expandLevels(s, img.Levels)
	return yuvToRGB(s, img.Coefficients)
}

func u8(v byte) float32 { return float32(v) / 255 }

func u16At(d []byte, off int) float32 {
	return float32(binary.LittleEndian.Uint16(d[off:])) / 65535
}

func u32At(d []byte, off int) float32 {
	return float32(float64(binary.LittleEndian.Uint32(d[off:])) / float64(math.MaxUint32))
}

func f16At(d []byte, off int) float32 {
	return half.Half(binary.LittleEndian.Uint16(d[off:])).Float32()
}

func f32At(d []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(d[off:]))
}
