package raster

// PixelFormat tags one layout of a raw image buffer. The tag fixes channel
// count, per-channel depth and planar-vs-interleaved layout.
type PixelFormat int

// Supported pixel formats. Integer formats normalize by the format maximum
// (255, 1023 for the packed 10-bit word, 65535, 2^32-1); half and float
// formats pass through unconverted.
const (
	FormatNone PixelFormat = iota

	L_U8
	L_U16
	L_U32
	L_F16
	L_F32

	LA_U8
	LA_U16
	LA_U32
	LA_F16
	LA_F32

	RGB_U8
	RGB_U10
	RGB_U16
	RGB_U32
	RGB_F16
	RGB_F32

	RGBA_U8
	RGBA_U16
	RGBA_U32
	RGBA_F16
	RGBA_F32

	YUV_420P_U8
	YUV_422P_U8
	YUV_444P_U8
	YUV_420P_U16
	YUV_422P_U16
	YUV_444P_U16
)

var formatNames = map[PixelFormat]string{
	FormatNone:   "None",
	L_U8:         "L_U8",
	L_U16:        "L_U16",
	L_U32:        "L_U32",
	L_F16:        "L_F16",
	L_F32:        "L_F32",
	LA_U8:        "LA_U8",
	LA_U16:       "LA_U16",
	LA_U32:       "LA_U32",
	LA_F16:       "LA_F16",
	LA_F32:       "LA_F32",
	RGB_U8:       "RGB_U8",
	RGB_U10:      "RGB_U10",
	RGB_U16:      "RGB_U16",
	RGB_U32:      "RGB_U32",
	RGB_F16:      "RGB_F16",
	RGB_F32:      "RGB_F32",
	RGBA_U8:      "RGBA_U8",
	RGBA_U16:     "RGBA_U16",
	RGBA_U32:     "RGBA_U32",
	RGBA_F16:     "RGBA_F16",
	RGBA_F32:     "RGBA_F32",
	YUV_420P_U8:  "YUV_420P_U8",
	YUV_422P_U8:  "YUV_422P_U8",
	YUV_444P_U8:  "YUV_444P_U8",
	YUV_420P_U16: "YUV_420P_U16",
	YUV_422P_U16: "YUV_422P_U16",
	YUV_444P_U16: "YUV_444P_U16",
}

// String returns the format name, or "Unknown" for values outside the set.
func (f PixelFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "Unknown"
}

// ChannelCount returns the number of channels stored per pixel.
// Planar YUV formats store three.
func (f PixelFormat) ChannelCount() int {
	switch f {
	case L_U8, L_U16, L_U32, L_F16, L_F32:
		return 1
	case LA_U8, LA_U16, LA_U32, LA_F16, LA_F32:
		return 2
	case RGB_U8, RGB_U10, RGB_U16, RGB_U32, RGB_F16, RGB_F32,
		YUV_420P_U8, YUV_422P_U8, YUV_444P_U8,
		YUV_420P_U16, YUV_422P_U16, YUV_444P_U16:
		return 3
	case RGBA_U8, RGBA_U16, RGBA_U32, RGBA_F16, RGBA_F32:
		return 4
	}
	return 0
}

// BitDepth returns the bits per channel.
func (f PixelFormat) BitDepth() int {
	switch f {
	case L_U8, LA_U8, RGB_U8, RGBA_U8, YUV_420P_U8, YUV_422P_U8, YUV_444P_U8:
		return 8
	case RGB_U10:
		return 10
	case L_U16, LA_U16, RGB_U16, RGBA_U16, YUV_420P_U16, YUV_422P_U16, YUV_444P_U16:
		return 16
	case L_U32, LA_U32, RGB_U32, RGBA_U32:
		return 32
	case L_F16, LA_F16, RGB_F16, RGBA_F16:
		return 16
	case L_F32, LA_F32, RGB_F32, RGBA_F32:
		return 32
	}
	return 0
}

// IsPlanar reports whether the format stores channels in separate planes.
func (f PixelFormat) IsPlanar() bool {
	switch f {
	case YUV_420P_U8, YUV_422P_U8, YUV_444P_U8,
		YUV_420P_U16, YUV_422P_U16, YUV_444P_U16:
		return true
	}
	return false
}

// IsValid reports whether f is one of the supported formats.
func (f PixelFormat) IsValid() bool {
	_, ok := formatNames[f]
	return ok && f != FormatNone
}

// Subsampling returns the chroma subsampling divisors (subX, subY) for
// planar formats: 4:2:0 halves both axes, 4:2:2 halves X only, 4:4:4
// subsamples neither. Interleaved formats return (1, 1).
func (f PixelFormat) Subsampling() (subX, subY int) {
	switch f {
	case YUV_420P_U8, YUV_420P_U16:
		return 2, 2
	case YUV_422P_U8, YUV_422P_U16:
		return 2, 1
	}
	return 1, 1
}

// BufferSize returns the number of bytes a w-by-h image of this format
// occupies, including chroma planes for planar formats.
func (f PixelFormat) BufferSize(w, h int) int {
	if f.IsPlanar() {
		bytesPer := f.BitDepth() / 8
		subX, subY := f.Subsampling()
		luma := w * h
		chroma := (w / subX) * (h / subY)
		return (luma + 2*chroma) * bytesPer
	}
	if f == RGB_U10 {
		// Three 10-bit fields packed in one 32-bit word per pixel.
		return w * h * 4
	}
	return w * h * f.ChannelCount() * (f.BitDepth() / 8)
}
