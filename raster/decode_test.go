package raster

import (
	"encoding/binary"
	"math"
	"testing"

	mrv2 "github.com/Thane5/mrv2"
)

const eps = 1e-6

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func sampleNear(a, b mrv2.Color4f) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func putU16(vals ...uint16) []byte {
	b := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func putU32(vals ...uint32) []byte {
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}

func putF32(vals ...float32) []byte {
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func TestDecode_IntegerNormalization(t *testing.T) {
	tests := []struct {
		name   string
		format PixelFormat
		data   []byte
		want   mrv2.Color4f
	}{
		{
			name:   "L_U8 full scale",
			format: L_U8,
			data:   []byte{255},
			want:   mrv2.Color4f{R: 1, G: 1, B: 1, A: 1},
		},
		{
			name:   "L_U8 zero",
			format: L_U8,
			data:   []byte{0},
			want:   mrv2.Color4f{R: 0, G: 0, B: 0, A: 1},
		},
		{
			name:   "LA_U8",
			format: LA_U8,
			data:   []byte{255, 128},
			want:   mrv2.Color4f{R: 1, G: 1, B: 1, A: 128.0 / 255},
		},
		{
			name:   "L_U16 midpoint",
			format: L_U16,
			data:   putU16(32768),
			want:   mrv2.Color4f{R: 32768.0 / 65535, G: 32768.0 / 65535, B: 32768.0 / 65535, A: 1},
		},
		{
			name:   "LA_U16",
			format: LA_U16,
			data:   putU16(65535, 0),
			want:   mrv2.Color4f{R: 1, G: 1, B: 1, A: 0},
		},
		{
			name:   "L_U32 full scale",
			format: L_U32,
			data:   putU32(math.MaxUint32),
			want:   mrv2.Color4f{R: 1, G: 1, B: 1, A: 1},
		},
		{
			name:   "LA_U32",
			format: LA_U32,
			data:   putU32(math.MaxUint32, 0),
			want:   mrv2.Color4f{R: 1, G: 1, B: 1, A: 0},
		},
		{
			name:   "RGB_U8",
			format: RGB_U8,
			data:   []byte{255, 0, 51},
			want:   mrv2.Color4f{R: 1, G: 0, B: 0.2, A: 1},
		},
		{
			name:   "RGBA_U8",
			format: RGBA_U8,
			data:   []byte{0, 255, 0, 255},
			want:   mrv2.Color4f{R: 0, G: 1, B: 0, A: 1},
		},
		{
			name:   "RGB_U16",
			format: RGB_U16,
			data:   putU16(65535, 0, 13107),
			want:   mrv2.Color4f{R: 1, G: 0, B: 0.2, A: 1},
		},
		{
			name:   "RGBA_U16",
			format: RGBA_U16,
			data:   putU16(0, 65535, 0, 32768),
			want:   mrv2.Color4f{R: 0, G: 1, B: 0, A: 32768.0 / 65535},
		},
		{
			name:   "RGB_U32",
			format: RGB_U32,
			data:   putU32(math.MaxUint32, 0, math.MaxUint32 / 2),
			want:   mrv2.Color4f{R: 1, G: 0, B: float32(float64(math.MaxUint32/2) / float64(math.MaxUint32)), A: 1},
		},
		{
			name:   "RGBA_U32",
			format: RGBA_U32,
			data:   putU32(0, 0, math.MaxUint32, math.MaxUint32),
			want:   mrv2.Color4f{R: 0, G: 0, B: 1, A: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.data, 1, 1, tt.format)
			if err != nil {
				t.Fatalf("NewImage: %v", err)
			}
			got := Decode(img, 0, 0, DecodeOptions{})
			if !sampleNear(got, tt.want) {
				t.Errorf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode_U10Packing(t *testing.T) {
	// r=1023, g=0, b=512 packed into bits 0-9, 10-19, 20-29.
	word := uint32(1023) | uint32(0)<<10 | uint32(512)<<20
	img, err := NewImage(putU32(word), 1, 1, RGB_U10)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	got := Decode(img, 0, 0, DecodeOptions{})
	want := mrv2.Color4f{R: 1, G: 0, B: 512.0 / 1023, A: 1}
	if !sampleNear(got, want) {
		t.Errorf("Decode(U10) = %v, want %v", got, want)
	}
}

func TestDecode_FloatPassThrough(t *testing.T) {
	// Float formats must not be normalized or clamped: HDR values survive.
	img, err := NewImage(putF32(4.5, -0.25, 0.5, 2.0), 1, 1, RGBA_F32)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	got := Decode(img, 0, 0, DecodeOptions{})
	want := mrv2.Color4f{R: 4.5, G: -0.25, B: 0.5, A: 2.0}
	if !sampleNear(got, want) {
		t.Errorf("Decode(RGBA_F32) = %v, want %v", got, want)
	}
}

func TestDecode_HalfFloat(t *testing.T) {
	// 0x3C00 is 1.0, 0x3800 is 0.5, 0xC000 is -2.0 in IEEE half.
	img, err := NewImage(putU16(0x3C00, 0x3800, 0xC000), 1, 1, RGB_F16)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	got := Decode(img, 0, 0, DecodeOptions{})
	want := mrv2.Color4f{R: 1, G: 0.5, B: -2, A: 1}
	if !sampleNear(got, want) {
		t.Errorf("Decode(RGB_F16) = %v, want %v", got, want)
	}
}

func TestDecode_Mirror(t *testing.T) {
	// 2x2 RGBA_U8, distinct red values per pixel.
	data := []byte{
		10, 0, 0, 255, 20, 0, 0, 255,
		30, 0, 0, 255, 40, 0, 0, 255,
	}
	img, err := NewImage(data, 2, 2, RGBA_U8)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}

	tests := []struct {
		name  string
		opts  DecodeOptions
		wantR float32
	}{
		{"no mirror", DecodeOptions{}, 10.0 / 255},
		{"mirror x", DecodeOptions{MirrorX: true}, 20.0 / 255},
		{"mirror y", DecodeOptions{MirrorY: true}, 30.0 / 255},
		{"mirror both", DecodeOptions{MirrorX: true, MirrorY: true}, 40.0 / 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(img, 0, 0, tt.opts)
			if !near(got.R, tt.wantR) {
				t.Errorf("Decode(0,0).R = %v, want %v", got.R, tt.wantR)
			}
		})
	}
}

func TestDecode_OutOfRange(t *testing.T) {
	img, err := NewImage([]byte{255, 255, 255, 255}, 1, 1, RGBA_U8)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}, {100, 100}} {
		got := Decode(img, pos[0], pos[1], DecodeOptions{})
		if got != (mrv2.Color4f{}) {
			t.Errorf("Decode(%d,%d) = %v, want zero sample", pos[0], pos[1], got)
		}
	}
}

func TestDecode_Idempotent(t *testing.T) {
	img, err := NewImage(putF32(0.1, 0.2, 0.3, 0.4), 1, 1, RGBA_F32)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	a := Decode(img, 0, 0, DecodeOptions{})
	b := Decode(img, 0, 0, DecodeOptions{})
	if a != b {
		t.Errorf("Decode not idempotent: %v != %v", a, b)
	}
}

func TestNewImage_Validation(t *testing.T) {
	if _, err := NewImage(nil, 2, 2, RGBA_U8); err == nil {
		t.Error("NewImage with short buffer: want error")
	}
	if _, err := NewImage(make([]byte, 64), 2, 2, PixelFormat(999)); err == nil {
		t.Error("NewImage with unknown format: want error")
	}
	if _, err := NewImage(make([]byte, 64), 2, 2, YUV_420P_U8); err == nil {
		t.Error("NewImage with planar format: want error (requires NewYUVImage)")
	}
	if _, err := NewYUVImage(make([]byte, 64), 2, 2, YUV_420P_U8, FullRange, Coefficients{}); err == nil {
		t.Error("NewYUVImage without coefficients: want error")
	}
}
