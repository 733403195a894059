package raster

import (
	"encoding/binary"
	"fmt"

	mrv2 "github.com/Thane5/mrv2"
)

// EncodeYUV builds a planar YUV buffer from full-range RGB pixels, given in
// row-major order. It is the forward transform matching Decode: chroma planes
// are box-averaged according to the format's subsampling, compressed to legal
// range when requested, and quantized to the format depth.
//
// The encoder exists for synthetic test content and scope displays; the
// playback engine delivers already-encoded frames.
func EncodeYUV(pixels []mrv2.Color4f, w, h int, format PixelFormat, levels VideoLevels, coeff Coefficients) ([]byte, error) {
	if !format.IsPlanar() {
		return nil, fmt.Errorf("%w: %s is not planar", ErrInvalidFormat, format)
	}
	if coeff.IsZero() {
		return nil, ErrMissingCoefficients
	}
	if len(pixels) < w*h {
		return nil, fmt.Errorf("%w: have %d pixels, need %d", ErrShortBuffer, len(pixels), w*h)
	}

	subX, subY := format.Subsampling()
	cw, ch := w/subX, h/subY

	ys := make([]float32, w*h)
	us := make([]float32, cw*ch)
	vs := make([]float32, cw*ch)
	counts := make([]int, cw*ch)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			py, pu, pv := rgbToYUV(pixels[y*w+x].Clamped(), coeff)
			py, pu, pv = compressLevels(py, pu, pv, levels)
			ys[y*w+x] = py
			cx, cy := x/subX, y/subY
			if cx < cw && cy < ch {
				ci := cy*cw + cx
				us[ci] += pu
				vs[ci] += pv
				counts[ci]++
			}
		}
	}
	for i, n := range counts {
		if n > 0 {
			us[i] /= float32(n)
			vs[i] /= float32(n)
		}
	}

	bytesPer := format.BitDepth() / 8
	out := make([]byte, format.BufferSize(w, h))
	writePlane(out, 0, ys, bytesPer)
	writePlane(out, len(ys)*bytesPer, us, bytesPer)
	writePlane(out, (len(ys)+len(us))*bytesPer, vs, bytesPer)
	return out, nil
}

func writePlane(dst []byte, base int, plane []float32, bytesPer int) {
	for i, v := range plane {
		q := quantize(v, bytesPer)
		if bytesPer == 1 {
			dst[base+i] = byte(q)
		} else {
			binary.LittleEndian.PutUint16(dst[base+i*2:], uint16(q))
		}
	}
}

func quantize(v float32, bytesPer int) uint32 {
	maxCode := uint32(255)
	if bytesPer == 2 {
		maxCode = 65535
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint32(v*float32(maxCode) + 0.5)
}
