package raster

import (
	"errors"
	"fmt"
)

// Errors reported during image construction.
var (
	// ErrInvalidFormat indicates an unsupported or missing pixel format.
	ErrInvalidFormat = errors.New("raster: invalid pixel format")
	// ErrMissingCoefficients indicates a YUV image built without a
	// coefficient standard.
	ErrMissingCoefficients = errors.New("raster: YUV image requires coefficients")
	// ErrShortBuffer indicates the data buffer is smaller than the format
	// and dimensions require.
	ErrShortBuffer = errors.New("raster: buffer too small for image size")
)

// Image is a raw frame buffer with its pixel-format tag. Images are produced
// by the external media engine; the decoder only reads them.
type Image struct {
	// Data holds the raw bytes. Multi-byte channels are little-endian.
	Data []byte
	// Width and Height are the image dimensions in pixels.
	Width, Height int
	// Format tags the buffer layout.
	Format PixelFormat
	// Levels selects the video-level convention for YUV formats.
	Levels VideoLevels
	// Coefficients selects the YUV matrix. Required for YUV formats,
	// ignored otherwise.
	Coefficients Coefficients
}

// NewImage wraps a raw buffer as an interleaved (non-YUV) image.
// YUV formats must use NewYUVImage so a coefficient standard is supplied.
func NewImage(data []byte, w, h int, format PixelFormat) (*Image, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
	if format.IsPlanar() {
		return nil, fmt.Errorf("%w: %s is planar, use NewYUVImage", ErrInvalidFormat, format)
	}
	if len(data) < format.BufferSize(w, h) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(data), format.BufferSize(w, h))
	}
	return &Image{Data: data, Width: w, Height: h, Format: format}, nil
}

// NewYUVImage wraps a raw planar YUV buffer. The coefficient standard is
// mandatory; pass one of BT601, BT709 or BT2020 (or a custom vector).
func NewYUVImage(data []byte, w, h int, format PixelFormat, levels VideoLevels, coeff Coefficients) (*Image, error) {
	if !format.IsValid() || !format.IsPlanar() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
	if coeff.IsZero() {
		return nil, ErrMissingCoefficients
	}
	if len(data) < format.BufferSize(w, h) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(data), format.BufferSize(w, h))
	}
	return &Image{
		Data:         data,
		Width:        w,
		Height:       h,
		Format:       format,
		Levels:       levels,
		Coefficients: coeff,
	}, nil
}
