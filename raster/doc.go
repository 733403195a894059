// Package raster decodes raw scanline buffers into normalized RGBA samples.
//
// It supports a fixed, closed set of pixel formats: luminance, luminance-alpha,
// RGB and RGBA at 8/10/16/32-bit integer and half/float depths, plus planar
// YUV at 4:2:0, 4:2:2 and 4:4:4 subsampling in 8 and 16 bits. The format tag
// fully determines the decode formula; there is no runtime format negotiation.
//
// Decoding is pure: the same inputs always produce bit-identical output, and
// the decoder never mutates the buffer it reads.
package raster
