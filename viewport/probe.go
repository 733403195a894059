package viewport

import (
	mrv2 "github.com/Thane5/mrv2"
	"github.com/Thane5/mrv2/raster"
	"github.com/Thane5/mrv2/render"
)

// ProbeRaw samples the source image data of every layer at an image-space
// position, before color management. Dissolve layers are cross-faded with
// the layer that follows; layer contributions are summed, matching the
// compositor's additive stacking. Positions outside a layer contribute the
// zero sample.
func ProbeRaw(layers []render.VideoLayer, x, y int) mrv2.Color4f {
	var rgba mrv2.Color4f
	for i := 0; i < len(layers); i++ {
		layer := layers[i]
		if layer.Image == nil {
			continue
		}
		pixel := raster.Decode(layer.Image, x, y, raster.DecodeOptions{})
		if layer.Transition == render.TransitionDissolve && i+1 < len(layers) && layers[i+1].Image != nil {
			pixelB := raster.Decode(layers[i+1].Image, x, y, raster.DecodeOptions{})
			pixel = pixel.Lerp(pixelB, layer.TransitionValue)
			i++
		}
		rgba = rgba.Add(pixel)
	}
	return rgba
}

// ProbeBuffer reads one pixel from a mapped readback buffer. The buffer
// holds the color-managed composite in the reversed B,G,R,A channel order,
// so channels are swapped here. Out-of-range positions return the zero
// sample.
func ProbeBuffer(buf []float32, stride, x, y int) mrv2.Color4f {
	if x < 0 || y < 0 || stride <= 0 || x >= stride {
		return mrv2.Color4f{}
	}
	off := (x + y*stride) * 4
	if off < 0 || off+3 >= len(buf) {
		return mrv2.Color4f{}
	}
	return mrv2.Color4f{
		R: buf[off+2],
		G: buf[off+1],
		B: buf[off],
		A: buf[off+3],
	}
}
