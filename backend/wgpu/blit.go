package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/blit.wgsl
var blitShaderWGSL string

// BlitShader holds the compiled textured-quad shader that puts the offscreen
// composite on screen.
type BlitShader struct {
	spirvCode []uint32
}

// CompileBlitShader compiles the WGSL blit shader to SPIR-V.
func CompileBlitShader() (*BlitShader, error) {
	spirvBytes, err := naga.Compile(blitShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile blit shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("wgpu: blit shader SPIR-V length %d not word-aligned", len(spirvBytes))
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return &BlitShader{spirvCode: code}, nil
}

// SPIRVCode returns the compiled SPIR-V words.
func (s *BlitShader) SPIRVCode() []uint32 { return s.spirvCode }
