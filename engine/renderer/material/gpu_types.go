package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (16 bytes, std140 aligned).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned uniform for per-material surface factors.
// The metallic and roughness factors multiply the corresponding channels sampled
// from the metallic-roughness texture.
// Matches the WGSL MaterialUniform struct layout exactly (see GPUMaterialUniformSource).
// Size: 16 bytes (std140 aligned).
type GPUMaterialUniform struct {
	Metallic  float32    // offset  0: metallic factor (4 bytes)
	Roughness float32    // offset  4: roughness factor (4 bytes)
	_pad      [2]float32 // offset  8: padding to 16-byte uniform alignment (8 bytes)
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Metallic))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Roughness))
	return buf
}
