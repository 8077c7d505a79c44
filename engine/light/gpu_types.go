package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the Light struct.
// Matches GPULightUniform layout exactly (432 bytes, std140 aligned).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the light uniform
// buffer: position, color+intensity, and the six cube-face view-projection
// matrices. Matches the WGSL Light struct layout exactly (see
// GPULightUniformSource). Size: 432 bytes.
type GPULightUniform struct {
	Position     [3]float32     // offset   0: world-space position (vec3<f32>)
	_pad         uint32         // offset  12: padding for vec4 alignment
	Color        [4]float32     // offset  16: rgb color, intensity in w (vec4<f32>)
	Matrices     [6][16]float32 // offset  32: cube-face view-projection matrices (array<mat4x4<f32>, 6>)
	ActiveMatrix uint32         // offset 416: face index for the depth pass (u32)
	_pad2        [3]uint32      // offset 420: padding to 432 bytes
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (432)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], 0) // _pad
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	for m := range 6 {
		base := 32 + m*64
		for i := range 16 {
			binary.LittleEndian.PutUint32(buf[base+i*4:], math.Float32bits(g.Matrices[m][i]))
		}
	}
	binary.LittleEndian.PutUint32(buf[416:], g.ActiveMatrix)
	return buf
}

// Update refreshes the uniform snapshot from the light: position, color and
// the six shadow matrices for the current position.
//
// Parameters:
//   - l: the light to snapshot
func (g *GPULightUniform) Update(l Light) {
	pos := l.Position()
	g.Position = [3]float32{pos.X(), pos.Y(), pos.Z()}
	g.Color = l.Color()

	matrices := ShadowMatrices(pos)
	for i := range matrices {
		g.Matrices[i] = [16]float32(matrices[i])
	}
}

// GPUGlobalUniformsSource is the canonical WGSL definition of the
// GlobalUniforms struct. Matches GPUGlobalUniforms layout exactly (16 bytes).
//
//go:embed assets/global_uniforms.wgsl
var GPUGlobalUniformsSource string

// GPUGlobalUniforms is the small per-draw-group uniform rewritten before each
// shadow face pass: elapsed time, the active cube-face index, and the runtime
// shadow capability flag. The write must be flushed to the GPU before the
// face's draws execute or geometry renders into the wrong layer.
// Size: 16 bytes.
type GPUGlobalUniforms struct {
	Time             float32 // offset  0: seconds since startup (f32)
	LightMatrixIndex uint32  // offset  4: active shadow face index 0..5 (u32)
	UseShadowmaps    uint32  // offset  8: 1 when shadow sampling is enabled (u32)
	_pad             uint32  // offset 12: padding to 16 bytes
}

// Size returns the size of the GPUGlobalUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUGlobalUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlobalUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUGlobalUniforms) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[4:], g.LightMatrixIndex)
	binary.LittleEndian.PutUint32(buf[8:], g.UseShadowmaps)
	binary.LittleEndian.PutUint32(buf[12:], 0) // _pad
	return buf
}
