package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (56 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 56 bytes (tightly packed, no padding required).
type GPUVertex struct {
	Position  [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoord  [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal    [3]float32 // offset 20: vertex normal for lighting (12 bytes)
	Tangent   [3]float32 // offset 32: tangent vector for normal mapping (12 bytes)
	Bitangent [3]float32 // offset 44: bitangent vector for normal mapping (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 56-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 56)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TexCoord[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Tangent[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Tangent[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Tangent[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Bitangent[0]))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.Bitangent[1]))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.Bitangent[2]))
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout describing GPUVertex,
// with attributes at shader locations 0-4.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 56,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 44, ShaderLocation: 4},
		},
	}
}

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct for instanced mesh pipelines.
// Matches GPUInstance layout exactly (100 bytes, tightly packed).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the GPU-aligned representation of a single model instance.
// It carries the model-to-world transform as four column vectors (shader locations 5-8)
// and the world-space normal matrix as three column vectors (shader locations 9-11).
// Matches the WGSL InstanceInput struct layout exactly (see GPUInstanceSource).
// Size: 100 bytes (tightly packed, no padding required).
type GPUInstance struct {
	Model  [16]float32 // offset  0: 4×4 model-to-world transform matrix, column-major (64 bytes)
	Normal [9]float32  // offset 64: 3×3 normal matrix, column-major (36 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 100-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 100)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	for i := 0; i < 9; i++ {
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// InstanceBufferLayout returns the wgpu vertex buffer layout describing GPUInstance,
// stepped per instance with attributes at shader locations 5-11.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-instance buffer layout
func InstanceBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 100,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 64, ShaderLocation: 9},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 76, ShaderLocation: 10},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 11},
		},
	}
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// GPUVertex positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
