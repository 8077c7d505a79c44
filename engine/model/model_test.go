package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-5

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position:  [3]float32{1, 2, 3},
		TexCoord:  [2]float32{0.25, 0.75},
		Normal:    [3]float32{0, 1, 0},
		Tangent:   [3]float32{1, 0, 0},
		Bitangent: [3]float32{0, 0, 1},
	}
	require.Equal(t, 56, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 56)

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	assert.Equal(t, float32(1), readF32(0))
	assert.Equal(t, float32(0.25), readF32(12))
	assert.Equal(t, float32(0.75), readF32(16))
	assert.Equal(t, float32(1), readF32(24))
	assert.Equal(t, float32(1), readF32(32))
	assert.Equal(t, float32(1), readF32(52))
}

func TestGPUInstanceMarshal(t *testing.T) {
	var g GPUInstance
	for i := range g.Model {
		g.Model[i] = float32(i)
	}
	for i := range g.Normal {
		g.Normal[i] = float32(100 + i)
	}
	require.Equal(t, 100, g.Size())

	buf := g.Marshal()
	require.Len(t, buf, 100)
	assert.Equal(t, float32(15), math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64])))
	assert.Equal(t, float32(100), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:68])))
	assert.Equal(t, float32(108), math.Float32frombits(binary.LittleEndian.Uint32(buf[96:100])))
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()
	assert.Equal(t, uint64(56), layout.ArrayStride)
	require.Len(t, layout.Attributes, 5)

	offsets := []uint64{0, 12, 20, 32, 44}
	for i, attr := range layout.Attributes {
		assert.Equal(t, offsets[i], attr.Offset)
		assert.Equal(t, uint32(i), attr.ShaderLocation)
	}
}

func TestInstanceBufferLayout(t *testing.T) {
	layout := InstanceBufferLayout()
	assert.Equal(t, uint64(100), layout.ArrayStride)
	require.Len(t, layout.Attributes, 7)
	assert.Equal(t, uint32(5), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint32(11), layout.Attributes[6].ShaderLocation)
	assert.Equal(t, uint64(88), layout.Attributes[6].Offset)
}

func TestComputeTangents(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint32{0, 1, 2}

	ComputeTangents(vertices, indices)

	for _, v := range vertices {
		assert.InDeltaSlice(t, []float32{1, 0, 0}, v.Tangent[:], tol)
		assert.InDeltaSlice(t, []float32{0, 1, 0}, v.Bitangent[:], tol)
	}
}

func TestComputeTangentsSkipsDegenerateTriangles(t *testing.T) {
	// All three vertices share one UV coordinate, so the UV area is zero.
	vertices := []GPUVertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
	}
	indices := []uint32{0, 1, 2}

	ComputeTangents(vertices, indices)

	for _, v := range vertices {
		assert.Equal(t, [3]float32{}, v.Tangent)
		assert.Equal(t, [3]float32{}, v.Bitangent)
	}
}

func TestComputeTangentsAveragesSharedVertices(t *testing.T) {
	// Two triangles sharing an edge, with mirrored UVs so the shared vertices
	// receive opposing tangent contributions that average out.
	vertices := []GPUVertex{
		{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 0}},
		{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{1, 1, 0}, TexCoord: [2]float32{1, 1}},
	}
	indices := []uint32{0, 1, 2, 2, 1, 3}

	ComputeTangents(vertices, indices)

	// Both triangles map U along +X, so every vertex ends with tangent +X.
	for _, v := range vertices {
		assert.InDeltaSlice(t, []float32{1, 0, 0}, v.Tangent[:], tol)
	}
}

func TestInstanceModelMatrix(t *testing.T) {
	inst := NewInstance(mgl32.Vec3{60, 0, 35}, mgl32.Vec3{1, 1, 1})

	m := inst.ModelMatrix()
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{60, 0, 35, 1}, p[:], tol)
}

func TestInstanceToGPUNormalMatrix(t *testing.T) {
	// Non-uniform scale: the normal matrix is the inverse-transpose, not the
	// upper-left of the model matrix.
	inst := NewInstance(mgl32.Vec3{0, 30, 0}, mgl32.Vec3{1360, 30, 600})

	gpu := inst.ToGPU()
	assert.InDelta(t, 1.0/1360.0, gpu.Normal[0], tol)
	assert.InDelta(t, 1.0/30.0, gpu.Normal[4], tol)
	assert.InDelta(t, 1.0/600.0, gpu.Normal[8], tol)
}

func TestMarshalInstances(t *testing.T) {
	instances := []Instance{
		NewInstance(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
		NewInstance(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 1, 1}),
	}

	buf := MarshalInstances(instances)
	require.Len(t, buf, 200)

	// Second instance's translation column starts at 100 + 48.
	tx := math.Float32frombits(binary.LittleEndian.Uint32(buf[148:152]))
	assert.InDelta(t, 1.0, tx, tol)
}

func TestComputeBoundingRadius(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, -5, 0}},
		{Position: [3]float32{0, 3, 4}},
	}
	assert.InDelta(t, 5.0, ComputeBoundingRadius(vertices), tol)
}

func TestModelInstanceData(t *testing.T) {
	m := NewModel(
		WithName("sponza"),
		WithInstances(NewInstance(mgl32.Vec3{60, 0, 35}, mgl32.Vec3{1, 1, 1})),
	)

	assert.Equal(t, "sponza", m.Name())
	assert.Equal(t, 1, m.InstanceCount())
	assert.Len(t, m.InstanceData(), 100)
}
