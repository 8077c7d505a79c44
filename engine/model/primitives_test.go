package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeVerticesFaceFrames(t *testing.T) {
	vertices := CubeVertices()
	require.Len(t, vertices, 24)

	for i, v := range vertices {
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, 1.0, math.Abs(float64(v.Position[axis])), 1e-6, "vertex %d axis %d on the unit cube surface", i, axis)
		}

		// Tangent frame is right-handed per face: tangent × bitangent = normal.
		tangent := mgl32.Vec3(v.Tangent)
		bitangent := mgl32.Vec3(v.Bitangent)
		normal := mgl32.Vec3(v.Normal)
		cross := tangent.Cross(bitangent)
		assert.InDelta(t, 0.0, cross.Sub(normal).Len(), 1e-6, "vertex %d tangent frame", i)

		// Each vertex lies on the face its normal names.
		dot := mgl32.Vec3(v.Position).Dot(normal)
		assert.InDelta(t, 1.0, float64(dot), 1e-6, "vertex %d on its face plane", i)
	}
}

func TestCubeIndicesReferenceOwnFace(t *testing.T) {
	indices := CubeIndices()
	require.Len(t, indices, 36)

	for i, idx := range indices {
		face := uint32(i / 6)
		assert.GreaterOrEqual(t, idx, face*4, "index %d stays in face %d", i, face)
		assert.Less(t, idx, (face+1)*4, "index %d stays in face %d", i, face)
	}
}

func TestNewCubeModel(t *testing.T) {
	instance := NewInstance(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6})
	mdl := NewCubeModel("cube", instance)

	assert.Equal(t, "cube", mdl.Name())
	require.Len(t, mdl.Meshes(), 1)

	mesh := mdl.Meshes()[0]
	assert.Equal(t, 36, mesh.IndexCount)
	assert.Len(t, mesh.VertexData, 24*(&GPUVertex{}).Size())
	assert.Len(t, mesh.IndexData, 36*4)
	assert.Equal(t, -1, mesh.MaterialIndex)
	assert.Nil(t, mesh.Provider)

	require.Len(t, mdl.Instances(), 1)
	assert.Equal(t, instance.Position, mdl.Instances()[0].Position)
	assert.Equal(t, 1, mdl.InstanceCount())
	assert.Len(t, mdl.InstanceData(), (&GPUInstance{}).Size())

	// The corner of a [-1, 1] cube sits sqrt(3) from the origin.
	assert.InDelta(t, math.Sqrt(3), float64(mdl.BoundingRadius()), 1e-5)
}
