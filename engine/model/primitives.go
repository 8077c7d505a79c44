package model

import (
	"github.com/nullprop/wgpu-renderer/common"
)

// cubeFace describes one axis-aligned cube face by its outward normal and the
// tangent frame used to walk its four corners. The basis is right-handed
// (tangent × bitangent = normal) so the generated winding is counter-clockwise
// when viewed from outside the cube.
type cubeFace struct {
	normal    [3]float32
	tangent   [3]float32
	bitangent [3]float32
}

// cubeFaces lists the six faces in +X, -X, +Y, -Y, +Z, -Z order.
var cubeFaces = [6]cubeFace{
	{normal: [3]float32{1, 0, 0}, tangent: [3]float32{0, 0, -1}, bitangent: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, tangent: [3]float32{0, 0, 1}, bitangent: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, tangent: [3]float32{1, 0, 0}, bitangent: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, tangent: [3]float32{1, 0, 0}, bitangent: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, tangent: [3]float32{1, 0, 0}, bitangent: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, tangent: [3]float32{-1, 0, 0}, bitangent: [3]float32{0, 1, 0}},
}

// CubeVertices generates the 24 vertices of a cube spanning [-1, 1] on each
// axis, four per face with per-face normals and tangent frames. UVs run
// (0,0) to (1,1) across each face.
//
// Returns:
//   - []GPUVertex: the 24 cube vertices in cubeFaces order
func CubeVertices() []GPUVertex {
	// Corner walk order per face: (-t,-b), (+t,-b), (+t,+b), (-t,+b).
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]GPUVertex, 0, 24)
	for _, face := range cubeFaces {
		for c, corner := range corners {
			var position [3]float32
			for i := 0; i < 3; i++ {
				position[i] = face.normal[i] + corner[0]*face.tangent[i] + corner[1]*face.bitangent[i]
			}
			vertices = append(vertices, GPUVertex{
				Position:  position,
				TexCoord:  uvs[c],
				Normal:    face.normal,
				Tangent:   face.tangent,
				Bitangent: face.bitangent,
			})
		}
	}
	return vertices
}

// CubeIndices generates the 36 indices for the vertices produced by
// CubeVertices, two counter-clockwise triangles per face.
//
// Returns:
//   - []uint32: the 36 cube indices
func CubeIndices() []uint32 {
	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}

// NewCubeModel builds a Model holding a single unit cube mesh spanning
// [-1, 1] on each axis. The mesh carries no materials; callers that render it
// through a textured pipeline must attach materials separately. The mesh
// Provider is nil until the renderer uploads the buffers.
//
// Parameters:
//   - name: the model and mesh identifier
//   - instances: the world-space instances to draw
//
// Returns:
//   - Model: the cube model
func NewCubeModel(name string, instances ...Instance) Model {
	vertices := CubeVertices()
	indices := CubeIndices()

	mesh := &Mesh{
		Name:          name,
		VertexData:    common.SliceToBytes(vertices),
		IndexData:     common.SliceToBytes(indices),
		IndexCount:    len(indices),
		MaterialIndex: -1,
	}

	return NewModel(
		WithName(name),
		WithMeshes(mesh),
		WithInstances(instances...),
		WithBoundingRadius(ComputeBoundingRadius(vertices)),
	)
}
