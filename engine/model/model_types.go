package model

import (
	"github.com/nullprop/wgpu-renderer/common"
)

// --- Import Types ---

// ImportedModel represents a 3D model loaded from an external format.
// This is the universal format that importers (glTF, GLB, etc.) produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains all mesh data (may have multiple meshes/submeshes).
	Meshes []ImportedMesh

	// Materials are referenced materials (indices into a material library).
	Materials []common.ImportedMaterial
}

// ImportedMesh represents a single mesh within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the mesh vertices with tangent-space basis vectors.
	Vertices []GPUVertex

	// Indices are the triangle indices.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials.
	MaterialIndex int

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// ComputeTangents fills in the Tangent and Bitangent fields of the given vertices
// by accumulating per-triangle tangent-space basis vectors and averaging each
// vertex's contribution by the number of triangles that include it. Used when the
// source file carries no tangent data of its own.
//
// Degenerate triangles (zero UV area) are skipped and contribute nothing.
//
// Parameters:
//   - vertices: the vertex slice to update in place
//   - indices: triangle indices into vertices (length must be a multiple of 3)
func ComputeTangents(vertices []GPUVertex, indices []uint32) {
	counts := make([]int, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		v0 := &vertices[indices[i]]
		v1 := &vertices[indices[i+1]]
		v2 := &vertices[indices[i+2]]

		dp1 := sub3(v1.Position, v0.Position)
		dp2 := sub3(v2.Position, v0.Position)
		du1 := [2]float32{v1.TexCoord[0] - v0.TexCoord[0], v1.TexCoord[1] - v0.TexCoord[1]}
		du2 := [2]float32{v2.TexCoord[0] - v0.TexCoord[0], v2.TexCoord[1] - v0.TexCoord[1]}

		det := du1[0]*du2[1] - du1[1]*du2[0]
		if det == 0 {
			continue
		}
		r := 1.0 / det

		tangent := scale3(sub3(scale3(dp1, du2[1]), scale3(dp2, du1[1])), r)
		bitangent := scale3(sub3(scale3(dp2, du1[0]), scale3(dp1, du2[0])), r)

		for _, idx := range indices[i : i+3] {
			v := &vertices[idx]
			v.Tangent = add3(v.Tangent, tangent)
			v.Bitangent = add3(v.Bitangent, bitangent)
			counts[idx]++
		}
	}

	for i := range vertices {
		if counts[i] == 0 {
			continue
		}
		inv := 1.0 / float32(counts[i])
		vertices[i].Tangent = scale3(vertices[i].Tangent, inv)
		vertices[i].Bitangent = scale3(vertices[i].Bitangent, inv)
	}
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale3(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}
