package loader

import (
	"fmt"
	"math"

	"github.com/nullprop/wgpu-renderer/engine/model"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor defines the interface for extracting mesh data from a parsed glTF document.
// It converts raw glTF accessor data into engine-ready ImportedMesh structs.
type gltfMeshExtractor interface {
	// ExtractMesh extracts a single mesh by index.
	// Returns one ImportedMesh per primitive (glTF meshes can have multiple primitives).
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []model.ImportedMesh: one ImportedMesh per primitive
	//   - error: error if extraction fails
	ExtractMesh(meshIndex int) ([]model.ImportedMesh, error)

	// ExtractAllMeshes extracts all meshes from the document.
	// Returns a flattened slice with one ImportedMesh per primitive across all meshes.
	//
	// Returns:
	//   - []model.ImportedMesh: all meshes (flattened, one per primitive)
	//   - error: error if extraction fails
	ExtractAllMeshes() ([]model.ImportedMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]model.ImportedMesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	mesh := &doc.Meshes[meshIndex]
	var result []model.ImportedMesh

	for primIdx := range mesh.Primitives {
		prim := &mesh.Primitives[primIdx]
		imported, err := e.extractPrimitive(prim, mesh.Name, primIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		result = append(result, *imported)
	}

	return result, nil
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([]model.ImportedMesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	var allMeshes []model.ImportedMesh
	for i := range doc.Meshes {
		meshes, err := e.ExtractMesh(i)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		allMeshes = append(allMeshes, meshes...)
	}

	return allMeshes, nil
}

// extractPrimitive extracts a single primitive as an ImportedMesh.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, meshName string, primIndex int) (*model.ImportedMesh, error) {
	// Check for triangle mode (default is TRIANGLES)
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	// Extract positions (required)
	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	// Initialize vertices with positions
	vertexCount := len(positions)
	vertices := make([]model.GPUVertex, vertexCount)
	for i, pos := range positions {
		vertices[i].Position = pos
	}

	// Extract normals (optional — generated from geometry if absent)
	hasNormals := false
	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := e.parser.ReadVec3Accessor(normalAccessor)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
		for i := range normals {
			if i < vertexCount {
				vertices[i].Normal = normals[i]
			}
		}
		hasNormals = true
	}

	// Extract texture coordinates (optional)
	if texCoordAccessor, ok := prim.Attributes["TEXCOORD_0"]; ok {
		texCoords, err := e.parser.ReadVec2Accessor(texCoordAccessor)
		if err != nil {
			return nil, fmt.Errorf("failed to read texcoords: %w", err)
		}
		for i := range texCoords {
			if i < vertexCount {
				vertices[i].TexCoord = texCoords[i]
			}
		}
	}

	// Extract tangent vectors (optional, for normal mapping).
	// glTF TANGENT is VEC4: xyz = tangent direction, w = handedness (±1).
	// The handedness is folded into the tangent here so the bitangent can
	// be derived directly as normal × tangent.
	hasTangents := false
	if tangentAccessor, ok := prim.Attributes["TANGENT"]; ok {
		tangents, err := e.parser.ReadVec4Accessor(tangentAccessor)
		if err != nil {
			return nil, fmt.Errorf("failed to read tangents: %w", err)
		}
		for i := range tangents {
			if i < vertexCount {
				t := tangents[i]
				vertices[i].Tangent = [3]float32{t[0] * t[3], t[1] * t[3], t[2] * t[3]}
			}
		}
		hasTangents = true
	}

	// Extract indices
	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		// Generate sequential indices if none provided
		indices = make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// Generate smooth vertex normals from triangle geometry when the glTF
	// file omits the NORMAL attribute. Must run before tangent handling
	// because the bitangent is derived from the normal.
	if !hasNormals && len(indices) >= 3 {
		generateNormals(vertices, indices)
	}

	if hasTangents {
		// File tangents: derive the bitangent as normal × tangent.
		for i := range vertices {
			n, t := vertices[i].Normal, vertices[i].Tangent
			vertices[i].Bitangent = [3]float32{
				n[1]*t[2] - n[2]*t[1],
				n[2]*t[0] - n[0]*t[2],
				n[0]*t[1] - n[1]*t[0],
			}
		}
	} else if len(indices) >= 3 {
		// No file tangents: compute the full tangent basis from UV gradients.
		model.ComputeTangents(vertices, indices)
	}

	// Calculate bounding box
	bmin, bmax := gltfCalculateBoundingBox(positions)

	// Determine material index
	materialIndex := 0
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	// Build mesh name
	name := meshName
	if name == "" {
		name = fmt.Sprintf("mesh_%d", primIndex)
	}
	if len(prim.Attributes) > 0 && primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}

	return &model.ImportedMesh{
		Name:          name,
		Vertices:      vertices,
		Indices:       indices,
		MaterialIndex: materialIndex,
		BoundingMin:   bmin,
		BoundingMax:   bmax,
	}, nil
}

// gltfCalculateBoundingBox computes the axis-aligned bounding box for positions.
func gltfCalculateBoundingBox(positions [][3]float32) ([3]float32, [3]float32) {
	if len(positions) == 0 {
		return [3]float32{}, [3]float32{}
	}

	bmin := [3]float32{
		float32(math.MaxFloat32),
		float32(math.MaxFloat32),
		float32(math.MaxFloat32),
	}
	bmax := [3]float32{
		-float32(math.MaxFloat32),
		-float32(math.MaxFloat32),
		-float32(math.MaxFloat32),
	}

	for _, pos := range positions {
		for j := 0; j < 3; j++ {
			if pos[j] < bmin[j] {
				bmin[j] = pos[j]
			}
			if pos[j] > bmax[j] {
				bmax[j] = pos[j]
			}
		}
	}

	return bmin, bmax
}

// generateNormals computes smooth vertex normals from the triangle geometry when the
// glTF file does not provide a NORMAL attribute. For each triangle, the face normal is
// computed as the cross product of its two edges, then accumulated (area-weighted) onto
// every vertex of that triangle. All vertex normals are normalized at the end to produce
// smooth shading across shared vertices.
//
// Parameters:
//   - vertices: the vertex slice to write normal data into
//   - indices: the triangle index buffer (must be a multiple of 3)
func generateNormals(vertices []model.GPUVertex, indices []uint32) {
	n := len(vertices)
	accum := make([][3]float32, n)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			continue
		}

		p0, p1, p2 := vertices[i0].Position, vertices[i1].Position, vertices[i2].Position

		edge1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		edge2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}

		// Cross product: face normal (length proportional to triangle area)
		faceNormal := [3]float32{
			edge1[1]*edge2[2] - edge1[2]*edge2[1],
			edge1[2]*edge2[0] - edge1[0]*edge2[2],
			edge1[0]*edge2[1] - edge1[1]*edge2[0],
		}

		for _, idx := range []uint32{i0, i1, i2} {
			accum[idx][0] += faceNormal[0]
			accum[idx][1] += faceNormal[1]
			accum[idx][2] += faceNormal[2]
		}
	}

	// Normalize accumulated normals
	for i := range n {
		length := float32(math.Sqrt(float64(accum[i][0]*accum[i][0] + accum[i][1]*accum[i][1] + accum[i][2]*accum[i][2])))
		if length < 1e-6 {
			// Degenerate: default to up vector
			vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		invLen := 1.0 / length
		vertices[i].Normal = [3]float32{
			accum[i][0] * invLen,
			accum[i][1] * invLen,
			accum[i][2] * invLen,
		}
	}
}
