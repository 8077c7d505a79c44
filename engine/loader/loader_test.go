package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangleGLB constructs a minimal GLB file in memory: a single triangle
// with positions only (no normals, UVs or tangents) and one blended material.
func buildTriangleGLB(t *testing.T) []byte {
	t.Helper()

	var bin bytes.Buffer
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	for _, p := range positions {
		require.NoError(t, binary.Write(&bin, binary.LittleEndian, math.Float32bits(p)))
	}
	posLength := bin.Len()

	indices := []uint16{0, 1, 2}
	for _, i := range indices {
		require.NoError(t, binary.Write(&bin, binary.LittleEndian, i))
	}
	idxLength := bin.Len() - posLength

	for bin.Len()%4 != 0 {
		bin.WriteByte(0)
	}

	metallic := float32(1.0)
	roughness := float32(0.5)
	meshIdx := 0
	idxAccessor := 1
	matIdx := 0
	doc := gltfDocument{
		Asset: gltfAsset{Version: "2.0"},
		Nodes: []gltfNode{{Mesh: &meshIdx}},
		Meshes: []gltfMesh{{
			Name: "triangle",
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{"POSITION": 0},
				Indices:    &idxAccessor,
				Material:   &matIdx,
			}},
		}},
		Accessors: []gltfAccessor{
			{BufferView: intPtr(0), ComponentType: gltfComponentTypeFloat, Count: 3, Type: gltfAccessorTypeVec3},
			{BufferView: intPtr(1), ComponentType: gltfComponentTypeUnsignedShort, Count: 3, Type: gltfAccessorTypeScalar},
		},
		BufferViews: []gltfBufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLength},
			{Buffer: 0, ByteOffset: posLength, ByteLength: idxLength},
		},
		Buffers: []gltfBuffer{{ByteLength: bin.Len()}},
		Materials: []gltfMaterial{{
			Name: "glass",
			PbrMetallicRoughness: &gltfPbrMetallicRoughness{
				MetallicFactor:  &metallic,
				RoughnessFactor: &roughness,
			},
			AlphaMode: gltfAlphaModeBlend,
		}},
	}
	jsonData, err := json.Marshal(doc)
	require.NoError(t, err)
	for len(jsonData)%4 != 0 {
		jsonData = append(jsonData, ' ')
	}

	var glb bytes.Buffer
	totalLength := 12 + 8 + len(jsonData) + 8 + bin.Len()
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBHeader{
		Magic:   gltfGLBMagic,
		Version: gltfGLBVersion,
		Length:  uint32(totalLength),
	}))
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(jsonData)),
		ChunkType:   gltfGLBChunkJSON,
	}))
	glb.Write(jsonData)
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(bin.Len()),
		ChunkType:   gltfGLBChunkBIN,
	}))
	glb.Write(bin.Bytes())

	return glb.Bytes()
}

func intPtr(i int) *int {
	return &i
}

func TestLoadReaderGLB(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	glb := buildTriangleGLB(t)

	m, err := l.LoadReader("triangle", bytes.NewReader(glb), true)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "triangle", m.Name())
	require.Len(t, m.Meshes(), 1)

	mesh := m.Meshes()[0]
	assert.Equal(t, 3, mesh.IndexCount)
	assert.Len(t, mesh.VertexData, 3*56)
	assert.Len(t, mesh.IndexData, 3*4)
	assert.Equal(t, 0, mesh.MaterialIndex)

	// Flat triangle in the XY plane: generated normal is +Z for every vertex.
	// Normal lives at byte offset 20 in the vertex layout.
	nz := math.Float32frombits(binary.LittleEndian.Uint32(mesh.VertexData[28:32]))
	assert.InDelta(t, 1.0, nz, 1.0e-5)

	// Furthest vertex from origin is (1,0,0) or (0,1,0).
	assert.InDelta(t, 1.0, m.BoundingRadius(), 1.0e-5)

	require.Len(t, m.ImportedMaterials(), 1)
	mat := m.ImportedMaterials()[0]
	assert.Equal(t, "glass", mat.Name)
	assert.InDelta(t, 1.0, mat.Metallic, 1.0e-5)
	assert.InDelta(t, 0.5, mat.Roughness, 1.0e-5)
	assert.True(t, mat.Transparent)
}

func TestLoadReaderCachesByName(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	glb := buildTriangleGLB(t)

	m1, err := l.LoadReader("tri", bytes.NewReader(glb), true)
	require.NoError(t, err)
	m2, err := l.LoadReader("tri", bytes.NewReader(nil), true)
	require.NoError(t, err)
	assert.Same(t, m1, m2)

	assert.Equal(t, m1, l.Get("tri"))
	assert.Nil(t, l.Get("missing"))
	assert.Len(t, l.Models(), 1)
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	_, err := l.Load("model.obj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model format")
}
