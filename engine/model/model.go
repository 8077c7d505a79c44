package model

import (
	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/renderer/bind_group_provider"
	"github.com/nullprop/wgpu-renderer/engine/renderer/material"
)

// Mesh is a single draw unit within a model: one vertex/index buffer pair and
// the material it renders with. GPU buffers live on the mesh provider and are
// populated by the Renderer during upload.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// VertexData is the marshaled GPUVertex buffer contents.
	VertexData []byte

	// IndexData is the marshaled uint32 index buffer contents.
	IndexData []byte

	// IndexCount is the number of indices in IndexData.
	IndexCount int

	// MaterialIndex references the owning model's material list.
	MaterialIndex int

	// Provider holds the GPU vertex/index buffers once uploaded, or nil before upload.
	Provider bind_group_provider.BindGroupProvider
}

// model is the implementation of the Model interface.
type model struct {
	name              string
	meshes            []*Mesh
	importedMaterials []common.ImportedMaterial
	renderMaterials   []material.Material
	instances         []Instance
	boundingRadius    float32
}

// Model defines the interface for a loaded 3D model.
// A Model is a container of GPU-ready meshes, the materials they reference,
// and the world-space instances to draw. It is produced by the Loader after
// importing and processing a model file.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Meshes retrieves the draw units of this model.
	//
	// Returns:
	//   - []*Mesh: the meshes
	Meshes() []*Mesh

	// ImportedMaterials retrieves the raw material properties imported from the model file.
	//
	// Returns:
	//   - []common.ImportedMaterial: the imported materials
	ImportedMaterials() []common.ImportedMaterial

	// RenderMaterials retrieves the render-ready materials for this model.
	// These are GPU-configured Material instances used during draw calls,
	// as opposed to the raw common.ImportedMaterial data from the loader.
	//
	// Returns:
	//   - []material.Material: the render-ready materials
	RenderMaterials() []material.Material

	// SetRenderMaterials replaces the render-ready material list for this model.
	//
	// Parameters:
	//   - mats: the render-ready materials to set
	SetRenderMaterials(mats []material.Material)

	// Instances retrieves the world-space placements of this model.
	//
	// Returns:
	//   - []Instance: the instances
	Instances() []Instance

	// SetInstances replaces the world-space placements of this model.
	//
	// Parameters:
	//   - instances: the instances to set
	SetInstances(instances []Instance)

	// InstanceData marshals all instances into a contiguous buffer suitable
	// for uploading as a per-instance vertex buffer.
	//
	// Returns:
	//   - []byte: the marshaled instance data
	InstanceData() []byte

	// InstanceCount returns the number of instances to draw.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the model origin across all meshes.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Release releases the GPU resources of every mesh provider.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []*Mesh {
	return m.meshes
}

func (m *model) ImportedMaterials() []common.ImportedMaterial {
	return m.importedMaterials
}

func (m *model) RenderMaterials() []material.Material {
	return m.renderMaterials
}

func (m *model) SetRenderMaterials(mats []material.Material) {
	m.renderMaterials = mats
}

func (m *model) Instances() []Instance {
	return m.instances
}

func (m *model) SetInstances(instances []Instance) {
	m.instances = instances
}

func (m *model) InstanceData() []byte {
	return MarshalInstances(m.instances)
}

func (m *model) InstanceCount() int {
	return len(m.instances)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Release() {
	for _, mesh := range m.meshes {
		if mesh.Provider != nil {
			mesh.Provider.Release()
			mesh.Provider = nil
		}
	}
	for _, mat := range m.renderMaterials {
		if mat != nil {
			mat.Release()
		}
	}
	m.renderMaterials = nil
}
