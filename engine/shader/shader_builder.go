package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption defines a function that modifies the shader properties during creation.
type ShaderBuilderOption func(*shader)

// WithBindGroupLayout declares the bind group layout descriptor for the given group index.
// Declaring the same group on both stages of a pipeline is allowed; the renderer merges
// the entries and ORs the stage visibility when registering the pipeline.
//
// Parameters:
//   - group: the bind group index as referenced in the WGSL source (@group(n))
//   - descriptor: the layout descriptor describing the bindings in the group
//
// Returns:
//   - ShaderBuilderOption: a function that sets the bind group layout descriptor
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayouts sets the vertex buffer layouts for the shader, in vertex buffer
// slot order. Only meaningful on vertex shaders.
//
// Parameters:
//   - layouts: the vertex buffer layouts to associate with the shader
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex buffer layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}
