package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer/material"
)

//go:embed assets/depth.wgsl
var depthSource string

//go:embed assets/pbr.wgsl
var pbrSource string

//go:embed assets/light_debug.wgsl
var lightDebugSource string

//go:embed assets/fog.wgsl
var fogSource string

// Pipeline keys for the built-in render passes.
const (
	// ShadowPipelineKey identifies the depth-only shadow pass pipeline.
	ShadowPipelineKey = "shadow"
	// GeometryPipelineKey identifies the PBR geometry pass pipeline.
	GeometryPipelineKey = "geometry"
	// LightDebugPipelineKey identifies the light debug pass pipeline.
	LightDebugPipelineKey = "light_debug"
	// FogPipelineKey identifies the volumetric fog pass pipeline.
	FogPipelineKey = "fog"
)

// GlobalBindGroupLayoutDescriptor returns the descriptor for the global uniform
// bind group (group 0 in every pass).
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the global group layout descriptor
func GlobalBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "global_bind_group_layout",
		Entries: GlobalBindGroupLayoutEntries(),
	}
}

// LightDepthBindGroupLayoutDescriptor returns the descriptor for the shadow cube
// depth sampling bind group.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the shadow depth group layout descriptor
func LightDepthBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "light_depth_bind_group_layout",
		Entries: LightDepthBindGroupLayoutEntries(),
	}
}

// GeometryDepthBindGroupLayoutDescriptor returns the descriptor for the geometry
// depth sampling bind group used by the fog pass.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the geometry depth group layout descriptor
func GeometryDepthBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "geometry_depth_bind_group_layout",
		Entries: GeometryDepthBindGroupLayoutEntries(),
	}
}

// MaterialBindGroupLayoutDescriptor returns the descriptor for the per-material
// texture and factor bind group used by the geometry pass.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the material group layout descriptor
func MaterialBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "material_bind_group_layout",
		Entries: material.BindGroupLayoutEntries(),
	}
}

// NewShadowVertexShader creates the depth-only vertex shader for the shadow pass.
// The pass has no fragment stage; depth output comes from the rasterizer.
//
// Returns:
//   - Shader: the shadow pass vertex shader
func NewShadowVertexShader() Shader {
	return NewShader(ShadowPipelineKey+"_vertex", ShaderTypeVertex, depthSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithVertexLayouts(model.VertexBufferLayout(), model.InstanceBufferLayout()),
	)
}

// NewGeometryVertexShader creates the vertex shader for the PBR geometry pass.
//
// Returns:
//   - Shader: the geometry pass vertex shader
func NewGeometryVertexShader() Shader {
	return NewShader(GeometryPipelineKey+"_vertex", ShaderTypeVertex, pbrSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithVertexLayouts(model.VertexBufferLayout(), model.InstanceBufferLayout()),
	)
}

// NewGeometryFragmentShader creates the fragment shader for the PBR geometry
// pass, shading with the material bind group and the shadow cube.
//
// Returns:
//   - Shader: the geometry pass fragment shader
func NewGeometryFragmentShader() Shader {
	return NewShader(GeometryPipelineKey+"_fragment", ShaderTypeFragment, pbrSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithBindGroupLayout(1, LightDepthBindGroupLayoutDescriptor()),
		WithBindGroupLayout(2, MaterialBindGroupLayoutDescriptor()),
	)
}

// NewLightDebugVertexShader creates the vertex shader for the light debug pass,
// which draws mesh geometry translated to the light position.
//
// Returns:
//   - Shader: the light debug pass vertex shader
func NewLightDebugVertexShader() Shader {
	return NewShader(LightDebugPipelineKey+"_vertex", ShaderTypeVertex, lightDebugSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithVertexLayouts(model.VertexBufferLayout()),
	)
}

// NewLightDebugFragmentShader creates the fragment shader for the light debug pass.
//
// Returns:
//   - Shader: the light debug pass fragment shader
func NewLightDebugFragmentShader() Shader {
	return NewShader(LightDebugPipelineKey+"_fragment", ShaderTypeFragment, lightDebugSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
	)
}

// NewFogVertexShader creates the vertex shader for the volumetric fog pass,
// which rasterizes the instanced fog volume.
//
// Returns:
//   - Shader: the fog pass vertex shader
func NewFogVertexShader() Shader {
	return NewShader(FogPipelineKey+"_vertex", ShaderTypeVertex, fogSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithVertexLayouts(model.VertexBufferLayout(), model.InstanceBufferLayout()),
	)
}

// NewFogFragmentShader creates the fragment shader for the volumetric fog pass,
// ray marching against the geometry depth buffer and the shadow cube.
//
// Returns:
//   - Shader: the fog pass fragment shader
func NewFogFragmentShader() Shader {
	return NewShader(FogPipelineKey+"_fragment", ShaderTypeFragment, fogSource,
		WithBindGroupLayout(0, GlobalBindGroupLayoutDescriptor()),
		WithBindGroupLayout(1, LightDepthBindGroupLayoutDescriptor()),
		WithBindGroupLayout(2, GeometryDepthBindGroupLayoutDescriptor()),
	)
}
