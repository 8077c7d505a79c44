package shader

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/light"
)

// Binding indices for the global uniform bind group (group 0 in every pass).
const (
	// BindingCameraUniform is the camera uniform buffer binding.
	BindingCameraUniform = 0
	// BindingLightUniform is the light uniform buffer binding.
	BindingLightUniform = 1
	// BindingGlobalUniforms is the per-frame globals uniform buffer binding.
	BindingGlobalUniforms = 2
)

// Binding indices shared by the two depth sampling bind groups.
const (
	// BindingDepthTexture is the depth texture binding.
	BindingDepthTexture = 0
	// BindingDepthSampler is the depth sampler binding.
	BindingDepthSampler = 1
)

// GlobalBindGroupLayoutEntries returns the layout entries for the global uniform
// bind group shared by all passes: camera, light, and frame globals, each visible
// to both the vertex and fragment stages.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the global group layout entries
func GlobalBindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	cameraEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingCameraUniform,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	cameraEntry.Buffer.Type = wgpu.BufferBindingTypeUniform
	cameraEntry.Buffer.MinBindingSize = uint64((&camera.GPUCameraUniform{}).Size())

	lightEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingLightUniform,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	lightEntry.Buffer.Type = wgpu.BufferBindingTypeUniform
	lightEntry.Buffer.MinBindingSize = uint64((&light.GPULightUniform{}).Size())

	globalsEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingGlobalUniforms,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	globalsEntry.Buffer.Type = wgpu.BufferBindingTypeUniform
	globalsEntry.Buffer.MinBindingSize = uint64((&light.GPUGlobalUniforms{}).Size())

	return []wgpu.BindGroupLayoutEntry{cameraEntry, lightEntry, globalsEntry}
}

// LightDepthBindGroupLayoutEntries returns the layout entries for sampling the
// shadow cube depth texture: a 2D-array depth texture and a comparison sampler,
// both visible to the fragment stage.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the shadow depth group layout entries
func LightDepthBindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingDepthTexture,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeDepth
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2DArray

	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingDepthSampler,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeComparison

	return []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry}
}

// GeometryDepthBindGroupLayoutEntries returns the layout entries for sampling the
// geometry pass depth buffer in the fog pass: a 2D depth texture and a filtering
// sampler, both visible to the fragment stage.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the geometry depth group layout entries
func GeometryDepthBindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingDepthTexture,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeDepth
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingDepthSampler,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry}
}
