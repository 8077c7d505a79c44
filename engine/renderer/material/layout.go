package material

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Binding indices for the material bind group. The fragment shaders declare the
// same bindings, so these constants and BindGroupLayoutEntries are the single
// Go-side source of truth for the material group layout.
const (
	// BindingDiffuseTexture is the albedo texture binding.
	BindingDiffuseTexture = 0
	// BindingDiffuseSampler is the albedo sampler binding.
	BindingDiffuseSampler = 1
	// BindingNormalTexture is the tangent-space normal map binding.
	BindingNormalTexture = 2
	// BindingNormalSampler is the normal map sampler binding.
	BindingNormalSampler = 3
	// BindingMetallicRoughnessTexture is the packed metallic-roughness texture binding.
	BindingMetallicRoughnessTexture = 4
	// BindingMetallicRoughnessSampler is the metallic-roughness sampler binding.
	BindingMetallicRoughnessSampler = 5
	// BindingMaterialUniform is the per-material factor uniform binding.
	BindingMaterialUniform = 6
)

// BindGroupLayoutEntries returns the bind group layout entries for the material
// bind group: three filtered texture/sampler pairs plus the material uniform,
// all visible to the fragment stage.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the material group layout entries
func BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, 7)

	for _, texBinding := range []uint32{BindingDiffuseTexture, BindingNormalTexture, BindingMetallicRoughnessTexture} {
		texEntry := wgpu.BindGroupLayoutEntry{
			Binding:    texBinding,
			Visibility: wgpu.ShaderStageFragment,
		}
		texEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		texEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D

		samplerEntry := wgpu.BindGroupLayoutEntry{
			Binding:    texBinding + 1,
			Visibility: wgpu.ShaderStageFragment,
		}
		samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

		entries = append(entries, texEntry, samplerEntry)
	}

	uniformEntry := wgpu.BindGroupLayoutEntry{
		Binding:    BindingMaterialUniform,
		Visibility: wgpu.ShaderStageFragment,
	}
	uniformEntry.Buffer.Type = wgpu.BufferBindingTypeUniform

	return append(entries, uniformEntry)
}
