package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullprop/wgpu-renderer/engine/shader"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("test")

	assert.Equal(t, "test", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Zero(t, p.DepthBias())
	assert.Zero(t, p.DepthBiasSlopeScale())
	assert.True(t, p.ColorTargetEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.Pipeline())
}

func TestShadowPipelineConfiguration(t *testing.T) {
	p := NewPipeline(shader.ShadowPipelineKey,
		WithVertexShader(shader.NewShadowVertexShader()),
		WithDepthOnly(),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithDepthBias(2, 2.0),
		WithCullMode(wgpu.CullModeBack),
	)

	assert.False(t, p.ColorTargetEnabled())
	assert.Nil(t, p.Shader(shader.ShaderTypeFragment))
	require.NotNil(t, p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.InDelta(t, 2.0, p.DepthBiasSlopeScale(), 1e-6)
}

func TestFogPipelineConfiguration(t *testing.T) {
	p := NewPipeline(shader.FogPipelineKey,
		WithVertexShader(shader.NewFogVertexShader()),
		WithFragmentShader(shader.NewFogFragmentShader()),
		WithBlendEnabled(true),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
	)

	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.False(t, p.DepthTestEnabled())

	blend := p.BlendState()
	require.NotNil(t, blend)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, blend.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, blend.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, blend.Color.Operation)
}
