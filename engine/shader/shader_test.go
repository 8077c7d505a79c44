package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessorExpandsRegisteredIncludes(t *testing.T) {
	source := "#include camera.wgsl\n#include light.wgsl\n@vertex\nfn vs_main() {}\n"

	expanded, err := NewPreProcessor().Process(source)
	require.NoError(t, err)

	assert.Contains(t, expanded, "struct CameraUniform")
	assert.Contains(t, expanded, "struct Light")
	assert.NotContains(t, expanded, "#include")
	assert.Contains(t, expanded, "fn vs_main")
}

func TestPreProcessorRejectsUnknownInclude(t *testing.T) {
	_, err := NewPreProcessor().Process("#include missing.wgsl\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.wgsl")
}

func TestNewShaderParsesEntryPoints(t *testing.T) {
	source := "@vertex\nfn vs_main() {}\n@fragment\nfn fs_main() {}\n"

	vs := NewShader("test_vertex", ShaderTypeVertex, source)
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())

	fs := NewShader("test_fragment", ShaderTypeFragment, source)
	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.Equal(t, ShaderTypeFragment, fs.ShaderType())
}

func TestNewShaderPanicsWithoutEntryPoint(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("broken", ShaderTypeFragment, "@vertex\nfn vs_main() {}\n")
	})
}

func TestNewShaderPanicsOnUnknownInclude(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("broken", ShaderTypeVertex, "#include nope.wgsl\n@vertex\nfn vs_main() {}\n")
	})
}

func TestBuiltinProgramsExpand(t *testing.T) {
	shaders := []Shader{
		NewShadowVertexShader(),
		NewGeometryVertexShader(),
		NewGeometryFragmentShader(),
		NewLightDebugVertexShader(),
		NewLightDebugFragmentShader(),
		NewFogVertexShader(),
		NewFogFragmentShader(),
	}

	for _, s := range shaders {
		assert.NotContains(t, s.Source(), "#include", "shader %s should be fully expanded", s.Key())
		assert.NotEmpty(t, s.EntryPoint(), "shader %s should have an entry point", s.Key())
		require.NotNil(t, s.Module())
		assert.Equal(t, s.Key(), s.Module().Label)
	}
}

func TestBuiltinProgramVertexLayouts(t *testing.T) {
	// Instanced passes carry the per-vertex and per-instance layouts.
	assert.Len(t, NewShadowVertexShader().VertexLayouts(), 2)
	assert.Len(t, NewGeometryVertexShader().VertexLayouts(), 2)
	assert.Len(t, NewFogVertexShader().VertexLayouts(), 2)

	// The light debug pass draws mesh vertices without instancing.
	assert.Len(t, NewLightDebugVertexShader().VertexLayouts(), 1)

	// Fragment stages never declare vertex layouts.
	assert.Empty(t, NewGeometryFragmentShader().VertexLayouts())
}

func TestBuiltinProgramBindGroups(t *testing.T) {
	vs := NewGeometryVertexShader()
	require.Contains(t, vs.BindGroupLayoutDescriptors(), 0)

	fs := NewGeometryFragmentShader()
	descriptors := fs.BindGroupLayoutDescriptors()
	require.Len(t, descriptors, 3)
	assert.Len(t, descriptors[0].Entries, 3)
	assert.Len(t, descriptors[1].Entries, 2)
	assert.Len(t, descriptors[2].Entries, 7)

	fog := NewFogFragmentShader()
	require.Contains(t, fog.BindGroupLayoutDescriptors(), 2)
	assert.Len(t, fog.BindGroupLayoutDescriptors()[2].Entries, 2)
}

func TestGlobalBindGroupLayoutEntrySizes(t *testing.T) {
	entries := GlobalBindGroupLayoutEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, uint64(224), entries[BindingCameraUniform].Buffer.MinBindingSize)
	assert.Equal(t, uint64(432), entries[BindingLightUniform].Buffer.MinBindingSize)
	assert.Equal(t, uint64(16), entries[BindingGlobalUniforms].Buffer.MinBindingSize)
}

func TestIncludeSourcesTerminate(t *testing.T) {
	// Includes without a trailing newline must not glue the next line onto
	// the last struct field.
	expanded, err := NewPreProcessor().Process("#include material.wgsl\nfn f() {}\n")
	require.NoError(t, err)
	assert.True(t, strings.Contains(expanded, "}\nfn f()"))
}
