package shader

import (
	"fmt"
	"regexp"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which pipeline stage a shader covers.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a pre-processed WGSL shader stage. It exposes the
// shader's unique key, expanded source code, entry point, bind group layout descriptors,
// and vertex buffer layouts needed for pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code with all #include directives expanded.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptors retrieves the declared bind group layout descriptors.
	// These are the CPU-side descriptors the renderer uses to create the actual
	// wgpu.BindGroupLayout GPU objects during pipeline registration.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts associated with this shader.
	// Only meaningful for vertex shaders; nil for fragment shaders.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts in buffer slot order
	VertexLayouts() []wgpu.VertexBufferLayout

	// EntryPoint returns the entry point function name for this shader stage,
	// parsed from the @vertex or @fragment attribute in the source.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader creates a new Shader instance from raw WGSL source with all specified
// options applied. The source is run through the #include pre-processor and the
// entry point is parsed from the expanded source. Shader construction is fatal on
// error: a malformed program aborts startup, there is no recompilation path.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the type of shader (vertex or fragment)
//   - source: the raw WGSL source code, possibly containing #include directives
//   - options: a variadic list of ShaderBuilderOption functions to configure the Shader
//
// Returns:
//   - Shader: a new Shader instance with the provided configuration
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	expanded, err := NewPreProcessor().Process(source)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to pre-process %q: %v", key, err))
	}

	s := &shader{
		key:                        key,
		source:                     expanded,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		entryPoint:                 parseEntryPoint(expanded, shaderType),
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: expanded,
		},
	}

	for _, option := range options {
		option(s)
	}

	if s.entryPoint == "" {
		panic(fmt.Sprintf("shader: %q has no entry point for its stage", key))
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

var (
	vertexEntryPattern   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)
	fragmentEntryPattern = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
)

// parseEntryPoint extracts the entry point function name for the given stage
// from the expanded WGSL source. Returns an empty string when the source has no
// entry point for that stage.
func parseEntryPoint(source string, shaderType ShaderType) string {
	var pattern *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		pattern = vertexEntryPattern
	case ShaderTypeFragment:
		pattern = fragmentEntryPattern
	default:
		return ""
	}

	match := pattern.FindStringSubmatch(source)
	if match == nil {
		return ""
	}
	return match[1]
}
