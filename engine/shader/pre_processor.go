// pre_processor.go implements the WGSL #include pre-processor. Shader programs
// reference shared struct definitions with lines of the form "#include name.wgsl";
// the pre-processor replaces each directive with the embedded source registered
// under that name. The registry is populated from the engine's GPU type packages,
// so the WGSL structs the shaders compile against are the same canonical sources
// the Go uniform types document their layout with.
package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/light"
	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer/material"
)

// includeDirective matches one "#include file.wgsl" line including its trailing newline.
var includeDirective = regexp.MustCompile(`#include (.*?)\n`)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includeRegistry maps include names to their embedded WGSL source text.
	includeRegistry map[string]string
}

// PreProcessor expands #include directives in raw WGSL shader source, replacing
// each directive with the registered struct source. Expansion is a single pass;
// included sources must not themselves contain #include directives.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and replaces every #include
	// directive with the registered source for that include name.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing #include directives
	//
	// Returns:
	//   - string: the expanded WGSL shader source code
	//   - error: an error if a directive references an unknown include name
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the engine's canonical WGSL
// struct sources registered: camera/light/global uniforms, the vertex and
// instance input layouts, and the material uniform.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		includeRegistry: map[string]string{
			"camera.wgsl":   camera.GPUCameraUniformSource,
			"light.wgsl":    light.GPULightUniformSource,
			"globals.wgsl":  light.GPUGlobalUniformsSource,
			"vertex.wgsl":   model.GPUVertexSource,
			"instance.wgsl": model.GPUInstanceSource,
			"material.wgsl": material.GPUMaterialUniformSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	var expandErr error
	expanded := includeDirective.ReplaceAllStringFunc(source, func(directive string) string {
		name := strings.TrimSpace(strings.TrimPrefix(directive, "#include "))
		include, ok := p.includeRegistry[name]
		if !ok {
			expandErr = fmt.Errorf("unknown include %q", name)
			return directive
		}
		if !strings.HasSuffix(include, "\n") {
			include += "\n"
		}
		return include
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}
