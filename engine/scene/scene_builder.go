package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nullprop/wgpu-renderer/engine/light"
	"github.com/nullprop/wgpu-renderer/engine/model"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithLight replaces the scene's default animated point light.
//
// Parameters:
//   - l: the light to attach (ignored when nil)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		if l != nil {
			s.pointLight = l
		}
	}
}

// WithModels registers initial models for rendering. Their instance buffers
// are created during Init.
//
// Parameters:
//   - models: the models to register
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModels(models ...model.Model) SceneBuilderOption {
	return func(s *scene) {
		for _, mdl := range models {
			if mdl != nil {
				s.models = append(s.models, mdl)
			}
		}
	}
}

// WithFogEnabled sets whether the fog pass runs each frame.
//
// Parameters:
//   - enabled: whether the fog pass is enabled
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFogEnabled(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.fogEnabled = enabled
	}
}

// WithLightDebugEnabled sets whether the light debug pass runs each frame.
//
// Parameters:
//   - enabled: whether the light debug pass is enabled
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightDebugEnabled(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.lightDebugEnabled = enabled
	}
}

// WithCullingDisabled sets whether frustum culling is bypassed in the
// geometry pass.
//
// Parameters:
//   - disabled: true to draw every model regardless of camera visibility
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithFogVolume overrides the default fog volume bounds. The volume is a unit
// cube scaled by the given half-extents and centered at the given position.
//
// Parameters:
//   - position: the fog volume center in world space
//   - scale: the fog volume half-extents along each axis
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFogVolume(position, scale mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.fogInstance = model.NewInstance(position, scale)
	}
}
