package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nullprop/wgpu-renderer/engine/renderer/bind_group_provider"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's starting world-space position.
//
// Parameters:
//   - position: the world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithYaw sets the camera's starting yaw in degrees. The value is wrapped
// into [0, 360).
//
// Parameters:
//   - yaw: yaw in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = wrapYaw(yaw)
	}
}

// WithPitch sets the camera's starting pitch in degrees. The value is clamped
// into [-89, 89].
//
// Parameters:
//   - pitch: pitch in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = clampPitch(pitch)
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithController attaches a controller to the camera.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider describes the GPU binding requirements for camera uniforms.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
