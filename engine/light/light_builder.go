package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a functional option for configuring a Light.
type LightBuilderOption func(*lightImpl)

// WithLightPosition sets the light's starting world-space position.
//
// Parameters:
//   - position: the world-space position
//
// Returns:
//   - LightBuilderOption: functional option to set the position
func WithLightPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithLightColor sets the light's RGB color channels.
//
// Parameters:
//   - r, g, b: color channels
//
// Returns:
//   - LightBuilderOption: functional option to set the color
func WithLightColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color[0] = r
		l.color[1] = g
		l.color[2] = b
	}
}

// WithIntensity sets the light intensity packed into the fourth color channel.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: functional option to set the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithAnimated enables or disables the periodic position/color animation.
// Disabled is useful for tests that need a stationary light.
//
// Parameters:
//   - animated: whether Animate moves the light
//
// Returns:
//   - LightBuilderOption: functional option to toggle animation
func WithAnimated(animated bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.animated = animated
	}
}
