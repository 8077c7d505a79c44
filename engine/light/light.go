package light

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultIntensity is the light intensity packed into the fourth color
// channel. The shading pass divides by squared distance, so the value is
// large relative to scene dimensions.
const DefaultIntensity float32 = 250000.0

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	position  mgl32.Vec3
	color     [4]float32
	intensity float32
	animated  bool
}

// Light defines the interface for the scene's single omnidirectional point
// light. The light orbits the scene along a deterministic periodic path and
// cycles its color over time; both are pure functions of elapsed time so the
// motion never drifts with variable frame timing.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// SetPosition sets the world-space position of the light directly.
	// Animate overwrites this on the next tick unless animation is disabled.
	//
	// Parameters:
	//   - position: the world-space position
	SetPosition(position mgl32.Vec3)

	// Color returns the RGBA color of the light. The alpha channel carries the
	// intensity.
	//
	// Returns:
	//   - [4]float32: color as (r, g, b, intensity)
	Color() [4]float32

	// SetColor sets the RGB color of the light. The intensity channel is
	// preserved.
	//
	// Parameters:
	//   - r, g, b: color channels
	SetColor(r, g, b float32)

	// Intensity returns the light intensity stored in the fourth color channel.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Animated returns whether Animate moves and recolors the light.
	//
	// Returns:
	//   - bool: true if the light animates
	Animated() bool

	// Animate advances the light along its periodic path. Position and color
	// are functions of elapsed time since startup, not of frame delta, so the
	// motion is identical for any frame pacing. Does nothing when animation is
	// disabled.
	//
	// Parameters:
	//   - elapsed: seconds since startup
	Animate(elapsed float32)

	// ShadowMatrices returns the six cube-face view-projection matrices for
	// the light's current position, in +X, -X, +Y, -Y, +Z, -Z order.
	//
	// Returns:
	//   - [6]mgl32.Mat4: the face view-projection matrices
	ShadowMatrices() [6]mgl32.Mat4
}

var _ Light = &lightImpl{}

// NewLight creates the scene light with default white color and intensity.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		color:     [4]float32{1, 1, 1, DefaultIntensity},
		intensity: DefaultIntensity,
		animated:  true,
	}
	for _, option := range options {
		option(l)
	}
	l.color[3] = l.intensity
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}

func (l *lightImpl) Color() [4]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color[0] = r
	l.color[1] = g
	l.color[2] = b
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Animated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.animated
}

func (l *lightImpl) Animate(elapsed float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.animated {
		return
	}

	l.position = mgl32.Vec3{
		sin(elapsed*0.5) * 500.0,
		250.0 + sin(elapsed*0.3)*200.0,
		sin(elapsed*0.8) * 100.0,
	}

	l.color[0] = abs(sin(elapsed * 1.0))
	l.color[1] = abs(sin(elapsed * 0.6))
	l.color[2] = abs(sin(elapsed * 0.4))
}

func (l *lightImpl) ShadowMatrices() [6]mgl32.Mat4 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ShadowMatrices(l.position)
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
