package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/renderer/bind_group_provider"
)

// Near and far clipping plane distances shared by the camera and the shadow
// projection so both depth ranges cover the same world-space extents.
const (
	NearPlane = 1.0
	FarPlane  = 3000.0
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32 // degrees, wrapped to [0, 360)
	pitch    float32 // degrees, clamped to [-89, 89]

	fov    float32
	aspect float32
	near   float32
	far    float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the first-person camera.
// The camera holds a world position and yaw/pitch orientation in degrees and
// derives view/projection matrices on demand. Attach a CameraController and
// call Update once per tick to integrate accumulated input.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// Yaw returns the horizontal orientation in degrees, always in [0, 360).
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// SetYaw sets the yaw in degrees. The value is wrapped into [0, 360).
	//
	// Parameters:
	//   - yaw: yaw in degrees
	SetYaw(yaw float32)

	// Pitch returns the vertical orientation in degrees, always in [-89, 89].
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// SetPitch sets the pitch in degrees. The value is clamped into [-89, 89].
	//
	// Parameters:
	//   - pitch: pitch in degrees
	SetPitch(pitch float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio (width / height). Called on every
	// framebuffer resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Vectors returns the camera's local basis derived from yaw/pitch.
	//
	// Returns:
	//   - right: unit vector pointing to the camera's right
	//   - up: unit vector pointing up relative to the camera
	//   - forward: unit vector the camera faces
	Vectors() (right, up, forward mgl32.Vec3)

	// ViewMatrix returns the current view matrix derived from position and
	// orientation.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection matrix using
	// the WebGPU [0, 1] depth convention.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	// Returns nil if not set.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)

	// Update integrates one tick of controller input: mouse deltas rotate the
	// camera (pitch clamped, yaw wrapped) and held movement axes translate it
	// along the camera-relative basis scaled by controller speed and dt.
	// Does nothing when no controller is attached.
	//
	// Parameters:
	//   - dt: frame delta time in seconds
	Update(dt float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings matching
// the scene constants (55 degree fov, near 1.0, far 3000.0). A controller
// must be attached via SetController or WithController before Update has any
// effect.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    55.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   NearPlane,
		far:    FarPlane,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) SetYaw(yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = wrapYaw(yaw)
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) SetPitch(pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = clampPitch(pitch)
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Vectors() (right, up, forward mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vectors()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, up, forward := c.vectors()
	return common.LookTo(c.position, forward, up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

func (c *cameraImpl) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}

	dx, dy := c.controller.MouseDelta()
	sensitivity := c.controller.Sensitivity()
	c.pitch = clampPitch(c.pitch - dy*sensitivity*0.022)
	c.yaw = wrapYaw(c.yaw + dx*sensitivity*0.022)

	right, up, forward := c.vectors()
	speed := c.controller.Speed()

	c.position = c.position.Add(forward.Mul((c.controller.Move(MoveForward) - c.controller.Move(MoveBackward)) * speed * dt))
	c.position = c.position.Add(right.Mul((c.controller.Move(MoveRight) - c.controller.Move(MoveLeft)) * speed * dt))
	c.position = c.position.Add(up.Mul((c.controller.Move(MoveUp) - c.controller.Move(MoveDown)) * speed * dt))
}

// vectors derives the camera-local basis from yaw/pitch.
// Caller must hold the mutex.
func (c *cameraImpl) vectors() (right, up, forward mgl32.Vec3) {
	yawSin, yawCos := sinCos(mgl32.DegToRad(c.yaw))
	pitchSin, pitchCos := sinCos(mgl32.DegToRad(c.pitch))

	forward = mgl32.Vec3{pitchCos * yawCos, pitchSin, pitchCos * yawSin}.Normalize()
	right = mgl32.Vec3{-yawSin, 0, yawCos}.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

func sinCos(rad float32) (float32, float32) {
	s, c := math.Sincos(float64(rad))
	return float32(s), float32(c)
}

// wrapYaw wraps a yaw angle in degrees into [0, 360).
func wrapYaw(yaw float32) float32 {
	yaw = float32(math.Mod(float64(yaw), 360.0))
	if yaw < 0 {
		yaw += 360.0
	}
	return yaw
}

// clampPitch clamps a pitch angle in degrees into [-89, 89].
func clampPitch(pitch float32) float32 {
	if pitch > 89.0 {
		return 89.0
	}
	if pitch < -89.0 {
		return -89.0
	}
	return pitch
}
