package camera

import (
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
// Movement axis amounts model held keys and persist until explicitly cleared;
// mouse deltas are one-shot accumulators consumed once per tick.
type cameraControllerImpl struct {
	mu *sync.Mutex

	speed       float32
	sensitivity float32

	move [moveAxisCount]float32

	deltaX float32
	deltaY float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with the scene's
// default movement speed and mouse sensitivity.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		speed:       400.0,
		sensitivity: 2.0,
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) SetSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speed = speed
}

func (cc *cameraControllerImpl) MultiplySpeed(factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speed *= factor
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}

func (cc *cameraControllerImpl) SetSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.sensitivity = sensitivity
}

func (cc *cameraControllerImpl) Move(axis MoveAxis) float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if axis < 0 || axis >= moveAxisCount {
		return 0
	}
	return cc.move[axis]
}

func (cc *cameraControllerImpl) SetMove(axis MoveAxis, amount float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if axis < 0 || axis >= moveAxisCount {
		return
	}
	cc.move[axis] = amount
}

func (cc *cameraControllerImpl) AddMouseDelta(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.deltaX += dx
	cc.deltaY += dy
}

func (cc *cameraControllerImpl) MouseDelta() (dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.deltaX, cc.deltaY
}

func (cc *cameraControllerImpl) Reset(heldKeys bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if heldKeys {
		for i := range cc.move {
			cc.move[i] = 0
		}
	}
	cc.deltaX = 0
	cc.deltaY = 0
}
