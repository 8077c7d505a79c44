package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithControllerSpeed sets the initial movement speed in world units per second.
//
// Parameters:
//   - speed: the movement speed
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithControllerSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithControllerSensitivity sets the mouse look sensitivity.
//
// Parameters:
//   - sensitivity: the sensitivity
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithControllerSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}
