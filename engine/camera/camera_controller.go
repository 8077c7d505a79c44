package camera

// MoveAxis identifies one of the six camera-relative movement directions a
// controller accumulates input for.
type MoveAxis int

const (
	// MoveForward moves along the camera's facing direction.
	MoveForward MoveAxis = iota

	// MoveBackward moves opposite the camera's facing direction.
	MoveBackward

	// MoveLeft strafes left relative to the camera.
	MoveLeft

	// MoveRight strafes right relative to the camera.
	MoveRight

	// MoveUp moves along the camera's local up vector.
	MoveUp

	// MoveDown moves opposite the camera's local up vector.
	MoveDown

	moveAxisCount
)

// CameraController accumulates input state between ticks for a first-person
// camera: held movement axes, one-shot mouse motion deltas, and a movement
// speed that can be scaled at runtime via the mouse wheel. Camera.Update
// consumes this state each tick; the application shell calls Reset afterward
// so mouse motion does not double-apply on the next tick.
type CameraController interface {
	// Speed returns the movement speed in world units per second.
	//
	// Returns:
	//   - float32: the movement speed
	Speed() float32

	// SetSpeed sets the movement speed in world units per second.
	//
	// Parameters:
	//   - speed: the movement speed
	SetSpeed(speed float32)

	// MultiplySpeed scales the movement speed by the given factor. Used by the
	// mouse wheel to double or halve the speed.
	//
	// Parameters:
	//   - factor: the multiplier applied to the current speed
	MultiplySpeed(factor float32)

	// Sensitivity returns the mouse look sensitivity.
	//
	// Returns:
	//   - float32: the sensitivity
	Sensitivity() float32

	// SetSensitivity sets the mouse look sensitivity.
	//
	// Parameters:
	//   - sensitivity: the sensitivity
	SetSensitivity(sensitivity float32)

	// Move returns the accumulated input amount for a movement axis,
	// 1.0 while the bound key is held and 0.0 otherwise.
	//
	// Parameters:
	//   - axis: the movement axis to query
	//
	// Returns:
	//   - float32: the input amount for the axis
	Move(axis MoveAxis) float32

	// SetMove records the input amount for a movement axis. Held-key state
	// persists across ticks until explicitly set back to zero.
	//
	// Parameters:
	//   - axis: the movement axis
	//   - amount: the input amount, typically 0.0 or 1.0
	SetMove(axis MoveAxis, amount float32)

	// AddMouseDelta accumulates raw mouse motion since the last Reset.
	//
	// Parameters:
	//   - dx: horizontal motion in device units
	//   - dy: vertical motion in device units
	AddMouseDelta(dx, dy float32)

	// MouseDelta returns the mouse motion accumulated since the last Reset.
	//
	// Returns:
	//   - dx: horizontal motion in device units
	//   - dy: vertical motion in device units
	MouseDelta() (dx, dy float32)

	// Reset clears the accumulated mouse deltas. When heldKeys is true the
	// movement axis amounts are cleared as well, used when the window loses
	// focus and key release events may never arrive.
	//
	// Parameters:
	//   - heldKeys: whether to also clear held movement axes
	Reset(heldKeys bool)
}
