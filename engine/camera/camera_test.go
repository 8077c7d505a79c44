package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-4

func TestYawWrapsInto360(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()))

	c.SetYaw(370)
	assert.InDelta(t, 10.0, c.Yaw(), tol)

	c.SetYaw(-30)
	assert.InDelta(t, 330.0, c.Yaw(), tol)

	// Large accumulated mouse motion still lands in range.
	ctrl := c.Controller()
	for range 100 {
		ctrl.AddMouseDelta(5000, 0)
		c.Update(0.016)
		ctrl.Reset(false)
		yaw := c.Yaw()
		assert.GreaterOrEqual(t, yaw, float32(0.0))
		assert.Less(t, yaw, float32(360.0))
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()))

	c.SetPitch(200)
	assert.InDelta(t, 89.0, c.Pitch(), tol)

	c.SetPitch(-200)
	assert.InDelta(t, -89.0, c.Pitch(), tol)

	ctrl := c.Controller()
	ctrl.AddMouseDelta(0, -1e6)
	c.Update(0.016)
	assert.InDelta(t, 89.0, c.Pitch(), tol)

	ctrl.Reset(false)
	ctrl.AddMouseDelta(0, 1e6)
	c.Update(0.016)
	assert.InDelta(t, -89.0, c.Pitch(), tol)
}

func TestNoMovementWithoutInput(t *testing.T) {
	start := mgl32.Vec3{-500, 150, 0}
	c := NewCamera(
		WithPosition(start),
		WithController(NewCameraController()),
	)

	c.Update(0.016)
	assert.Equal(t, start, c.Position())

	var uniform GPUCameraUniform
	uniform.Update(c, 1280, 720)
	assert.Equal(t, [4]float32{-500, 150, 0, 1}, uniform.Position)
	assert.Equal(t, [4]float32{NearPlane, FarPlane, 1280, 720}, uniform.Planes)
}

func TestForwardMovement(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 0, 0}),
		WithYaw(0),
		WithPitch(0),
		WithController(NewCameraController(WithControllerSpeed(100))),
	)

	// Yaw 0 faces +X.
	c.Controller().SetMove(MoveForward, 1.0)
	c.Update(1.0)

	pos := c.Position()
	assert.InDelta(t, 100.0, pos.X(), tol)
	assert.InDelta(t, 0.0, pos.Y(), tol)
	assert.InDelta(t, 0.0, pos.Z(), tol)

	// Held keys persist across ticks until released.
	c.Update(1.0)
	assert.InDelta(t, 200.0, c.Position().X(), tol)

	c.Controller().SetMove(MoveForward, 0.0)
	c.Update(1.0)
	assert.InDelta(t, 200.0, c.Position().X(), tol)
}

func TestVectorsOrthonormal(t *testing.T) {
	c := NewCamera(WithYaw(123), WithPitch(-45))

	right, up, forward := c.Vectors()
	assert.InDelta(t, 1.0, right.Len(), tol)
	assert.InDelta(t, 1.0, up.Len(), tol)
	assert.InDelta(t, 1.0, forward.Len(), tol)
	assert.InDelta(t, 0.0, right.Dot(forward), tol)
	assert.InDelta(t, 0.0, right.Dot(up), tol)
	assert.InDelta(t, 0.0, up.Dot(forward), tol)
}

func TestInverseViewProjRoundTrip(t *testing.T) {
	tt := []struct {
		name     string
		position mgl32.Vec3
		yaw      float32
		pitch    float32
	}{
		{"translated", mgl32.Vec3{-500, 150, 0}, 42, 13},
		{"rotation only", mgl32.Vec3{}, 90, 45},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(
				WithPosition(tc.position),
				WithYaw(tc.yaw),
				WithPitch(tc.pitch),
				WithAspect(16.0/9.0),
			)

			var uniform GPUCameraUniform
			uniform.Update(c, 1920, 1080)

			viewProj := mgl32.Mat4(uniform.Proj).Mul4(mgl32.Mat4(uniform.View))
			round := mgl32.Mat4(uniform.InvViewProj).Mul4(viewProj)

			ident := mgl32.Ident4()
			for i := range 16 {
				assert.InDelta(t, ident[i], round[i], tol, "element %d", i)
			}
		})
	}
}

func TestMouseDeltaResetIsOneShot(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.AddMouseDelta(10, -5)
	ctrl.AddMouseDelta(2, 1)

	dx, dy := ctrl.MouseDelta()
	assert.InDelta(t, 12.0, dx, tol)
	assert.InDelta(t, -4.0, dy, tol)

	ctrl.SetMove(MoveLeft, 1.0)
	ctrl.Reset(false)
	dx, dy = ctrl.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Equal(t, float32(1.0), ctrl.Move(MoveLeft), "held keys survive a delta-only reset")

	ctrl.Reset(true)
	assert.Zero(t, ctrl.Move(MoveLeft))
}

func TestMultiplySpeed(t *testing.T) {
	ctrl := NewCameraController(WithControllerSpeed(400))
	ctrl.MultiplySpeed(2.0)
	assert.InDelta(t, 800.0, ctrl.Speed(), tol)
	ctrl.MultiplySpeed(0.5)
	ctrl.MultiplySpeed(0.5)
	assert.InDelta(t, 200.0, ctrl.Speed(), tol)
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	var uniform GPUCameraUniform
	require.Equal(t, 224, uniform.Size())

	uniform.View[0] = 1.0
	uniform.Proj[0] = 2.0
	uniform.InvViewProj[0] = 3.0
	uniform.Position = [4]float32{4, 5, 6, 1}
	uniform.Planes = [4]float32{1, 3000, 1280, 720}

	buf := uniform.Marshal()
	require.Len(t, buf, 224)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf[0:4])   // View[0] = 1.0
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x40}, buf[64:68]) // Proj[0] = 2.0
	assert.Equal(t, []byte{0x00, 0x00, 0x40, 0x40}, buf[128:132])
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x40}, buf[192:196])
}
