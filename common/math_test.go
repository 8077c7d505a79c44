package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-5

// projectDepth runs a view-space point through the projection and returns the
// NDC depth after the perspective divide.
func projectDepth(proj mgl32.Mat4, viewPos mgl32.Vec3) float32 {
	clip := proj.Mul4x1(viewPos.Vec4(1))
	return clip.Z() / clip.W()
}

func TestPerspectiveDepthRange(t *testing.T) {
	near := float32(1.0)
	far := float32(3000.0)
	proj := Perspective(mgl32.DegToRad(90), 1.0, near, far)

	// The camera looks down -Z in view space.
	assert.InDelta(t, 0.0, projectDepth(proj, mgl32.Vec3{0, 0, -near}), tol, "near plane maps to 0")
	assert.InDelta(t, 1.0, projectDepth(proj, mgl32.Vec3{0, 0, -far}), tol, "far plane maps to 1")

	mid := projectDepth(proj, mgl32.Vec3{0, 0, -1500})
	assert.Greater(t, mid, float32(0.0))
	assert.Less(t, mid, float32(1.0))
}

func TestPerspectiveDepthMonotonic(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(55), 16.0/9.0, 1.0, 3000.0)

	prev := float32(-1.0)
	for d := float32(2.0); d < 3000.0; d *= 2 {
		z := projectDepth(proj, mgl32.Vec3{0, 0, -d})
		assert.Greater(t, z, prev, "depth at distance %v", d)
		prev = z
	}
}

func TestPerspectiveFieldOfView(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(90), 1.0, 1.0, 3000.0)

	// At 90 degrees fovy and aspect 1, a point on the frustum edge
	// (x == distance) lands exactly on NDC x = 1.
	clip := proj.Mul4x1(mgl32.Vec4{100, 0, -100, 1})
	assert.InDelta(t, 1.0, clip.X()/clip.W(), tol)
}

func TestLookTo(t *testing.T) {
	eye := mgl32.Vec3{10, 20, 30}
	view := LookTo(eye, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	origin := view.Mul4x1(eye.Vec4(1))
	assert.InDelta(t, 0.0, origin.X(), tol)
	assert.InDelta(t, 0.0, origin.Y(), tol)
	assert.InDelta(t, 0.0, origin.Z(), tol)

	// A point one unit ahead of the camera lands at z = -1 in view space.
	ahead := view.Mul4x1(mgl32.Vec4{10, 20, 29, 1})
	assert.InDelta(t, -1.0, ahead.Z(), tol)
}

func TestNormalMatrix(t *testing.T) {
	// Non-uniform scale: the raw model matrix skews normals, the inverse
	// transpose must preserve perpendicularity.
	model := mgl32.Scale3D(2, 1, 1)
	nm := NormalMatrix(model)

	n := nm.Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.5, n.X(), tol)
	assert.InDelta(t, 0.0, n.Y(), tol)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	require.Len(t, b, 8)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[:4])

	assert.Nil(t, SliceToBytes([]float32(nil)))
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A float32
		B float32
	}{A: 1.0, B: 2.0}
	b := StructToBytes(&v)
	require.Len(t, b, 8)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[:4])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 5, 3))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
