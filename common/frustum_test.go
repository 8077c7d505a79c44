package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// testFrustum builds a frustum for a camera at the origin looking down +X
// with a 90 degree vertical field of view.
func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 1000.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	viewProj := proj.Mul4(view)
	return ExtractFrustumFromMatrix(viewProj[:])
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		length := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDelta(t, 1.0, float64(length), tol, "plane %d normal unit length", i)
	}
}

func TestSphereVisible(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name    string
		center  [3]float32
		radius  float32
		visible bool
	}{
		{"in front of camera", [3]float32{100, 0, 0}, 1, true},
		{"behind the camera", [3]float32{-100, 0, 0}, 1, false},
		{"beyond the far plane", [3]float32{2000, 0, 0}, 1, false},
		{"straddling the near plane", [3]float32{0, 0, 0}, 5, true},
		{"outside left but radius reaches in", [3]float32{10, 0, -15}, 10, true},
		{"far outside left", [3]float32{10, 0, -100}, 10, false},
		{"above the frustum", [3]float32{10, 100, 0}, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.visible, f.SphereVisible(tc.center, tc.radius))
		})
	}
}
