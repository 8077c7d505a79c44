package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullprop/wgpu-renderer/engine/camera"
)

const tol = 1.0e-4

func TestShadowFacesFormOrthogonalBasis(t *testing.T) {
	// The six directions must be unit length and cover each axis in both
	// signs exactly once.
	var sum mgl32.Vec3
	for i, face := range ShadowFaces {
		assert.InDelta(t, 1.0, face.Direction.Len(), tol, "face %d direction unit length", i)
		assert.InDelta(t, 1.0, face.Up.Len(), tol, "face %d up unit length", i)
		assert.InDelta(t, 0.0, face.Direction.Dot(face.Up), tol, "face %d up orthogonal to direction", i)
		sum = sum.Add(face.Direction)
	}
	assert.InDelta(t, 0.0, sum.Len(), tol, "directions cancel pairwise")

	// Opposite faces are paired +X/-X, +Y/-Y, +Z/-Z.
	for i := 0; i < ShadowMapLayers; i += 2 {
		dot := ShadowFaces[i].Direction.Dot(ShadowFaces[i+1].Direction)
		assert.InDelta(t, -1.0, dot, tol, "faces %d and %d opposite", i, i+1)
	}
}

func TestShadowMatricesDepthRange(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 0, 0},
		{0, 250, 0},
		{-500, 150, 100},
	}
	distances := []float32{camera.NearPlane + 1, 100, 1500, camera.FarPlane - 1}

	for _, pos := range positions {
		matrices := ShadowMatrices(pos)
		for i, face := range ShadowFaces {
			for _, d := range distances {
				world := pos.Add(face.Direction.Mul(d)).Vec4(1)
				clip := matrices[i].Mul4x1(world)
				require.Greater(t, clip.W(), float32(0.0), "point in front of face %d", i)
				depth := clip.Z() / clip.W()
				assert.GreaterOrEqual(t, depth, float32(0.0), "face %d distance %v", i, d)
				assert.LessOrEqual(t, depth, float32(1.0), "face %d distance %v", i, d)
			}
		}
	}
}

func TestShadowMatrixDepthOrdering(t *testing.T) {
	pos := mgl32.Vec3{0, 250, 0}
	matrices := ShadowMatrices(pos)

	// The +Y face is layer 2 with up (0, 0, 1). A point further along +Y
	// must project to a greater depth.
	face := ShadowFaces[2]
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, face.Direction)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, face.Up)

	nearPoint := pos.Add(face.Direction.Mul(100)).Vec4(1)
	farPoint := pos.Add(face.Direction.Mul(200)).Vec4(1)

	nearClip := matrices[2].Mul4x1(nearPoint)
	farClip := matrices[2].Mul4x1(farPoint)
	assert.Less(t, nearClip.Z()/nearClip.W(), farClip.Z()/farClip.W())
}

func TestLightAnimation(t *testing.T) {
	l := NewLight()

	l.Animate(0)
	assert.Equal(t, mgl32.Vec3{0, 250, 0}, l.Position())

	color := l.Color()
	assert.InDelta(t, 0.0, color[0], tol)
	assert.InDelta(t, 0.0, color[1], tol)
	assert.InDelta(t, 0.0, color[2], tol)
	assert.InDelta(t, DefaultIntensity, color[3], tol)

	// Deterministic in elapsed time: same input, same state.
	l.Animate(12.34)
	first := l.Position()
	l.Animate(56.0)
	l.Animate(12.34)
	assert.Equal(t, first, l.Position())

	// Position stays inside the animation envelope.
	for _, elapsed := range []float32{0.5, 3.0, 17.2, 100.0} {
		l.Animate(elapsed)
		pos := l.Position()
		assert.LessOrEqual(t, abs(pos.X()), float32(500.0))
		assert.GreaterOrEqual(t, pos.Y(), float32(50.0))
		assert.LessOrEqual(t, pos.Y(), float32(450.0))
		assert.LessOrEqual(t, abs(pos.Z()), float32(100.0))
	}
}

func TestLightAnimationDisabled(t *testing.T) {
	l := NewLight(
		WithAnimated(false),
		WithLightPosition(mgl32.Vec3{1, 2, 3}),
		WithLightColor(0.5, 0.25, 0.125),
	)

	l.Animate(42)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())
	assert.Equal(t, [4]float32{0.5, 0.25, 0.125, DefaultIntensity}, l.Color())
}

func TestGPULightUniformLayout(t *testing.T) {
	var uniform GPULightUniform
	require.Equal(t, 432, uniform.Size())

	l := NewLight(WithAnimated(false), WithLightPosition(mgl32.Vec3{10, 20, 30}))
	uniform.Update(l)
	uniform.ActiveMatrix = 3

	assert.Equal(t, [3]float32{10, 20, 30}, uniform.Position)
	assert.Equal(t, [16]float32(ShadowMatrices(mgl32.Vec3{10, 20, 30})[0]), uniform.Matrices[0])

	buf := uniform.Marshal()
	require.Len(t, buf, 432)
	assert.Equal(t, []byte{0x00, 0x00, 0x20, 0x41}, buf[0:4], "position.x = 10.0")
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00}, buf[416:420], "active matrix index")
}

func TestGPUGlobalUniformsLayout(t *testing.T) {
	uniform := GPUGlobalUniforms{
		Time:             1.0,
		LightMatrixIndex: 5,
		UseShadowmaps:    1,
	}
	require.Equal(t, 16, uniform.Size())

	buf := uniform.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf[0:4])
	assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, buf[4:8])
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, buf[8:12])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf[12:16])
}
