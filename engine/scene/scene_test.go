package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/light"
	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer"
)

// fakeRenderer satisfies renderer.Renderer for lifecycle tests that never
// reach the GPU. Any method call panics through the nil embedded interface,
// which is exactly what these tests assert never happens.
type fakeRenderer struct {
	renderer.Renderer
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	return NewScene("test", camera.NewCamera(), &fakeRenderer{}, options...)
}

func TestSceneStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "rendering", StateRendering.String())
	assert.Equal(t, "disposed", StateDisposed.String())
	assert.Equal(t, "unknown(42)", SceneState(42).String())
}

func TestNewSceneDefaults(t *testing.T) {
	s := newTestScene(t)

	assert.Equal(t, "test", s.Name())
	assert.Equal(t, StateUninitialized, s.State())
	assert.True(t, s.FogEnabled())
	assert.True(t, s.LightDebugEnabled())
	require.NotNil(t, s.Light())
	assert.True(t, s.Light().Animated())
	assert.Empty(t, s.Models())
}

func TestNewScenePanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() {
		NewScene("test", nil, &fakeRenderer{})
	})
	assert.Panics(t, func() {
		NewScene("test", camera.NewCamera(), nil)
	})
}

func TestSceneBuilderOptions(t *testing.T) {
	customLight := light.NewLight(light.WithAnimated(false))
	cube := model.NewCubeModel("cube")

	s := newTestScene(t,
		WithLight(customLight),
		WithModels(cube),
		WithFogEnabled(false),
		WithLightDebugEnabled(false),
	)

	assert.Same(t, customLight, s.Light())
	assert.False(t, s.FogEnabled())
	assert.False(t, s.LightDebugEnabled())
	require.Len(t, s.Models(), 1)
	assert.Equal(t, "cube", s.Models()[0].Name())
}

func TestSceneTogglesRoundTrip(t *testing.T) {
	s := newTestScene(t)

	s.SetFogEnabled(false)
	assert.False(t, s.FogEnabled())
	s.SetFogEnabled(true)
	assert.True(t, s.FogEnabled())

	s.SetLightDebugEnabled(false)
	assert.False(t, s.LightDebugEnabled())

	s.SetName("renamed")
	assert.Equal(t, "renamed", s.Name())
}

func TestAddModelRejectsNil(t *testing.T) {
	s := newTestScene(t)
	assert.Error(t, s.AddModel(nil))
}

func TestAddModelBeforeInitDefersUpload(t *testing.T) {
	s := newTestScene(t)

	// No renderer calls happen before Init, so the fake renderer is safe.
	require.NoError(t, s.AddModel(model.NewCubeModel("cube")))
	assert.Len(t, s.Models(), 1)
	assert.Equal(t, StateUninitialized, s.State())
}

func TestInitRejectsInvalidSurfaceSize(t *testing.T) {
	s := newTestScene(t)

	assert.Error(t, s.Init(0, 600))
	assert.Error(t, s.Init(800, 0))
	assert.Error(t, s.Init(-1, -1))
	assert.Equal(t, StateUninitialized, s.State())
}

func TestRenderBeforeInitFails(t *testing.T) {
	s := newTestScene(t)

	err := s.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uninitialized")
}

func TestUpdateBeforeInitIsNoop(t *testing.T) {
	s := newTestScene(t)
	assert.NotPanics(t, func() {
		s.Update(0.016, 1.0)
	})
}

func TestResizeBeforeInitIsNoop(t *testing.T) {
	s := newTestScene(t)
	assert.NoError(t, s.Resize(1024, 768))
}

func TestReleaseTransitionsToDisposed(t *testing.T) {
	s := newTestScene(t)

	s.Release()
	assert.Equal(t, StateDisposed, s.State())

	// Release is idempotent and Init after Release fails.
	assert.NotPanics(t, s.Release)
	assert.Error(t, s.Init(800, 600))

	err := s.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disposed")
}

func TestWithFogVolumeOverridesBounds(t *testing.T) {
	position := mgl32.Vec3{10, 20, 30}
	scale := mgl32.Vec3{100, 50, 200}

	s := newTestScene(t, WithFogVolume(position, scale))
	impl, ok := s.(*scene)
	require.True(t, ok)
	assert.Equal(t, position, impl.fogInstance.Position)
	assert.Equal(t, scale, impl.fogInstance.Scale)
}

func TestShadowPipelineBiasMatchesLightConstants(t *testing.T) {
	shadow, _, _, _ := buildPipelines()

	assert.Equal(t, light.ShadowDepthBias, shadow.DepthBias())
	assert.InDelta(t, float64(light.ShadowDepthBiasSlopeScale), float64(shadow.DepthBiasSlopeScale()), 1e-6)
	assert.False(t, shadow.ColorTargetEnabled())
}
