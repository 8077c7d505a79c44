package scene

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/light"
	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer"
	"github.com/nullprop/wgpu-renderer/engine/renderer/bind_group_provider"
	"github.com/nullprop/wgpu-renderer/engine/renderer/pipeline"
	"github.com/nullprop/wgpu-renderer/engine/shader"
)

// SceneState tracks the lifecycle of a Scene's GPU resources.
type SceneState int

const (
	// StateUninitialized is the state before Init has created GPU resources.
	StateUninitialized SceneState = iota
	// StateReady is the state after Init, between frames.
	StateReady
	// StateRendering is the state while Render is producing a frame.
	StateRendering
	// StateDisposed is the terminal state after Release.
	StateDisposed
)

// String returns a human-readable name for the state.
//
// Returns:
//   - string: the state name
func (s SceneState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRendering:
		return "rendering"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Scene owns the per-frame rendering of a set of models lit by a single
// animated point light. Each frame runs up to four passes in order: six
// depth-only shadow passes (one per shadow map face), a lit geometry pass,
// a light debug pass sharing the geometry pass target, and a screen-space
// fog pass that ray-marches the scene depth against the shadow map.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// State returns the scene's lifecycle state.
	State() SceneState

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Light returns the scene's point light.
	Light() light.Light

	// Models returns the models registered for rendering.
	//
	// Returns:
	//   - []model.Model: a copy of the registered model list
	Models() []model.Model

	// AddModel registers a model for rendering. The model's mesh buffers and
	// material bind groups must already be uploaded (the Loader does this).
	// When called after Init the scene creates the model's instance buffer
	// immediately; before Init the upload is deferred until Init runs.
	//
	// Parameters:
	//   - mdl: the model to register (must not be nil)
	//
	// Returns:
	//   - error: an error if the instance buffer could not be created, otherwise nil
	AddModel(mdl model.Model) error

	// FogEnabled returns whether the fog pass runs each frame.
	FogEnabled() bool

	// SetFogEnabled toggles the fog pass. The pass also requires shadow map
	// support from the renderer; on constrained backends it is skipped
	// regardless of this flag.
	SetFogEnabled(enabled bool)

	// LightDebugEnabled returns whether the light debug pass runs each frame.
	LightDebugEnabled() bool

	// SetLightDebugEnabled toggles the light debug pass, which draws a small
	// cube at the light's position.
	SetLightDebugEnabled(enabled bool)

	// CullingDisabled returns whether frustum culling is bypassed in the
	// geometry pass.
	CullingDisabled() bool

	// SetCullingDisabled sets whether frustum culling is bypassed in the
	// geometry pass. Shadow passes never cull; every model casts shadows
	// regardless of camera visibility.
	SetCullingDisabled(disabled bool)

	// Init creates all GPU resources: the four render pipelines, the shadow
	// and geometry depth targets, the shared bind groups, the fog volume
	// mesh, and an instance buffer per registered model. Must be called
	// exactly once before Update or Render.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created, otherwise nil
	Init(width, height int) error

	// Update advances the camera and light and stages this frame's camera,
	// light, and global uniform writes. Call once per frame before Render.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - elapsed: seconds since startup
	Update(deltaTime, elapsed float32)

	// Render produces one frame: shadow passes (when supported), the geometry
	// pass, the light debug pass, the fog pass, and finally presents the
	// surface. Surface errors are returned wrapped in the renderer's surface
	// error sentinels so callers can distinguish a lost or outdated surface
	// from a fatal failure.
	//
	// Returns:
	//   - error: an error if a pass could not start or a draw failed, otherwise nil
	Render() error

	// Resize reconfigures the surface, resizes the geometry depth target,
	// rebuilds the bind group that samples it, and updates the camera aspect
	// ratio. A zero dimension (minimized window) is a no-op.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	//
	// Returns:
	//   - error: an error if the depth target or bind group could not be rebuilt, otherwise nil
	Resize(width, height int) error

	// Release frees the scene's GPU resources: instance buffers, depth
	// targets, shared bind groups, and the fog volume mesh. Registered
	// models are not released; their owner (the Loader) retains them.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name  string
	state SceneState

	cam        camera.Camera
	r          renderer.Renderer
	pointLight light.Light

	models          []model.Model
	instanceBuffers map[model.Model]*wgpu.Buffer

	// fogVolume is a unit cube scaled to the fog bounds. Its mesh doubles as
	// the light debug cube, which ignores the instance transform entirely.
	fogVolume         model.Model
	fogInstance       model.Instance
	fogInstanceBuffer *wgpu.Buffer
	fogEnabled        bool
	lightDebugEnabled bool
	cullingDisabled   bool

	width  int
	height int

	shadowTarget   renderer.DepthTarget
	geometryTarget renderer.DepthTarget

	globalBGP        bind_group_provider.BindGroupProvider
	lightDepthBGP    bind_group_provider.BindGroupProvider
	geometryDepthBGP bind_group_provider.BindGroupProvider

	cameraUniform  camera.GPUCameraUniform
	lightUniform   light.GPULightUniform
	globalUniforms light.GPUGlobalUniforms

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil. The scene starts with an
// animated point light, fog and light debug enabled, and a fog volume
// covering the default scene bounds; use the builder options to override.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		state:              StateUninitialized,
		cam:                cam,
		r:                  r,
		pointLight:         light.NewLight(light.WithAnimated(true)),
		instanceBuffers:    make(map[model.Model]*wgpu.Buffer),
		fogEnabled:         true,
		lightDebugEnabled:  true,
		fogInstance:        model.NewInstance(defaultFogPosition, defaultFogScale),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) State() SceneState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointLight
}

func (s *scene) Models() []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]model.Model, len(s.models))
	copy(cp, s.models)
	return cp
}

func (s *scene) AddModel(mdl model.Model) error {
	if mdl == nil {
		return fmt.Errorf("scene %q: cannot add nil model", s.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.models = append(s.models, mdl)
	if s.state == StateUninitialized || s.state == StateDisposed {
		return nil
	}
	return s.createInstanceBuffer(mdl)
}

func (s *scene) FogEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fogEnabled
}

func (s *scene) SetFogEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fogEnabled = enabled
}

func (s *scene) LightDebugEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightDebugEnabled
}

func (s *scene) SetLightDebugEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightDebugEnabled = enabled
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Init(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return fmt.Errorf("scene %q: Init called in state %s", s.name, s.state)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("scene %q: invalid surface size %dx%d", s.name, width, height)
	}
	s.width = width
	s.height = height

	if err := s.registerPipelines(); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	shadowTarget, err := s.r.CreateDepthTarget("Shadow Depth", light.ShadowMapResolution, light.ShadowMapResolution, light.ShadowMapLayers)
	if err != nil {
		return fmt.Errorf("scene %q: failed to create shadow depth target: %w", s.name, err)
	}
	s.shadowTarget = shadowTarget

	geometryTarget, err := s.r.CreateDepthTarget("Geometry Depth", width, height, 1)
	if err != nil {
		return fmt.Errorf("scene %q: failed to create geometry depth target: %w", s.name, err)
	}
	s.geometryTarget = geometryTarget

	// Global uniforms: camera, light, and frame globals. InitBindGroup
	// creates the three uniform buffers from the layout's binding sizes.
	s.globalBGP = bind_group_provider.NewBindGroupProvider(
		"global_uniforms",
		bind_group_provider.WithLayoutEntries(shader.GlobalBindGroupLayoutEntries()...),
	)
	if err := s.r.InitBindGroup(s.globalBGP); err != nil {
		return fmt.Errorf("scene %q: failed to init global bind group: %w", s.name, err)
	}

	// Shadow map sampling: the full depth array view plus a comparison sampler.
	s.lightDepthBGP = bind_group_provider.NewBindGroupProvider(
		"light_depth",
		bind_group_provider.WithLayoutEntries(shader.LightDepthBindGroupLayoutEntries()...),
	)
	s.lightDepthBGP.SetTextureView(shader.BindingDepthTexture, s.shadowTarget.View())
	if err := s.r.InitSampler(s.lightDepthBGP, shader.BindingDepthSampler, shadowSamplerData()); err != nil {
		return fmt.Errorf("scene %q: failed to init shadow comparison sampler: %w", s.name, err)
	}
	if err := s.r.InitBindGroup(s.lightDepthBGP); err != nil {
		return fmt.Errorf("scene %q: failed to init light depth bind group: %w", s.name, err)
	}

	if err := s.initGeometryDepthBindGroup(); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	if err := s.initFogVolume(); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	for _, mdl := range s.models {
		if err := s.createInstanceBuffer(mdl); err != nil {
			return fmt.Errorf("scene %q: %w", s.name, err)
		}
	}

	s.state = StateReady
	return nil
}

func (s *scene) Update(deltaTime, elapsed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady && s.state != StateRendering {
		return
	}

	s.cam.Update(deltaTime)
	if s.pointLight.Animated() {
		s.pointLight.Animate(elapsed)
	}

	s.cameraUniform.Update(s.cam, uint32(s.width), uint32(s.height))
	s.lightUniform.Update(s.pointLight)
	s.globalUniforms.Time = elapsed
	s.globalUniforms.LightMatrixIndex = 0
	if s.r.SupportsShadowMaps() {
		s.globalUniforms.UseShadowmaps = 1
	} else {
		s.globalUniforms.UseShadowmaps = 0
	}

	s.writePool = s.writePool[:0]
	s.writePool = append(s.writePool,
		bind_group_provider.BufferWrite{
			Provider: s.globalBGP,
			Binding:  shader.BindingCameraUniform,
			Data:     s.cameraUniform.Marshal(),
		},
		bind_group_provider.BufferWrite{
			Provider: s.globalBGP,
			Binding:  shader.BindingLightUniform,
			Data:     s.lightUniform.Marshal(),
		},
		bind_group_provider.BufferWrite{
			Provider: s.globalBGP,
			Binding:  shader.BindingGlobalUniforms,
			Data:     s.globalUniforms.Marshal(),
		},
	)
	s.r.WriteBuffers(s.writePool)
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return fmt.Errorf("scene %q: Render called in state %s", s.name, s.state)
	}
	s.state = StateRendering
	defer func() { s.state = StateReady }()

	if s.r.SupportsShadowMaps() {
		if err := s.renderShadowPasses(); err != nil {
			return err
		}
	}

	if err := s.r.BeginFrame(s.geometryTarget.View()); err != nil {
		return err
	}
	if err := s.renderGeometryPass(); err != nil {
		return err
	}
	if s.lightDebugEnabled {
		s.r.BeginLightDebugPass()
		if err := s.renderLightDebugPass(); err != nil {
			return err
		}
	}
	s.r.EndFrame()

	if s.fogEnabled && s.r.SupportsShadowMaps() {
		if err := s.r.BeginFogPass(); err != nil {
			return err
		}
		if err := s.renderFogPass(); err != nil {
			return err
		}
		s.r.EndFogPass()
	}

	s.r.Present()
	return nil
}

func (s *scene) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady && s.state != StateRendering {
		return nil
	}
	if width <= 0 || height <= 0 {
		// Minimized window; keep the previous resources until restored.
		return nil
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.width = width
	s.height = height

	s.r.Resize(width, height)
	if err := s.geometryTarget.Resize(width, height); err != nil {
		return fmt.Errorf("scene %q: failed to resize geometry depth target: %w", s.name, err)
	}

	// The depth target recreated its view, so the bind group sampling it
	// must be rebuilt. The old view was released by the target; detach it
	// before releasing the provider to avoid a double release.
	s.geometryDepthBGP.SetTextureView(shader.BindingDepthTexture, nil)
	s.geometryDepthBGP.Release()
	s.geometryDepthBGP = nil
	if err := s.initGeometryDepthBindGroup(); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	s.cam.SetAspect(float32(width) / float32(height))
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisposed {
		return
	}
	s.state = StateDisposed

	for _, buf := range s.instanceBuffers {
		if buf != nil {
			buf.Release()
		}
	}
	s.instanceBuffers = make(map[model.Model]*wgpu.Buffer)

	if s.fogInstanceBuffer != nil {
		s.fogInstanceBuffer.Release()
		s.fogInstanceBuffer = nil
	}
	if s.fogVolume != nil {
		s.fogVolume.Release()
		s.fogVolume = nil
	}

	if s.globalBGP != nil {
		s.globalBGP.Release()
		s.globalBGP = nil
	}
	if s.lightDepthBGP != nil {
		// The depth array view belongs to the shadow target.
		s.lightDepthBGP.SetTextureView(shader.BindingDepthTexture, nil)
		s.lightDepthBGP.Release()
		s.lightDepthBGP = nil
	}
	if s.geometryDepthBGP != nil {
		s.geometryDepthBGP.SetTextureView(shader.BindingDepthTexture, nil)
		s.geometryDepthBGP.Release()
		s.geometryDepthBGP = nil
	}

	if s.shadowTarget != nil {
		s.shadowTarget.Release()
		s.shadowTarget = nil
	}
	if s.geometryTarget != nil {
		s.geometryTarget.Release()
		s.geometryTarget = nil
	}
}

// registerPipelines builds and registers the four render pipelines.
func (s *scene) registerPipelines() error {
	shadow, geometry, lightDebug, fog := buildPipelines()
	if err := s.r.RegisterPipelines(shadow, geometry, lightDebug, fog); err != nil {
		return fmt.Errorf("failed to register pipelines: %w", err)
	}
	return nil
}

// buildPipelines constructs the four scene pipelines. The shadow pipeline's
// depth bias comes from the light package alongside the rest of the shadow
// map parameters.
func buildPipelines() (shadow, geometry, lightDebug, fog pipeline.Pipeline) {
	shadow = pipeline.NewPipeline(
		shader.ShadowPipelineKey,
		pipeline.WithVertexShader(shader.NewShadowVertexShader()),
		pipeline.WithDepthOnly(),
		pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
		pipeline.WithDepthBias(light.ShadowDepthBias, light.ShadowDepthBiasSlopeScale),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	geometry = pipeline.NewPipeline(
		shader.GeometryPipelineKey,
		pipeline.WithVertexShader(shader.NewGeometryVertexShader()),
		pipeline.WithFragmentShader(shader.NewGeometryFragmentShader()),
		pipeline.WithBlendEnabled(true),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	lightDebug = pipeline.NewPipeline(
		shader.LightDebugPipelineKey,
		pipeline.WithVertexShader(shader.NewLightDebugVertexShader()),
		pipeline.WithFragmentShader(shader.NewLightDebugFragmentShader()),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	fog = pipeline.NewPipeline(
		shader.FogPipelineKey,
		pipeline.WithVertexShader(shader.NewFogVertexShader()),
		pipeline.WithFragmentShader(shader.NewFogFragmentShader()),
		pipeline.WithBlendEnabled(true),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	return shadow, geometry, lightDebug, fog
}

// initGeometryDepthBindGroup builds the bind group through which the fog pass
// samples the geometry pass depth buffer. Rebuilt on every resize.
func (s *scene) initGeometryDepthBindGroup() error {
	bgp := bind_group_provider.NewBindGroupProvider(
		"geometry_depth",
		bind_group_provider.WithLayoutEntries(shader.GeometryDepthBindGroupLayoutEntries()...),
	)
	bgp.SetTextureView(shader.BindingDepthTexture, s.geometryTarget.View())
	if err := s.r.InitSampler(bgp, shader.BindingDepthSampler, depthSamplerData()); err != nil {
		return fmt.Errorf("failed to init geometry depth sampler: %w", err)
	}
	if err := s.r.InitBindGroup(bgp); err != nil {
		return fmt.Errorf("failed to init geometry depth bind group: %w", err)
	}
	s.geometryDepthBGP = bgp
	return nil
}

// initFogVolume uploads the fog volume cube mesh and its single instance.
func (s *scene) initFogVolume() error {
	s.fogVolume = model.NewCubeModel("fog_volume", s.fogInstance)
	mesh := s.fogVolume.Meshes()[0]
	mesh.Provider = bind_group_provider.NewBindGroupProvider("fog_volume_mesh")
	if err := s.r.InitMeshBuffers(mesh.Provider, mesh.VertexData, mesh.IndexData, mesh.IndexCount); err != nil {
		return fmt.Errorf("failed to init fog volume mesh buffers: %w", err)
	}

	buf, err := s.r.CreateInstanceBuffer("fog_volume_instances", s.fogVolume.InstanceData())
	if err != nil {
		return fmt.Errorf("failed to create fog volume instance buffer: %w", err)
	}
	s.fogInstanceBuffer = buf
	return nil
}

// createInstanceBuffer uploads a model's instance data. Requires lock held.
func (s *scene) createInstanceBuffer(mdl model.Model) error {
	if _, ok := s.instanceBuffers[mdl]; ok {
		return nil
	}
	buf, err := s.r.CreateInstanceBuffer(mdl.Name()+"_instances", mdl.InstanceData())
	if err != nil {
		return fmt.Errorf("failed to create instance buffer for %q: %w", mdl.Name(), err)
	}
	s.instanceBuffers[mdl] = buf
	return nil
}

// renderShadowPasses renders one depth-only pass per shadow map face. Each
// face submits on its own encoder after a queue write of the face index, so
// the write is visible to that face's draws before the next face overwrites it.
func (s *scene) renderShadowPasses() error {
	for face := 0; face < light.ShadowMapLayers; face++ {
		s.globalUniforms.LightMatrixIndex = uint32(face)
		s.writePool = s.writePool[:0]
		s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
			Provider: s.globalBGP,
			Binding:  shader.BindingGlobalUniforms,
			Data:     s.globalUniforms.Marshal(),
		})
		s.r.WriteBuffers(s.writePool)

		if err := s.r.BeginShadowFrame(); err != nil {
			return err
		}
		s.r.BeginShadowPass(s.shadowTarget.FaceView(face))
		for _, mdl := range s.models {
			buf := s.instanceBuffers[mdl]
			s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.globalBGP)
			for _, mesh := range mdl.Meshes() {
				if err := s.r.ShadowDrawCall(shader.ShadowPipelineKey, mesh.Provider, buf, uint32(mdl.InstanceCount()), s.drawBindGroupsPool); err != nil {
					return err
				}
			}
		}
		s.r.EndShadowPass()
		s.r.EndShadowFrame()
	}
	return nil
}

// renderGeometryPass draws every model mesh with its material. Models whose
// instances all fall outside the camera frustum are skipped.
func (s *scene) renderGeometryPass() error {
	viewProj := s.cam.ProjectionMatrix().Mul4(s.cam.ViewMatrix())
	frustum := common.ExtractFrustumFromMatrix(viewProj[:])

	for _, mdl := range s.models {
		if !s.cullingDisabled && !modelVisible(&frustum, mdl) {
			continue
		}
		buf := s.instanceBuffers[mdl]
		mats := mdl.RenderMaterials()
		for _, mesh := range mdl.Meshes() {
			if mesh.MaterialIndex < 0 || mesh.MaterialIndex >= len(mats) {
				continue
			}
			mat := mats[mesh.MaterialIndex]
			s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.globalBGP, s.lightDepthBGP, mat.BindGroupProvider())
			if err := s.r.DrawCall(shader.GeometryPipelineKey, mesh.Provider, buf, uint32(mdl.InstanceCount()), s.drawBindGroupsPool); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderLightDebugPass draws the debug cube. The vertex shader positions it
// at the light, so no instance buffer is bound.
func (s *scene) renderLightDebugPass() error {
	mesh := s.fogVolume.Meshes()[0]
	s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.globalBGP)
	return s.r.DrawCall(shader.LightDebugPipelineKey, mesh.Provider, nil, 1, s.drawBindGroupsPool)
}

// renderFogPass ray-marches fog inside the fog volume against the geometry
// depth buffer and the shadow map.
func (s *scene) renderFogPass() error {
	mesh := s.fogVolume.Meshes()[0]
	s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.globalBGP, s.lightDepthBGP, s.geometryDepthBGP)
	return s.r.DrawCall(shader.FogPipelineKey, mesh.Provider, s.fogInstanceBuffer, 1, s.drawBindGroupsPool)
}

// modelVisible reports whether any of the model's instances has a bounding
// sphere intersecting the frustum. The sphere is the model's bounding radius
// scaled by the instance's largest axis scale, centered at the instance position.
func modelVisible(f *common.Frustum, mdl model.Model) bool {
	radius := mdl.BoundingRadius()
	for _, inst := range mdl.Instances() {
		maxScale := inst.Scale.X()
		if s := inst.Scale.Y(); s > maxScale {
			maxScale = s
		}
		if s := inst.Scale.Z(); s > maxScale {
			maxScale = s
		}
		if f.SphereVisible([3]float32(inst.Position), radius*maxScale) {
			return true
		}
	}
	return false
}

// shadowSamplerData returns the comparison sampler parameters for shadow map
// depth tests.
func shadowSamplerData() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	}
}

// depthSamplerData returns the non-comparison sampler parameters for reading
// the geometry depth buffer in the fog pass.
func depthSamplerData() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// Fog volume defaults covering the sample scene's bounds.
var (
	defaultFogPosition = mgl32.Vec3{0, 30, 0}
	defaultFogScale    = mgl32.Vec3{1360, 30, 600}
)