package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer"
	"github.com/nullprop/wgpu-renderer/engine/renderer/bind_group_provider"
	"github.com/nullprop/wgpu-renderer/engine/renderer/material"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	renderer renderer.Renderer

	modelCache map[string]model.Model

	backend loaderBackend

	decodePool worker.DynamicWorkerPool
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format (glTF, GLB, etc.) behind a generic backend and
// manages a cache of previously loaded models. Texture decoding is spread across
// a worker pool; GPU resource creation happens on the calling thread.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	// When a Renderer is configured, mesh buffers and material GPU resources
	// (textures, samplers, uniform, bind group) are created during the load.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns the full model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// InitMaterialGPU initializes GPU resources (fallback textures, samplers,
	// uniform, bind group) for a render material. This is required for
	// procedural/hand-built models that bypass the Load pipeline but need to
	// render with the lit geometry pipeline.
	//
	// Parameters:
	//   - mat: the Material to initialize GPU resources on
	//   - providerName: a unique name for the material's bind group provider
	//
	// Returns:
	//   - error: error if GPU resource creation fails
	InitMaterialGPU(mat material.Material, providerName string) error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		decodePool: worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 256, 1*time.Second),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	imported, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	if imported.Name == "" || imported.Name == "unnamed_model" {
		imported.Name = name
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) InitMaterialGPU(mat material.Material, providerName string) error {
	if l.renderer == nil {
		return fmt.Errorf("loader: cannot InitMaterialGPU without a Renderer")
	}
	staging := l.decodeMaterialTextures(mat)
	return l.initMaterialGPU(mat, providerName, staging)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
}

// importedToModel converts an ImportedModel (CPU data) into a Model (engine-ready).
// Each imported mesh keeps its own vertex/index buffer pair so it can be drawn with
// its own material. When a Renderer is available, mesh buffers are uploaded and
// material GPU resources are created; texture decoding is spread across the worker
// pool before the sequential GPU phase.
//
// Parameters:
//   - imported: the CPU-side ImportedModel containing mesh and material data
//
// Returns:
//   - model.Model: the engine-ready Model with GPU mesh resources
//   - error: error if GPU resource creation fails
func (l *loader) importedToModel(imported *model.ImportedModel) (model.Model, error) {
	meshes := make([]*model.Mesh, 0, len(imported.Meshes))
	var boundingRadius float32

	for i := range imported.Meshes {
		im := &imported.Meshes[i]

		mesh := &model.Mesh{
			Name:          im.Name,
			VertexData:    common.SliceToBytes(im.Vertices),
			IndexData:     common.SliceToBytes(im.Indices),
			IndexCount:    len(im.Indices),
			MaterialIndex: im.MaterialIndex,
			Provider: bind_group_provider.NewBindGroupProvider(
				fmt.Sprintf("%s_mesh_%d", imported.Name, i),
			),
		}

		if l.renderer != nil {
			if err := l.renderer.InitMeshBuffers(mesh.Provider, mesh.VertexData, mesh.IndexData, mesh.IndexCount); err != nil {
				return nil, fmt.Errorf("failed to init mesh buffers for %q mesh %d: %w", imported.Name, i, err)
			}
		}

		if r := model.ComputeBoundingRadius(im.Vertices); r > boundingRadius {
			boundingRadius = r
		}

		meshes = append(meshes, mesh)
	}

	// Convert imported materials into render-ready Materials with GPU resources.
	renderMats := make([]material.Material, len(imported.Materials))
	for i, imp := range imported.Materials {
		renderMats[i] = material.NewMaterial(
			material.WithName(imp.Name),
			material.WithBaseColor(imp.BaseColor),
			material.WithMetallic(imp.Metallic),
			material.WithRoughness(imp.Roughness),
			material.WithDiffuseTexture(imp.DiffuseTexture),
			material.WithNormalTexture(imp.NormalTexture),
			material.WithMetallicRoughnessTexture(imp.MetallicRoughnessTexture),
			material.WithTransparent(imp.Transparent),
		)
	}

	// Decode all material textures in parallel, then create GPU resources on
	// the calling thread.
	if l.renderer != nil {
		stagings := make([]map[int]decodedTexture, len(renderMats))
		var wg sync.WaitGroup
		for i := range renderMats {
			wg.Add(1)
			idx := i
			l.decodePool.SubmitTask(worker.Task{
				ID: idx,
				Do: func() (any, error) {
					defer wg.Done()
					stagings[idx] = l.decodeMaterialTextures(renderMats[idx])
					return nil, nil
				},
			})
		}
		wg.Wait()

		for i, mat := range renderMats {
			providerName := fmt.Sprintf("%s_material_%d", imported.Name, i)
			if err := l.initMaterialGPU(mat, providerName, stagings[i]); err != nil {
				return nil, fmt.Errorf("failed to init material GPU resources for %q material %d: %w", imported.Name, i, err)
			}
		}
	}

	return model.NewModel(
		model.WithName(imported.Name),
		model.WithMeshes(meshes...),
		model.WithImportedMaterials(imported.Materials),
		model.WithRenderMaterials(renderMats...),
		model.WithBoundingRadius(boundingRadius),
	), nil
}

// decodedTexture pairs decoded RGBA pixel data with the sampler parameters
// carried by the source texture.
type decodedTexture struct {
	staging common.TextureStagingData
	sampler *common.SamplerStagingData
}

// decodeMaterialTextures decodes whichever of the material's textures are present,
// keyed by their texture binding index. Textures that fail to decode are skipped
// and fall back to 1×1 placeholders during GPU init.
func (l *loader) decodeMaterialTextures(mat material.Material) map[int]decodedTexture {
	result := make(map[int]decodedTexture, 3)

	decode := func(binding int, tex *common.ImportedTexture) {
		if tex == nil {
			return
		}
		pixels, width, height, err := tex.Decode()
		if err != nil {
			return
		}
		result[binding] = decodedTexture{
			staging: common.TextureStagingData{Pixels: pixels, Width: width, Height: height},
			sampler: tex.SamplerData,
		}
	}

	decode(material.BindingDiffuseTexture, mat.DiffuseTexture())
	decode(material.BindingNormalTexture, mat.NormalTexture())
	decode(material.BindingMetallicRoughnessTexture, mat.MetallicRoughnessTexture())

	return result
}

// initMaterialGPU creates GPU resources (textures, samplers, uniform, bind group)
// for a single Material using the fixed material bind group layout. Missing
// textures get 1×1 fallback placeholders so the bind group is always complete.
//
// Parameters:
//   - mat: the Material to initialize GPU resources on
//   - providerName: a unique name for the material's bind group provider
//   - staging: decoded texture data keyed by texture binding index
//
// Returns:
//   - error: error if GPU resource creation fails
func (l *loader) initMaterialGPU(mat material.Material, providerName string, staging map[int]decodedTexture) error {
	provider := bind_group_provider.NewBindGroupProvider(
		providerName,
		bind_group_provider.WithLayoutEntries(material.BindGroupLayoutEntries()...),
	)

	for _, texBinding := range []int{material.BindingDiffuseTexture, material.BindingNormalTexture, material.BindingMetallicRoughnessTexture} {
		decoded, ok := staging[texBinding]
		if !ok {
			decoded = decodedTexture{staging: fallbackTexture(texBinding)}
		}

		if err := l.renderer.InitTextureView(provider, texBinding, decoded.staging); err != nil {
			return fmt.Errorf("failed to init texture view at binding %d: %w", texBinding, err)
		}

		samplerData := defaultSamplerData()
		if decoded.sampler != nil {
			samplerData = *decoded.sampler
		}
		if err := l.renderer.InitSampler(provider, texBinding+1, samplerData); err != nil {
			return fmt.Errorf("failed to init sampler at binding %d: %w", texBinding+1, err)
		}
	}

	uniform := mat.Uniform()
	if err := l.renderer.InitUniformBuffer(provider, material.BindingMaterialUniform, uniform.Marshal()); err != nil {
		return fmt.Errorf("failed to init material uniform: %w", err)
	}

	if err := l.renderer.InitBindGroup(provider); err != nil {
		return fmt.Errorf("failed to init material bind group: %w", err)
	}

	mat.SetBindGroupProvider(provider)
	return nil
}

// fallbackTexture returns a 1×1 placeholder for a missing texture binding.
func fallbackTexture(binding int) common.TextureStagingData {
	var pixel [4]byte
	switch binding {
	case material.BindingNormalTexture:
		// Flat tangent-space normal pointing straight up: (0.5, 0.5, 1.0)
		pixel = [4]byte{128, 128, 255, 255}
	case material.BindingMetallicRoughnessTexture:
		// glTF packing: G=roughness(1.0=fully rough), B=metallic(0=dielectric)
		pixel = [4]byte{0, 255, 0, 255}
	default:
		// White 1×1 texture (no-op multiply)
		pixel = [4]byte{255, 255, 255, 255}
	}
	return common.TextureStagingData{Pixels: pixel[:], Width: 1, Height: 1}
}

// defaultSamplerData returns linear/repeat sampler parameters matching the glTF defaults.
func defaultSamplerData() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}
