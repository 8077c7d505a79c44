package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// maxDepthTargetDimension caps depth target dimensions to the WebGPU spec
// default limit for 2D textures.
const maxDepthTargetDimension = 8192

// depthTarget is the implementation of the DepthTarget interface.
type depthTarget struct {
	device *wgpu.Device
	label  string
	layers int

	width  uint32
	height uint32

	texture   *wgpu.Texture
	view      *wgpu.TextureView
	faceViews []*wgpu.TextureView
}

// DepthTarget wraps a Depth32Float texture used both as a render attachment and
// for sampling in later passes. Layered targets (the shadow cube) expose one
// render view per layer plus a 2D-array sampling view; single-layer targets
// (the geometry depth buffer) expose one view used for both and can be resized.
type DepthTarget interface {
	// View returns the sampling view: a 2D-array view for layered targets, or
	// the plain 2D view for single-layer targets.
	//
	// Returns:
	//   - *wgpu.TextureView: the view to bind for texture sampling
	View() *wgpu.TextureView

	// FaceView returns the render attachment view for the given layer.
	// Single-layer targets only have layer 0.
	//
	// Parameters:
	//   - layer: the array layer index
	//
	// Returns:
	//   - *wgpu.TextureView: the 2D view for that layer, or nil if out of range
	FaceView(layer int) *wgpu.TextureView

	// Layers returns the number of array layers in the target.
	//
	// Returns:
	//   - int: the layer count
	Layers() int

	// Width returns the current width of the target in texels.
	//
	// Returns:
	//   - uint32: the width in texels
	Width() uint32

	// Height returns the current height of the target in texels.
	//
	// Returns:
	//   - uint32: the height in texels
	Height() uint32

	// Resize recreates the texture and views at a new size. Only valid for
	// single-layer targets; layered targets are fixed-size.
	//
	// Parameters:
	//   - width: the new width in texels
	//   - height: the new height in texels
	//
	// Returns:
	//   - error: an error if the target is layered or the size is invalid
	Resize(width, height int) error

	// Release releases the texture and all views.
	Release()
}

var _ DepthTarget = &depthTarget{}

// newDepthTarget creates a Depth32Float texture with the given layer count,
// per-layer render views, and a sampling view. Zero or over-limit dimensions
// are rejected: a depth target the passes cannot render into is unusable.
func newDepthTarget(device *wgpu.Device, label string, width, height, layers int) (*depthTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth target %q has invalid size %dx%d", label, width, height)
	}
	if width > maxDepthTargetDimension || height > maxDepthTargetDimension {
		return nil, fmt.Errorf("depth target %q size %dx%d exceeds the maximum dimension %d", label, width, height, maxDepthTargetDimension)
	}
	if layers < 1 {
		return nil, fmt.Errorf("depth target %q has invalid layer count %d", label, layers)
	}

	d := &depthTarget{
		device: device,
		label:  label,
		layers: layers,
	}
	if err := d.create(width, height); err != nil {
		return nil, err
	}
	return d, nil
}

// create allocates the texture and views at the given size, replacing any
// previously held resources.
func (d *depthTarget) create(width, height int) error {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: d.label + " Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: uint32(d.layers),
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth target %q: %w", d.label, err)
	}

	faceViews := make([]*wgpu.TextureView, d.layers)
	for layer := range d.layers {
		view, viewErr := tex.CreateView(&wgpu.TextureViewDescriptor{
			Label:           fmt.Sprintf("%s Layer %d View", d.label, layer),
			Format:          wgpu.TextureFormatDepth32Float,
			Dimension:       wgpu.TextureViewDimension2D,
			BaseMipLevel:    0,
			MipLevelCount:   1,
			BaseArrayLayer:  uint32(layer),
			ArrayLayerCount: 1,
			Aspect:          wgpu.TextureAspectDepthOnly,
		})
		if viewErr != nil {
			tex.Release()
			return fmt.Errorf("failed to create depth target %q layer %d view: %w", d.label, layer, viewErr)
		}
		faceViews[layer] = view
	}

	var view *wgpu.TextureView
	if d.layers > 1 {
		view, err = tex.CreateView(&wgpu.TextureViewDescriptor{
			Label:           d.label + " Array View",
			Format:          wgpu.TextureFormatDepth32Float,
			Dimension:       wgpu.TextureViewDimension2DArray,
			BaseMipLevel:    0,
			MipLevelCount:   1,
			BaseArrayLayer:  0,
			ArrayLayerCount: uint32(d.layers),
			Aspect:          wgpu.TextureAspectDepthOnly,
		})
		if err != nil {
			tex.Release()
			return fmt.Errorf("failed to create depth target %q array view: %w", d.label, err)
		}
	} else {
		view = faceViews[0]
	}

	d.Release()
	d.texture = tex
	d.view = view
	d.faceViews = faceViews
	d.width = uint32(width)
	d.height = uint32(height)

	return nil
}

func (d *depthTarget) View() *wgpu.TextureView {
	return d.view
}

func (d *depthTarget) FaceView(layer int) *wgpu.TextureView {
	if layer < 0 || layer >= len(d.faceViews) {
		return nil
	}
	return d.faceViews[layer]
}

func (d *depthTarget) Layers() int {
	return d.layers
}

func (d *depthTarget) Width() uint32 {
	return d.width
}

func (d *depthTarget) Height() uint32 {
	return d.height
}

func (d *depthTarget) Resize(width, height int) error {
	if d.layers > 1 {
		return fmt.Errorf("depth target %q is layered and cannot be resized", d.label)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("depth target %q has invalid size %dx%d", d.label, width, height)
	}
	if width > maxDepthTargetDimension || height > maxDepthTargetDimension {
		return fmt.Errorf("depth target %q size %dx%d exceeds the maximum dimension %d", d.label, width, height, maxDepthTargetDimension)
	}
	if uint32(width) == d.width && uint32(height) == d.height {
		return nil
	}
	return d.create(width, height)
}

func (d *depthTarget) Release() {
	if d.view != nil && d.layers > 1 {
		d.view.Release()
	}
	for _, v := range d.faceViews {
		if v != nil {
			v.Release()
		}
	}
	if d.texture != nil {
		d.texture.Release()
	}
	d.view = nil
	d.faceViews = nil
	d.texture = nil
}
