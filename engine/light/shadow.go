package light

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/camera"
)

// ShadowMapResolution is the width and height in texels of each face of the
// shadow cube map. Fixed at startup and independent of the window size.
const ShadowMapResolution = 2048

// ShadowMapLayers is the number of depth layers in the shadow cube map, one
// per axis-aligned face direction.
const ShadowMapLayers = 6

// Depth bias applied to shadow-casting pipelines to reduce shadow acne with
// bilinear comparison sampling.
const (
	ShadowDepthBias           int32   = 2
	ShadowDepthBiasSlopeScale float32 = 2.0
)

// FaceBasis is one cube-face orientation: the direction the face looks along
// and the up vector used to build its view matrix. The same convention is
// hardcoded in the shader's face selection, so the two must never diverge.
type FaceBasis struct {
	Direction mgl32.Vec3
	Up        mgl32.Vec3
}

// ShadowFaces is the ordered cube-face basis table, indexed by shadow map
// layer: +X, -X, +Y, -Y, +Z, -Z.
var ShadowFaces = [ShadowMapLayers]FaceBasis{
	{Direction: mgl32.Vec3{1, 0, 0}, Up: mgl32.Vec3{0, -1, 0}},
	{Direction: mgl32.Vec3{-1, 0, 0}, Up: mgl32.Vec3{0, -1, 0}},
	{Direction: mgl32.Vec3{0, 1, 0}, Up: mgl32.Vec3{0, 0, 1}},
	{Direction: mgl32.Vec3{0, -1, 0}, Up: mgl32.Vec3{0, 0, -1}},
	{Direction: mgl32.Vec3{0, 0, 1}, Up: mgl32.Vec3{0, -1, 0}},
	{Direction: mgl32.Vec3{0, 0, -1}, Up: mgl32.Vec3{0, -1, 0}},
}

// ShadowMatrices computes the six cube-face view-projection matrices for a
// point light at the given position. Each face uses a 90 degree square
// frustum so the six faces tile the full sphere with no gaps or overlap, and
// the near/far planes match the main camera so both depth ranges cover the
// same world-space extents. Pure function of the position; recomputed every
// tick while the light moves.
//
// Parameters:
//   - position: the light's world-space position
//
// Returns:
//   - [6]mgl32.Mat4: one view-projection matrix per cube face, in ShadowFaces order
func ShadowMatrices(position mgl32.Vec3) [ShadowMapLayers]mgl32.Mat4 {
	proj := common.Perspective(mgl32.DegToRad(90), 1.0, camera.NearPlane, camera.FarPlane)

	var matrices [ShadowMapLayers]mgl32.Mat4
	for i, face := range ShadowFaces {
		matrices[i] = proj.Mul4(common.LookTo(position, face.Direction, face.Up))
	}
	return matrices
}
