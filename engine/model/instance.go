package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/nullprop/wgpu-renderer/common"
)

// Instance describes a single placement of a model in the world.
type Instance struct {
	// Position is the world-space translation.
	Position mgl32.Vec3

	// Rotation is the orientation as a quaternion.
	Rotation mgl32.Quat

	// Scale is the scale factor along each axis.
	Scale mgl32.Vec3
}

// NewInstance creates an Instance at the given position with identity rotation
// and the given uniform or per-axis scale.
//
// Parameters:
//   - position: the world-space translation
//   - scale: the scale factor along each axis
//
// Returns:
//   - Instance: the configured instance
func NewInstance(position, scale mgl32.Vec3) Instance {
	return Instance{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    scale,
	}
}

// ModelMatrix computes the model-to-world transform for this instance,
// composed as translation × rotation × scale.
//
// Returns:
//   - mgl32.Mat4: the model-to-world matrix
func (i Instance) ModelMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z())
	scale := mgl32.Scale3D(i.Scale.X(), i.Scale.Y(), i.Scale.Z())
	return translate.Mul4(i.Rotation.Mat4()).Mul4(scale)
}

// ToGPU converts this instance into its GPU-aligned representation, computing
// the model matrix and its inverse-transpose normal matrix.
//
// Returns:
//   - GPUInstance: the GPU-ready instance data
func (i Instance) ToGPU() GPUInstance {
	m := i.ModelMatrix()
	return GPUInstance{
		Model:  [16]float32(m),
		Normal: [9]float32(common.NormalMatrix(m)),
	}
}

// MarshalInstances serializes a slice of instances into a contiguous byte
// buffer suitable for uploading as a per-instance vertex buffer.
//
// Parameters:
//   - instances: the instances to serialize
//
// Returns:
//   - []byte: len(instances) × 100 bytes of GPU instance data
func MarshalInstances(instances []Instance) []byte {
	buf := make([]byte, 0, len(instances)*100)
	for _, inst := range instances {
		gpu := inst.ToGPU()
		buf = append(buf, gpu.Marshal()...)
	}
	return buf
}
