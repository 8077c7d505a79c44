package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a right-handed perspective projection matrix whose depth
// output maps to the WebGPU clip-space range [0, 1]. mgl32.Perspective targets
// the OpenGL [-1, 1] convention and cannot be used for WebGPU pipelines.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookTo creates a view matrix for a camera positioned at eye and facing the
// direction dir. The resulting matrix transforms world coordinates into view
// space.
//
// Parameters:
//   - eye: camera position in world space
//   - dir: unit direction the camera faces
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: column-major view matrix
func LookTo(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(dir), up)
}

// NormalMatrix derives the 3x3 normal transform from a model matrix by taking
// the inverse transpose of its upper-left 3x3 block. Correct for models with
// non-uniform scale.
//
// Parameters:
//   - model: the model (world) matrix
//
// Returns:
//   - mgl32.Mat3: the normal matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}
