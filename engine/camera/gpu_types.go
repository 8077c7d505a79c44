package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (224 bytes, std140 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 224 bytes.
type GPUCameraUniform struct {
	View        [16]float32 // offset   0: view matrix (mat4x4<f32>)
	Proj        [16]float32 // offset  64: projection matrix (mat4x4<f32>)
	InvViewProj [16]float32 // offset 128: inverse of proj*view, used for world position reconstruction (mat4x4<f32>)
	Position    [4]float32  // offset 192: homogeneous camera position (vec4<f32>)
	Planes      [4]float32  // offset 208: near, far, viewport width, viewport height (vec4<f32>)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Proj[i]))
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.InvViewProj[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[208+i*4:], math.Float32bits(g.Planes[i]))
	}
	return buf
}

// Update refreshes the uniform snapshot from the camera and the current
// viewport dimensions. The inverse view-projection is recomputed so the fog
// pass can reconstruct world positions from screen coordinates.
//
// Parameters:
//   - cam: the camera to snapshot
//   - width: viewport width in pixels
//   - height: viewport height in pixels
func (g *GPUCameraUniform) Update(cam Camera, width, height uint32) {
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	g.View = [16]float32(view)
	g.Proj = [16]float32(proj)
	g.InvViewProj = [16]float32(invertViewProj(proj.Mul4(view)))

	pos := cam.Position()
	g.Position = [4]float32{pos.X(), pos.Y(), pos.Z(), 1.0}
	g.Planes = [4]float32{cam.Near(), cam.Far(), float32(width), float32(height)}
}

// invertViewProj inverts the view-projection matrix at double precision. The
// far-plane terms cost a float32 inversion several decimal digits, which
// shows up as swimming in world positions reconstructed from screen space.
func invertViewProj(m mgl32.Mat4) mgl32.Mat4 {
	var m64 mgl64.Mat4
	for i, v := range m {
		m64[i] = float64(v)
	}
	inv := m64.Inv()

	var out mgl32.Mat4
	for i, v := range inv {
		out[i] = float32(v)
	}
	return out
}
