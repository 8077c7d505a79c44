package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("default"))

	assert.Equal(t, "default", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(0), m.Metallic())
	assert.Equal(t, float32(1), m.Roughness())
	assert.False(t, m.Transparent())
	assert.Nil(t, m.DiffuseTexture())
}

func TestMaterialUniform(t *testing.T) {
	m := NewMaterial(
		WithMetallic(0.5),
		WithRoughness(0.25),
		WithTransparent(true),
	)

	assert.True(t, m.Transparent())

	u := m.Uniform()
	require.Equal(t, 16, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[8:12]))
}
