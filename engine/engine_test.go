package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresWindow(t *testing.T) {
	e := NewEngine()

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window")
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine()

	assert.Nil(t, e.Window())
	assert.Nil(t, e.Scene())
}
