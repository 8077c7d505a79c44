package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySurfaceError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"lost", "Surface image Lost", ErrSurfaceLost},
		{"outdated", "surface is Outdated, must be reconfigured", ErrSurfaceOutdated},
		{"timeout", "acquire timed out", ErrSurfaceTimeout},
		{"out of memory", "OutOfMemory", ErrSurfaceOutOfMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifySurfaceError(errors.New(tt.raw))
			assert.ErrorIs(t, classified, tt.want)
		})
	}
}

func TestClassifySurfaceErrorPassthrough(t *testing.T) {
	raw := errors.New("validation error")
	classified := classifySurfaceError(raw)

	assert.NotErrorIs(t, classified, ErrSurfaceLost)
	assert.NotErrorIs(t, classified, ErrSurfaceOutdated)
	assert.ErrorContains(t, classified, "validation error")
	assert.NoError(t, classifySurfaceError(nil))
}
