package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for surface texture acquisition. Callers can match these with
// errors.Is to decide between reconfiguring the surface and aborting the frame.
var (
	// ErrSurfaceLost indicates the surface was lost and must be reconfigured
	// before the next frame can be rendered.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutdated indicates the surface no longer matches the window,
	// typically after a resize. Reconfigure and retry on the next frame.
	ErrSurfaceOutdated = errors.New("surface outdated")

	// ErrSurfaceTimeout indicates acquiring the next surface texture timed out.
	// The frame should be skipped; no reconfiguration is needed.
	ErrSurfaceTimeout = errors.New("surface acquisition timed out")

	// ErrSurfaceOutOfMemory indicates the surface could not allocate a texture.
	// This is not recoverable by reconfiguration.
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")
)

// classifySurfaceError maps a raw surface acquisition error onto one of the
// sentinel surface errors so callers can errors.Is against a stable set.
// Unrecognized errors are returned wrapped but unclassified.
func classifySurfaceError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %s", ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %s", ErrSurfaceOutdated, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %s", ErrSurfaceTimeout, err)
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %s", ErrSurfaceOutOfMemory, err)
	default:
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
}
