package engine

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/nullprop/wgpu-renderer/common"
	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/profiler"
	"github.com/nullprop/wgpu-renderer/engine/renderer"
	"github.com/nullprop/wgpu-renderer/engine/scene"
	"github.com/nullprop/wgpu-renderer/engine/window"
)

// engine implements the Engine interface.
// Runs the window, update, and render phases on a single OS thread: GLFW
// event polling and WebGPU surface presentation both require it.
type engine struct {
	window      window.Window
	activeScene scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	// paused halts scene updates and rendering while the window is unfocused.
	paused bool
	quit   bool

	startTime time.Time
	lastFrame time.Time

	// Mouse position bookkeeping to turn absolute cursor events into deltas.
	lastMouseX int32
	lastMouseY int32
	mouseSeen  bool
}

// Engine drives the application: it owns the window and a single scene and
// runs the frame loop until the window closes or Quit is called. Input events
// are routed to the scene camera's controller: WASD plus Space and Shift move,
// mouse motion looks while the cursor is captured, and the scroll wheel
// doubles or halves the movement speed. Losing window focus pauses the loop
// and releases the cursor; regaining focus resumes and recaptures it.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the active scene.
	//
	// Returns:
	//   - scene.Scene: the active scene, or nil if none is set
	Scene() scene.Scene

	// SetScene replaces the active scene. The scene must be initialized by the
	// caller (or left uninitialized for Run to initialize).
	//
	// Parameters:
	//   - s: the scene to activate
	SetScene(s scene.Scene)

	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// Run starts the main loop and blocks until the window closes or Quit is
	// called. If the active scene is uninitialized it is initialized against
	// the window's surface size first.
	//
	// Returns:
	//   - error: an error if the scene could not be initialized
	Run() error

	// Quit signals the main loop to stop after the current frame.
	// Safe to call multiple times.
	Quit()
}

// Compile-time interface compliance check
var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options. A window and a
// scene are both required before Run; use the builder options or SetScene.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.activeScene
}

func (e *engine) SetScene(s scene.Scene) {
	e.activeScene = s
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() error {
	// GLFW event polling and surface presentation must stay on one thread.
	runtime.LockOSThread()

	if e.window == nil {
		return fmt.Errorf("engine: Run requires a window")
	}
	if e.activeScene == nil {
		return fmt.Errorf("engine: Run requires a scene")
	}

	if e.activeScene.State() == scene.StateUninitialized {
		if err := e.activeScene.Init(e.window.Width(), e.window.Height()); err != nil {
			return fmt.Errorf("engine: failed to initialize scene: %w", err)
		}
	}

	e.wireInput()
	e.window.SetCursorCaptured(true)

	e.startTime = time.Now()
	e.lastFrame = e.startTime
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	e.activeScene.Release()
	return nil
}

func (e *engine) Quit() {
	e.quit = true
	if e.window != nil {
		_ = e.window.Close()
	}
}

// frame runs one iteration of the main loop: advance the scene and render.
// Skipped entirely while paused so an unfocused window consumes no GPU time.
func (e *engine) frame() {
	if e.quit || e.paused {
		e.lastFrame = time.Now()
		return
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	elapsed := float32(now.Sub(e.startTime).Seconds())
	e.lastFrame = now

	e.activeScene.Update(dt, elapsed)
	if controller := e.controller(); controller != nil {
		controller.Reset(false)
	}

	if err := e.activeScene.Render(); err != nil {
		switch {
		case errors.Is(err, renderer.ErrSurfaceOutdated), errors.Is(err, renderer.ErrSurfaceLost):
			// The surface no longer matches the window; reconfigure and retry
			// next frame.
			if resizeErr := e.activeScene.Resize(e.window.Width(), e.window.Height()); resizeErr != nil {
				log.Printf("engine: failed to recover surface: %v", resizeErr)
				e.Quit()
			}
		case errors.Is(err, renderer.ErrSurfaceTimeout):
			// Transient; skip the frame.
		case errors.Is(err, renderer.ErrSurfaceOutOfMemory):
			log.Printf("engine: surface out of memory: %v", err)
			e.Quit()
		default:
			log.Printf("engine: render failed: %v", err)
			e.Quit()
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// controller returns the active scene camera's controller, or nil.
func (e *engine) controller() camera.CameraController {
	if e.activeScene == nil {
		return nil
	}
	cam := e.activeScene.Camera()
	if cam == nil {
		return nil
	}
	return cam.Controller()
}

// wireInput routes window events to the scene: movement keys and mouse look
// to the camera controller, resize to the scene's surface resources, and
// focus changes to the pause state.
func (e *engine) wireInput() {
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.setMoveForKey(keyCode, 1)
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		e.setMoveForKey(keyCode, 0)
	})

	e.window.SetScrollCallback(func(delta float32) {
		controller := e.controller()
		if controller == nil {
			return
		}
		if delta > 0 {
			controller.MultiplySpeed(2)
		} else if delta < 0 {
			controller.MultiplySpeed(0.5)
		}
	})

	e.window.SetMouseMoveCallback(func(x, y int32) {
		if !e.mouseSeen {
			e.lastMouseX, e.lastMouseY = x, y
			e.mouseSeen = true
			return
		}
		dx := float32(x - e.lastMouseX)
		dy := float32(y - e.lastMouseY)
		e.lastMouseX, e.lastMouseY = x, y

		if !e.window.CursorCaptured() {
			return
		}
		if controller := e.controller(); controller != nil {
			controller.AddMouseDelta(dx, dy)
		}
	})

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.activeScene.Resize(width, height); err != nil {
			log.Printf("engine: resize failed: %v", err)
		}
	})

	e.window.SetFocusCallback(func(focused bool) {
		e.paused = !focused
		e.window.SetCursorCaptured(focused)
		// Key release events may never arrive while unfocused; drop all
		// held movement state and stale mouse deltas.
		e.mouseSeen = false
		if controller := e.controller(); controller != nil {
			controller.Reset(true)
		}
	})
}

// setMoveForKey maps a movement key to its camera controller axis.
func (e *engine) setMoveForKey(keyCode uint32, amount float32) {
	controller := e.controller()
	if controller == nil {
		return
	}
	switch keyCode {
	case common.KeyW:
		controller.SetMove(camera.MoveForward, amount)
	case common.KeyS:
		controller.SetMove(camera.MoveBackward, amount)
	case common.KeyA:
		controller.SetMove(camera.MoveLeft, amount)
	case common.KeyD:
		controller.SetMove(camera.MoveRight, amount)
	case common.KeySpace:
		controller.SetMove(camera.MoveUp, amount)
	case common.KeyLeftShift:
		controller.SetMove(camera.MoveDown, amount)
	}
}
