package main

import (
	"flag"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/nullprop/wgpu-renderer/engine"
	"github.com/nullprop/wgpu-renderer/engine/camera"
	"github.com/nullprop/wgpu-renderer/engine/loader"
	"github.com/nullprop/wgpu-renderer/engine/model"
	"github.com/nullprop/wgpu-renderer/engine/renderer"
	"github.com/nullprop/wgpu-renderer/engine/scene"
	"github.com/nullprop/wgpu-renderer/engine/window"
)

func main() {
	width := flag.Int("width", 1280, "window width in pixels")
	height := flag.Int("height", 720, "window height in pixels")
	modelPath := flag.String("model", "assets/models/sponza/Sponza.gltf", "path to the glTF scene to load")
	vsync := flag.Bool("vsync", true, "synchronize presentation with the display refresh rate")
	software := flag.Bool("software", false, "force a software (fallback) adapter")
	stats := flag.Bool("stats", false, "log frame statistics once per second")
	flag.Parse()

	win := window.NewWindow(
		window.WithTitle("wgpu-renderer"),
		window.WithWidth(*width),
		window.WithHeight(*height),
	)

	presentMode := renderer.PresentModeVSync
	if !*vsync {
		presentMode = renderer.PresentModeUncapped
	}
	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
	}
	if *software {
		rendererOptions = append(rendererOptions, renderer.WithForceSoftwareRenderer(true))
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions...)

	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{-500, 150, 0}),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithController(camera.NewCameraController()),
	)

	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithRenderer(r))
	sponza, err := l.Load(*modelPath)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *modelPath, err)
	}
	sponza.SetInstances([]model.Instance{
		model.NewInstance(mgl32.Vec3{60, 0, 35}, mgl32.Vec3{1, 1, 1}),
	})

	s := scene.NewScene("main", cam, r,
		scene.WithModels(sponza),
	)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(s),
		engine.WithProfiling(*stats),
	)

	if err := eng.Run(); err != nil {
		log.Fatalf("engine exited with error: %v", err)
	}
}
