// Package app wires the window, renderer and input to the viewer state and
// runs the render loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/minigis/internal/config"
	"github.com/Faultbox/minigis/internal/engine/camera"
	"github.com/Faultbox/minigis/internal/engine/filedialog"
	"github.com/Faultbox/minigis/internal/engine/input/sdlinput"
	"github.com/Faultbox/minigis/internal/engine/lighting"
	"github.com/Faultbox/minigis/internal/engine/renderer"
	"github.com/Faultbox/minigis/internal/engine/window"
	"github.com/Faultbox/minigis/internal/logger"
	"github.com/Faultbox/minigis/internal/viewer"
	"github.com/Faultbox/minigis/pkg/math"
)

// App is the running viewer.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *sdlinput.Input
	ctx      *viewer.Context
	scene    *viewer.Scene

	light    lighting.PointLight
	material lighting.Material
}

// New builds the mesh and opens the window. The point cloud is chosen and
// reconstructed before any window exists.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config:   cfg,
		light:    pointLight(cfg.Scene),
		material: material(cfg.Scene),
	}

	a.scene = viewer.LoadScene(filedialog.For(cfg.Input.File), cfg.Reconstruction)

	var err error
	a.window, err = window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		CaptureMouse: cfg.Window.CaptureMouse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Framebuffer size differs from the window size on high-DPI screens.
	width, height := a.window.GetDrawableSize()

	// Renderer must come AFTER the window, since the GL context must exist.
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Scene.ClearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.Upload(a.scene.Mesh)
	a.window.SetTitle(a.scene.Title(cfg.Window.Title))

	a.input = sdlinput.New()
	a.ctx = viewer.New(newCamera(cfg.Camera), width, height, viewer.Settings{
		RotateSpeed:    cfg.Scene.RotateSpeed,
		Near:           cfg.Scene.Near,
		Far:            cfg.Scene.Far,
		ConstrainPitch: cfg.Camera.ConstrainPitch,
		RelativeMouse:  cfg.Window.CaptureMouse,
	})
	a.ctx.OnResize = func(int, int) {
		w, h := a.window.GetDrawableSize()
		a.renderer.Resize(w, h)
	}

	logger.Info("viewer initialized",
		zap.String("file", a.scene.Path),
		zap.Int("triangles", a.scene.Mesh.TriangleCount()),
	)
	return a, nil
}

func newCamera(cfg config.CameraConfig) *camera.FlyCamera {
	p := cfg.Position
	cam := camera.New(math.Vec3{X: p[0], Y: p[1], Z: p[2]}, math.Vec3{X: 0, Y: 1, Z: 0}, cfg.Yaw, cfg.Pitch)
	cam.SetMovementSpeed(cfg.Speed)
	cam.SetMouseSensitivity(cfg.Sensitivity)
	return cam
}

func pointLight(cfg config.SceneConfig) lighting.PointLight {
	l := lighting.DefaultPointLight()
	l.Position = vec3(cfg.LightPosition)
	l.Color = vec3(cfg.LightColor)
	return l
}

func material(cfg config.SceneConfig) lighting.Material {
	m := lighting.DefaultMaterial()
	m.Color = vec3(cfg.ObjectColor)
	return m
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Run starts the render loop and returns when the user quits.
func (a *App) Run() error {
	a.running = true
	logger.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := a.ctx.Tick(now)

		// 1. Input
		a.input.Update()
		a.ctx.HandleEvents(a.input.Events())
		keys := a.input.Keys()
		a.ctx.ApplyKeys(&keys)
		if a.ctx.Quit() {
			a.running = false
			break
		}

		// 2. Render
		a.render()

		// 3. Present
		a.window.SwapBuffers()

		if fps, ok := a.ctx.Clock.FPS(now); ok && a.config.Scene.ShowFPS {
			logger.Debug("fps", zap.Int("count", fps), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
		}
	}

	logger.Info("render loop stopped")
	return nil
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.Draw(renderer.Frame{
		Projection: a.ctx.Projection(),
		View:       a.ctx.View(),
		Model:      a.ctx.Model(),
		ViewPos:    a.ctx.Camera.Position(),
		Light:      a.light,
		Material:   a.material,
	})
}

// Close releases GPU and window resources.
func (a *App) Close() {
	logger.Info("closing viewer")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
