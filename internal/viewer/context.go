// Package viewer holds the interactive state of the mesh viewer and routes
// input to it. It knows nothing about SDL or OpenGL so it can be driven
// directly from tests.
package viewer

import (
	"time"

	"github.com/Faultbox/minigis/internal/engine/camera"
	"github.com/Faultbox/minigis/internal/engine/input"
	"github.com/Faultbox/minigis/pkg/math"
)

// Settings tune how input is applied.
type Settings struct {
	RotateSpeed    float32 // model rotation, rad/s
	Near, Far      float32
	ConstrainPitch bool
	RelativeMouse  bool // use motion deltas instead of absolute positions
}

// Context is the per-run application state: camera, frame timing, mouse
// tracking and model rotation.
type Context struct {
	Camera *camera.FlyCamera
	Clock  Clock

	// OnResize, when set, is called for every window resize.
	OnResize func(width, height int)

	settings Settings
	width    int
	height   int

	deltaTime  float32
	firstMouse bool
	lastX      float32
	lastY      float32

	yawAngle   float32 // around +Y, arrow left/right
	pitchAngle float32 // around +X, arrow up/down

	quit bool
}

// New creates a context for a window of the given size.
func New(cam *camera.FlyCamera, width, height int, settings Settings) *Context {
	return &Context{
		Camera:     cam,
		settings:   settings,
		width:      width,
		height:     height,
		firstMouse: true,
	}
}

// Tick advances frame timing and returns the frame delta in seconds.
func (c *Context) Tick(now time.Time) float32 {
	c.deltaTime = c.Clock.Tick(now)
	return c.deltaTime
}

// DeltaTime returns the delta of the last Tick.
func (c *Context) DeltaTime() float32 {
	return c.deltaTime
}

// HandleEvents applies discrete events: quit, resize, mouse motion and wheel.
func (c *Context) HandleEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			c.quit = true
		case input.EventKeyDown:
			if e.Key == input.KeyEscape {
				c.quit = true
			}
		case input.EventWindowResize:
			c.resize(e.Width, e.Height)
		case input.EventMouseMove:
			c.mouseMoved(e)
		case input.EventMouseWheel:
			c.Camera.ProcessMouseScroll(e.WheelY)
		}
	}
}

// ApplyKeys applies held keys for the current frame's delta.
func (c *Context) ApplyKeys(keys *input.KeyState) {
	dt := c.deltaTime

	if keys.Held(input.KeyEscape) {
		c.quit = true
	}

	if keys.Held(input.KeyW) {
		c.Camera.ProcessKeyboard(camera.Forward, dt)
	}
	if keys.Held(input.KeyS) {
		c.Camera.ProcessKeyboard(camera.Backward, dt)
	}
	if keys.Held(input.KeyA) {
		c.Camera.ProcessKeyboard(camera.Left, dt)
	}
	if keys.Held(input.KeyD) {
		c.Camera.ProcessKeyboard(camera.Right, dt)
	}

	step := c.settings.RotateSpeed * dt
	if keys.Held(input.KeyRight) {
		c.yawAngle += step
	} else if keys.Held(input.KeyLeft) {
		c.yawAngle -= step
	}
	if keys.Held(input.KeyUp) {
		c.pitchAngle += step
	} else if keys.Held(input.KeyDown) {
		c.pitchAngle -= step
	}
}

func (c *Context) mouseMoved(e input.Event) {
	x, y := float32(e.MouseX), float32(e.MouseY)
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}

	var xOffset, yOffset float32
	if c.settings.RelativeMouse {
		xOffset = float32(e.RelX)
		yOffset = float32(-e.RelY)
	} else {
		xOffset = x - c.lastX
		yOffset = c.lastY - y // screen y grows downwards
	}
	c.lastX, c.lastY = x, y

	c.Camera.ProcessMouseMovement(xOffset, yOffset, c.settings.ConstrainPitch)
}

func (c *Context) resize(width, height int) {
	// Minimized windows report a zero size; keep the last usable aspect.
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	if c.OnResize != nil {
		c.OnResize(width, height)
	}
}

// Quit reports whether the user asked to leave.
func (c *Context) Quit() bool {
	return c.quit
}

// Size returns the current window size.
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// Aspect returns width / height.
func (c *Context) Aspect() float32 {
	if c.height <= 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// ModelAngles returns the model rotation around +Y and +X in radians.
func (c *Context) ModelAngles() (yaw, pitch float32) {
	return c.yawAngle, c.pitchAngle
}

// Projection returns the perspective matrix for the camera zoom.
func (c *Context) Projection() math.Mat4 {
	return math.Perspective(math.Radians(c.Camera.Zoom()), c.Aspect(), c.settings.Near, c.settings.Far)
}

// View returns the camera view matrix.
func (c *Context) View() math.Mat4 {
	return c.Camera.ViewMatrix()
}

// Model returns RotateY(yaw) * RotateX(pitch).
func (c *Context) Model() math.Mat4 {
	return math.RotateY(c.yawAngle).Mul(math.RotateX(c.pitchAngle))
}
