package viewer

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/minigis/internal/engine/camera"
	"github.com/Faultbox/minigis/internal/engine/input"
	"github.com/Faultbox/minigis/pkg/math"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return math32.Abs(a-b) < tolerance
}

func newContext(relative bool) *Context {
	cam := camera.NewDefault(math.Vec3{X: 0, Y: 0, Z: 5})
	return New(cam, 800, 600, Settings{
		RotateSpeed:    0.6,
		Near:           0.1,
		Far:            100,
		ConstrainPitch: true,
		RelativeMouse:  relative,
	})
}

// tick advances the context by exactly dt seconds.
func tick(c *Context, start time.Time, dt float32) {
	c.Tick(start)
	c.Tick(start.Add(time.Duration(float64(dt) * float64(time.Second))))
}

func TestHeldKeysMoveCamera(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math.Vec3
	}{
		{input.KeyW, math.Vec3{X: 0, Y: 0, Z: 4.75}},
		{input.KeyS, math.Vec3{X: 0, Y: 0, Z: 5.25}},
		{input.KeyA, math.Vec3{X: -0.25, Y: 0, Z: 5}},
		{input.KeyD, math.Vec3{X: 0.25, Y: 0, Z: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			c := newContext(true)
			tick(c, time.Unix(100, 0), 0.1)

			var keys input.KeyState
			keys.Set(tt.key, true)
			c.ApplyKeys(&keys)

			got := c.Camera.Position()
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoKeysNoMovement(t *testing.T) {
	c := newContext(true)
	tick(c, time.Unix(0, 0), 0.1)
	var keys input.KeyState
	c.ApplyKeys(&keys)

	if c.Camera.Position() != (math.Vec3{X: 0, Y: 0, Z: 5}) {
		t.Errorf("camera moved to %v", c.Camera.Position())
	}
	if yaw, pitch := c.ModelAngles(); yaw != 0 || pitch != 0 {
		t.Errorf("model rotated to (%f, %f)", yaw, pitch)
	}
}

func TestArrowKeysRotateModel(t *testing.T) {
	c := newContext(true)
	tick(c, time.Unix(0, 0), 0.5)

	var keys input.KeyState
	keys.Set(input.KeyRight, true)
	keys.Set(input.KeyLeft, true) // right wins
	keys.Set(input.KeyDown, true)
	c.ApplyKeys(&keys)

	yaw, pitch := c.ModelAngles()
	if !near(yaw, 0.3) || !near(pitch, -0.3) {
		t.Errorf("angles = (%f, %f), want (0.3, -0.3)", yaw, pitch)
	}

	want := math.RotateY(yaw).Mul(math.RotateX(pitch))
	if c.Model() != want {
		t.Error("model matrix should be RotateY(yaw) * RotateX(pitch)")
	}
}

func TestFirstMouseEventOnlyRecords(t *testing.T) {
	for _, relative := range []bool{true, false} {
		c := newContext(relative)
		c.HandleEvents([]input.Event{{Type: input.EventMouseMove, MouseX: 400, MouseY: 300, RelX: 500, RelY: 500}})
		if c.Camera.Yaw() != camera.DefaultYaw || c.Camera.Pitch() != camera.DefaultPitch {
			t.Errorf("relative=%v: first event turned the camera", relative)
		}
	}
}

func TestMouseMovementAbsolute(t *testing.T) {
	c := newContext(false)
	c.HandleEvents([]input.Event{
		{Type: input.EventMouseMove, MouseX: 400, MouseY: 300},
		{Type: input.EventMouseMove, MouseX: 500, MouseY: 250},
	})

	// +100 px right, 50 px up at sensitivity 0.1.
	if !near(c.Camera.Yaw(), -80) || !near(c.Camera.Pitch(), 5) {
		t.Errorf("angles = (%f, %f), want (-80, 5)", c.Camera.Yaw(), c.Camera.Pitch())
	}
}

func TestMouseMovementRelative(t *testing.T) {
	c := newContext(true)
	c.HandleEvents([]input.Event{
		{Type: input.EventMouseMove, MouseX: 400, MouseY: 300},
		{Type: input.EventMouseMove, MouseX: 400, MouseY: 300, RelX: -20, RelY: 30},
	})

	// Screen y is reversed: moving down looks down.
	if !near(c.Camera.Yaw(), -92) || !near(c.Camera.Pitch(), -3) {
		t.Errorf("angles = (%f, %f), want (-92, -3)", c.Camera.Yaw(), c.Camera.Pitch())
	}
}

func TestMouseWheelZooms(t *testing.T) {
	c := newContext(true)
	c.HandleEvents([]input.Event{{Type: input.EventMouseWheel, WheelY: 10}})
	if c.Camera.Zoom() != 35 {
		t.Errorf("zoom = %f, want 35", c.Camera.Zoom())
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		keys   []input.Key
	}{
		{"window close", []input.Event{{Type: input.EventQuit}}, nil},
		{"escape pressed", []input.Event{{Type: input.EventKeyDown, Key: input.KeyEscape}}, nil},
		{"escape held", nil, []input.Key{input.KeyEscape}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(true)
			if c.Quit() {
				t.Fatal("fresh context should not quit")
			}
			c.HandleEvents(tt.events)
			var keys input.KeyState
			for _, k := range tt.keys {
				keys.Set(k, true)
			}
			c.ApplyKeys(&keys)
			if !c.Quit() {
				t.Error("expected quit")
			}
		})
	}
}

func TestResize(t *testing.T) {
	c := newContext(true)
	var got [2]int
	c.OnResize = func(w, h int) { got = [2]int{w, h} }

	c.HandleEvents([]input.Event{{Type: input.EventWindowResize, Width: 1024, Height: 512}})
	if got != [2]int{1024, 512} {
		t.Errorf("OnResize got %v", got)
	}
	if c.Aspect() != 2 {
		t.Errorf("aspect = %f, want 2", c.Aspect())
	}

	// Minimizing keeps the previous size.
	c.HandleEvents([]input.Event{{Type: input.EventWindowResize, Width: 0, Height: 0}})
	if w, h := c.Size(); w != 1024 || h != 512 {
		t.Errorf("size = %dx%d after minimize", w, h)
	}
}

func TestProjectionFollowsZoomAndAspect(t *testing.T) {
	c := newContext(true)
	want := math.Perspective(math.Radians(45), 800.0/600.0, 0.1, 100)
	if c.Projection() != want {
		t.Error("projection should use zoom 45 and 800/600")
	}

	c.HandleEvents([]input.Event{{Type: input.EventMouseWheel, WheelY: 15}})
	want = math.Perspective(math.Radians(30), 800.0/600.0, 0.1, 100)
	if c.Projection() != want {
		t.Error("projection should follow the zoom")
	}
}

func TestViewFromCamera(t *testing.T) {
	c := newContext(true)
	if c.View() != c.Camera.ViewMatrix() {
		t.Error("view should come from the camera")
	}
}
