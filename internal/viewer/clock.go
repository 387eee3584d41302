package viewer

import "time"

// maxDelta caps a single frame step so a stall (window drag, breakpoint)
// does not fling the camera across the scene.
const maxDelta = 250 * time.Millisecond

// Clock measures frame deltas and frame rate.
type Clock struct {
	last       time.Time
	frames     int
	fpsStart   time.Time
	lastFrames int
}

// Tick advances the clock to now and returns the seconds since the previous
// tick. The first tick returns 0.
func (c *Clock) Tick(now time.Time) float32 {
	if c.last.IsZero() {
		c.last = now
		c.fpsStart = now
		return 0
	}

	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	c.frames++
	return float32(dt.Seconds())
}

// FPS returns the frames counted over the last full second once per second.
func (c *Clock) FPS(now time.Time) (int, bool) {
	if c.fpsStart.IsZero() || now.Sub(c.fpsStart) < time.Second {
		return 0, false
	}
	c.lastFrames = c.frames
	c.frames = 0
	c.fpsStart = now
	return c.lastFrames, true
}
