// Package camera provides the free-fly camera used to look at the mesh.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/minigis/pkg/math"
)

// Default camera options.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
	MaxPitch float32 = 89.0
)

// FlyCamera is a first-person camera driven by Euler angles. Yaw and pitch
// are in degrees; front, right and up are kept orthonormal.
type FlyCamera struct {
	position math.Vec3
	front    math.Vec3
	up       math.Vec3
	right    math.Vec3
	worldUp  math.Vec3

	yaw   float32
	pitch float32

	movementSpeed    float32
	mouseSensitivity float32
	zoom             float32
}

// New creates a camera at position with the given world up vector and angles.
func New(position, up math.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		position:         position,
		front:            math.Vec3{X: 0, Y: 0, Z: -1},
		worldUp:          up,
		yaw:              yaw,
		pitch:            pitch,
		movementSpeed:    DefaultSpeed,
		mouseSensitivity: DefaultSensitivity,
		zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// NewFromScalars is New with every component spelled out.
func NewFromScalars(posX, posY, posZ, upX, upY, upZ, yaw, pitch float32) *FlyCamera {
	return New(
		math.Vec3{X: posX, Y: posY, Z: posZ},
		math.Vec3{X: upX, Y: upY, Z: upZ},
		yaw, pitch,
	)
}

// NewDefault creates a camera at position looking down -Z with +Y up.
func NewDefault(position math.Vec3) *FlyCamera {
	return New(position, math.Vec3{X: 0, Y: 1, Z: 0}, DefaultYaw, DefaultPitch)
}

// ViewMatrix returns the view matrix for the current position and angles.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.position.Add(c.front), c.up)
}

// ProcessKeyboard moves the camera along front or right for deltaTime seconds.
func (c *FlyCamera) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Scale(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Scale(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Scale(velocity))
	case Right:
		c.position = c.position.Add(c.right.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera by a mouse offset in pixels.
// Positive yOffset looks up.
func (c *FlyCamera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	c.yaw += xOffset * c.mouseSensitivity
	c.pitch += yOffset * c.mouseSensitivity

	if constrainPitch {
		c.pitch = math.Clamp(c.pitch, -MaxPitch, MaxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll narrows (positive yOffset) or widens the field of view.
func (c *FlyCamera) ProcessMouseScroll(yOffset float32) {
	c.zoom = math.Clamp(c.zoom-yOffset, MinZoom, MaxZoom)
}

func (c *FlyCamera) updateVectors() {
	yaw := math.Radians(c.yaw)
	pitch := math.Radians(c.pitch)

	c.front = math.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 { return c.front }

// Up returns the camera's unit up vector.
func (c *FlyCamera) Up() math.Vec3 { return c.up }

// Right returns the camera's unit right vector.
func (c *FlyCamera) Right() math.Vec3 { return c.right }

// WorldUp returns the fixed world up vector.
func (c *FlyCamera) WorldUp() math.Vec3 { return c.worldUp }

// Yaw returns the yaw angle in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// MovementSpeed returns the speed in units per second.
func (c *FlyCamera) MovementSpeed() float32 { return c.movementSpeed }

// MouseSensitivity returns the degrees turned per pixel of mouse motion.
func (c *FlyCamera) MouseSensitivity() float32 { return c.mouseSensitivity }

// Zoom returns the vertical field of view in degrees.
func (c *FlyCamera) Zoom() float32 { return c.zoom }

// SetMovementSpeed sets the speed. Non-positive values are ignored.
func (c *FlyCamera) SetMovementSpeed(speed float32) {
	if speed > 0 {
		c.movementSpeed = speed
	}
}

// SetMouseSensitivity sets the sensitivity. Non-positive values are ignored.
func (c *FlyCamera) SetMouseSensitivity(sensitivity float32) {
	if sensitivity > 0 {
		c.mouseSensitivity = sensitivity
	}
}
