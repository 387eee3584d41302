// Package lighting provides the single point light and object material used
// to shade the mesh.
package lighting

import "github.com/Faultbox/minigis/pkg/math"

// Uniform names shared with the lit shader.
const (
	UniformObjectColor      = "objectColor"
	UniformLightColor       = "lightColor"
	UniformLightPos         = "lightPos"
	UniformViewPos          = "viewPos"
	UniformAmbientStrength  = "ambientStrength"
	UniformSpecularStrength = "specularStrength"
	UniformShininess        = "shininess"
)

// UniformSetter is the part of a shader program the lighting writes to.
type UniformSetter interface {
	SetVec3(name string, v math.Vec3)
	SetFloat(name string, v float32)
}

// PointLight is a white-ish light at a fixed world position.
type PointLight struct {
	Position math.Vec3
	Color    math.Vec3 // RGB, 0-1
}

// Material describes how the object responds to the light.
type Material struct {
	Color            math.Vec3 // RGB, 0-1
	AmbientStrength  float32
	SpecularStrength float32
	Shininess        float32
}

// DefaultPointLight returns a white light at (0, 0, 3).
func DefaultPointLight() PointLight {
	return PointLight{
		Position: math.Vec3{X: 0, Y: 0, Z: 3},
		Color:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// DefaultMaterial returns the coral object colour.
func DefaultMaterial() Material {
	return Material{
		Color:            math.Vec3{X: 1.0, Y: 0.5, Z: 0.31},
		AmbientStrength:  0.1,
		SpecularStrength: 0.5,
		Shininess:        32,
	}
}

// Apply uploads light, material and the viewer position.
func Apply(s UniformSetter, light PointLight, mat Material, viewPos math.Vec3) {
	s.SetVec3(UniformObjectColor, clampColor(mat.Color))
	s.SetVec3(UniformLightColor, clampColor(light.Color))
	s.SetVec3(UniformLightPos, light.Position)
	s.SetVec3(UniformViewPos, viewPos)
	s.SetFloat(UniformAmbientStrength, mat.AmbientStrength)
	s.SetFloat(UniformSpecularStrength, mat.SpecularStrength)
	s.SetFloat(UniformShininess, max(mat.Shininess, 1))
}

// Config files may carry colours outside 0-1.
func clampColor(c math.Vec3) math.Vec3 {
	return math.Vec3{
		X: math.Clamp(c.X, 0, 1),
		Y: math.Clamp(c.Y, 0, 1),
		Z: math.Clamp(c.Z, 0, 1),
	}
}
