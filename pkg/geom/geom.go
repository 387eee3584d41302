// Package geom holds the float64 data model shared by the point-cloud loader,
// the surface reconstructor and the vertex-buffer builder.
package geom

import "math"

// Point3 is a point (or vector) in 3D space.
type Point3 struct {
	X, Y, Z float64
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Length2 returns the squared magnitude.
func (p Point3) Length2() float64 {
	return p.Dot(p)
}

// Length returns the magnitude.
func (p Point3) Length() float64 {
	return math.Sqrt(p.Length2())
}

// Normalize returns a unit vector. The zero vector stays zero.
func (p Point3) Normalize() Point3 {
	l := p.Length()
	if l == 0 {
		return Point3{}
	}
	return Point3{p.X / l, p.Y / l, p.Z / l}
}

// Axis returns component i (0 = X, 1 = Y, 2 = Z).
func (p Point3) Axis(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Facet is one triangle of a reconstructed surface. The vertex order fixes
// its orientation: the normal follows the right-hand rule over A, B, C.
type Facet [3]Point3

// Normal returns normalize(cross(B-A, C-A)).
func (f Facet) Normal() Point3 {
	return f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Normalize()
}

// Centroid returns the average of the three corners.
func (f Facet) Centroid() Point3 {
	return f[0].Add(f[1]).Add(f[2]).Scale(1.0 / 3)
}
