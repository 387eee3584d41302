package math

import (
	"math"
	"testing"
)

var identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// transform applies m to p with w = 1 and divides by the resulting w.
func transform(m Mat4, p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return Vec3{x / w, y / w, z / w}
}

func TestMulIdentity(t *testing.T) {
	m := RotateY(0.7).Mul(RotateX(-0.2))
	for _, result := range []Mat4{m.Mul(identity), identity.Mul(m)} {
		for i := 0; i < 16; i++ {
			if result[i] != m[i] {
				t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
			}
		}
	}
}

func TestMulOrder(t *testing.T) {
	// RotateY(a) * RotateX(b) applies the X rotation first.
	m := RotateY(float32(math.Pi / 2)).Mul(RotateX(float32(math.Pi / 2)))
	got := transform(m, Vec3{0, 1, 0})
	// (0,1,0) -> X rotation -> (0,0,1) -> Y rotation -> (1,0,0)
	if abs(got.X-1) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("got %v, want (1, 0, 0)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := transform(m, Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	result := transform(m, Vec3{0, 1, 0})

	// (0,1,0) rotates onto +Z
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	if RotateX(0) != identity || RotateY(0) != identity {
		t.Error("a zero rotation should be the identity")
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 800.0/600.0, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	if abs(m[5]/m[0]-800.0/600.0) > 0.0001 {
		t.Errorf("Perspective aspect: got %f", m[5]/m[0])
	}

	// Near and far planes land on -1 and +1 in NDC.
	if z := transform(m, Vec3{0, 0, -0.1}).Z; abs(z+1) > 1e-4 {
		t.Errorf("near plane maps to z=%f, want -1", z)
	}
	if z := transform(m, Vec3{0, 0, -100}).Z; abs(z-1) > 1e-4 {
		t.Errorf("far plane maps to z=%f, want 1", z)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	got := transform(m, eye)
	if abs(got.X) > 1e-5 || abs(got.Y) > 1e-5 || abs(got.Z) > 1e-5 {
		t.Errorf("eye should map to origin, got %v", got)
	}

	// A point in front of the camera lands on -Z in view space
	ahead := transform(m, Vec3{0, 0, 4})
	if abs(ahead.Z+1) > 1e-5 {
		t.Errorf("point ahead should be at z=-1, got %v", ahead)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
