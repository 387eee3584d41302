package surface

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/minigis/pkg/geom"
)

const epsilon = 1e-9

func tetrahedron() []geom.Point3 {
	return []geom.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
}

func bipyramid() []geom.Point3 {
	s := math.Sqrt(3) / 2
	return []geom.Point3{
		{X: 1, Y: 0, Z: 0},
		{X: -0.5, Y: s, Z: 0},
		{X: -0.5, Y: -s, Z: 0},
		{X: 0, Y: 0, Z: 1.5},
		{X: 0, Y: 0, Z: -1.5},
	}
}

func centroid(points []geom.Point3) geom.Point3 {
	var c geom.Point3
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}

// assertClosedOutward checks that every edge is shared by exactly two facets
// traversing it in opposite directions and that normals point away from the
// centroid of a convex input.
func assertClosedOutward(t *testing.T, points []geom.Point3, facets []geom.Facet) {
	t.Helper()
	directed := make(map[[2]geom.Point3]int)
	for _, f := range facets {
		for i := 0; i < 3; i++ {
			directed[[2]geom.Point3{f[i], f[(i+1)%3]}]++
		}
	}
	for e, n := range directed {
		assert.Equal(t, 1, n, "directed edge %v used %d times", e, n)
		assert.Equal(t, 1, directed[[2]geom.Point3{e[1], e[0]}], "edge %v has no opposite twin", e)
	}

	c := centroid(points)
	for _, f := range facets {
		n := f.Normal()
		assert.InDelta(t, 1.0, n.Length(), epsilon)
		assert.Greater(t, n.Dot(f.Centroid().Sub(c)), 0.0, "facet %v faces inwards", f)
	}
}

func TestReconstructTetrahedron(t *testing.T) {
	points := tetrahedron()
	res := Reconstruct(points, DefaultOptions())

	assert.Equal(t, 1, res.Tetrahedra)
	assert.Equal(t, 4, res.Candidates)
	assert.Equal(t, 1, res.Components)
	require.Len(t, res.Facets, 4)
	assertClosedOutward(t, points, res.Facets)
}

func TestReconstructBipyramid(t *testing.T) {
	points := bipyramid()
	res := Reconstruct(points, DefaultOptions())

	assert.Equal(t, 2, res.Tetrahedra)
	// The shared equatorial triangle must not be emitted.
	require.Len(t, res.Facets, 6)
	assertClosedOutward(t, points, res.Facets)
	for _, f := range res.Facets {
		onEquator := f[0].Z == 0 && f[1].Z == 0 && f[2].Z == 0
		assert.False(t, onEquator, "interior facet %v emitted", f)
	}
}

func TestReconstructFacetsUseInputPoints(t *testing.T) {
	points := tetrahedron()
	res := Reconstruct(points, DefaultOptions())

	known := make(map[geom.Point3]bool)
	for _, p := range points {
		known[p] = true
	}
	for _, f := range res.Facets {
		for _, p := range f {
			assert.True(t, known[p], "facet corner %v is not an input point", p)
		}
	}
}

func TestReconstructDuplicates(t *testing.T) {
	points := append(tetrahedron(), geom.Point3{X: 1, Y: 0, Z: 0})
	res := Reconstruct(points, DefaultOptions())

	assert.Equal(t, 1, res.Duplicates)
	assert.Len(t, res.Facets, 4)
}

func TestReconstructDegenerate(t *testing.T) {
	var grid []geom.Point3
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			grid = append(grid, geom.Point3{X: float64(x), Y: float64(y), Z: 2})
		}
	}

	tests := []struct {
		name   string
		points []geom.Point3
	}{
		{"empty", nil},
		{"single point", []geom.Point3{{X: 1, Y: 2, Z: 3}}},
		{"three points", tetrahedron()[:3]},
		{"same point repeated", []geom.Point3{{X: 1}, {X: 1}, {X: 1}, {X: 1}, {X: 1}}},
		{"coplanar grid", grid},
		{"collinear", []geom.Point3{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Reconstruct(tt.points, DefaultOptions())
			require.NotNil(t, res)
			assert.Empty(t, res.Facets)
		})
	}
}

func TestReconstructSphereIsManifold(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var points []geom.Point3
	for i := 0; i < 300; i++ {
		p := geom.Point3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Normalize()
		points = append(points, geom.Point3{X: 2 * p.X, Y: p.Y, Z: 0.7 * p.Z})
	}

	res := Reconstruct(points, DefaultOptions())
	require.NotEmpty(t, res.Facets)

	directed := make(map[[2]geom.Point3]int)
	undirectedCount := make(map[[2]geom.Point3]int)
	for _, f := range res.Facets {
		assert.InDelta(t, 1.0, f.Normal().Length(), epsilon)
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			directed[[2]geom.Point3{a, b}]++
			if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
				a, b = b, a
			}
			undirectedCount[[2]geom.Point3{a, b}]++
		}
	}
	for e, n := range directed {
		assert.Equal(t, 1, n, "directed edge %v repeated", e)
	}
	for e, n := range undirectedCount {
		assert.LessOrEqual(t, n, 2, "edge %v shared by %d facets", e, n)
	}
}

func fibonacciSphere(n int) []geom.Point3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	points := make([]geom.Point3, n)
	for i := range points {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		phi := float64(i) * golden
		points[i] = geom.Point3{X: r * math.Cos(phi), Y: y, Z: r * math.Sin(phi)}
	}
	return points
}

func TestReconstructFibonacciSphereIsClosed(t *testing.T) {
	points := fibonacciSphere(500)
	res := Reconstruct(points, DefaultOptions())
	require.NotEmpty(t, res.Facets)

	used := make(map[geom.Point3]bool)
	edges := make(map[[2]geom.Point3]int)
	for _, f := range res.Facets {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			used[a] = true
			if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
				a, b = b, a
			}
			edges[[2]geom.Point3{a, b}]++
		}
	}

	for e, n := range edges {
		assert.Equal(t, 2, n, "edge %v is open or overloaded", e)
	}
	assert.Len(t, used, len(points), "every sample should lie on the surface")
	assert.Equal(t, 2, len(used)-len(edges)+len(res.Facets), "Euler characteristic of a sphere")
	assertClosedOutward(t, points, res.Facets)
}

func TestReconstructDeterministic(t *testing.T) {
	points := bipyramid()
	a := Reconstruct(points, DefaultOptions())
	b := Reconstruct(points, DefaultOptions())
	assert.Equal(t, a.Facets, b.Facets)
}

func TestOptionsSanitized(t *testing.T) {
	def := DefaultOptions()
	assert.Equal(t, def, Options{}.sanitized())
	assert.Equal(t, def, Options{Beta: 4, RadiusRatioBound: -1}.sanitized())

	custom := Options{Beta: 0.2, RadiusRatioBound: 3, MaxHoleEdges: -1}
	assert.Equal(t, custom, custom.sanitized())
}
