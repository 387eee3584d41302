package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/minigis/pkg/geom"
)

// octahedron vertices: +X, -X, +Y, -Y, +Z, -Z.
func octahedron() []geom.Point3 {
	return []geom.Point3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
}

// octahedronFaces are the eight outward faces; the last two share edge -Y,-Z.
var octahedronFaces = [][3]int{
	{0, 2, 4}, {1, 4, 2}, {0, 4, 3}, {1, 3, 4},
	{0, 5, 2}, {1, 2, 5}, {0, 3, 5}, {1, 5, 3},
}

func openOctahedron(missing int) *front {
	points := octahedron()
	fr := newFront(points, &facetTable{byEdge: make(map[edgeKey][]int)}, DefaultOptions())
	for _, f := range octahedronFaces[:len(octahedronFaces)-missing] {
		r, _ := circumradius(points[f[0]], points[f[1]], points[f[2]])
		fr.add(f[0], f[1], f[2], -1, r)
	}
	return fr
}

func frontFacets(fr *front) []geom.Facet {
	facets := make([]geom.Facet, len(fr.tris))
	for i, t := range fr.tris {
		facets[i] = geom.Facet{fr.points[t.v[0]], fr.points[t.v[1]], fr.points[t.v[2]]}
	}
	return facets
}

func TestFillHoles(t *testing.T) {
	tests := []struct {
		name      string
		missing   int
		maxEdges  int
		wantTris  int
		wantHoles int
	}{
		{"triangle hole", 1, 15, 8, 1},
		{"quad hole", 2, 15, 8, 1},
		{"quad hole over limit", 2, 3, 6, 0},
		{"disabled", 1, -1, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := openOctahedron(tt.missing)
			fr.fillHoles(tt.maxEdges)

			require.Len(t, fr.tris, tt.wantTris)
			assert.Equal(t, tt.wantHoles, fr.holes)
			if tt.wantHoles > 0 {
				assertClosedOutward(t, fr.points, frontFacets(fr))
			}
		})
	}
}

func TestFillHolesKeepsLoneTriangle(t *testing.T) {
	points := octahedron()
	fr := newFront(points, &facetTable{byEdge: make(map[edgeKey][]int)}, DefaultOptions())
	fr.add(0, 2, 4, -1, 1)
	fr.fillHoles(15)

	assert.Len(t, fr.tris, 1)
	assert.Zero(t, fr.holes)
}

func TestRatioSteps(t *testing.T) {
	assert.Equal(t, []float64{1.1, 1.6, 2.1, 2.6, 3}, roundSteps(ratioSteps(3)))
	assert.Equal(t, []float64{1}, ratioSteps(1))
	assert.Equal(t, []float64{1.1}, ratioSteps(1.1))
}

func roundSteps(steps []float64) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = float64(int(s*10+0.5)) / 10
	}
	return out
}
