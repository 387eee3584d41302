package surface

import (
	"math"
	"sort"

	"github.com/Faultbox/minigis/pkg/geom"
)

// areaEps is the relative area under which a triangle counts as degenerate.
const areaEps = 1e-12

type edgeKey [2]int

func undirected(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// candidateFacet is one triangle of the Delaunay triangulation.
type candidateFacet struct {
	v      [3]int // sorted vertex indices
	opp    [2]int // opposite vertex of each incident finite cell, -1 if absent
	radius float64
	used   bool
}

// hull reports whether only one finite cell touches the facet.
func (f *candidateFacet) hull() bool {
	return f.opp[1] < 0
}

func (f *candidateFacet) third(a, b int) int {
	for _, v := range f.v {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

// facetTable indexes the non-degenerate facets of a triangulation.
type facetTable struct {
	facets []candidateFacet
	byEdge map[edgeKey][]int
}

func buildFacetTable(points []geom.Point3, tets [][4]int) *facetTable {
	ft := &facetTable{byEdge: make(map[edgeKey][]int)}
	index := make(map[[3]int]int, len(tets)*2)

	for _, t := range tets {
		for i := 0; i < 4; i++ {
			var tri [3]int
			n := 0
			for j := 0; j < 4; j++ {
				if j != i {
					tri[n] = t[j]
					n++
				}
			}
			sort.Ints(tri[:])

			if fi, ok := index[tri]; ok {
				if fi >= 0 {
					ft.facets[fi].opp[1] = t[i]
				}
				continue
			}

			r, ok := circumradius(points[tri[0]], points[tri[1]], points[tri[2]])
			if !ok {
				index[tri] = -1
				continue
			}
			index[tri] = len(ft.facets)
			ft.facets = append(ft.facets, candidateFacet{
				v:      tri,
				opp:    [2]int{t[i], -1},
				radius: r,
			})
		}
	}

	for fi, f := range ft.facets {
		for _, e := range [3]edgeKey{
			undirected(f.v[0], f.v[1]),
			undirected(f.v[1], f.v[2]),
			undirected(f.v[0], f.v[2]),
		} {
			ft.byEdge[e] = append(ft.byEdge[e], fi)
		}
	}
	return ft
}

// circumradius returns the radius of the circle through a, b and c, and false
// when the triangle is degenerate.
func circumradius(a, b, c geom.Point3) (float64, bool) {
	ab := b.Sub(a).Length()
	bc := c.Sub(b).Length()
	ca := a.Sub(c).Length()
	area2 := b.Sub(a).Cross(c.Sub(a)).Length()

	longest := math.Max(ab, math.Max(bc, ca))
	if longest == 0 || area2 <= areaEps*longest*longest {
		return 0, false
	}
	return ab * bc * ca / (2 * area2), true
}
