// Package surface reconstructs a triangulated surface from an unorganized
// point cloud.
//
// Reconstruction runs in two stages. A 3D Delaunay triangulation of the
// points supplies the candidate triangles. An advancing front then grows an
// oriented surface from a seed triangle, repeatedly attaching the most
// plausible candidate across each boundary edge: candidates that continue
// the surface smoothly (within the beta wedge) are ranked by the radius of
// their circumcircle, sharper folds by their fold angle. A candidate must
// keep every edge shared by at most two triangles with opposite directions.
// Each component is regrown with a looser radius ratio bound until the
// configured one is reached, and small boundary loops left at the end are
// closed.
package surface

import (
	"math"

	"github.com/Faultbox/minigis/pkg/geom"
)

// Options tunes the advancing front.
type Options struct {
	// Beta is the half-angle, in radians, of the wedge around the smooth
	// continuation of the surface. Candidates inside it are ranked by
	// radius; folds of pi-Beta or more are never accepted.
	Beta float64 `yaml:"beta"`

	// RadiusRatioBound discards candidates outside the wedge whose radius
	// exceeds this multiple of the neighbouring surface triangle's radius.
	// Each component is grown with a ratio bound stepped up from 1.1 to
	// this value.
	RadiusRatioBound float64 `yaml:"radius_ratio_bound"`

	// MaxHoleEdges is the longest boundary loop closed after growing.
	// Negative disables hole filling.
	MaxHoleEdges int `yaml:"max_hole_edges"`
}

// DefaultOptions returns beta = pi/6, a radius ratio bound of 5 and holes
// of up to 15 edges filled.
func DefaultOptions() Options {
	return Options{
		Beta:             math.Pi / 6,
		RadiusRatioBound: 5,
		MaxHoleEdges:     15,
	}
}

func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.Beta <= 0 || o.Beta >= math.Pi/2 {
		o.Beta = def.Beta
	}
	if o.RadiusRatioBound <= 0 {
		o.RadiusRatioBound = def.RadiusRatioBound
	}
	if o.MaxHoleEdges == 0 {
		o.MaxHoleEdges = def.MaxHoleEdges
	}
	return o
}

// Result is the reconstructed surface plus counters for diagnostics.
type Result struct {
	// Facets in acceptance order; each facet's vertex order is its
	// orientation.
	Facets []geom.Facet

	Tetrahedra int // finite Delaunay cells
	Candidates int // non-degenerate Delaunay facets
	Components int // seeds grown
	Duplicates int // input points ignored as coincident
	Holes      int // boundary loops closed after growing
}

// Reconstruct triangulates points and extracts the facets on the
// reconstructed surface. Empty, too small or coplanar inputs give an empty
// result.
func Reconstruct(points []geom.Point3, opts Options) *Result {
	res := &Result{}
	if len(points) < 4 {
		return res
	}

	tr := Triangulate(points)
	tets := tr.Tetrahedra()
	res.Tetrahedra = len(tets)
	res.Duplicates = tr.Skipped()
	if len(tets) == 0 {
		return res
	}

	table := buildFacetTable(tr.Points(), tets)
	res.Candidates = len(table.facets)

	fr := newFront(tr.Points(), table, opts.sanitized())
	fr.run()
	res.Components = fr.components
	res.Holes = fr.holes

	res.Facets = make([]geom.Facet, len(fr.tris))
	for i, t := range fr.tris {
		res.Facets[i] = geom.Facet{points[t.v[0]], points[t.v[1]], points[t.v[2]]}
	}
	return res
}
