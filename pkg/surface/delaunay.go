package surface

import (
	"math"

	"github.com/Faultbox/minigis/pkg/geom"
)

const (
	// superScale sizes the enclosing tetrahedron relative to the input extent.
	superScale = 500.0

	// orientEps is the relative volume below which a new tetrahedron is
	// treated as flat and the insertion cavity is grown instead.
	orientEps = 1e-12

	// dupEps is the relative distance under which two points coincide.
	dupEps = 1e-12
)

// tetra is one cell of the triangulation. Vertices are positively oriented
// (orient3d(v0, v1, v2, v3) > 0). n[i] is the cell across the face opposite
// v[i], or -1 on the outer hull.
type tetra struct {
	v      [4]int
	n      [4]int
	center geom.Point3
	r2     float64
	dead   bool
	mark   int
}

// Triangulation is a 3D Delaunay triangulation built by incremental
// Bowyer-Watson insertion inside an enclosing super-tetrahedron.
type Triangulation struct {
	points []geom.Point3 // input points followed by the 4 super vertices
	nReal  int
	tets   []tetra
	last   int
	stamp  int
	volTol float64
	dupTol float64
	skip   int
}

// Triangulate builds the Delaunay triangulation of points. Exact duplicates
// are ignored. Fewer than four points, or a coplanar set, yields no cells.
func Triangulate(points []geom.Point3) *Triangulation {
	tr := &Triangulation{nReal: len(points)}
	if len(points) == 0 {
		return tr
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = geom.Point3{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = geom.Point3{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	extent := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	if extent == 0 {
		extent = 1
	}
	tr.volTol = orientEps * extent * extent * extent
	tr.dupTol = dupEps * extent

	tr.points = make([]geom.Point3, 0, len(points)+4)
	tr.points = append(tr.points, points...)

	c := lo.Add(hi).Scale(0.5)
	m := superScale * extent
	tr.points = append(tr.points,
		geom.Point3{X: c.X - m, Y: c.Y - m, Z: c.Z - m},
		geom.Point3{X: c.X + 5*m, Y: c.Y - m, Z: c.Z - m},
		geom.Point3{X: c.X - m, Y: c.Y + 5*m, Z: c.Z - m},
		geom.Point3{X: c.X - m, Y: c.Y - m, Z: c.Z + 5*m},
	)
	s := len(points)
	tr.tets = append(tr.tets, tr.newTetra([4]int{s, s + 1, s + 2, s + 3}))
	tr.tets[0].n = [4]int{-1, -1, -1, -1}

	for i := range points {
		tr.insert(i)
	}
	return tr
}

// Points returns the input points.
func (tr *Triangulation) Points() []geom.Point3 {
	return tr.points[:tr.nReal]
}

// Skipped returns how many input points coincided with an earlier one.
func (tr *Triangulation) Skipped() int {
	return tr.skip
}

// Tetrahedra returns the finite cells as positively oriented index quads.
func (tr *Triangulation) Tetrahedra() [][4]int {
	var out [][4]int
	for i := range tr.tets {
		t := &tr.tets[i]
		if t.dead || !tr.finite(t) {
			continue
		}
		out = append(out, t.v)
	}
	return out
}

func (tr *Triangulation) finite(t *tetra) bool {
	for _, v := range t.v {
		if v >= tr.nReal {
			return false
		}
	}
	return true
}

func (tr *Triangulation) newTetra(v [4]int) tetra {
	c, r2 := circumsphere(tr.points[v[0]], tr.points[v[1]], tr.points[v[2]], tr.points[v[3]])
	return tetra{v: v, center: c, r2: r2}
}

// orientFace is the orientation of t with v[i] replaced by p: positive when p
// lies on the same side of that face as v[i].
func (tr *Triangulation) orientFace(t *tetra, i int, p geom.Point3) float64 {
	var q [4]geom.Point3
	for k := 0; k < 4; k++ {
		q[k] = tr.points[t.v[k]]
	}
	q[i] = p
	return orient3d(q[0], q[1], q[2], q[3])
}

// locate walks from the last created cell towards p and returns a cell whose
// closure contains p.
func (tr *Triangulation) locate(p geom.Point3) int {
	cur := tr.last
	limit := 4*len(tr.tets) + 16
	for step := 0; step < limit; step++ {
		t := &tr.tets[cur]
		moved := false
		for k := 0; k < 4; k++ {
			i := (k + step) & 3
			if t.n[i] >= 0 && tr.orientFace(t, i, p) < 0 {
				cur = t.n[i]
				moved = true
				break
			}
		}
		if !moved {
			return cur
		}
	}

	// The walk can cycle on near-degenerate input; fall back to a scan.
	for i := range tr.tets {
		t := &tr.tets[i]
		if t.dead {
			continue
		}
		inside := true
		for k := 0; k < 4 && inside; k++ {
			inside = tr.orientFace(t, k, p) >= 0
		}
		if inside {
			return i
		}
	}
	return tr.last
}

type cavityFace struct {
	tet, face int
}

func (tr *Triangulation) insert(pi int) {
	p := tr.points[pi]
	start := tr.locate(p)

	for _, v := range tr.tets[start].v {
		if tr.points[v].Sub(p).Length() <= tr.dupTol {
			tr.skip++
			return
		}
	}

	tr.stamp++
	stamp := tr.stamp
	cavity := []int{start}
	tr.tets[start].mark = stamp

	// Bowyer-Watson conflict region: cells whose circumsphere holds p.
	for i := 0; i < len(cavity); i++ {
		t := &tr.tets[cavity[i]]
		for _, nb := range t.n {
			if nb < 0 || tr.tets[nb].mark == stamp {
				continue
			}
			nt := &tr.tets[nb]
			if nt.center.Sub(p).Length2() < nt.r2 {
				nt.mark = stamp
				cavity = append(cavity, nb)
			}
		}
	}

	// Grow the cavity until every boundary face is strictly visible from p,
	// so the new cells are never flat or inverted.
	var boundary []cavityFace
	for {
		boundary = boundary[:0]
		grown := false
		for _, ci := range cavity {
			t := &tr.tets[ci]
			for i, nb := range t.n {
				if nb >= 0 && tr.tets[nb].mark == stamp {
					continue
				}
				if tr.orientFace(t, i, p) <= tr.volTol && nb >= 0 {
					tr.tets[nb].mark = stamp
					cavity = append(cavity, nb)
					grown = true
					continue
				}
				boundary = append(boundary, cavityFace{tet: ci, face: i})
			}
		}
		if !grown {
			break
		}
	}

	for _, ci := range cavity {
		tr.tets[ci].dead = true
	}

	type halfLink struct {
		tet, face int
	}
	links := make(map[[2]int]halfLink, len(boundary)*3/2)

	for _, bf := range boundary {
		old := tr.tets[bf.tet]
		v := old.v
		v[bf.face] = pi

		nt := tr.newTetra(v)
		nt.n = [4]int{-1, -1, -1, -1}
		idx := len(tr.tets)

		outer := old.n[bf.face]
		nt.n[bf.face] = outer
		if outer >= 0 {
			on := &tr.tets[outer]
			for j := range on.n {
				if on.n[j] == bf.tet {
					on.n[j] = idx
				}
			}
		}
		tr.tets = append(tr.tets, nt)

		// Faces through p: the face opposite v[k] holds p and the two
		// remaining boundary-face vertices, which key the shared edge.
		for k := 0; k < 4; k++ {
			if k == bf.face {
				continue
			}
			var e []int
			for j := 0; j < 4; j++ {
				if j != k && j != bf.face {
					e = append(e, v[j])
				}
			}
			key := [2]int{e[0], e[1]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if other, ok := links[key]; ok {
				tr.tets[idx].n[k] = other.tet
				tr.tets[other.tet].n[other.face] = idx
				delete(links, key)
			} else {
				links[key] = halfLink{tet: idx, face: k}
			}
		}
		tr.last = idx
	}
}

// orient3d is six times the signed volume of (a, b, c, d).
func orient3d(a, b, c, d geom.Point3) float64 {
	return b.Sub(a).Dot(c.Sub(a).Cross(d.Sub(a)))
}

// circumsphere returns the center and squared radius of the sphere through
// four points. A flat tetrahedron gets an infinite radius.
func circumsphere(a, b, c, d geom.Point3) (geom.Point3, float64) {
	ba, ca, da := b.Sub(a), c.Sub(a), d.Sub(a)
	den := 2 * ba.Dot(ca.Cross(da))
	if den == 0 {
		return a, math.Inf(1)
	}
	num := ca.Cross(da).Scale(ba.Length2()).
		Add(da.Cross(ba).Scale(ca.Length2())).
		Add(ba.Cross(ca).Scale(da.Length2()))
	off := num.Scale(1 / den)
	return a.Add(off), off.Length2()
}
