package surface

import (
	"container/heap"
	"math"
	"sort"

	"github.com/Faultbox/minigis/pkg/geom"
)

const (
	initialRatio = 1.1
	ratioStep    = 0.5
)

// surfaceTri is an accepted facet in its final orientation.
type surfaceTri struct {
	v      [3]int
	normal geom.Point3
	radius float64
}

// candidate proposes attaching facet to the boundary edge a->b by its third
// vertex d. The new triangle is (b, a, d).
type candidate struct {
	a, b, d int
	facet   int
	inWedge bool
	key     float64 // radius inside the wedge, fold angle outside it
}

func (c candidate) less(o candidate) bool {
	if c.inWedge != o.inWedge {
		return c.inWedge
	}
	return c.key < o.key
}

type candidateQueue []candidate

func (q candidateQueue) Len() int           { return len(q) }
func (q candidateQueue) Less(i, j int) bool { return q[i].less(q[j]) }
func (q candidateQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *candidateQueue) Push(x any)        { *q = append(*q, x.(candidate)) }
func (q *candidateQueue) Pop() any {
	old := *q
	c := old[len(old)-1]
	*q = old[:len(old)-1]
	return c
}

// front grows an oriented, edge-manifold surface over a facet table.
type front struct {
	points []geom.Point3
	table  *facetTable
	opts   Options

	k     float64 // current radius ratio bound
	steps []float64

	tris        []surfaceTri
	dirEdge     map[edgeKey]int // directed edge -> triangle holding it
	edgeCount   map[edgeKey]int // undirected edge -> incident triangles
	onSurface   []bool
	boundaryDeg []int
	centroid    geom.Point3
	components  int
	holes       int

	queue candidateQueue
}

func newFront(points []geom.Point3, table *facetTable, opts Options) *front {
	fr := &front{
		points:      points,
		table:       table,
		opts:        opts,
		dirEdge:     make(map[edgeKey]int),
		edgeCount:   make(map[edgeKey]int),
		onSurface:   make([]bool, len(points)),
		boundaryDeg: make([]int, len(points)),
		steps:       ratioSteps(opts.RadiusRatioBound),
	}
	for _, p := range points {
		fr.centroid = fr.centroid.Add(p)
	}
	if len(points) > 0 {
		fr.centroid = fr.centroid.Scale(1 / float64(len(points)))
	}
	return fr
}

// ratioSteps lists the radius ratio bounds a component is grown with, from
// initialRatio up to and including bound.
func ratioSteps(bound float64) []float64 {
	var steps []float64
	for k := initialRatio; k < bound; k += ratioStep {
		steps = append(steps, k)
	}
	return append(steps, bound)
}

// run seeds and grows components until no seed is left, then closes small
// holes. Hull facets are tried first since they are known to face outwards.
func (fr *front) run() {
	order := make([]int, len(fr.table.facets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		fi, fj := &fr.table.facets[order[i]], &fr.table.facets[order[j]]
		if fi.hull() != fj.hull() {
			return fi.hull()
		}
		return fi.radius < fj.radius
	})

	for _, fi := range order {
		f := &fr.table.facets[fi]
		if f.used || fr.onSurface[f.v[0]] || fr.onSurface[f.v[1]] || fr.onSurface[f.v[2]] {
			continue
		}
		fr.k = fr.steps[0]
		fr.seed(fi)
		fr.grow()
		for _, k := range fr.steps[1:] {
			fr.k = k
			fr.extend()
		}
	}

	fr.fillHoles(fr.opts.MaxHoleEdges)
}

// extend requeues every boundary edge under the current ratio bound and
// grows from them.
func (fr *front) extend() {
	for i := 0; i < len(fr.tris); i++ {
		v := fr.tris[i].v
		fr.pushBest(v[0], v[1])
		fr.pushBest(v[1], v[2])
		fr.pushBest(v[2], v[0])
	}
	fr.grow()
}

func (fr *front) seed(fi int) {
	f := &fr.table.facets[fi]
	a, b, c := f.v[0], f.v[1], f.v[2]
	pa, pb, pc := fr.points[a], fr.points[b], fr.points[c]
	n := pb.Sub(pa).Cross(pc.Sub(pa))

	// Face away from the cell behind a hull facet, otherwise away from the
	// cloud centroid.
	var away geom.Point3
	if f.hull() {
		away = pa.Sub(fr.points[f.opp[0]])
	} else {
		away = geom.Facet{pa, pb, pc}.Centroid().Sub(fr.centroid)
	}
	if n.Dot(away) < 0 {
		b, c = c, b
	}

	fr.components++
	fr.add(a, b, c, fi, f.radius)
	fr.pushBest(a, b)
	fr.pushBest(b, c)
	fr.pushBest(c, a)
}

func (fr *front) grow() {
	for fr.queue.Len() > 0 {
		c := heap.Pop(&fr.queue).(candidate)
		if !fr.isBoundary(c.a, c.b) {
			continue
		}
		if fr.table.facets[c.facet].used || !fr.valid(c.a, c.b, c.d) {
			fr.pushBest(c.a, c.b)
			continue
		}

		fr.add(c.b, c.a, c.d, c.facet, fr.table.facets[c.facet].radius)
		fr.pushBest(c.a, c.d)
		fr.pushBest(c.d, c.b)
	}
}

func (fr *front) isBoundary(a, b int) bool {
	if fr.edgeCount[undirected(a, b)] != 1 {
		return false
	}
	_, ok := fr.dirEdge[edgeKey{a, b}]
	return ok
}

// valid checks that triangle (b, a, d) keeps the surface edge-manifold and
// consistently oriented.
func (fr *front) valid(a, b, d int) bool {
	if fr.onSurface[d] && fr.boundaryDeg[d] == 0 {
		return false
	}
	// New directed edges a->d and d->b.
	for _, e := range [2]edgeKey{{a, d}, {d, b}} {
		switch fr.edgeCount[undirected(e[0], e[1])] {
		case 0:
		case 1:
			if _, ok := fr.dirEdge[e]; ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// pushBest queues the best candidate for boundary edge a->b, if any.
func (fr *front) pushBest(a, b int) {
	if !fr.isBoundary(a, b) {
		return
	}
	ti := fr.dirEdge[edgeKey{a, b}]
	t := &fr.tris[ti]

	best := candidate{facet: -1}
	for _, fi := range fr.table.byEdge[undirected(a, b)] {
		f := &fr.table.facets[fi]
		if f.used {
			continue
		}
		d := f.third(a, b)
		if d < 0 || !fr.valid(a, b, d) {
			continue
		}

		pa, pb, pd := fr.points[a], fr.points[b], fr.points[d]
		n := pa.Sub(pb).Cross(pd.Sub(pb)).Normalize()
		cos := math.Max(-1, math.Min(1, n.Dot(t.normal)))
		fold := math.Acos(cos)
		if fold >= math.Pi-fr.opts.Beta {
			continue
		}

		c := candidate{a: a, b: b, d: d, facet: fi}
		if fold <= fr.opts.Beta {
			c.inWedge = true
			c.key = f.radius
		} else {
			if f.radius > fr.k*t.radius {
				continue
			}
			c.key = fold
		}
		if best.facet < 0 || c.less(best) {
			best = c
		}
	}

	if best.facet >= 0 {
		heap.Push(&fr.queue, best)
	}
}

// add records triangle (a, b, c). fi is the Delaunay facet it came from, or
// -1 for a triangle closing a hole.
func (fr *front) add(a, b, c, fi int, radius float64) {
	if fi >= 0 {
		fr.table.facets[fi].used = true
	}

	pa, pb, pc := fr.points[a], fr.points[b], fr.points[c]
	idx := len(fr.tris)
	fr.tris = append(fr.tris, surfaceTri{
		v:      [3]int{a, b, c},
		normal: pb.Sub(pa).Cross(pc.Sub(pa)).Normalize(),
		radius: radius,
	})

	for _, e := range [3]edgeKey{{a, b}, {b, c}, {c, a}} {
		fr.dirEdge[e] = idx
		u := undirected(e[0], e[1])
		fr.edgeCount[u]++
		switch fr.edgeCount[u] {
		case 1:
			fr.boundaryDeg[e[0]]++
			fr.boundaryDeg[e[1]]++
		case 2:
			fr.boundaryDeg[e[0]]--
			fr.boundaryDeg[e[1]]--
		}
	}
	fr.onSurface[a] = true
	fr.onSurface[b] = true
	fr.onSurface[c] = true
}
