package surface

// fillHoles closes every boundary loop of at most maxEdges edges by clipping
// ears, smallest circumradius first. Loops through a vertex with more than
// one open edge are left alone, as is any loop that cannot be closed without
// breaking the edge-manifold property.
func (fr *front) fillHoles(maxEdges int) {
	if maxEdges < 3 {
		return
	}

	// A boundary edge a->b of a triangle is walked b->a around its hole.
	next := make(map[int]int)
	ambiguous := make(map[int]bool)
	var starts []int
	for _, t := range fr.tris {
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if fr.edgeCount[undirected(a, b)] != 1 {
				continue
			}
			if _, ok := next[b]; ok {
				ambiguous[b] = true
				continue
			}
			next[b] = a
			starts = append(starts, b)
		}
	}

	visited := make(map[int]bool)
	for _, start := range starts {
		if visited[start] {
			continue
		}
		loop, ok := fr.walkLoop(start, next, ambiguous, maxEdges)
		for _, v := range loop {
			visited[v] = true
		}
		if ok {
			fr.closeLoop(loop)
		}
	}
}

// walkLoop follows next from start. It reports false when the walk leaves
// the boundary, meets an ambiguous vertex or exceeds maxEdges.
func (fr *front) walkLoop(start int, next map[int]int, ambiguous map[int]bool, maxEdges int) ([]int, bool) {
	loop := []int{start}
	seen := map[int]bool{start: true}
	v := start
	for {
		if ambiguous[v] {
			return loop, false
		}
		n, ok := next[v]
		if !ok {
			return loop, false
		}
		if n == start {
			return loop, len(loop) >= 3
		}
		if seen[n] || len(loop) == maxEdges {
			return loop, false
		}
		seen[n] = true
		loop = append(loop, n)
		v = n
	}
}

// closeLoop triangulates the hole bounded by loop. Triangles already added
// stay if the loop cannot be finished.
func (fr *front) closeLoop(loop []int) {
	loop = append([]int(nil), loop...)
	for len(loop) > 3 {
		best, bestRadius := -1, 0.0
		for i := range loop {
			prev := loop[(i+len(loop)-1)%len(loop)]
			cur, nxt := loop[i], loop[(i+1)%len(loop)]
			if fr.edgeCount[undirected(prev, nxt)] != 0 {
				continue
			}
			r, ok := circumradius(fr.points[prev], fr.points[cur], fr.points[nxt])
			if !ok {
				continue
			}
			if best < 0 || r < bestRadius {
				best, bestRadius = i, r
			}
		}
		if best < 0 {
			return
		}

		prev := loop[(best+len(loop)-1)%len(loop)]
		fr.add(prev, loop[best], loop[(best+1)%len(loop)], -1, bestRadius)
		loop = append(loop[:best], loop[best+1:]...)
	}

	// A lone triangle bounds a three-edge loop too; do not back it.
	t := fr.dirEdge[edgeKey{loop[1], loop[0]}]
	if fr.dirEdge[edgeKey{loop[2], loop[1]}] == t && fr.dirEdge[edgeKey{loop[0], loop[2]}] == t {
		return
	}
	r, ok := circumradius(fr.points[loop[0]], fr.points[loop[1]], fr.points[loop[2]])
	if ok {
		fr.add(loop[0], loop[1], loop[2], -1, r)
		fr.holes++
	}
}
