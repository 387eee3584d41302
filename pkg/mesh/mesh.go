// Package mesh turns reconstructed facets into the interleaved vertex stream
// uploaded to the GPU: position xyz followed by normal xyz, three vertices
// per triangle, no index buffer.
package mesh

import (
	"math"

	"github.com/Faultbox/minigis/pkg/geom"
)

// Stride is the number of float32 values per vertex.
const Stride = 6

// Target range of the normalized coordinates.
const (
	RangeMin = -1.0
	RangeMax = 1.0
)

// Bounds is the per-axis extent of the raw positions. Each axis keeps its
// own min/max pair.
type Bounds struct {
	Min, Max [3]float64
	empty    bool
}

// NewBounds returns bounds that contain nothing yet.
func NewBounds() Bounds {
	return Bounds{empty: true}
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p geom.Point3) {
	for axis := 0; axis < 3; axis++ {
		v := p.Axis(axis)
		if b.empty || v < b.Min[axis] {
			b.Min[axis] = v
		}
		if b.empty || v > b.Max[axis] {
			b.Max[axis] = v
		}
	}
	b.empty = false
}

// Empty reports whether no point was added.
func (b Bounds) Empty() bool {
	return b.empty
}

// Remap maps v from the axis extent onto [lo, hi]. A flat axis maps to the
// middle of the range so no NaN or Inf can reach the vertex buffer.
func (b Bounds) Remap(axis int, v, lo, hi float64) float64 {
	span := b.Max[axis] - b.Min[axis]
	if span == 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return (lo + hi) / 2
	}
	return (v-b.Min[axis])*(hi-lo)/span + lo
}

// Buffer is a flat-shaded triangle list ready for upload.
type Buffer struct {
	// Data holds Stride floats per vertex.
	Data []float32

	bounds Bounds
}

// Build computes one flat normal per facet, emits three vertices per facet in
// facet order, and normalizes every axis independently into
// [RangeMin, RangeMax]. Normals come from the raw positions using the
// facet's own winding; no re-orientation happens here.
func Build(facets []geom.Facet) *Buffer {
	buf := &Buffer{
		Data:   make([]float32, 0, len(facets)*3*Stride),
		bounds: NewBounds(),
	}

	positions := make([]geom.Point3, 0, len(facets)*3)
	normals := make([]geom.Point3, 0, len(facets))
	for _, f := range facets {
		normals = append(normals, f.Normal())
		for _, p := range f {
			positions = append(positions, p)
			buf.bounds.Extend(p)
		}
	}

	for i, p := range positions {
		n := normals[i/3]
		buf.Data = append(buf.Data,
			float32(buf.bounds.Remap(0, p.X, RangeMin, RangeMax)),
			float32(buf.bounds.Remap(1, p.Y, RangeMin, RangeMax)),
			float32(buf.bounds.Remap(2, p.Z, RangeMin, RangeMax)),
			float32(n.X), float32(n.Y), float32(n.Z),
		)
	}
	return buf
}

// VertexCount returns the number of vertices in the buffer.
func (b *Buffer) VertexCount() int {
	return len(b.Data) / Stride
}

// TriangleCount returns the number of triangles in the buffer.
func (b *Buffer) TriangleCount() int {
	return b.VertexCount() / 3
}

// Bounds returns the raw extent the positions were normalized from.
func (b *Buffer) Bounds() Bounds {
	return b.bounds
}

// Position returns the normalized position of vertex i.
func (b *Buffer) Position(i int) [3]float32 {
	o := i * Stride
	return [3]float32{b.Data[o], b.Data[o+1], b.Data[o+2]}
}

// Normal returns the normal of vertex i.
func (b *Buffer) Normal(i int) [3]float32 {
	o := i*Stride + 3
	return [3]float32{b.Data[o], b.Data[o+1], b.Data[o+2]}
}
