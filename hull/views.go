package hull

import (
	"iter"

	"github.com/hullkit/hull-runtime/engine"
)

// Face is a borrowed view over one facet of the hull. Views carry no
// ownership: identity is the underlying node pointer, and validity is
// bounded by the owning Hull (and, for error snapshots, by the error
// value). The dim stamped on a view is the ambient dimensionality it was
// captured with; iteration stamps the hull dimension, error snapshots
// stamp the dimension the bridge was given.
type Face struct {
	f   *engine.Facet
	dim int
}

// faceFromPtr wraps a possibly-absent facet node. An absent node yields
// an invalid view.
func faceFromPtr(f *engine.Facet, dim int) Face {
	if f == nil {
		return Face{}
	}
	return Face{f: f, dim: dim}
}

// Valid reports whether the view references a node at all.
func (f Face) Valid() bool { return f.f != nil }

// IsSentinel reports whether the view references the facet list's
// terminator, which carries no geometric data.
func (f Face) IsSentinel() bool { return f.f != nil && f.f.IsSentinel() }

// ID returns the underlying facet's identifier.
func (f Face) ID() int {
	if f.f == nil {
		return 0
	}
	return f.f.ID()
}

// Next steps forward along the facet list. Stepping past the sentinel,
// or from an invalid view, yields an invalid view.
func (f Face) Next() Face {
	if f.f == nil {
		return Face{}
	}
	return faceFromPtr(f.f.Next(), f.dim)
}

// Prev steps backward along the facet list.
func (f Face) Prev() Face {
	if f.f == nil {
		return Face{}
	}
	return faceFromPtr(f.f.Prev(), f.dim)
}

// Eq reports whether two views denote the same node.
func (f Face) Eq(other Face) bool { return f.f == other.f }

// Simplicial reports whether the facet's vertex count equals the view's
// ambient dimensionality.
func (f Face) Simplicial() bool {
	return f.f != nil && len(f.f.Vertices()) == f.dim
}

// Normal returns the facet's outward unit normal, or nil for sentinel or
// invalid views.
func (f Face) Normal() []float64 {
	if f.f == nil {
		return nil
	}
	return f.f.Normal()
}

// Offset returns the facet's hyperplane offset.
func (f Face) Offset() float64 {
	if f.f == nil {
		return 0
	}
	return f.f.Offset()
}

// Vertices returns views over the facet's vertices.
func (f Face) Vertices() []Vertex {
	if f.f == nil {
		return nil
	}
	nodes := f.f.Vertices()
	out := make([]Vertex, len(nodes))
	for i, v := range nodes {
		out[i] = vertexFromPtr(v, f.dim)
	}
	return out
}

// Ridges returns views over the ridges recorded on this facet. The slice
// may be empty for simplicial facets.
func (f Face) Ridges() []Ridge {
	if f.f == nil {
		return nil
	}
	nodes := f.f.Ridges()
	out := make([]Ridge, len(nodes))
	for i, r := range nodes {
		out[i] = ridgeFromPtr(r, f.dim)
	}
	return out
}

func (f Face) String() string {
	if f.f == nil {
		return "f(none)"
	}
	return f.f.String()
}

// Vertex is a borrowed view over one hull vertex. See Face for the view
// semantics.
type Vertex struct {
	v   *engine.Vertex
	dim int
}

func vertexFromPtr(v *engine.Vertex, dim int) Vertex {
	if v == nil {
		return Vertex{}
	}
	return Vertex{v: v, dim: dim}
}

// Valid reports whether the view references a node at all.
func (v Vertex) Valid() bool { return v.v != nil }

// IsSentinel reports whether the view references the vertex list's
// terminator.
func (v Vertex) IsSentinel() bool { return v.v != nil && v.v.IsSentinel() }

// ID returns the underlying vertex's identifier.
func (v Vertex) ID() int {
	if v.v == nil {
		return 0
	}
	return v.v.ID()
}

// Next steps forward along the vertex list.
func (v Vertex) Next() Vertex {
	if v.v == nil {
		return Vertex{}
	}
	return vertexFromPtr(v.v.Next(), v.dim)
}

// Prev steps backward along the vertex list.
func (v Vertex) Prev() Vertex {
	if v.v == nil {
		return Vertex{}
	}
	return vertexFromPtr(v.v.Prev(), v.dim)
}

// Eq reports whether two views denote the same node.
func (v Vertex) Eq(other Vertex) bool { return v.v == other.v }

// Point returns the vertex's coordinate view into the input buffer, or
// nil for sentinel or invalid views.
func (v Vertex) Point() []float64 {
	if v.v == nil {
		return nil
	}
	return v.v.Point()
}

func (v Vertex) String() string {
	if v.v == nil {
		return "v(none)"
	}
	return v.v.String()
}

// Ridge is a borrowed view over a ridge between two facets.
type Ridge struct {
	r   *engine.Ridge
	dim int
}

func ridgeFromPtr(r *engine.Ridge, dim int) Ridge {
	if r == nil {
		return Ridge{}
	}
	return Ridge{r: r, dim: dim}
}

// Valid reports whether the view references a node at all.
func (r Ridge) Valid() bool { return r.r != nil }

// IsSentinel always reports false; ridges do not participate in a
// sentinel-terminated list.
func (r Ridge) IsSentinel() bool { return false }

// ID returns the underlying ridge's identifier.
func (r Ridge) ID() int {
	if r.r == nil {
		return 0
	}
	return r.r.ID()
}

// Eq reports whether two views denote the same node.
func (r Ridge) Eq(other Ridge) bool { return r.r == other.r }

// Vertices returns views over the ridge's vertices.
func (r Ridge) Vertices() []Vertex {
	if r.r == nil {
		return nil
	}
	nodes := r.r.Vertices()
	out := make([]Vertex, len(nodes))
	for i, v := range nodes {
		out[i] = vertexFromPtr(v, r.dim)
	}
	return out
}

// Top returns the facet on the new side of the ridge.
func (r Ridge) Top() Face {
	if r.r == nil {
		return Face{}
	}
	return faceFromPtr(r.r.Top(), r.dim)
}

// Bottom returns the facet on the old side of the ridge.
func (r Ridge) Bottom() Face {
	if r.r == nil {
		return Face{}
	}
	return faceFromPtr(r.r.Bottom(), r.dim)
}

func (r Ridge) String() string {
	if r.r == nil {
		return "r(none)"
	}
	return r.r.String()
}

// Sequence producers. Each call returns a fresh, restartable sequence;
// a partially consumed sequence cannot be resumed by a later call.

func faceSeq(start Face, step func(Face) Face) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for f := start; f.Valid(); f = step(f) {
			if !yield(f) {
				return
			}
		}
	}
}

func vertexSeq(start Vertex, step func(Vertex) Vertex) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for v := start; v.Valid(); v = step(v) {
			if !yield(v) {
				return
			}
		}
	}
}

// visibleFaces derives the data-only sequence by filtering out the
// sentinel; there is no separate traversal logic.
func visibleFaces(all iter.Seq[Face]) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for f := range all {
			if f.IsSentinel() {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

func visibleVertices(all iter.Seq[Vertex]) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for v := range all {
			if v.IsSentinel() {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
