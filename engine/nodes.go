package engine

import "fmt"

// Facet is one face of the hull and a node of the facet list. A facet of
// a d-dimensional hull has d vertices; neighbors is kept aligned with
// vertices so that neighbors[i] is the facet across the ridge obtained by
// dropping vertices[i].
type Facet struct {
	id        int
	vertices  []*Vertex
	neighbors []*Facet
	ridges    []*Ridge
	normal    []float64
	offset    float64
	coplanar  []int
	sentinel  bool
	visit     int
	prev      *Facet
	next      *Facet
}

// ID returns the facet's identifier. The sentinel has ID 0.
func (f *Facet) ID() int { return f.id }

// Next returns the following facet in the list, or nil past the sentinel.
func (f *Facet) Next() *Facet { return f.next }

// Prev returns the preceding facet in the list, or nil before the head.
func (f *Facet) Prev() *Facet { return f.prev }

// IsSentinel reports whether this is the list terminator.
func (f *Facet) IsSentinel() bool { return f.sentinel }

// Vertices returns the facet's vertices. Callers must not modify the
// returned slice.
func (f *Facet) Vertices() []*Vertex { return f.vertices }

// Neighbors returns the adjacent facets, aligned with Vertices.
func (f *Facet) Neighbors() []*Facet { return f.neighbors }

// Ridges returns the ridges recorded on this facet. Simplicial facets
// materialize ridges only where the construction produced them; the slice
// may be empty.
func (f *Facet) Ridges() []*Ridge { return f.ridges }

// Normal returns the outward unit normal of the facet's hyperplane.
func (f *Facet) Normal() []float64 { return f.normal }

// Offset returns the hyperplane offset; normal·p + offset is the signed
// distance of p from the facet, positive above (outside).
func (f *Facet) Offset() float64 { return f.offset }

// Coplanar returns the indices of input points retained on this facet in
// keep-coplanar mode.
func (f *Facet) Coplanar() []int { return f.coplanar }

func (f *Facet) String() string {
	if f.sentinel {
		return "f0 (sentinel)"
	}
	return fmt.Sprintf("f%d", f.id)
}

func (f *Facet) hasNeighbor(g *Facet) bool {
	for _, nb := range f.neighbors {
		if nb == g {
			return true
		}
	}
	return false
}

// Vertex is a hull vertex and a node of the vertex list.
type Vertex struct {
	id       int
	pointIdx int
	point    []float64
	refs     int
	sentinel bool
	prev     *Vertex
	next     *Vertex
}

// ID returns the vertex's identifier. The sentinel has ID 0.
func (v *Vertex) ID() int { return v.id }

// Next returns the following vertex in the list, or nil past the sentinel.
func (v *Vertex) Next() *Vertex { return v.next }

// Prev returns the preceding vertex in the list, or nil before the head.
func (v *Vertex) Prev() *Vertex { return v.prev }

// IsSentinel reports whether this is the list terminator.
func (v *Vertex) IsSentinel() bool { return v.sentinel }

// Point returns the vertex's coordinates as a view into the input buffer,
// or nil for the sentinel.
func (v *Vertex) Point() []float64 { return v.point }

func (v *Vertex) String() string {
	if v.sentinel {
		return "v0 (sentinel)"
	}
	return fmt.Sprintf("v%d(p%d)", v.id, v.pointIdx)
}

// Ridge is the (d-1)-dimensional boundary between two facets. Ridges are
// not list nodes; they hang off the facets that share them.
type Ridge struct {
	id       int
	vertices []*Vertex
	top      *Facet
	bottom   *Facet
}

// ID returns the ridge's identifier.
func (r *Ridge) ID() int { return r.id }

// Vertices returns the ridge's vertices. Callers must not modify the
// returned slice.
func (r *Ridge) Vertices() []*Vertex { return r.vertices }

// Top returns the facet on the new side of the ridge.
func (r *Ridge) Top() *Facet { return r.top }

// Bottom returns the facet on the old side of the ridge.
func (r *Ridge) Bottom() *Facet { return r.bottom }

// IsSentinel always reports false; ridges have no sentinel.
func (r *Ridge) IsSentinel() bool { return false }

func (r *Ridge) String() string {
	return fmt.Sprintf("r%d", r.id)
}

// List maintenance. Each list keeps its sentinel at the tail: the head
// pointer moves, the sentinel never does.

func (st *State) appendFacet(f *Facet) {
	s := st.facetTail
	f.prev, f.next = s.prev, s
	if s.prev != nil {
		s.prev.next = f
	} else {
		st.facetList = f
	}
	s.prev = f
	st.numFacets++
}

func (st *State) removeFacet(f *Facet) {
	if f.prev != nil {
		f.prev.next = f.next
	} else {
		st.facetList = f.next
	}
	f.next.prev = f.prev
	f.prev, f.next = nil, nil
	st.numFacets--
}

func (st *State) appendVertex(v *Vertex) {
	s := st.vertexTail
	v.prev, v.next = s.prev, s
	if s.prev != nil {
		s.prev.next = v
	} else {
		st.vertexList = v
	}
	s.prev = v
	st.numVertices++
}

func (st *State) removeVertex(v *Vertex) {
	if v.prev != nil {
		v.prev.next = v.next
	} else {
		st.vertexList = v.next
	}
	v.next.prev = v.prev
	v.prev, v.next = nil, nil
	st.numVertices--
}
