package engine

import (
	"io"

	"go.uber.org/zap"
)

const defaultDistanceEpsilon = 1e-10

// Config carries the option flags, numeric tuning, and auxiliary buffer
// references applied at state creation. The engine retains the auxiliary
// slices raw: whoever supplies them must keep them alive, unmoved, and
// unmodified for the lifetime of the State.
type Config struct {
	// Delaunay marks the input as paraboloid-lifted; the last coordinate
	// is the lifted one and the input dimension is recorded as dim-1.
	Delaunay bool
	// UpperDelaunay keeps the facets of the upper lifted hull.
	UpperDelaunay bool
	// ScaleLast rescales the last input coordinate into the range of the
	// others, in place, when the input is set.
	ScaleLast bool
	// Triangulate requests simplicial output. The construction already
	// produces simplicial facets, so this is recorded for checking only.
	Triangulate bool
	// KeepCoplanar retains points within tolerance of a facet on that
	// facet's coplanar set instead of discarding them.
	KeepCoplanar bool

	// DistanceEpsilon is the visibility tolerance. Zero selects the
	// default.
	DistanceEpsilon float64
	// OutsideWidth widens the tolerance used by the output checks.
	OutsideWidth float64

	// Auxiliary buffers. All optional.
	GoodPoint      []float64
	GoodVertex     []float64
	FirstPoint     []float64
	UpperThreshold []float64
	LowerThreshold []float64
	UpperBound     []float64
	LowerBound     []float64
	FeasiblePoint  []float64
	FeasibleString []byte
	NearZero       []float64
}

// State is the single mutable block every entry point reads and writes.
// Create it with New, feed it with SetInput, and release it exactly once
// with Free.
type State struct {
	cfg Config

	dim       int
	inputDim  int
	points    []float64
	numPoints int
	distEps   float64

	facetList  *Facet
	facetTail  *Facet
	vertexList *Vertex
	vertexTail *Vertex

	numFacets   int
	numVertices int

	facetID  int
	vertexID int
	ridgeID  int
	visitID  int

	vertexByPoint map[int]*Vertex
	interior      []float64

	tracedFacet  *Facet
	tracedRidge  *Ridge
	tracedVertex *Vertex

	errOut io.Writer

	initialized bool
	built       bool
	freed       bool
}

// New allocates a fresh engine state. It cannot fail; all fallible work
// happens in the entry points that operate on the state.
func New(cfg Config) *State {
	if cfg.DistanceEpsilon <= 0 {
		cfg.DistanceEpsilon = defaultDistanceEpsilon
	}

	st := &State{
		cfg:           cfg,
		distEps:       cfg.DistanceEpsilon,
		facetID:       1,
		vertexID:      1,
		ridgeID:       1,
		vertexByPoint: make(map[int]*Vertex),
		errOut:        io.Discard,
	}

	st.facetTail = &Facet{sentinel: true}
	st.facetList = st.facetTail
	st.vertexTail = &Vertex{sentinel: true}
	st.vertexList = st.vertexTail

	return st
}

// SetErrOut installs w as the destination for diagnostic output written
// before an abort. Passing nil discards diagnostics.
func (st *State) SetErrOut(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	st.errOut = w
}

// SetInput wires the coordinate buffer into the state: count points of
// the given dimension, row-major. The engine keeps the slice as-is and
// reads it for the rest of the state's life. Aborts with an input fault
// on an empty or ill-shaped buffer.
func SetInput(st *State, dim int, coords []float64, count int) {
	if st.initialized {
		st.errexit(codeInternal, "internal error: input already set")
	}
	if dim < 2 {
		st.errexit(codeInput, "input error: dimension %d is below the minimum of 2", dim)
	}
	if count == 0 {
		st.errexit(codeInput, "input error: no points given")
	}
	if len(coords) != count*dim {
		st.errexit(codeInput, "input error: %d coordinates do not form %d points of dimension %d",
			len(coords), count, dim)
	}

	st.dim = dim
	st.inputDim = dim
	if st.cfg.Delaunay {
		st.inputDim = dim - 1
	}
	st.points = coords
	st.numPoints = count

	if st.cfg.ScaleLast {
		st.scaleLast()
	}

	st.initialized = true
	Logger().Debug("engine input set",
		zap.Int("dim", dim), zap.Int("points", count))
}

// scaleLast maps the last coordinate column onto the range spanned by the
// other columns, in place. Used for the lifted coordinate in Delaunay
// mode so it does not dominate the distance computations.
func (st *State) scaleLast() {
	d := st.dim
	lo, hi := st.points[0], st.points[0]
	llo, lhi := st.points[d-1], st.points[d-1]
	for i := 0; i < st.numPoints; i++ {
		row := st.points[i*d : (i+1)*d]
		for _, c := range row[:d-1] {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		last := row[d-1]
		if last < llo {
			llo = last
		}
		if last > lhi {
			lhi = last
		}
	}

	denom := lhi - llo
	if denom == 0 {
		for i := 0; i < st.numPoints; i++ {
			st.points[i*d+d-1] = lo
		}
		return
	}
	scale := (hi - lo) / denom
	for i := 0; i < st.numPoints; i++ {
		st.points[i*d+d-1] = lo + (st.points[i*d+d-1]-llo)*scale
	}
}

// point returns the i-th input point. The capacity is clamped so the
// slice cannot be grown past its row.
func (st *State) point(i int) []float64 {
	d := st.dim
	return st.points[i*d : (i+1)*d : (i+1)*d]
}

// Read surface used by the bridge and the facade.

// FacetList returns the head of the facet list. The list is never empty:
// at minimum it holds the sentinel.
func (st *State) FacetList() *Facet { return st.facetList }

// FacetTail returns the facet list's sentinel.
func (st *State) FacetTail() *Facet { return st.facetTail }

// VertexList returns the head of the vertex list.
func (st *State) VertexList() *Vertex { return st.vertexList }

// VertexTail returns the vertex list's sentinel.
func (st *State) VertexTail() *Vertex { return st.vertexTail }

// NumFacets returns the count of non-sentinel facets.
func (st *State) NumFacets() int { return st.numFacets }

// NumVertices returns the count of non-sentinel vertices.
func (st *State) NumVertices() int { return st.numVertices }

// HullDim returns the dimension the hull is computed in.
func (st *State) HullDim() int { return st.dim }

// InputDim returns the dimension of the original input, which is one
// less than HullDim in Delaunay mode.
func (st *State) InputDim() int { return st.inputDim }

// NumPoints returns the number of input points.
func (st *State) NumPoints() int { return st.numPoints }

// TracedFacet returns the facet the engine was last processing, if any.
func (st *State) TracedFacet() *Facet { return st.tracedFacet }

// TracedRidge returns the ridge the engine was last processing, if any.
func (st *State) TracedRidge() *Ridge { return st.tracedRidge }

// TracedVertex returns the vertex the engine was last processing, if any.
func (st *State) TracedVertex() *Vertex { return st.tracedVertex }

// Free releases everything the state holds and drops its references into
// the caller's buffers. The state is unusable afterwards. Free is
// idempotent so a teardown racing a failed construction cannot
// double-release.
func Free(st *State) {
	if st.freed {
		return
	}
	st.freed = true

	for f := st.facetList; f != nil; {
		next := f.next
		f.vertices, f.neighbors, f.ridges = nil, nil, nil
		f.prev, f.next = nil, nil
		f = next
	}
	for v := st.vertexList; v != nil; {
		next := v.next
		v.point = nil
		v.prev, v.next = nil, nil
		v = next
	}

	st.facetList, st.facetTail = nil, nil
	st.vertexList, st.vertexTail = nil, nil
	st.numFacets, st.numVertices = 0, 0
	st.vertexByPoint = nil
	st.tracedFacet, st.tracedRidge, st.tracedVertex = nil, nil, nil
	st.points = nil
	st.interior = nil
	st.initialized = false
	st.built = false

	Logger().Debug("engine state freed")
}
