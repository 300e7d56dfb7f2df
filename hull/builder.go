package hull

import (
	hullruntime "github.com/hullkit/hull-runtime"
	"github.com/hullkit/hull-runtime/engine"
)

// Builder accumulates configuration toggles, numeric tuning, and
// auxiliary buffers, then performs the one-shot construction of a Hull.
// Every toggle is independent. Auxiliary buffers are copied when set;
// the copies transfer to the Hull, which keeps them alive for as long as
// the engine holds references into them.
type Builder struct {
	cfg   engine.Config
	owned ownedValues
}

// ownedValues is the set of auxiliary buffers whose lifetime must match
// the facade's: configuration points the engine's references at them,
// and they are never mutated afterward.
type ownedValues struct {
	goodPoint      []float64
	goodVertex     []float64
	firstPoint     []float64
	upperThreshold []float64
	lowerThreshold []float64
	upperBound     []float64
	lowerBound     []float64
	feasiblePoint  []float64
	feasibleString []byte
	nearZero       []float64
}

// NewBuilder returns a builder with every toggle off and default tuning.
func NewBuilder() *Builder {
	return &Builder{}
}

// Delaunay marks the input as paraboloid-lifted.
func (b *Builder) Delaunay(on bool) *Builder {
	b.cfg.Delaunay = on
	return b
}

// UpperDelaunay keeps the facets of the upper lifted hull.
func (b *Builder) UpperDelaunay(on bool) *Builder {
	b.cfg.UpperDelaunay = on
	return b
}

// ScaleLast rescales the last coordinate into the range of the others at
// input time.
func (b *Builder) ScaleLast(on bool) *Builder {
	b.cfg.ScaleLast = on
	return b
}

// Triangulate requests simplicial output.
func (b *Builder) Triangulate(on bool) *Builder {
	b.cfg.Triangulate = on
	return b
}

// KeepCoplanar retains near-coplanar points on their facets instead of
// discarding them.
func (b *Builder) KeepCoplanar(on bool) *Builder {
	b.cfg.KeepCoplanar = on
	return b
}

// DistanceEpsilon overrides the engine's visibility tolerance. Zero
// keeps the default.
func (b *Builder) DistanceEpsilon(eps float64) *Builder {
	b.cfg.DistanceEpsilon = eps
	return b
}

// OutsideWidth widens the tolerance used by the output checks.
func (b *Builder) OutsideWidth(w float64) *Builder {
	b.cfg.OutsideWidth = w
	return b
}

// GoodPoint restricts output to facets visible from the given point.
func (b *Builder) GoodPoint(coords ...float64) *Builder {
	b.owned.goodPoint = append([]float64(nil), coords...)
	b.cfg.GoodPoint = b.owned.goodPoint
	return b
}

// GoodVertex restricts output to facets incident to the given vertex.
func (b *Builder) GoodVertex(coords ...float64) *Builder {
	b.owned.goodVertex = append([]float64(nil), coords...)
	b.cfg.GoodVertex = b.owned.goodVertex
	return b
}

// FirstPoint makes the construction start from the given point.
func (b *Builder) FirstPoint(coords ...float64) *Builder {
	b.owned.firstPoint = append([]float64(nil), coords...)
	b.cfg.FirstPoint = b.owned.firstPoint
	return b
}

// UpperThreshold sets the per-coordinate upper facet thresholds.
func (b *Builder) UpperThreshold(values ...float64) *Builder {
	b.owned.upperThreshold = append([]float64(nil), values...)
	b.cfg.UpperThreshold = b.owned.upperThreshold
	return b
}

// LowerThreshold sets the per-coordinate lower facet thresholds.
func (b *Builder) LowerThreshold(values ...float64) *Builder {
	b.owned.lowerThreshold = append([]float64(nil), values...)
	b.cfg.LowerThreshold = b.owned.lowerThreshold
	return b
}

// UpperBound sets the per-coordinate upper input bounds.
func (b *Builder) UpperBound(values ...float64) *Builder {
	b.owned.upperBound = append([]float64(nil), values...)
	b.cfg.UpperBound = b.owned.upperBound
	return b
}

// LowerBound sets the per-coordinate lower input bounds.
func (b *Builder) LowerBound(values ...float64) *Builder {
	b.owned.lowerBound = append([]float64(nil), values...)
	b.cfg.LowerBound = b.owned.lowerBound
	return b
}

// FeasiblePoint supplies the interior point for halfspace intersection.
func (b *Builder) FeasiblePoint(coords ...float64) *Builder {
	b.owned.feasiblePoint = append([]float64(nil), coords...)
	b.cfg.FeasiblePoint = b.owned.feasiblePoint
	return b
}

// FeasibleString supplies the textual form of the feasible point.
func (b *Builder) FeasibleString(s string) *Builder {
	b.owned.feasibleString = []byte(s)
	b.cfg.FeasibleString = b.owned.feasibleString
	return b
}

// NearZero sets the per-coordinate near-zero rounding vector.
func (b *Builder) NearZero(values ...float64) *Builder {
	b.owned.nearZero = append([]float64(nil), values...)
	b.cfg.NearZero = b.owned.nearZero
	return b
}

// BuildFromPoints flattens an inconsistency-checked point list into an
// owned coordinate buffer and constructs the hull state over it. The
// dimensionality is inferred from the first point; any point with a
// different arity fails with a dimension mismatch before the engine is
// touched.
func (b *Builder) BuildFromPoints(points [][]float64) (*Hull, error) {
	cc, err := hullruntime.CollectCoords(points)
	if err != nil {
		return nil, err
	}
	return b.build(cc.Dim, cc.Coords, cc.Count, true)
}

// BuildManaged constructs the hull state over a pre-flattened coordinate
// buffer of known dimensionality, taking ownership of the slice.
func (b *Builder) BuildManaged(dim int, coords []float64) (*Hull, error) {
	count := 0
	if dim > 0 {
		count = len(coords) / dim
	}
	return b.build(dim, coords, count, true)
}

// BuildBorrowed is BuildManaged without the ownership transfer: the
// caller guarantees the slice outlives the Hull and is never reallocated
// or moved while the Hull is alive.
func (b *Builder) BuildBorrowed(dim int, coords []float64) (*Hull, error) {
	count := 0
	if dim > 0 {
		count = len(coords) / dim
	}
	return b.build(dim, coords, count, false)
}

func (b *Builder) build(dim int, coords []float64, count int, ownedCoords bool) (*Hull, error) {
	capture, err := NewCapture()
	if err != nil {
		return nil, err
	}

	st := engine.New(b.cfg)
	st.SetErrOut(capture.Writer())

	h := &Hull{
		st:          st,
		capture:     capture,
		coords:      coords,
		ownedCoords: ownedCoords,
		owned:       b.owned,
	}

	// The input dimension is not known to the engine yet, so construction
	// snapshots are stamped with the requested dimension.
	_, qerr := tryOn(st, &h.capture, dim, func(st *engine.State) struct{} {
		engine.SetInput(st, dim, coords, count)
		return struct{}{}
	})
	if qerr != nil {
		// The error must outlive the partial facade, so the context views
		// are shed before teardown.
		owned := qerr.ToOwned()
		h.phase = phaseFailed
		h.Close()
		return nil, owned
	}

	h.dim = st.HullDim()
	h.inputDim = st.InputDim()
	h.phase = phaseBuilt
	return h, nil
}

// NewDelaunay builds the Delaunay triangulation of the given points by
// lifting them onto the paraboloid one dimension up and computing the
// convex hull of the lifted set with the delaunay, upper-delaunay,
// scale-last, triangulate, and keep-coplanar options forced on. It is
// sugar over the general builder, not a separate algorithm.
func NewDelaunay(points [][]float64) (*Hull, error) {
	cc, err := hullruntime.PrepareDelaunayCoords(points)
	if err != nil {
		return nil, err
	}
	return NewBuilder().
		Delaunay(true).
		UpperDelaunay(true).
		ScaleLast(true).
		Triangulate(true).
		KeepCoplanar(true).
		BuildManaged(cc.Dim, cc.Coords)
}
