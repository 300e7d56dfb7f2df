package hull

import (
	"fmt"
	"iter"
	"unsafe"

	"go.uber.org/multierr"

	"github.com/hullkit/hull-runtime/engine"
	"github.com/hullkit/hull-runtime/errors"
)

type phase int

const (
	phaseBuilt phase = iota + 1
	phaseComputed
	phaseFailed
	phaseClosed
)

// Hull is the long-lived handle over one computation: it exclusively
// owns the engine state, the diagnostic capture channel, the coordinate
// buffer (unless built borrowed), and the auxiliary buffers the engine
// references. A Hull must not be shared across goroutines without
// external synchronization, and must be released with Close exactly when
// it is no longer needed.
type Hull struct {
	st          *engine.State
	capture     *Capture
	coords      []float64
	ownedCoords bool
	owned       ownedValues

	dim      int
	inputDim int

	phase  phase
	closed bool
}

// Dim returns the dimension the hull is computed in.
func (h *Hull) Dim() int { return h.dim }

// InputDim returns the dimension of the original input, one less than
// Dim when the input was paraboloid-lifted.
func (h *Hull) InputDim() int { return h.inputDim }

func (h *Hull) usable(op string) *errors.Error {
	switch h.phase {
	case phaseClosed:
		return &errors.Error{
			Kind:    errors.KindOther,
			Message: fmt.Sprintf("cannot %s: hull has been closed", op),
		}
	case phaseFailed:
		return &errors.Error{
			Kind:    errors.KindOther,
			Message: fmt.Sprintf("cannot %s: a previous operation aborted and the instance is not reusable", op),
		}
	}
	return nil
}

// Compute runs the main hull construction through the protected-call
// bridge. On failure the instance transitions to a failed state and
// cannot be used for further computation; the input can be fixed and a
// new Hull built instead.
func (h *Hull) Compute() *errors.Error {
	if err := h.usable("compute"); err != nil {
		return err
	}
	_, qerr := tryOn(h.st, &h.capture, h.inputDim, func(st *engine.State) struct{} {
		engine.Build(st)
		return struct{}{}
	})
	if qerr != nil {
		h.phase = phaseFailed
		return qerr
	}
	h.phase = phaseComputed
	return nil
}

// CheckOutput runs the engine's structural output verification. It is
// independent of Compute's result reporting and may be skipped entirely.
func (h *Hull) CheckOutput() *errors.Error {
	if err := h.usable("check output"); err != nil {
		return err
	}
	_, qerr := tryOn(h.st, &h.capture, h.inputDim, func(st *engine.State) struct{} {
		engine.CheckOutput(st)
		return struct{}{}
	})
	if qerr != nil {
		h.phase = phaseFailed
	}
	return qerr
}

// CheckPoints verifies that every input point is a vertex, retained as
// coplanar, or inside the hull.
func (h *Hull) CheckPoints() *errors.Error {
	if err := h.usable("check points"); err != nil {
		return err
	}
	_, qerr := tryOn(h.st, &h.capture, h.inputDim, func(st *engine.State) struct{} {
		engine.CheckPoints(st)
		return struct{}{}
	})
	if qerr != nil {
		h.phase = phaseFailed
	}
	return qerr
}

// NumFaces returns the number of non-sentinel facets. It always equals
// the count of Faces().
func (h *Hull) NumFaces() int {
	if h.closed {
		return 0
	}
	return h.st.NumFacets()
}

// NumVertices returns the number of non-sentinel vertices. It always
// equals the count of Vertices().
func (h *Hull) NumVertices() int {
	if h.closed {
		return 0
	}
	return h.st.NumVertices()
}

// AllFaces iterates the facet list from the head, sentinel included as
// the final element. Each call starts a fresh traversal.
func (h *Hull) AllFaces() iter.Seq[Face] {
	if h.closed {
		return faceSeq(Face{}, Face.Next)
	}
	return faceSeq(faceFromPtr(h.st.FacetList(), h.dim), Face.Next)
}

// AllFacesRev iterates the facet list from the tail, sentinel first.
func (h *Hull) AllFacesRev() iter.Seq[Face] {
	if h.closed {
		return faceSeq(Face{}, Face.Prev)
	}
	return faceSeq(faceFromPtr(h.st.FacetTail(), h.dim), Face.Prev)
}

// Faces iterates the facets carrying data, sentinel excluded.
func (h *Hull) Faces() iter.Seq[Face] {
	return visibleFaces(h.AllFaces())
}

// Simplices iterates the simplicial facets.
func (h *Hull) Simplices() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		for f := range h.Faces() {
			if !f.Simplicial() {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// AllVertices iterates the vertex list from the head, sentinel included
// as the final element.
func (h *Hull) AllVertices() iter.Seq[Vertex] {
	if h.closed {
		return vertexSeq(Vertex{}, Vertex.Next)
	}
	return vertexSeq(vertexFromPtr(h.st.VertexList(), h.dim), Vertex.Next)
}

// AllVerticesRev iterates the vertex list from the tail, sentinel first.
func (h *Hull) AllVerticesRev() iter.Seq[Vertex] {
	if h.closed {
		return vertexSeq(Vertex{}, Vertex.Prev)
	}
	return vertexSeq(vertexFromPtr(h.st.VertexTail(), h.dim), Vertex.Prev)
}

// Vertices iterates the vertices carrying data, sentinel excluded.
func (h *Hull) Vertices() iter.Seq[Vertex] {
	return visibleVertices(h.AllVertices())
}

// VertexIndex maps a vertex view back to the 0-based position of its
// point in the input coordinate buffer. It reports false for the
// sentinel, for vertices without coordinate data, and for coordinates
// that do not point into the input buffer. A coordinate pointer that
// falls inside the buffer at an offset that is not a whole number of
// points indicates corrupted bookkeeping and panics with a consistency
// error.
func (h *Hull) VertexIndex(v Vertex) (int, bool) {
	if h.closed || !v.Valid() || v.IsSentinel() {
		return 0, false
	}
	pt := v.Point()
	if pt == nil || len(h.coords) == 0 {
		return 0, false
	}

	elem := unsafe.Sizeof(float64(0))
	base := uintptr(unsafe.Pointer(unsafe.SliceData(h.coords)))
	end := base + uintptr(len(h.coords))*elem
	cur := uintptr(unsafe.Pointer(unsafe.SliceData(pt)))

	if cur < base || cur >= end {
		return 0, false
	}

	pointSize := uintptr(h.dim) * elem
	offset := cur - base
	if offset%pointSize != 0 {
		panic(errors.Inconsistency(
			"vertex %s coordinates at byte offset %d inside the input buffer, not a multiple of the point size %d",
			v, offset, pointSize))
	}
	return int(offset / pointSize), true
}

// Close tears the instance down: the engine state is freed first, then
// the capture channel and the buffers the state referenced are released.
// Close is idempotent; after it returns, the Hull and every view
// obtained from it are invalid.
func (h *Hull) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.phase = phaseClosed

	// The engine state holds raw references into coords and the owned
	// values; it must be freed before they are dropped.
	if h.st != nil {
		engine.Free(h.st)
	}

	var err error
	if h.capture != nil {
		err = multierr.Append(err, h.capture.Close())
		h.capture = nil
	}

	h.coords = nil
	h.owned = ownedValues{}
	return err
}
