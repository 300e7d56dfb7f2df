// Package hull is the safe, high-level interface to the hull engine.
//
// # Quick Start
//
//	h, err := hull.NewBuilder().BuildFromPoints([][]float64{
//	    {0, 0}, {1, 0}, {0, 1}, {0.25, 0.25},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	if qerr := h.Compute(); qerr != nil {
//	    log.Fatal(qerr)
//	}
//	for f := range h.Faces() {
//	    for _, v := range f.Vertices() {
//	        idx, _ := h.VertexIndex(v)
//	        fmt.Println(f, v, idx)
//	    }
//	}
//
// # The Protected Call
//
// The engine reports failure by writing a diagnostic message and
// panicking with a classified fault code. Every fallible engine entry
// point is invoked through a single protected-call bridge that recovers
// the fault, drains the diagnostic capture channel, snapshots the
// engine's currently-tracked face/ridge/vertex as borrowed views, and
// installs a fresh capture so the next call starts clean. Everything
// above the bridge sees ordinary *errors.Error values.
//
// # Views and Lifetimes
//
// Face, Ridge, and Vertex are borrowed views: raw node identity, no
// ownership. They are valid while the owning Hull is alive and its
// engine state has not been mutated by a later operation. Error
// snapshots are further bounded by the error value itself; convert with
// ToOwned (lossy, logged) to store an error long-term.
//
// The facet and vertex lists end in a sentinel node with no geometric
// data. AllFaces and AllVertices include it as the last element; Faces
// and Vertices are the same traversals with the sentinel filtered out.
//
// # Buffers
//
// The engine retains raw references into the coordinate buffer and any
// auxiliary buffers for the whole life of the Hull. BuildFromPoints and
// BuildManaged transfer ownership of the coordinates to the Hull;
// BuildBorrowed leaves it with the caller, who must keep the slice alive
// and unmoved. Close releases the engine state before the buffers it
// references, exactly once.
//
// # Delaunay
//
// NewDelaunay reduces Delaunay triangulation to a convex hull one
// dimension up via paraboloid lifting. It is sugar over the general
// builder with a fixed option set, not a separate algorithm.
//
// # Thread Safety
//
// A Hull must not be accessed from multiple goroutines without external
// synchronization; there is no internal locking, no cancellation, and no
// reentrancy from inside a protected call.
package hull
