// Package hullruntime provides a safe, structured interface to a
// non-reentrant convex hull and Delaunay triangulation engine.
//
// The engine (package engine) computes hulls over a single mutable state
// block and reports failure by abrupt non-local control transfer: deep
// inside the computation it writes a diagnostic message and panics with a
// classified fault code. The hull package confines that control flow to a
// single protected-call bridge and presents ordinary error values, borrowed
// iterable views over the engine's facet/vertex lists, and deterministic
// resource teardown.
//
// Most users should start with the hull package:
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
//	    fmt.Println(f)
//	}
//
// This root package holds the small coordinate helpers shared by the
// builder's construction paths: flattening point lists into the contiguous
// row-major buffers the engine retains references into, and the paraboloid
// lifting used to reduce Delaunay triangulation to a convex hull one
// dimension up.
package hullruntime
