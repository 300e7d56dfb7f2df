package hull

import (
	"github.com/hullkit/hull-runtime/engine"
	"github.com/hullkit/hull-runtime/errors"
)

// tryOn executes one engine operation under a protected call: f runs to
// completion and its result is returned, or the engine's abort is
// recovered and translated into a structured error. This is the only
// code path in the library that invokes fallible engine entry points.
//
// On abort, the current capture channel is detached and replaced with a
// fresh one before anything else, so the next protected call starts with
// a clean diagnostic destination; if no replacement can be allocated the
// bridge panics with a channel error, because it cannot guarantee
// diagnostic fidelity for any later operation. The drained text becomes
// the error message, and the engine's currently-tracked face, ridge, and
// vertex pointers are snapshotted as borrowed views stamped with
// snapshotDim. The snapshots borrow engine memory: they are valid only
// until the state is mutated or freed.
//
// Must not be nested and must not be invoked while another protected
// call on the same state is active. Panics that are not engine faults
// propagate unchanged.
func tryOn[R any](st *engine.State, capture **Capture, snapshotDim int, f func(*engine.State) R) (result R, qerr *errors.Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault, ok := r.(*engine.Fault)
		if !ok {
			panic(r)
		}

		old := *capture
		fresh, err := NewCapture()
		if err != nil {
			panic(&errors.ChannelError{Op: "replace after abort", Err: err})
		}
		*capture = fresh
		st.SetErrOut(fresh.Writer())

		var msg string
		if old != nil {
			text, readErr := old.ReadAndClose()
			if readErr != nil {
				panic(&errors.ChannelError{Op: "drain after abort", Err: readErr})
			}
			msg = text
		}

		qerr = &errors.Error{
			Kind:    errors.KindFromCode(fault.Code),
			Message: msg,
		}
		if face := faceFromPtr(st.TracedFacet(), snapshotDim); face.Valid() {
			qerr.Face = face
		}
		if ridge := ridgeFromPtr(st.TracedRidge(), snapshotDim); ridge.Valid() {
			qerr.Ridge = ridge
		}
		if vertex := vertexFromPtr(st.TracedVertex(), snapshotDim); vertex.Valid() {
			qerr.Vertex = vertex
		}
	}()

	result = f(st)
	return result, nil
}
