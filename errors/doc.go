// Package errors defines the error taxonomy of the hull-runtime library.
//
// Engine aborts carry an integer code; Kind makes the code-to-class
// mapping total, so classification itself can never fail:
//
//	kind := errors.KindFromCode(3) // KindPrecision
//	kind.Code()                    // 3
//	errors.KindFromCode(42)        // unrecognized, Code() == 42
//
// The Error type is what the protected-call bridge produces from an
// abort: kind, the diagnostic text the engine wrote before jumping, and
// borrowed snapshots of the face, ridge, or vertex it was processing.
// Snapshots are views into engine-owned memory; to store an Error beyond
// the facade operation that produced it, convert it first:
//
//	owned := qerr.ToOwned() // discards views, logging a notice for each
//
// Two error classes fall outside the recoverable Error channel and are
// delivered by panic: ChannelError raised inside the bridge (diagnostic
// destination lost mid-error-handling) and ConsistencyError (violated
// internal invariant). Neither indicates bad input and neither should be
// caught and retried.
package errors
