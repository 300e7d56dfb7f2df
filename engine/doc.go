// Package engine implements the convex hull solver that the hull package
// wraps. It is the "native" side of the library: a single mutable State
// block, a small fixed set of entry points, and an abort protocol based on
// non-local control transfer.
//
// # Abort Protocol
//
// The entry points SetInput, Build, CheckOutput, and CheckPoints do not
// return errors. On failure, arbitrarily deep inside the computation, the
// engine writes a diagnostic message to the installed error destination and
// panics with a *Fault carrying a classified abort code. Callers must run
// these entry points through the hull package's protected-call bridge,
// which recovers the fault and produces a structured error. Calling them
// directly is possible but leaves fault recovery to the caller.
//
// # State and Lists
//
// All results live in the State block: a doubly linked facet list and a
// doubly linked vertex list, each terminated by a sentinel node that
// carries no geometric data. Forward traversal from the list head visits
// every real node once and ends at the sentinel; backward traversal from
// the tail is the mirror. The engine also tracks the facet, ridge, and
// vertex it is currently processing; the bridge snapshots these pointers
// when an abort occurs.
//
// The engine retains raw references into the coordinate buffer passed to
// SetInput and into any auxiliary buffers present in the Config. Those
// buffers must stay alive and must not be reallocated for the lifetime of
// the State; the hull package's facade owns them on the caller's behalf.
//
// # Algorithm
//
// Build runs an incremental beneath-beyond construction: an initial
// simplex of dim+1 affinely independent points, then one insertion pass
// per remaining point (visible-facet search, horizon ridges, cone of new
// simplicial facets). Points interior to the current hull are skipped;
// points within tolerance of a facet are recorded on that facet when
// keep-coplanar is set. Delaunay mode is handled entirely by the caller
// through paraboloid lifting; the engine only records the flags.
//
// # Thread Safety
//
// A State must not be accessed from multiple goroutines. There is no
// internal locking and no cancellation; every entry point runs to
// completion or aborts.
package engine
