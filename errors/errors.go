package errors

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Kind classifies an engine abort. The value is the engine's raw abort
// code, so the code-to-kind mapping is total: every named constant prints
// its name, and any other code is reported as unrecognized while still
// round-tripping through Code.
type Kind int

const (
	// KindInput indicates invalid input, such as too few points for the
	// requested dimension. Error code 1.
	KindInput Kind = 1
	// KindSingular indicates singular input, such as a point set that is
	// less than full-dimensional. Error code 2.
	KindSingular Kind = 2
	// KindPrecision indicates a precision failure detected during
	// computation or output checking. Error code 3.
	KindPrecision Kind = 3
	// KindMemory indicates an engine allocation failure. Error code 4.
	KindMemory Kind = 4
	// KindInternal indicates an internal engine failure. Error code 5.
	KindInternal Kind = 5
	// KindOther covers engine failures with no more specific class.
	// Error code 6.
	KindOther Kind = 6
	// KindTopology indicates a topological inconsistency in the output
	// graph. Error code 7.
	KindTopology Kind = 7
	// KindWide indicates a facet merged beyond the allowed width.
	// Error code 8.
	KindWide Kind = 8
	// KindDebug is raised by debugging traps. Error code 9.
	KindDebug Kind = 9
)

// KindFromCode classifies a raw engine abort code. The mapping is total
// and never fails; codes outside the known set yield an unrecognized kind
// that still reports the raw code. Code 0 means "no error" and is not a
// valid abort code.
func KindFromCode(code int) Kind {
	if code == 0 {
		panic("errors: 0 is not an abort code")
	}
	return Kind(code)
}

// Code returns the raw engine abort code for this kind.
func (k Kind) Code() int {
	return int(k)
}

// Known reports whether the kind is one of the named abort classes.
func (k Kind) Known() bool {
	return k >= KindInput && k <= KindDebug
}

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSingular:
		return "singular"
	case KindPrecision:
		return "precision"
	case KindMemory:
		return "memory"
	case KindInternal:
		return "internal"
	case KindOther:
		return "other"
	case KindTopology:
		return "topology"
	case KindWide:
		return "wide"
	case KindDebug:
		return "debug"
	default:
		return "unrecognized"
	}
}

// View is a borrowed snapshot of the engine node that was being processed
// when an abort occurred. It is implemented by the hull package's Face,
// Ridge, and Vertex view types. A view is only valid for the lifetime of
// the facade operation that produced the error; see Error.ToOwned.
type View interface {
	IsSentinel() bool
	fmt.Stringer
}

// Error is a classified engine abort: the kind decoded from the abort
// code, the diagnostic text the engine wrote before aborting, and borrowed
// snapshots of whatever face, ridge, or vertex the engine was tracking at
// the moment of the abort.
type Error struct {
	Kind    Kind
	Message string
	Face    View
	Ridge   View
	Vertex  View
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "hull error: %s (#%d)", e.Kind, e.Kind.Code())
	if e.Message != "" {
		b.WriteByte('\n')
		b.WriteString(strings.TrimRight(e.Message, "\n"))
	}
	if e.Face != nil {
		b.WriteString("\nface: ")
		b.WriteString(e.Face.String())
	}
	if e.Ridge != nil {
		b.WriteString("\nridge: ")
		b.WriteString(e.Ridge.String())
	}
	if e.Vertex != nil {
		b.WriteString("\nvertex: ")
		b.WriteString(e.Vertex.String())
	}

	return b.String()
}

// Is reports whether target matches this error. Two Errors match when
// their kinds are equal, so errors.Is(err, &Error{Kind: KindInput}) tests
// the class without regard to message or context.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// ToOwned strips the borrowed context views so the error can outlive the
// facade operation that produced it. The conversion is lossy by design:
// each discarded view is reported through the package logger rather than
// dropped silently.
func (e *Error) ToOwned() *Error {
	if e.Face != nil {
		Logger().Warn("discarding face context during owned conversion",
			zap.Stringer("face", e.Face))
	}
	if e.Ridge != nil {
		Logger().Warn("discarding ridge context during owned conversion",
			zap.Stringer("ridge", e.Ridge))
	}
	if e.Vertex != nil {
		Logger().Warn("discarding vertex context during owned conversion",
			zap.Stringer("vertex", e.Vertex))
	}
	return &Error{Kind: e.Kind, Message: e.Message}
}

// DimensionMismatchError reports builder input whose per-point arity is
// inconsistent. It is raised before any engine state is constructed, so
// the caller can fix the input and retry.
type DimensionMismatchError struct {
	Expected int
	Got      int
	Index    int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: point %d has %d coordinates, expected %d",
		e.Index, e.Got, e.Expected)
}

// ChannelError reports that the diagnostic capture channel could not be
// allocated or drained. When it occurs while building it is returned;
// when it occurs inside the protected-call bridge it is fatal and
// delivered by panic, because the system cannot guarantee diagnostic
// fidelity for later operations without a destination.
type ChannelError struct {
	Op  string
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("diagnostic channel: %s: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// ConsistencyError reports a violated internal invariant, such as a vertex
// coordinate pointer that falls inside the input buffer at a misaligned
// offset. It signals corrupted bookkeeping rather than bad input and is
// always delivered by panic; it should not be caught and retried.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return "internal consistency: " + e.Detail
}

// Inconsistency builds a ConsistencyError suitable for panicking with.
func Inconsistency(format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Detail: fmt.Sprintf(format, args...)}
}
