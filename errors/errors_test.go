package errors

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeView struct {
	name     string
	sentinel bool
}

func (v fakeView) IsSentinel() bool { return v.sentinel }
func (v fakeView) String() string   { return v.name }

func TestKindFromCode_RoundTrip(t *testing.T) {
	tests := []struct {
		code int
		kind Kind
		name string
	}{
		{1, KindInput, "input"},
		{2, KindSingular, "singular"},
		{3, KindPrecision, "precision"},
		{4, KindMemory, "memory"},
		{5, KindInternal, "internal"},
		{6, KindOther, "other"},
		{7, KindTopology, "topology"},
		{8, KindWide, "wide"},
		{9, KindDebug, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := KindFromCode(tt.code)
			if k != tt.kind {
				t.Errorf("KindFromCode(%d) = %v, want %v", tt.code, k, tt.kind)
			}
			if k.Code() != tt.code {
				t.Errorf("Code() = %d, want %d", k.Code(), tt.code)
			}
			if !k.Known() {
				t.Errorf("Known() = false for %v", k)
			}
			if k.String() != tt.name {
				t.Errorf("String() = %q, want %q", k.String(), tt.name)
			}
		})
	}
}

func TestKindFromCode_Unrecognized(t *testing.T) {
	for _, code := range []int{10, 42, -7, 1000} {
		k := KindFromCode(code)
		if k.Known() {
			t.Errorf("Known() = true for code %d", code)
		}
		if k.Code() != code {
			t.Errorf("Code() = %d, want %d", k.Code(), code)
		}
		if k.String() != "unrecognized" {
			t.Errorf("String() = %q, want %q", k.String(), "unrecognized")
		}
	}
}

func TestKindFromCode_ZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("KindFromCode(0) did not panic")
		}
	}()
	KindFromCode(0)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "kind and code only",
			err:      &Error{Kind: KindPrecision},
			contains: []string{"precision", "#3"},
		},
		{
			name:     "with message",
			err:      &Error{Kind: KindInput, Message: "no points given\n"},
			contains: []string{"input", "#1", "no points given"},
		},
		{
			name: "with context",
			err: &Error{
				Kind:   KindSingular,
				Face:   fakeView{name: "f7"},
				Ridge:  fakeView{name: "r3"},
				Vertex: fakeView{name: "v5(p2)"},
			},
			contains: []string{"singular", "face: f7", "ridge: r3", "vertex: v5(p2)"},
		},
		{
			name:     "unrecognized code",
			err:      &Error{Kind: KindFromCode(42)},
			contains: []string{"unrecognized", "#42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{Kind: KindPrecision, Message: "drifted"}

	if !errors.Is(err, &Error{Kind: KindPrecision}) {
		t.Error("Is should match same kind")
	}
	if errors.Is(err, &Error{Kind: KindInput}) {
		t.Error("Is should not match different kind")
	}
	if errors.Is(err, errors.New("precision")) {
		t.Error("Is should not match foreign errors")
	}
}

func TestError_ToOwned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	err := &Error{
		Kind:    KindTopology,
		Message: "open horizon",
		Face:    fakeView{name: "f2"},
		Vertex:  fakeView{name: "v9(p4)"},
	}

	owned := err.ToOwned()
	if owned.Kind != KindTopology || owned.Message != "open horizon" {
		t.Errorf("ToOwned changed kind or message: %+v", owned)
	}
	if owned.Face != nil || owned.Ridge != nil || owned.Vertex != nil {
		t.Error("ToOwned kept context views")
	}

	// one notice per discarded view, none for the absent ridge
	if got := logs.Len(); got != 2 {
		t.Fatalf("ToOwned logged %d notices, want 2", got)
	}
}

func TestError_ToOwned_NoContext(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	owned := (&Error{Kind: KindInput}).ToOwned()
	if owned.Kind != KindInput {
		t.Errorf("ToOwned changed kind: %v", owned.Kind)
	}
	if logs.Len() != 0 {
		t.Errorf("ToOwned without context logged %d notices", logs.Len())
	}
}

func TestDimensionMismatchError(t *testing.T) {
	err := &DimensionMismatchError{Expected: 2, Got: 3, Index: 1}
	msg := err.Error()
	for _, s := range []string{"point 1", "3 coordinates", "expected 2"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q does not contain %q", msg, s)
		}
	}
}

func TestChannelError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &ChannelError{Op: "create", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("ChannelError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "create") {
		t.Errorf("message %q does not name the operation", err.Error())
	}
}

func TestInconsistency(t *testing.T) {
	err := Inconsistency("offset %d is misaligned", 13)
	if !strings.Contains(err.Error(), "internal consistency") {
		t.Errorf("message %q does not name the class", err.Error())
	}
	if !strings.Contains(err.Error(), "offset 13") {
		t.Errorf("message %q does not carry detail", err.Error())
	}
}
