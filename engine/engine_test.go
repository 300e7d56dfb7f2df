package engine

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// catchFault runs f and returns the engine fault it aborted with, or nil
// on normal completion. Non-fault panics propagate.
func catchFault(f func()) (fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if fault, ok = r.(*Fault); !ok {
				panic(r)
			}
		}
	}()
	f()
	return nil
}

func buildHull(t *testing.T, dim int, coords []float64, cfg Config) *State {
	t.Helper()
	st := New(cfg)
	if fault := catchFault(func() {
		SetInput(st, dim, coords, len(coords)/dim)
		Build(st)
	}); fault != nil {
		t.Fatalf("build aborted with code %d", fault.Code)
	}
	return st
}

func countFacets(st *State) (real, sentinels int) {
	for f := st.FacetList(); f != nil; f = f.Next() {
		if f.IsSentinel() {
			sentinels++
		} else {
			real++
		}
	}
	return real, sentinels
}

func countVertices(st *State) (real, sentinels int) {
	for v := st.VertexList(); v != nil; v = v.Next() {
		if v.IsSentinel() {
			sentinels++
		} else {
			real++
		}
	}
	return real, sentinels
}

func TestBuild_TriangleWithInteriorPoint(t *testing.T) {
	st := buildHull(t, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		0.25, 0.25,
	}, Config{})
	defer Free(st)

	if st.NumFacets() != 3 {
		t.Errorf("NumFacets = %d, want 3", st.NumFacets())
	}
	if st.NumVertices() != 3 {
		t.Errorf("NumVertices = %d, want 3", st.NumVertices())
	}

	real, sentinels := countFacets(st)
	if real != st.NumFacets() || sentinels != 1 {
		t.Errorf("facet list holds %d real + %d sentinel nodes, want %d + 1",
			real, sentinels, st.NumFacets())
	}
	real, sentinels = countVertices(st)
	if real != st.NumVertices() || sentinels != 1 {
		t.Errorf("vertex list holds %d real + %d sentinel nodes, want %d + 1",
			real, sentinels, st.NumVertices())
	}
}

func TestBuild_Square(t *testing.T) {
	st := buildHull(t, 2, []float64{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}, Config{})
	defer Free(st)

	if st.NumFacets() != 4 {
		t.Errorf("NumFacets = %d, want 4", st.NumFacets())
	}
	if st.NumVertices() != 4 {
		t.Errorf("NumVertices = %d, want 4", st.NumVertices())
	}
}

func TestBuild_Octahedron(t *testing.T) {
	st := buildHull(t, 3, []float64{
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 1,
		0, 0, -1,
	}, Config{})
	defer Free(st)

	if st.NumFacets() != 8 {
		t.Errorf("NumFacets = %d, want 8", st.NumFacets())
	}
	if st.NumVertices() != 6 {
		t.Errorf("NumVertices = %d, want 6", st.NumVertices())
	}

	if fault := catchFault(func() { CheckOutput(st) }); fault != nil {
		t.Errorf("CheckOutput aborted with code %d", fault.Code)
	}
	if fault := catchFault(func() { CheckPoints(st) }); fault != nil {
		t.Errorf("CheckPoints aborted with code %d", fault.Code)
	}
}

func TestBuild_FacetInvariants(t *testing.T) {
	st := buildHull(t, 3, []float64{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
		0, 0, 2,
		0.3, 0.3, 0.3,
		1.5, 1.5, 1.5,
	}, Config{})
	defer Free(st)

	for f := st.FacetList(); !f.IsSentinel(); f = f.Next() {
		if got := len(f.Vertices()); got != 3 {
			t.Errorf("facet f%d has %d vertices, want 3", f.ID(), got)
		}
		if got := len(f.Neighbors()); got != 3 {
			t.Errorf("facet f%d has %d neighbors, want 3", f.ID(), got)
		}
		if n := f.Normal(); math.Abs(dot(n, n)-1) > 1e-9 {
			t.Errorf("facet f%d normal is not unit length", f.ID())
		}
	}
}

func TestBuild_Aborts(t *testing.T) {
	tests := []struct {
		name   string
		dim    int
		coords []float64
		code   int
	}{
		{"no points", 2, nil, codeInput},
		{"too few points", 2, []float64{0, 0, 1, 1}, codeInput},
		{"dimension below minimum", 1, []float64{0, 1, 2}, codeInput},
		{"collinear", 2, []float64{0, 0, 1, 1, 2, 2, 3, 3}, codeSingular},
		{"coplanar in 3d", 3, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}, codeSingular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(Config{})
			var out bytes.Buffer
			st.SetErrOut(&out)
			count := 0
			if tt.dim > 0 {
				count = len(tt.coords) / tt.dim
			}
			fault := catchFault(func() {
				SetInput(st, tt.dim, tt.coords, count)
				Build(st)
			})
			if fault == nil {
				t.Fatal("build did not abort")
			}
			if fault.Code != tt.code {
				t.Errorf("abort code = %d, want %d", fault.Code, tt.code)
			}
			if out.Len() == 0 {
				t.Error("no diagnostic message was written before the abort")
			}
			Free(st)
		})
	}
}

func TestBuild_BeforeInputAborts(t *testing.T) {
	st := New(Config{})
	fault := catchFault(func() { Build(st) })
	if fault == nil || fault.Code != codeInternal {
		t.Errorf("fault = %v, want internal abort", fault)
	}
}

func TestBuild_TwiceAborts(t *testing.T) {
	st := buildHull(t, 2, []float64{0, 0, 1, 0, 0, 1}, Config{})
	defer Free(st)
	fault := catchFault(func() { Build(st) })
	if fault == nil || fault.Code != codeInternal {
		t.Errorf("fault = %v, want internal abort", fault)
	}
}

func TestSetInput_ShapeMismatchAborts(t *testing.T) {
	st := New(Config{})
	var out bytes.Buffer
	st.SetErrOut(&out)
	fault := catchFault(func() { SetInput(st, 2, []float64{0, 0, 1}, 2) })
	if fault == nil || fault.Code != codeInput {
		t.Errorf("fault = %v, want input abort", fault)
	}
	if !strings.Contains(out.String(), "input error") {
		t.Errorf("diagnostic %q does not name the error class", out.String())
	}
}

func TestSetInput_ScaleLast(t *testing.T) {
	coords := []float64{
		0, 0, 0,
		1, 0, 10,
		0, 1, 20,
		1, 1, 40,
	}
	st := New(Config{ScaleLast: true})
	if fault := catchFault(func() { SetInput(st, 3, coords, 4) }); fault != nil {
		t.Fatalf("SetInput aborted with code %d", fault.Code)
	}
	// last column mapped onto the [0,1] range of the other columns
	want := []float64{0, 0.25, 0.5, 1}
	for i, w := range want {
		if got := coords[i*3+2]; math.Abs(got-w) > 1e-12 {
			t.Errorf("scaled last coordinate of point %d = %g, want %g", i, got, w)
		}
	}
}

func TestBuild_KeepCoplanar(t *testing.T) {
	coords := []float64{
		0, 0,
		1, 0,
		0, 1,
		0.5, 0.5, // midpoint of the hypotenuse
	}
	st := buildHull(t, 2, coords, Config{KeepCoplanar: true})
	defer Free(st)

	if st.NumVertices() != 3 {
		t.Fatalf("NumVertices = %d, want 3", st.NumVertices())
	}
	found := false
	for f := st.FacetList(); !f.IsSentinel(); f = f.Next() {
		for _, ci := range f.Coplanar() {
			if ci == 3 {
				found = true
			}
		}
	}
	if !found {
		t.Error("coplanar point p3 was not retained on any facet")
	}
	if fault := catchFault(func() { CheckPoints(st) }); fault != nil {
		t.Errorf("CheckPoints aborted with code %d", fault.Code)
	}
}

func TestVertexPointsAliasInputBuffer(t *testing.T) {
	coords := []float64{0, 0, 1, 0, 0, 1}
	st := buildHull(t, 2, coords, Config{})
	defer Free(st)

	for v := st.VertexList(); !v.IsSentinel(); v = v.Next() {
		p := v.Point()
		if p == nil {
			t.Fatalf("vertex %s has no point", v)
		}
		if &p[0] != &coords[0] && &p[0] != &coords[2] && &p[0] != &coords[4] {
			t.Errorf("vertex %s point does not alias the input buffer", v)
		}
	}
}

func TestFree_Idempotent(t *testing.T) {
	st := buildHull(t, 2, []float64{0, 0, 1, 0, 0, 1}, Config{})
	Free(st)
	Free(st)
	if st.FacetList() != nil || st.VertexList() != nil {
		t.Error("Free left list pointers behind")
	}
}

func TestSentinelTraversal(t *testing.T) {
	st := buildHull(t, 2, []float64{0, 0, 1, 0, 0, 1}, Config{})
	defer Free(st)

	// forward: sentinel is reached last, exactly once
	var last *Facet
	seen := 0
	for f := st.FacetList(); f != nil; f = f.Next() {
		if f.IsSentinel() {
			seen++
		}
		last = f
	}
	if seen != 1 || !last.IsSentinel() {
		t.Errorf("forward traversal saw %d sentinels, last sentinel = %v", seen, last.IsSentinel())
	}

	// backward from the tail: sentinel first, then every real node
	if !st.FacetTail().IsSentinel() {
		t.Fatal("facet tail is not the sentinel")
	}
	real := 0
	for f := st.FacetTail().Prev(); f != nil; f = f.Prev() {
		if f.IsSentinel() {
			t.Error("second sentinel reached in backward traversal")
		}
		real++
	}
	if real != st.NumFacets() {
		t.Errorf("backward traversal visited %d real facets, want %d", real, st.NumFacets())
	}
}
