package engine

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Build constructs the hull over the input wired in by SetInput. It runs
// to completion or aborts; a state whose Build aborted must not be built
// again.
func Build(st *State) {
	if !st.initialized {
		st.errexit(codeInternal, "internal error: build called before input was set")
	}
	if st.built {
		st.errexit(codeInternal, "internal error: hull already built")
	}

	d := st.dim
	if st.numPoints < d+1 {
		st.errexit(codeInput,
			"input error: %d point(s) cannot span a %d-d hull, need at least %d",
			st.numPoints, d, d+1)
	}

	sel := st.initialSimplex()
	st.createSimplex(sel)

	inSimplex := make(map[int]bool, len(sel))
	for _, i := range sel {
		inSimplex[i] = true
	}
	for i := 0; i < st.numPoints; i++ {
		if !inSimplex[i] {
			st.addPoint(i)
		}
	}

	st.built = true
	st.tracedFacet, st.tracedRidge, st.tracedVertex = nil, nil, nil
	Logger().Debug("hull built",
		zap.Int("facets", st.numFacets),
		zap.Int("vertices", st.numVertices))
}

// initialSimplex selects dim+1 affinely independent point indices by
// greedily extending an orthonormal basis with the point reaching
// furthest out of the affine span so far. Aborts with a singular fault
// when no point extends the span.
func (st *State) initialSimplex() []int {
	d := st.dim
	sel := make([]int, 0, d+1)
	sel = append(sel, 0)
	used := make(map[int]bool, d+1)
	used[0] = true

	origin := st.point(0)
	basis := make([][]float64, 0, d)

	for len(sel) < d+1 {
		best := -1
		bestNorm := st.distEps
		var bestRes []float64
		for i := 0; i < st.numPoints; i++ {
			if used[i] {
				continue
			}
			r := residual(st.point(i), origin, basis)
			if n := norm(r); n > bestNorm {
				best, bestNorm, bestRes = i, n, r
			}
		}
		if best < 0 {
			st.errexit(codeSingular,
				"singular input: point set appears to be less than %d-dimensional", d)
		}
		sel = append(sel, best)
		used[best] = true
		for i := range bestRes {
			bestRes[i] /= bestNorm
		}
		basis = append(basis, bestRes)
	}

	return sel
}

// createSimplex builds the dim+1 facets of the initial simplex, with
// neighbors aligned opposite vertices, and records the simplex centroid
// as the interior reference point for facet orientation.
func (st *State) createSimplex(sel []int) {
	d := st.dim

	st.interior = make([]float64, d)
	for _, i := range sel {
		p := st.point(i)
		for j := 0; j < d; j++ {
			st.interior[j] += p[j]
		}
	}
	for j := 0; j < d; j++ {
		st.interior[j] /= float64(len(sel))
	}

	verts := make([]*Vertex, len(sel))
	for i, pi := range sel {
		verts[i] = st.getVertex(pi)
	}

	facets := make([]*Facet, len(sel))
	for i := range sel {
		f := &Facet{id: st.facetID}
		st.facetID++
		f.vertices = make([]*Vertex, 0, d)
		for j, v := range verts {
			if j != i {
				f.vertices = append(f.vertices, v)
			}
		}
		facets[i] = f
	}
	for i, f := range facets {
		f.neighbors = make([]*Facet, d)
		for k := range f.vertices {
			j := k
			if k >= i {
				j = k + 1
			}
			f.neighbors[k] = facets[j]
		}
		st.setPlane(f)
		st.addFacet(f)
	}
}

// addPoint performs one beneath-beyond insertion: locate a facet the
// point is above, flood the visible set, and replace it with a cone of
// new facets over the horizon ridges. Points inside the hull are skipped;
// coplanar points are retained when configured.
func (st *State) addPoint(idx int) {
	p := st.point(idx)

	var start, coplanarWith *Facet
	for f := st.facetList; !f.sentinel; f = f.next {
		dist := facetDist(f, p)
		if dist > st.distEps {
			start = f
			break
		}
		if coplanarWith == nil && dist > -st.distEps {
			coplanarWith = f
		}
	}
	if start == nil {
		if st.cfg.KeepCoplanar && coplanarWith != nil {
			coplanarWith.coplanar = append(coplanarWith.coplanar, idx)
		}
		return
	}

	st.tracedFacet = start

	type horizonRidge struct {
		verts   []*Vertex
		inside  *Facet
		outside *Facet
	}

	st.visitID++
	visible := []*Facet{start}
	start.visit = st.visitID
	var horizon []horizonRidge
	for qi := 0; qi < len(visible); qi++ {
		f := visible[qi]
		for k, nb := range f.neighbors {
			if nb.visit == st.visitID {
				continue
			}
			if facetDist(nb, p) > st.distEps {
				nb.visit = st.visitID
				visible = append(visible, nb)
				continue
			}
			rv := make([]*Vertex, 0, len(f.vertices)-1)
			for kk, v := range f.vertices {
				if kk != k {
					rv = append(rv, v)
				}
			}
			horizon = append(horizon, horizonRidge{verts: rv, inside: f, outside: nb})
		}
	}
	if len(horizon) == 0 {
		st.errexit(codeTopology, "topology error: no horizon found for point p%d", idx)
	}

	newVertex := st.getVertex(idx)
	st.tracedVertex = newVertex

	type halfRidge struct {
		f *Facet
		k int
	}
	pending := make(map[string]halfRidge)

	for _, h := range horizon {
		nf := &Facet{id: st.facetID}
		st.facetID++
		nf.vertices = append(append(make([]*Vertex, 0, st.dim), h.verts...), newVertex)
		nf.neighbors = make([]*Facet, len(nf.vertices))
		nf.neighbors[len(nf.vertices)-1] = h.outside

		r := &Ridge{id: st.ridgeID, vertices: h.verts, top: nf, bottom: h.outside}
		st.ridgeID++
		nf.ridges = append(nf.ridges, r)
		st.tracedRidge = r

		replaced := false
		for k, nb := range h.outside.neighbors {
			if nb == h.inside {
				h.outside.neighbors[k] = nf
				replaced = true
				break
			}
		}
		if !replaced {
			st.tracedFacet = h.outside
			st.errexit(codeTopology,
				"topology error: facet f%d does not neighbor visible facet f%d",
				h.outside.id, h.inside.id)
		}

		// Stitch the cone together along shared sub-ridges.
		for k := 0; k < len(nf.vertices)-1; k++ {
			key := ridgeKey(nf.vertices, k)
			if other, ok := pending[key]; ok {
				nf.neighbors[k] = other.f
				other.f.neighbors[other.k] = nf
				delete(pending, key)
			} else {
				pending[key] = halfRidge{nf, k}
			}
		}

		st.tracedFacet = nf
		st.setPlane(nf)
		st.addFacet(nf)
	}
	if len(pending) != 0 {
		st.errexit(codeTopology,
			"topology error: horizon around point p%d is not closed (%d open ridges)",
			idx, len(pending))
	}

	var orphaned []int
	for _, f := range visible {
		orphaned = append(orphaned, f.coplanar...)
		st.dropFacet(f)
	}
	if st.cfg.KeepCoplanar {
		for _, ci := range orphaned {
			st.assignCoplanar(ci)
		}
	}
}

// ridgeKey is a canonical identifier for the vertex set verts minus the
// element at skip.
func ridgeKey(verts []*Vertex, skip int) string {
	ids := make([]int, 0, len(verts)-1)
	for i, v := range verts {
		if i != skip {
			ids = append(ids, v.id)
		}
	}
	sort.Ints(ids)
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d/", id)
	}
	return b.String()
}

// assignCoplanar re-homes a coplanar point after the facet holding it was
// replaced. The point lands on the facet it is closest to, provided it is
// still within tolerance of the hull surface; points that ended up
// interior are dropped.
func (st *State) assignCoplanar(idx int) {
	p := st.point(idx)
	var best *Facet
	bestDist := 0.0
	for f := st.facetList; !f.sentinel; f = f.next {
		if d := facetDist(f, p); best == nil || d > bestDist {
			best, bestDist = f, d
		}
	}
	if best != nil && bestDist >= -st.distEps {
		best.coplanar = append(best.coplanar, idx)
	}
}

func (st *State) getVertex(idx int) *Vertex {
	if v, ok := st.vertexByPoint[idx]; ok {
		return v
	}
	v := &Vertex{id: st.vertexID, pointIdx: idx, point: st.point(idx)}
	st.vertexID++
	st.vertexByPoint[idx] = v
	st.appendVertex(v)
	return v
}

func (st *State) releaseVertex(v *Vertex) {
	v.refs--
	if v.refs == 0 {
		st.removeVertex(v)
		delete(st.vertexByPoint, v.pointIdx)
	}
}

func (st *State) addFacet(f *Facet) {
	for _, v := range f.vertices {
		v.refs++
	}
	st.appendFacet(f)
}

func (st *State) dropFacet(f *Facet) {
	st.removeFacet(f)
	for _, v := range f.vertices {
		st.releaseVertex(v)
	}
}
