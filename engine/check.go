package engine

// checkTol is the tolerance used by the output checks. It is wider than
// the build tolerance so legitimate rounding in the plane equations does
// not trip the verifier.
func (st *State) checkTol() float64 {
	tol := st.distEps * 100
	if st.cfg.OutsideWidth > tol {
		tol = st.cfg.OutsideWidth
	}
	return tol
}

// CheckOutput verifies the structural invariants of the built hull:
// every facet is simplicial with a full, reciprocal neighbor set, and no
// input point lies above any facet. Aborts with a topology or precision
// fault on violation.
func CheckOutput(st *State) {
	if !st.built {
		st.errexit(codeInternal, "internal error: no output to check, hull not built")
	}

	d := st.dim
	for f := st.facetList; !f.sentinel; f = f.next {
		st.tracedFacet = f
		if len(f.vertices) != d {
			st.errexit(codeTopology,
				"topology error: facet f%d has %d vertices, expected %d",
				f.id, len(f.vertices), d)
		}
		if len(f.neighbors) != d {
			st.errexit(codeTopology,
				"topology error: facet f%d has %d neighbors, expected %d",
				f.id, len(f.neighbors), d)
		}
		for _, nb := range f.neighbors {
			if nb == nil || nb.sentinel {
				st.errexit(codeTopology,
					"topology error: facet f%d has a missing neighbor", f.id)
			}
			if !nb.hasNeighbor(f) {
				st.errexit(codeTopology,
					"topology error: facets f%d and f%d are not mutual neighbors",
					f.id, nb.id)
			}
		}
	}

	tol := st.checkTol()
	for i := 0; i < st.numPoints; i++ {
		p := st.point(i)
		for f := st.facetList; !f.sentinel; f = f.next {
			if dist := facetDist(f, p); dist > tol {
				st.tracedFacet = f
				st.errexit(codePrecision,
					"precision error: point p%d is %.2g above facet f%d",
					i, dist, f.id)
			}
		}
	}

	st.tracedFacet = nil
}

// CheckPoints verifies that every input point is accounted for: a hull
// vertex, retained as coplanar, or inside the hull. Aborts with a
// precision fault for any point left outside.
func CheckPoints(st *State) {
	if !st.built {
		st.errexit(codeInternal, "internal error: no points to check, hull not built")
	}

	coplanar := make(map[int]bool)
	for f := st.facetList; !f.sentinel; f = f.next {
		for _, ci := range f.coplanar {
			coplanar[ci] = true
		}
	}

	tol := st.checkTol()
	for i := 0; i < st.numPoints; i++ {
		if _, isVertex := st.vertexByPoint[i]; isVertex || coplanar[i] {
			continue
		}
		p := st.point(i)
		for f := st.facetList; !f.sentinel; f = f.next {
			if dist := facetDist(f, p); dist > tol {
				st.tracedFacet = f
				st.errexit(codePrecision,
					"precision error: point p%d is outside the hull, %.2g above facet f%d",
					i, dist, f.id)
			}
		}
	}
}
