package engine

import "math"

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

// facetDist is the signed distance of p from f's hyperplane, positive
// above (outside) the hull.
func facetDist(f *Facet, p []float64) float64 {
	return dot(f.normal, p) + f.offset
}

// residual returns p-origin with its projections onto the orthonormal
// basis removed. The norm of the result measures how far p reaches out
// of the affine subspace spanned so far.
func residual(p, origin []float64, basis [][]float64) []float64 {
	r := make([]float64, len(p))
	for i := range p {
		r[i] = p[i] - origin[i]
	}
	for _, b := range basis {
		c := dot(r, b)
		for i := range r {
			r[i] -= c * b[i]
		}
	}
	return r
}

// nullVector solves for a unit vector orthogonal to all rows. rows must
// hold d-1 vectors of length d; the result is nil if the rows are rank
// deficient, which means the spanned facet is degenerate.
func nullVector(rows [][]float64, d int) []float64 {
	m := len(rows)
	a := make([][]float64, m)
	for i, r := range rows {
		a[i] = append([]float64(nil), r...)
	}

	const pivotEps = 1e-12

	pivotCols := make([]int, 0, m)
	isPivot := make([]bool, d)
	row := 0
	for col := 0; col < d && row < m; col++ {
		// partial pivoting
		best, bestAbs := -1, pivotEps
		for r := row; r < m; r++ {
			if abs := math.Abs(a[r][col]); abs > bestAbs {
				best, bestAbs = r, abs
			}
		}
		if best < 0 {
			continue
		}
		a[row], a[best] = a[best], a[row]
		for r := row + 1; r < m; r++ {
			factor := a[r][col] / a[row][col]
			if factor == 0 {
				continue
			}
			for c := col; c < d; c++ {
				a[r][c] -= factor * a[row][c]
			}
		}
		pivotCols = append(pivotCols, col)
		isPivot[col] = true
		row++
	}

	if len(pivotCols) < m {
		return nil
	}

	free := -1
	for c := 0; c < d; c++ {
		if !isPivot[c] {
			free = c
			break
		}
	}
	if free < 0 {
		return nil
	}

	x := make([]float64, d)
	x[free] = 1
	for r := m - 1; r >= 0; r-- {
		pc := pivotCols[r]
		var s float64
		for c := pc + 1; c < d; c++ {
			s += a[r][c] * x[c]
		}
		x[pc] = -s / a[r][pc]
	}

	n := norm(x)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	for i := range x {
		x[i] /= n
	}
	return x
}

// setPlane computes f's hyperplane from its vertices and orients the
// normal outward, away from the recorded interior point. Aborts with a
// singular fault if the vertices do not span a hyperplane.
func (st *State) setPlane(f *Facet) {
	d := st.dim
	rows := make([][]float64, d-1)
	p0 := f.vertices[0].point
	for i := 1; i < d; i++ {
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = f.vertices[i].point[j] - p0[j]
		}
		rows[i-1] = row
	}

	normal := nullVector(rows, d)
	if normal == nil {
		st.tracedFacet = f
		st.errexit(codeSingular, "singular input: facet f%d is degenerate", f.id)
	}

	offset := -dot(normal, p0)
	if dot(normal, st.interior)+offset > 0 {
		for i := range normal {
			normal[i] = -normal[i]
		}
		offset = -offset
	}

	f.normal = normal
	f.offset = offset
}
