package hullruntime

import (
	"github.com/hullkit/hull-runtime/errors"
)

// CollectedCoords is the result of flattening a point list into the
// contiguous row-major buffer handed to the engine.
type CollectedCoords struct {
	Coords []float64
	Count  int
	Dim    int
}

// CollectCoords flattens points into a single owned buffer, inferring the
// dimensionality from the first point. Every point must have the same
// arity; a mismatch is reported before any engine state is touched.
func CollectCoords(points [][]float64) (CollectedCoords, error) {
	if len(points) == 0 {
		return CollectedCoords{}, nil
	}

	dim := len(points[0])
	coords := make([]float64, 0, len(points)*dim)
	for i, p := range points {
		if len(p) != dim {
			return CollectedCoords{}, &errors.DimensionMismatchError{
				Expected: dim,
				Got:      len(p),
				Index:    i,
			}
		}
		coords = append(coords, p...)
	}

	return CollectedCoords{Coords: coords, Count: len(points), Dim: dim}, nil
}

// PrepareDelaunayCoords lifts D-dimensional points onto the unit paraboloid
// in D+1 dimensions by appending the sum of squared coordinates, then
// flattens the lifted set. The convex hull of the lifted points encodes the
// Delaunay triangulation of the originals.
func PrepareDelaunayCoords(points [][]float64) (CollectedCoords, error) {
	lifted := make([][]float64, len(points))
	for i, p := range points {
		lp := make([]float64, len(p)+1)
		var sq float64
		for j, c := range p {
			lp[j] = c
			sq += c * c
		}
		lp[len(p)] = sq
		lifted[i] = lp
	}

	cc, err := CollectCoords(lifted)
	if err != nil {
		return CollectedCoords{}, err
	}
	return cc, nil
}
