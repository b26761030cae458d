package geometry

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrientedExtents measures the box enclosing points in the frame spanned by
// lengthAxis, crossAxis and their cross product. The extents are returned in
// that axis order, in the units of the points.
func OrientedExtents(points []r3.Vec, lengthAxis, crossAxis r3.Vec) ([3]float64, error) {
	var extents [3]float64
	if len(points) == 0 {
		return extents, ErrNoPoints
	}

	l, ok1 := unit(lengthAxis)
	c, ok2 := unit(crossAxis)
	t, ok3 := unit(r3.Cross(l, c))
	if !ok1 || !ok2 || !ok3 {
		return extents, fmt.Errorf("box axes are parallel or zero: %w", ErrDegenerate)
	}
	axes := [3]r3.Vec{l, c, t}

	for i, axis := range axes {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range points {
			d := r3.Dot(p, axis)
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
		extents[i] = hi - lo
		if math.IsNaN(extents[i]) {
			return extents, fmt.Errorf("non-finite point coordinates: %w", ErrDegenerate)
		}
	}
	return extents, nil
}

// sortedDescending returns the extents largest first.
func sortedDescending(e [3]float64) [3]float64 {
	s := e[:]
	sort.Sort(sort.Reverse(sort.Float64Slice(s)))
	return e
}
