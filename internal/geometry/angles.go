package geometry

import (
	"math"
	"sort"

	"github.com/piwi3910/WoodBOM/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// CutAngles returns the distinct angles, in ascending half degrees, between
// lengthAxis and the normals of the planar end faces. Side faces (normal within
// perpendicularTolerance of perpendicular) are ignored.
func CutAngles(faces []model.Face, lengthAxis r3.Vec) []float64 {
	l, ok := unit(lengthAxis)
	if !ok {
		return nil
	}

	seen := make(map[float64]bool)
	var angles []float64
	for _, face := range faces {
		if !face.IsPlanar() {
			continue
		}
		n, ok := unit(face.Normal)
		if !ok {
			continue
		}
		dot := math.Abs(r3.Dot(n, l))
		if dot < perpendicularTolerance {
			continue
		}
		dot = math.Min(dot, 1)
		a := RoundHalfDegree(math.Acos(dot) * 180 / math.Pi)
		if !seen[a] {
			seen[a] = true
			angles = append(angles, a)
		}
	}
	sort.Float64s(angles)
	return angles
}

// pickAngles returns the two smallest angles. With a single angle both are
// equal; ok is false when there are none. Further angles are dropped.
func pickAngles(angles []float64) (a1, a2 float64, ok bool) {
	switch len(angles) {
	case 0:
		return 0, 0, false
	case 1:
		return angles[0], angles[0], true
	default:
		return angles[0], angles[1], true
	}
}
