package geometry

import (
	"fmt"
	"math"

	"github.com/piwi3910/WoodBOM/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// perpendicularTolerance is the largest |cos| between a face normal and the
// length axis for the face to count as a side face (about 84°..96°).
const perpendicularTolerance = 0.1

// FrameSource records which heuristic produced a frame.
type FrameSource string

const (
	FrameFromEdge    FrameSource = "edge"
	FrameFromInertia FrameSource = "inertia"
)

// OrientationFrame is the axis set a body's bounding box is measured in.
type OrientationFrame struct {
	LengthAxis r3.Vec
	CrossAxis1 r3.Vec
	CrossAxis2 r3.Vec
	Source     FrameSource
}

// BestOrientation picks the frame from the longest straight edge and a side
// face, falling back to the principal axes of inertia.
func BestOrientation(body model.SolidBody) (OrientationFrame, error) {
	if f, ok := EdgeFrame(body); ok {
		return f, nil
	}
	f, err := InertiaFrame(body.Physical)
	if err != nil {
		return OrientationFrame{}, fmt.Errorf("%w: %w", ErrNoFrame, err)
	}
	return f, nil
}

// EdgeFrame uses the longest straight edge as the length axis and the first
// planar face perpendicular to it as the second cross axis.
func EdgeFrame(body model.SolidBody) (OrientationFrame, bool) {
	edge, ok := longestStraightEdge(body.Edges)
	if !ok {
		return OrientationFrame{}, false
	}
	length, ok := unit(r3.Sub(edge.End, edge.Start))
	if !ok {
		return OrientationFrame{}, false
	}

	for _, face := range body.Faces {
		if !face.IsPlanar() {
			continue
		}
		normal, ok := unit(face.Normal)
		if !ok {
			continue
		}
		if math.Abs(r3.Dot(normal, length)) < perpendicularTolerance {
			return OrientationFrame{
				LengthAxis: length,
				CrossAxis1: r3.Cross(length, normal),
				CrossAxis2: normal,
				Source:     FrameFromEdge,
			}, true
		}
	}
	return OrientationFrame{}, false
}

// longestStraightEdge returns the first straight edge of strictly maximal length.
func longestStraightEdge(edges []model.Edge) (model.Edge, bool) {
	var best model.Edge
	maxLen := 0.0
	for _, e := range edges {
		if !e.Curve.IsStraight() {
			continue
		}
		if e.Length > maxLen {
			maxLen = e.Length
			best = e
		}
	}
	return best, maxLen > 0
}

// InertiaFrame takes the principal axis with the smallest moment as the length
// axis; the remaining two keep their order as cross axes.
func InertiaFrame(phys *model.PhysicalProperties) (OrientationFrame, error) {
	if phys == nil {
		return OrientationFrame{}, ErrNoPhysicalProperties
	}

	var moments [3]float64
	var axes [3]r3.Vec
	switch {
	case phys.HasPrincipalAxes():
		copy(moments[:], phys.Moments)
		copy(axes[:], phys.Axes)
	case phys.Inertia != nil:
		var err error
		moments, axes, err = PrincipalAxes(*phys.Inertia)
		if err != nil {
			return OrientationFrame{}, err
		}
	default:
		return OrientationFrame{}, ErrNoPhysicalProperties
	}

	minIdx := 0
	for i := 1; i < 3; i++ {
		if moments[i] < moments[minIdx] {
			minIdx = i
		}
	}

	var others []r3.Vec
	for i, a := range axes {
		if i != minIdx {
			others = append(others, a)
		}
	}

	length, ok1 := unit(axes[minIdx])
	cross1, ok2 := unit(others[0])
	cross2, ok3 := unit(others[1])
	if !ok1 || !ok2 || !ok3 {
		return OrientationFrame{}, fmt.Errorf("zero principal axis: %w", ErrDegenerate)
	}
	return OrientationFrame{
		LengthAxis: length,
		CrossAxis1: cross1,
		CrossAxis2: cross2,
		Source:     FrameFromInertia,
	}, nil
}

// unit normalizes v, reporting false for zero or non-finite vectors.
func unit(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}
