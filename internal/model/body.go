package model

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// CurveType classifies the geometry underlying a B-rep edge.
type CurveType string

const (
	CurveLine    CurveType = "line"
	CurveArc     CurveType = "arc"
	CurveCircle  CurveType = "circle"
	CurveEllipse CurveType = "ellipse"
	CurveSpline  CurveType = "spline"
	CurveOther   CurveType = "other"
)

// IsStraight reports whether edges of this type are straight line segments.
func (c CurveType) IsStraight() bool {
	return c == CurveLine
}

// SurfaceType classifies the geometry underlying a B-rep face.
type SurfaceType string

const (
	SurfacePlane    SurfaceType = "plane"
	SurfaceCylinder SurfaceType = "cylinder"
	SurfaceCone     SurfaceType = "cone"
	SurfaceSphere   SurfaceType = "sphere"
	SurfaceTorus    SurfaceType = "torus"
	SurfaceNurbs    SurfaceType = "nurbs"
	SurfaceOther    SurfaceType = "other"
)

// Edge is a boundary edge of a solid. Coordinates are in host units (cm).
type Edge struct {
	Curve  CurveType `json:"curve"`
	Length float64   `json:"length"`
	Start  r3.Vec    `json:"start"`
	End    r3.Vec    `json:"end"`
}

// Face is a boundary face of a solid. Normal is only meaningful for planes.
type Face struct {
	Surface SurfaceType `json:"surface"`
	Normal  r3.Vec      `json:"normal"`
}

// IsPlanar reports whether the face lies on a plane.
func (f Face) IsPlanar() bool {
	return f.Surface == SurfacePlane
}

// PhysicalProperties carries the mass analysis of a body. Either the principal
// moments and axes are given directly, or they are derived from Inertia.
type PhysicalProperties struct {
	Moments []float64      `json:"moments,omitempty"` // principal moments, same order as Axes
	Axes    []r3.Vec       `json:"axes,omitempty"`    // principal axes
	Inertia *[3][3]float64 `json:"inertia,omitempty"` // inertia tensor about the centroid
	Volume  float64        `json:"volume,omitempty"`  // cm³
}

// HasPrincipalAxes reports whether moments and axes were supplied directly.
func (p PhysicalProperties) HasPrincipalAxes() bool {
	return len(p.Moments) == 3 && len(p.Axes) == 3
}

// SolidBody is one body handed over by the CAD host.
type SolidBody struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Material string              `json:"material"`
	Solid    bool                `json:"solid"`
	Visible  bool                `json:"visible"`
	Edges    []Edge              `json:"edges"`
	Faces    []Face              `json:"faces"`
	Points   []r3.Vec            `json:"points"` // boundary sample points used for box measurement
	Physical *PhysicalProperties `json:"physical,omitempty"`
}

// Rotated returns a copy of the body rotated by alpha radians around axis.
// Edge lengths are preserved.
func (b SolidBody) Rotated(alpha float64, axis r3.Vec) SolidBody {
	rot := func(v r3.Vec) r3.Vec { return r3.Rotate(v, alpha, axis) }

	out := b
	out.Edges = make([]Edge, len(b.Edges))
	for i, e := range b.Edges {
		e.Start = rot(e.Start)
		e.End = rot(e.End)
		out.Edges[i] = e
	}
	out.Faces = make([]Face, len(b.Faces))
	for i, f := range b.Faces {
		f.Normal = rot(f.Normal)
		out.Faces[i] = f
	}
	out.Points = make([]r3.Vec, len(b.Points))
	for i, p := range b.Points {
		out.Points[i] = rot(p)
	}
	if b.Physical != nil && b.Physical.HasPrincipalAxes() {
		phys := *b.Physical
		phys.Axes = make([]r3.Vec, 3)
		for i, a := range b.Physical.Axes {
			phys.Axes[i] = rot(a)
		}
		phys.Moments = append([]float64(nil), b.Physical.Moments...)
		out.Physical = &phys
	}
	return out
}

// NewBoardBody builds a rectangular prism of the given size (cm) with its
// length along X, height along Y and width along Z. Principal moments are
// computed for a solid of unit density.
func NewBoardBody(name, material string, length, height, width float64) SolidBody {
	corners := make([]r3.Vec, 0, 8)
	for _, x := range []float64{0, length} {
		for _, y := range []float64{0, height} {
			for _, z := range []float64{0, width} {
				corners = append(corners, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}

	var edges []Edge
	for i := 0; i < len(corners); i++ {
		for j := i + 1; j < len(corners); j++ {
			d := r3.Sub(corners[j], corners[i])
			axes := 0
			for _, c := range []float64{d.X, d.Y, d.Z} {
				if c != 0 {
					axes++
				}
			}
			if axes == 1 {
				edges = append(edges, Edge{
					Curve:  CurveLine,
					Length: r3.Norm(d),
					Start:  corners[i],
					End:    corners[j],
				})
			}
		}
	}

	faces := []Face{
		{Surface: SurfacePlane, Normal: r3.Vec{X: -1}},
		{Surface: SurfacePlane, Normal: r3.Vec{X: 1}},
		{Surface: SurfacePlane, Normal: r3.Vec{Y: -1}},
		{Surface: SurfacePlane, Normal: r3.Vec{Y: 1}},
		{Surface: SurfacePlane, Normal: r3.Vec{Z: -1}},
		{Surface: SurfacePlane, Normal: r3.Vec{Z: 1}},
	}

	mass := length * height * width
	ix := mass * (height*height + width*width) / 12
	iy := mass * (length*length + width*width) / 12
	iz := mass * (length*length + height*height) / 12

	return SolidBody{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Material: material,
		Solid:    true,
		Visible:  true,
		Edges:    edges,
		Faces:    faces,
		Points:   corners,
		Physical: &PhysicalProperties{
			Moments: []float64{ix, iy, iz},
			Axes:    []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}},
			Volume:  mass,
		},
	}
}

// Occurrence is a named instance in the host assembly tree.
type Occurrence struct {
	Name    string      `json:"name"`
	Visible bool        `json:"visible"`
	Bodies  []SolidBody `json:"bodies"`
}

// Scene is everything the host exposes for one report run.
type Scene struct {
	Name        string       `json:"name"`
	RootBodies  []SolidBody  `json:"root_bodies"`
	Occurrences []Occurrence `json:"occurrences"`
}
