package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PrincipalAxes diagonalizes a symmetric inertia tensor. Moments are returned
// in ascending order; axes[i] belongs to moments[i].
func PrincipalAxes(tensor [3][3]float64) ([3]float64, [3]r3.Vec, error) {
	var moments [3]float64
	var axes [3]r3.Vec

	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := tensor[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return moments, axes, fmt.Errorf("inertia tensor has non-finite entry: %w", ErrDegenerate)
			}
			data = append(data, v)
		}
	}
	sym := mat.NewSymDense(3, data)

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return moments, axes, fmt.Errorf("eigen decomposition failed: %w", ErrDegenerate)
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	for i := 0; i < 3; i++ {
		moments[i] = values[i]
		axes[i] = r3.Vec{X: vectors.At(0, i), Y: vectors.At(1, i), Z: vectors.At(2, i)}
	}
	return moments, axes, nil
}

// Triangle is a mesh facet with outward counter-clockwise winding.
type Triangle [3]r3.Vec

// MassProperties is the result of integrating a closed mesh at unit density.
type MassProperties struct {
	Volume   float64
	Centroid r3.Vec
	Inertia  [3][3]float64 // about the centroid
}

// MeshMassProperties integrates volume, centroid and inertia tensor of a
// closed triangle mesh using the divergence theorem (Eberly, "Polyhedral Mass
// Properties"). Inverted winding is tolerated.
func MeshMassProperties(triangles []Triangle) (MassProperties, error) {
	if len(triangles) < 4 {
		return MassProperties{}, fmt.Errorf("mesh has %d triangles: %w", len(triangles), ErrDegenerate)
	}

	var intg [10]float64
	for _, t := range triangles {
		x0, y0, z0 := t[0].X, t[0].Y, t[0].Z
		x1, y1, z1 := t[1].X, t[1].Y, t[1].Z
		x2, y2, z2 := t[2].X, t[2].Y, t[2].Z

		a1, b1, c1 := x1-x0, y1-y0, z1-z0
		a2, b2, c2 := x2-x0, y2-y0, z2-z0
		d0 := b1*c2 - b2*c1
		d1 := a2*c1 - a1*c2
		d2 := a1*b2 - a2*b1

		f1x, f2x, f3x, g0x, g1x, g2x := subexpressions(x0, x1, x2)
		_, f2y, f3y, g0y, g1y, g2y := subexpressions(y0, y1, y2)
		_, f2z, f3z, g0z, g1z, g2z := subexpressions(z0, z1, z2)

		intg[0] += d0 * f1x
		intg[1] += d0 * f2x
		intg[2] += d1 * f2y
		intg[3] += d2 * f2z
		intg[4] += d0 * f3x
		intg[5] += d1 * f3y
		intg[6] += d2 * f3z
		intg[7] += d0 * (y0*g0x + y1*g1x + y2*g2x)
		intg[8] += d1 * (z0*g0y + z1*g1y + z2*g2y)
		intg[9] += d2 * (x0*g0z + x1*g1z + x2*g2z)
	}

	mult := [10]float64{1.0 / 6, 1.0 / 24, 1.0 / 24, 1.0 / 24, 1.0 / 60, 1.0 / 60, 1.0 / 60, 1.0 / 120, 1.0 / 120, 1.0 / 120}
	for i := range intg {
		intg[i] *= mult[i]
	}
	if intg[0] < 0 {
		for i := range intg {
			intg[i] = -intg[i]
		}
	}

	mass := intg[0]
	if mass <= 1e-12 {
		return MassProperties{}, fmt.Errorf("mesh encloses no volume: %w", ErrDegenerate)
	}
	c := r3.Vec{X: intg[1] / mass, Y: intg[2] / mass, Z: intg[3] / mass}

	xx := intg[5] + intg[6] - mass*(c.Y*c.Y+c.Z*c.Z)
	yy := intg[4] + intg[6] - mass*(c.Z*c.Z+c.X*c.X)
	zz := intg[4] + intg[5] - mass*(c.X*c.X+c.Y*c.Y)
	xy := -(intg[7] - mass*c.X*c.Y)
	yz := -(intg[8] - mass*c.Y*c.Z)
	xz := -(intg[9] - mass*c.Z*c.X)

	return MassProperties{
		Volume:   mass,
		Centroid: c,
		Inertia: [3][3]float64{
			{xx, xy, xz},
			{xy, yy, yz},
			{xz, yz, zz},
		},
	}, nil
}

func subexpressions(w0, w1, w2 float64) (f1, f2, f3, g0, g1, g2 float64) {
	temp0 := w0 + w1
	f1 = temp0 + w2
	temp1 := w0 * w0
	temp2 := temp1 + w1*temp0
	f2 = temp2 + w2*f1
	f3 = w0*temp1 + w1*temp2 + w2*f2
	g0 = f2 + w0*(f1+w0)
	g1 = f2 + w1*(f1+w1)
	g2 = f2 + w2*(f1+w2)
	return
}
