package geometry

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxMesh triangulates an axis-aligned box with outward winding.
func boxMesh(l, h, w float64) []Triangle {
	p := [8]r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: l, Y: 0, Z: 0}, {X: l, Y: h, Z: 0}, {X: 0, Y: h, Z: 0},
		{X: 0, Y: 0, Z: w}, {X: l, Y: 0, Z: w}, {X: l, Y: h, Z: w}, {X: 0, Y: h, Z: w},
	}
	quads := [][4]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	var tris []Triangle
	for _, q := range quads {
		tris = append(tris,
			Triangle{p[q[0]], p[q[1]], p[q[2]]},
			Triangle{p[q[0]], p[q[2]], p[q[3]]},
		)
	}
	return tris
}

func TestPrincipalAxes_Diagonal(t *testing.T) {
	moments, axes, err := PrincipalAxes([3][3]float64{
		{3, 0, 0},
		{0, 1, 0},
		{0, 0, 2},
	})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1, 2, 3}, moments[:], 1e-12)
	assertParallel(t, r3.Vec{Y: 1}, axes[0])
	assertParallel(t, r3.Vec{Z: 1}, axes[1])
	assertParallel(t, r3.Vec{X: 1}, axes[2])
}

func TestPrincipalAxes_Rotated(t *testing.T) {
	// diag(1, 4, 4) rotated 45° about Z: the weak axis becomes (1,1,0)/√2
	tensor := [3][3]float64{
		{2.5, -1.5, 0},
		{-1.5, 2.5, 0},
		{0, 0, 4},
	}
	moments, axes, err := PrincipalAxes(tensor)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, moments[0], 1e-9)
	assertParallel(t, r3.Vec{X: 1, Y: 1}, axes[0])
}

func TestPrincipalAxes_NonFinite(t *testing.T) {
	_, _, err := PrincipalAxes([3][3]float64{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.True(t, errors.Is(err, ErrDegenerate))
}

func TestMeshMassProperties_Box(t *testing.T) {
	l, h, w := 72.0, 4.5, 3.0
	props, err := MeshMassProperties(boxMesh(l, h, w))
	require.NoError(t, err)

	mass := l * h * w
	assert.InDelta(t, mass, props.Volume, 1e-9)
	assert.InDelta(t, l/2, props.Centroid.X, 1e-9)
	assert.InDelta(t, h/2, props.Centroid.Y, 1e-9)
	assert.InDelta(t, w/2, props.Centroid.Z, 1e-9)

	assert.InDelta(t, mass*(h*h+w*w)/12, props.Inertia[0][0], 1e-6)
	assert.InDelta(t, mass*(l*l+w*w)/12, props.Inertia[1][1], 1e-6)
	assert.InDelta(t, mass*(l*l+h*h)/12, props.Inertia[2][2], 1e-6)
	assert.InDelta(t, 0, props.Inertia[0][1], 1e-6)
	assert.InDelta(t, 0, props.Inertia[1][2], 1e-6)
	assert.InDelta(t, 0, props.Inertia[0][2], 1e-6)
}

func TestMeshMassProperties_InvertedWinding(t *testing.T) {
	tris := boxMesh(10, 2, 1)
	for i := range tris {
		tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
	}
	props, err := MeshMassProperties(tris)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, props.Volume, 1e-9)
}

func TestMeshMassProperties_LengthAxisFromTensor(t *testing.T) {
	props, err := MeshMassProperties(boxMesh(2, 40, 3))
	require.NoError(t, err)

	moments, axes, err := PrincipalAxes(props.Inertia)
	require.NoError(t, err)
	assert.True(t, sort.Float64sAreSorted(moments[:]))
	assertParallel(t, r3.Vec{Y: 1}, axes[0])
}

func TestMeshMassProperties_TooFewTriangles(t *testing.T) {
	_, err := MeshMassProperties(boxMesh(1, 1, 1)[:3])
	assert.True(t, errors.Is(err, ErrDegenerate))
}
