package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewBoardBody(t *testing.T) {
	b := NewBoardBody("Shelf", "Pine", 80, 30, 2)

	assert.True(t, b.Solid)
	assert.True(t, b.Visible)
	assert.Len(t, b.Points, 8)
	require.Len(t, b.Edges, 12)
	assert.Len(t, b.Faces, 6)

	var lengths []float64
	for _, e := range b.Edges {
		assert.True(t, e.Curve.IsStraight())
		assert.InDelta(t, e.Length, r3.Norm(r3.Sub(e.End, e.Start)), 1e-12)
		lengths = append(lengths, e.Length)
	}
	assert.Contains(t, lengths, 80.0)
	assert.Contains(t, lengths, 30.0)
	assert.Contains(t, lengths, 2.0)

	require.NotNil(t, b.Physical)
	assert.True(t, b.Physical.HasPrincipalAxes())
	assert.InDelta(t, 4800.0, b.Physical.Volume, 1e-9)
	assert.Less(t, b.Physical.Moments[0], b.Physical.Moments[2], "length axis has the smallest moment")
	assert.Less(t, b.Physical.Moments[0], b.Physical.Moments[1])
}

func TestSolidBody_Rotated(t *testing.T) {
	b := NewBoardBody("Shelf", "Pine", 80, 30, 2)
	r := b.Rotated(math.Pi/2, r3.Vec{Z: 1})

	// +X maps to +Y
	assert.InDelta(t, 1.0, r.Faces[1].Normal.Y, 1e-12)
	assert.InDelta(t, 0.0, r.Faces[1].Normal.X, 1e-12)
	assert.InDelta(t, 1.0, r.Physical.Axes[0].Y, 1e-12)

	for i := range b.Edges {
		assert.Equal(t, b.Edges[i].Length, r.Edges[i].Length)
	}
	// the receiver is untouched
	assert.Equal(t, 1.0, b.Faces[1].Normal.X)
	assert.Equal(t, 1.0, b.Physical.Axes[0].X)
}

func TestFaceAndCurveKinds(t *testing.T) {
	assert.True(t, Face{Surface: SurfacePlane}.IsPlanar())
	assert.False(t, Face{Surface: SurfaceCylinder}.IsPlanar())
	assert.False(t, CurveArc.IsStraight())
	assert.False(t, PhysicalProperties{Moments: []float64{1, 2, 3}}.HasPrincipalAxes())
}
