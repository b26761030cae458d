package geometry

import (
	"math"
	"testing"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

// tilted returns a plane normal at deg degrees from +X in the XY plane.
func tilted(deg float64) model.Face {
	rad := deg * math.Pi / 180
	return model.Face{Surface: model.SurfacePlane, Normal: r3.Vec{X: math.Cos(rad), Y: math.Sin(rad)}}
}

func TestCutAngles_SquareEnds(t *testing.T) {
	body := model.NewBoardBody("Leg", "Pine", 72, 4.5, 4.5)
	angles := CutAngles(body.Faces, r3.Vec{X: 1})
	assert.Equal(t, []float64{0}, angles)
}

func TestCutAngles_MiterAndSquare(t *testing.T) {
	faces := []model.Face{
		tilted(90), // side face
		tilted(0),
		tilted(45),
	}
	assert.Equal(t, []float64{0, 45}, CutAngles(faces, r3.Vec{X: 1}))
}

func TestCutAngles_RoundsAndDeduplicates(t *testing.T) {
	faces := []model.Face{
		tilted(44.8),
		tilted(45.1),
		tilted(180 - 45), // opposite end, same miter
		tilted(30.3),
	}
	assert.Equal(t, []float64{30.5, 45}, CutAngles(faces, r3.Vec{X: 1}))
}

func TestCutAngles_SkipsNonPlanarAndNearPerpendicular(t *testing.T) {
	faces := []model.Face{
		{Surface: model.SurfaceCylinder, Normal: r3.Vec{X: 1}},
		tilted(85), // |cos| ≈ 0.087 < 0.1, a side face
		{Surface: model.SurfacePlane},
	}
	assert.Empty(t, CutAngles(faces, r3.Vec{X: 1}))
}

func TestCutAngles_LengthAxisSignIrrelevant(t *testing.T) {
	faces := []model.Face{tilted(60)}
	assert.Equal(t, CutAngles(faces, r3.Vec{X: 1}), CutAngles(faces, r3.Vec{X: -1}))
}

func TestPickAngles(t *testing.T) {
	_, _, ok := pickAngles(nil)
	assert.False(t, ok)

	a1, a2, ok := pickAngles([]float64{45})
	assert.True(t, ok)
	assert.Equal(t, 45.0, a1)
	assert.Equal(t, 45.0, a2)

	// only the two smallest survive
	a1, a2, ok = pickAngles([]float64{0, 22.5, 45})
	assert.True(t, ok)
	assert.Equal(t, 0.0, a1)
	assert.Equal(t, 22.5, a2)
}
