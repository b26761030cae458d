package importer

import (
	"strings"
	"testing"

	"github.com/piwi3910/WoodBOM/internal/geometry"
	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableScene = `{
  "name": "Table",
  "units": "mm",
  "root_bodies": [
    {"name": "Body1", "material": "Pine", "box": [1200, 600, 20]},
    {"name": "Sketch", "material": "Pine", "box": [100, 100, 1], "solid": false}
  ],
  "occurrences": [
    {
      "name": "Leg:1",
      "bodies": [
        {"name": "Body1", "material": "Pine", "box": [720, 45, 45],
         "rotation": {"angle_deg": 30, "axis": [0, 0, 1]}}
      ]
    },
    {"name": "Leg:2", "visible": false, "bodies": [{"name": "Body1", "material": "Pine", "box": [720, 45, 45]}]},
    {
      "name": "Dowel:1",
      "bodies": [
        {
          "name": "Body1",
          "material": "Beech",
          "edges": [{"curve": "circle", "length": 94.2}],
          "faces": [{"surface": "cylinder"}, {"normal": [0, 0, 1]}, {"normal": [0, 0, -1]}],
          "points": [[15, 0, 0], [-15, 0, 0], [0, 15, 0], [0, -15, 900]],
          "physical": {"moments": [1400, 1400, 2], "axes": [[1, 0, 0], [0, 1, 0], [0, 0, 1]]}
        }
      ]
    }
  ]
}`

func TestReadScene(t *testing.T) {
	scene, err := ReadScene(strings.NewReader(tableScene))
	require.NoError(t, err)

	assert.Equal(t, "Table", scene.Name)
	require.Len(t, scene.RootBodies, 2)
	assert.True(t, scene.RootBodies[0].Solid)
	assert.False(t, scene.RootBodies[1].Solid)
	assert.True(t, scene.RootBodies[0].Visible)
	assert.InDelta(t, 120.0*60*2, scene.RootBodies[0].Physical.Volume, 1e-9)

	require.Len(t, scene.Occurrences, 3)
	assert.True(t, scene.Occurrences[0].Visible)
	assert.False(t, scene.Occurrences[1].Visible)

	dowel := scene.Occurrences[2].Bodies[0]
	assert.Equal(t, model.CurveCircle, dowel.Edges[0].Curve)
	assert.InDelta(t, 9.42, dowel.Edges[0].Length, 1e-9)
	assert.Equal(t, model.SurfaceCylinder, dowel.Faces[0].Surface)
	assert.Equal(t, model.SurfacePlane, dowel.Faces[1].Surface)
	assert.InDelta(t, 90.0, dowel.Points[3].Z, 1e-9)
}

func TestReadScene_MeasuresLikeTheHost(t *testing.T) {
	scene, err := ReadScene(strings.NewReader(tableScene))
	require.NoError(t, err)
	x := geometry.NewExtractor(model.DefaultSettings())

	leg, err := x.Extract(scene.Occurrences[0].Bodies[0])
	require.NoError(t, err)
	assert.Equal(t, [3]int{720, 45, 45}, [3]int{leg.Length, leg.Height, leg.Width})

	dowel, err := x.Extract(scene.Occurrences[2].Bodies[0])
	require.NoError(t, err)
	assert.Equal(t, 900, dowel.Length)
	assert.Equal(t, 30, dowel.Height)
}

func TestReadScene_DefaultsToCentimetres(t *testing.T) {
	scene, err := ReadScene(strings.NewReader(`{"root_bodies":[{"edges":[{"start":[0,0,0],"end":[3,4,0]}]}]}`))
	require.NoError(t, err)

	e := scene.RootBodies[0].Edges[0]
	assert.Equal(t, model.CurveLine, e.Curve)
	assert.InDelta(t, 5.0, e.Length, 1e-12)
}

func TestReadScene_Errors(t *testing.T) {
	tests := map[string]string{
		"bad json":      `{"name":`,
		"unknown field": `{"name":"x","bodies":[]}`,
		"unknown units": `{"units":"furlong"}`,
		"bad box":       `{"root_bodies":[{"box":[10,0,2]}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadScene(strings.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadScene_MissingFile(t *testing.T) {
	_, err := LoadScene("/nonexistent/scene.json")
	assert.ErrorContains(t, err, "failed to open scene")
}
