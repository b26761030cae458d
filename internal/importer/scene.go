package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// unitToCM converts scene units to centimetres.
var unitToCM = map[string]float64{
	"":   1,
	"cm": 1,
	"mm": 0.1,
	"m":  100,
	"in": 2.54,
}

type vec [3]float64

func (v vec) scaled(s float64) r3.Vec { return r3.Vec{X: v[0] * s, Y: v[1] * s, Z: v[2] * s} }

type sceneFile struct {
	Name        string           `json:"name"`
	Units       string           `json:"units"`
	RootBodies  []bodyFile       `json:"root_bodies"`
	Occurrences []occurrenceFile `json:"occurrences"`
}

type occurrenceFile struct {
	Name    string     `json:"name"`
	Visible *bool      `json:"visible"`
	Bodies  []bodyFile `json:"bodies"`
}

type bodyFile struct {
	Name     string        `json:"name"`
	Material string        `json:"material"`
	Solid    *bool         `json:"solid"`
	Visible  *bool         `json:"visible"`
	Box      *vec          `json:"box"`      // length, height, width shorthand
	Rotation *rotationFile `json:"rotation"` // applied to box bodies
	Edges    []edgeFile    `json:"edges"`
	Faces    []faceFile    `json:"faces"`
	Points   []vec         `json:"points"`
	Physical *physicalFile `json:"physical"`
}

type rotationFile struct {
	AngleDeg float64 `json:"angle_deg"`
	Axis     vec     `json:"axis"`
}

type edgeFile struct {
	Curve  string   `json:"curve"`
	Length *float64 `json:"length"`
	Start  vec      `json:"start"`
	End    vec      `json:"end"`
}

type faceFile struct {
	Surface string `json:"surface"`
	Normal  vec    `json:"normal"`
}

type physicalFile struct {
	Moments []float64      `json:"moments"`
	Axes    []vec          `json:"axes"`
	Inertia *[3][3]float64 `json:"inertia"`
	Volume  float64        `json:"volume"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// LoadScene reads a JSON scene export from path.
func LoadScene(path string) (model.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Scene{}, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()

	scene, err := ReadScene(f)
	if err != nil {
		return model.Scene{}, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return scene, nil
}

// ReadScene decodes a JSON scene export. Coordinates are converted to
// centimetres according to the "units" field.
func ReadScene(r io.Reader) (model.Scene, error) {
	var sf sceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return model.Scene{}, fmt.Errorf("failed to decode scene: %w", err)
	}

	scale, ok := unitToCM[strings.ToLower(sf.Units)]
	if !ok {
		return model.Scene{}, fmt.Errorf("unknown units %q", sf.Units)
	}

	scene := model.Scene{Name: sf.Name}
	for i, bf := range sf.RootBodies {
		body, err := bf.toModel(scale)
		if err != nil {
			return model.Scene{}, fmt.Errorf("root body %d: %w", i, err)
		}
		scene.RootBodies = append(scene.RootBodies, body)
	}
	for i, of := range sf.Occurrences {
		occ := model.Occurrence{Name: of.Name, Visible: boolOr(of.Visible, true)}
		for j, bf := range of.Bodies {
			body, err := bf.toModel(scale)
			if err != nil {
				return model.Scene{}, fmt.Errorf("occurrence %d (%s) body %d: %w", i, of.Name, j, err)
			}
			occ.Bodies = append(occ.Bodies, body)
		}
		scene.Occurrences = append(scene.Occurrences, occ)
	}
	return scene, nil
}

func (bf bodyFile) toModel(scale float64) (model.SolidBody, error) {
	if bf.Box != nil {
		b := *bf.Box
		if b[0] <= 0 || b[1] <= 0 || b[2] <= 0 {
			return model.SolidBody{}, errors.New("box dimensions must be positive")
		}
		body := model.NewBoardBody(bf.Name, bf.Material, b[0]*scale, b[1]*scale, b[2]*scale)
		if bf.Rotation != nil {
			body = body.Rotated(bf.Rotation.AngleDeg*math.Pi/180, bf.Rotation.Axis.scaled(1))
		}
		body.Solid = boolOr(bf.Solid, true)
		body.Visible = boolOr(bf.Visible, true)
		return body, nil
	}

	body := model.SolidBody{
		Name:     bf.Name,
		Material: bf.Material,
		Solid:    boolOr(bf.Solid, true),
		Visible:  boolOr(bf.Visible, true),
	}
	for _, ef := range bf.Edges {
		e := model.Edge{
			Curve: model.CurveType(strings.ToLower(ef.Curve)),
			Start: ef.Start.scaled(scale),
			End:   ef.End.scaled(scale),
		}
		if e.Curve == "" {
			e.Curve = model.CurveLine
		}
		if ef.Length != nil {
			e.Length = *ef.Length * scale
		} else if e.Curve.IsStraight() {
			e.Length = r3.Norm(r3.Sub(e.End, e.Start))
		}
		body.Edges = append(body.Edges, e)
	}
	for _, ff := range bf.Faces {
		surface := model.SurfaceType(strings.ToLower(ff.Surface))
		if surface == "" {
			surface = model.SurfacePlane
		}
		body.Faces = append(body.Faces, model.Face{Surface: surface, Normal: ff.Normal.scaled(1)})
	}
	for _, p := range bf.Points {
		body.Points = append(body.Points, p.scaled(scale))
	}
	if pf := bf.Physical; pf != nil {
		phys := &model.PhysicalProperties{
			Moments: pf.Moments,
			Volume:  pf.Volume * scale * scale * scale,
		}
		for _, a := range pf.Axes {
			phys.Axes = append(phys.Axes, a.scaled(1))
		}
		if pf.Inertia != nil {
			t := *pf.Inertia
			phys.Inertia = &t
		}
		body.Physical = phys
	}
	return body, nil
}
