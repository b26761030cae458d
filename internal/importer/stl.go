package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/hschendel/stl"
	"github.com/piwi3910/WoodBOM/internal/geometry"
	"github.com/piwi3910/WoodBOM/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	defaultSTLScale = 0.1  // millimetres to cm
	planeTolerance  = 1e-6 // max deviation of normals and plane offsets within one face
	vertexGrid      = 1e-6 // cm; vertices closer than this are merged
)

// ImportSTL reads an ASCII or binary STL file as a single body. The scene holds
// one visible occurrence named after the file. scale converts file units to cm;
// zero means the file is in millimetres.
func ImportSTL(path, material string, scale float64) (model.Scene, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return model.Scene{}, fmt.Errorf("failed to read STL %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tris := make([]geometry.Triangle, 0, len(solid.Triangles))
	for _, t := range solid.Triangles {
		var tri geometry.Triangle
		for i, v := range t.Vertices {
			tri[i] = r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
		}
		tris = append(tris, tri)
	}

	body, err := MeshBody(name, material, tris, scale)
	if err != nil {
		return model.Scene{}, fmt.Errorf("failed to convert STL %s: %w", path, err)
	}

	return model.Scene{
		Name: name,
		Occurrences: []model.Occurrence{
			{Name: name, Visible: true, Bodies: []model.SolidBody{body}},
		},
	}, nil
}

// meshFace is a group of coplanar, consistently oriented triangles.
type meshFace struct {
	normal r3.Vec
	offset float64
}

// MeshBody converts a closed triangle mesh to a solid body. Coplanar triangles
// become planar faces, edges between different faces (and open edges) become
// straight edges, and the inertia tensor is integrated over the mesh.
func MeshBody(name, material string, tris []geometry.Triangle, scale float64) (model.SolidBody, error) {
	if scale <= 0 {
		scale = defaultSTLScale
	}

	type vkey [3]int64
	key := func(v r3.Vec) vkey {
		return vkey{int64(math.Round(v.X / vertexGrid)), int64(math.Round(v.Y / vertexGrid)), int64(math.Round(v.Z / vertexGrid))}
	}

	vertexIdx := map[vkey]int{}
	var points []r3.Vec
	index := func(v r3.Vec) int {
		k := key(v)
		if i, ok := vertexIdx[k]; ok {
			return i
		}
		vertexIdx[k] = len(points)
		points = append(points, v)
		return len(points) - 1
	}

	var faces []meshFace
	faceOf := func(n r3.Vec, p r3.Vec) int {
		d := r3.Dot(n, p)
		for i, f := range faces {
			if r3.Dot(f.normal, n) > 1-planeTolerance && math.Abs(f.offset-d) < planeTolerance*math.Max(1, math.Abs(d)) {
				return i
			}
		}
		faces = append(faces, meshFace{normal: n, offset: d})
		return len(faces) - 1
	}

	type ekey [2]int
	edgeFaces := map[ekey][]int{}
	var edgeOrder []ekey
	var scaled []geometry.Triangle

	for _, t := range tris {
		var st geometry.Triangle
		for i := range t {
			st[i] = r3.Scale(scale, t[i])
		}
		cross := r3.Cross(r3.Sub(st[1], st[0]), r3.Sub(st[2], st[0]))
		if r3.Norm(cross) < vertexGrid*vertexGrid {
			continue // degenerate
		}
		scaled = append(scaled, st)
		f := faceOf(r3.Unit(cross), st[0])

		var idx [3]int
		for i := range st {
			idx[i] = index(st[i])
		}
		for i := 0; i < 3; i++ {
			a, b := idx[i], idx[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			k := ekey{a, b}
			if _, ok := edgeFaces[k]; !ok {
				edgeOrder = append(edgeOrder, k)
			}
			edgeFaces[k] = append(edgeFaces[k], f)
		}
	}
	if len(scaled) == 0 {
		return model.SolidBody{}, fmt.Errorf("mesh has no usable triangles: %w", geometry.ErrDegenerate)
	}

	body := model.SolidBody{
		Name:     name,
		Material: material,
		Solid:    true,
		Visible:  true,
		Points:   points,
	}
	for _, f := range faces {
		body.Faces = append(body.Faces, model.Face{Surface: model.SurfacePlane, Normal: f.normal})
	}
	for _, k := range edgeOrder {
		fs := edgeFaces[k]
		if len(fs) == 2 && fs[0] == fs[1] {
			continue // interior edge of a tessellated face
		}
		start, end := points[k[0]], points[k[1]]
		body.Edges = append(body.Edges, model.Edge{
			Curve:  model.CurveLine,
			Length: r3.Norm(r3.Sub(end, start)),
			Start:  start,
			End:    end,
		})
	}

	if mp, err := geometry.MeshMassProperties(scaled); err == nil {
		inertia := mp.Inertia
		body.Physical = &model.PhysicalProperties{Inertia: &inertia, Volume: mp.Volume}
	}
	return body, nil
}
