package geometry

import (
	"fmt"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// Measurement is the intermediate result of measuring one body.
type Measurement struct {
	Frame   OrientationFrame
	Extents [3]float64 // host units, largest first
	Angles  []float64  // distinct end cut angles, ascending
}

// Extractor turns solid bodies into dimension records.
type Extractor struct {
	rounder Rounder
}

func NewExtractor(settings model.Settings) *Extractor {
	return &Extractor{
		rounder: Rounder{Snap: settings.UseSnapping, Interval: settings.SnapInterval},
	}
}

// Measure orients the body and measures its bounding box and cut angles.
func (x *Extractor) Measure(body model.SolidBody) (Measurement, error) {
	frame, err := BestOrientation(body)
	if err != nil {
		return Measurement{}, &GeometryError{Body: body.Name, Stage: "orientation", Err: err}
	}

	extents, err := OrientedExtents(body.Points, frame.LengthAxis, frame.CrossAxis1)
	if err != nil {
		return Measurement{}, &GeometryError{Body: body.Name, Stage: "bounding box", Err: err}
	}

	return Measurement{
		Frame:   frame,
		Extents: sortedDescending(extents),
		Angles:  CutAngles(body.Faces, frame.LengthAxis),
	}, nil
}

// Extract measures the body and builds its dimension record. The length is
// rounded to the millimetre; height and width go through SmartRound.
func (x *Extractor) Extract(body model.SolidBody) (model.DimensionRecord, error) {
	m, err := x.Measure(body)
	if err != nil {
		return model.DimensionRecord{}, err
	}

	length := ToMillimetres(m.Extents[0])
	height := x.rounder.SmartRound(m.Extents[1] * cmToMM)
	width := x.rounder.SmartRound(m.Extents[2] * cmToMM)
	if length <= 0 {
		return model.DimensionRecord{}, &GeometryError{
			Body:  body.Name,
			Stage: "dimensions",
			Err:   fmt.Errorf("zero length: %w", ErrDegenerate),
		}
	}

	a1, a2, ok := pickAngles(m.Angles)
	return model.NewDimensionRecord(body.Name, body.Material, [3]int{length, height, width}, a1, a2, ok), nil
}
