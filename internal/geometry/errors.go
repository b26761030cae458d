// Package geometry derives the canonical length/height/width and end cut
// angles of an arbitrarily oriented solid from its boundary representation.
package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrNoFrame              = errors.New("no orientation frame")
	ErrNoPoints             = errors.New("body has no boundary points")
	ErrDegenerate           = errors.New("degenerate geometry")
	ErrNoPhysicalProperties = errors.New("missing physical properties")
)

// GeometryError reports why a body could not be measured.
type GeometryError struct {
	Body  string // body name
	Stage string // orientation, bounding box, dimensions
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("body %q: %s: %v", e.Body, e.Stage, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}
