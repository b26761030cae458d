package bom

import (
	"context"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// RootBodyName is the display name of bodies owned by the root component.
const RootBodyName = "RootBody"

// ScanScene adds every visible solid of the scene: root bodies first, then the
// bodies of each visible occurrence under the occurrence name. It returns the
// number of bodies recorded. Scanning stops early when ctx is cancelled.
func (b *Builder) ScanScene(ctx context.Context, scene model.Scene) (int, error) {
	added := 0
	visit := func(body model.SolidBody, name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !body.Visible || !body.Solid {
			return nil
		}
		if _, err := b.Add(body, name); err == nil {
			added++
		}
		return nil
	}

	for _, body := range scene.RootBodies {
		if err := visit(body, RootBodyName); err != nil {
			return added, err
		}
	}
	for _, occ := range scene.Occurrences {
		if !occ.Visible {
			continue
		}
		for _, body := range occ.Bodies {
			if err := visit(body, occ.Name); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}
