package compose

import (
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// DrawerOptions selects the optional panels of a drawer. The two sides are
// always present.
type DrawerOptions struct {
	Ends   bool // front (with pull) and back
	Bottom bool // bottom insert seated in the four notches
}

var (
	// FullDrawer is a closed drawer with a bottom insert.
	FullDrawer = DrawerOptions{Ends: true, Bottom: true}
	// TrayDrawer is the two sides only.
	TrayDrawer = DrawerOptions{}
	// DefaultDrawer is what layouts place: sides and ends, bottom left to
	// the cut list.
	DefaultDrawer = DrawerOptions{Ends: true}
)

// Drawer plans a drawer of the given outer dimensions. The plan holds, in
// order: side-left, side-right, then front and back when opts.Ends, then
// bottom when opts.Bottom.
func Drawer(p joinery.Params, width, depth, height float64, opts DrawerOptions) (*plan.AssemblyPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := joinery.Finite("drawer dimension", width, depth, height); err != nil {
		return nil, err
	}
	t := p.ThicknessStructural
	nd := p.InsertionNotchDepth

	specs := []placedSpec{
		{joinery.SideSpec{Name: "side-left", Depth: depth, Height: height, Left: true}, plan.Vec3{}},
		{joinery.SideSpec{Name: "side-right", Depth: depth, Height: height}, plan.Vec3{X: width - t}},
	}
	if opts.Ends {
		specs = append(specs,
			placedSpec{joinery.EndSpec{Name: "front", Width: width, Height: height, Front: true}, plan.Vec3{}},
			placedSpec{joinery.EndSpec{Name: "back", Width: width, Height: height}, plan.Vec3{Y: depth - t}},
		)
	}
	if opts.Bottom {
		specs = append(specs, placedSpec{
			joinery.InsertSpec{Name: "bottom", Width: width, Depth: depth},
			plan.Vec3{X: t - nd, Y: t - nd, Z: p.InsertInset},
		})
	}
	return assemble(p, "drawer", specs)
}
