package compose

import (
	"fmt"

	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// spacingTolerance absorbs rounding in offsets exactly one thickness apart.
const spacingTolerance = 1e-9

// Box plans a carcase of the given outer dimensions with one horizontal
// separator per offset. Offsets give the height of each separator's top above
// the outer bottom; each must be at least the structural thickness above the
// previous one so no two separators share material.
//
// The plan holds, in order: side-left, side-right, bottom, top, back, then
// separator-1 ... separator-N.
func Box(p joinery.Params, width, depth, height float64, separatorOffsets []float64) (*plan.AssemblyPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := joinery.Finite("box dimension", width, depth, height); err != nil {
		return nil, err
	}
	if err := joinery.Finite("separator offset", separatorOffsets...); err != nil {
		return nil, err
	}
	t := p.ThicknessStructural
	for i := 1; i < len(separatorOffsets); i++ {
		if gap := separatorOffsets[i] - separatorOffsets[i-1]; !(gap >= t-spacingTolerance) {
			return nil, fmt.Errorf("%w: separator-%d top %g is %g above separator-%d, need at least %g",
				joinery.ErrInvalidDimension, i+1, separatorOffsets[i], gap, i, t)
		}
	}

	nd := p.InsertionNotchDepth
	specs := []placedSpec{
		{joinery.SideSpec{Name: "side-left", Depth: depth, Height: height, Left: true,
			Style: joinery.StyleCarcase, Separators: separatorOffsets}, plan.Vec3{}},
		{joinery.SideSpec{Name: "side-right", Depth: depth, Height: height,
			Style: joinery.StyleCarcase, Separators: separatorOffsets}, plan.Vec3{X: width - t}},
		{joinery.TopBottomSpec{Name: "bottom", Width: width, Depth: depth}, plan.Vec3{}},
		{joinery.TopBottomSpec{Name: "top", Width: width, Depth: depth, Top: true}, plan.Vec3{Z: height - t}},
		{joinery.BackSpec{Name: "back", Width: width, Height: height},
			plan.Vec3{X: t - nd, Y: depth - p.InsertInset - p.ThicknessInsert, Z: t - nd}},
	}
	for i, off := range separatorOffsets {
		specs = append(specs, placedSpec{
			joinery.SeparatorSpec{Name: fmt.Sprintf("separator-%d", i+1), Width: width, Depth: depth, Offset: off},
			plan.Vec3{X: t - p.SeparatorNotchDepth, Z: off - t},
		})
	}

	return assemble(p, "box", specs)
}
