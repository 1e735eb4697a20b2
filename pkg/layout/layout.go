// Package layout turns overall box dimensions and a drawer-count arrangement
// into a complete assembly: the carcase with its separators plus every
// drawer, placed in its level.
package layout

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/drawerbox/pkg/compose"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// Arrangement lists the number of drawers on each level. Level 0 is the top
// level of the box.
type Arrangement []int

// Level reports where one level of drawers ended up.
type Level struct {
	Index       int     `json:"index"`
	Count       int     `json:"count"`
	Z           float64 `json:"z"` // bottom of the level's drawers
	Height      float64 `json:"height"`
	DrawerWidth float64 `json:"drawer_width"`
}

// Result is a computed layout.
type Result struct {
	Plan             *plan.AssemblyPlan `json:"-"`
	Levels           []Level            `json:"levels"`
	SeparatorOffsets []float64          `json:"separator_offsets"`
	LevelHeight      float64            `json:"level_height"`
	DrawerDepth      float64            `json:"drawer_depth"`
	DrawerHeight     float64            `json:"drawer_height"`
}

// Options tunes a layout beyond the joinery constants.
type Options struct {
	Drawer compose.DrawerOptions
}

// DefaultOptions places drawers with ends and no bottom insert.
func DefaultOptions() Options {
	return Options{Drawer: compose.DefaultDrawer}
}

// Arrange computes the layout of a box of outer width × depth × height with
// the given arrangement, using DefaultOptions.
func Arrange(p joinery.Params, width, depth, height float64, arr Arrangement) (*Result, error) {
	return ArrangeWith(p, width, depth, height, arr, DefaultOptions())
}

// ArrangeWith is Arrange with explicit options.
func ArrangeWith(p joinery.Params, width, depth, height float64, arr Arrangement, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := joinery.Finite("box dimension", width, depth, height); err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: no levels", joinery.ErrInvalidArrangement)
	}
	for i, n := range arr {
		if n <= 0 {
			return nil, fmt.Errorf("%w: level %d has %d drawers", joinery.ErrInvalidArrangement, i, n)
		}
	}

	t, gap := p.ThicknessStructural, p.AirGap
	levels := len(arr)
	available := height - t*float64(levels+1)
	if !(available > 0) {
		return nil, fmt.Errorf("%w: height %g leaves %g for %d levels",
			joinery.ErrInvalidArrangement, height, available, levels)
	}
	levelHeight := available / float64(levels)
	drawerHeight := levelHeight - 2*gap
	if !(drawerHeight > 0) {
		return nil, fmt.Errorf("%w: level height %g leaves no room for drawers",
			joinery.ErrInvalidArrangement, levelHeight)
	}

	offsets := make([]float64, 0, levels-1)
	for i := 1; i < levels; i++ {
		offsets = append(offsets, t+float64(i)*(levelHeight+t))
	}

	box, err := compose.Box(p, width, depth, height, offsets)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Levels:           make([]Level, levels),
		SeparatorOffsets: offsets,
		LevelHeight:      levelHeight,
		DrawerDepth:      depth - p.InsertInset - p.ThicknessInsert,
		DrawerHeight:     drawerHeight,
	}
	drawers := make([]*plan.AssemblyPlan, levels)

	var g errgroup.Group
	for L, n := range arr {
		dw := (width - 2*t - float64(n+1)*gap) / float64(n)
		res.Levels[L] = Level{
			Index:       L,
			Count:       n,
			Z:           height - float64(L+1)*(t+levelHeight) + gap,
			Height:      drawerHeight,
			DrawerWidth: dw,
		}
		g.Go(func() error {
			if !(dw > 0) {
				return fmt.Errorf("%w: level %d: %d drawers do not fit in width %g",
					joinery.ErrInvalidArrangement, L, n, width)
			}
			d, err := compose.Drawer(p, dw, res.DrawerDepth, drawerHeight, opts.Drawer)
			if err != nil {
				return fmt.Errorf("level %d: %w", L, err)
			}
			drawers[L] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a := plan.New("drawer-box")
	a.Merge(box, "box", plan.Vec3{})
	for L, lvl := range res.Levels {
		for i := 0; i < lvl.Count; i++ {
			at := plan.Vec3{X: t + gap + float64(i)*(gap+lvl.DrawerWidth), Z: lvl.Z}
			a.Merge(drawers[L], fmt.Sprintf("level%d/drawer%d", L, i), at)
		}
	}
	res.Plan = a
	return res, nil
}
