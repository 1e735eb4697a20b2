// Package realize turns an assembly plan into backend solids and meshes.
// It is the only place where plan geometry meets a kernel.Kernel.
package realize

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/drawerbox/pkg/kernel"
	"github.com/chazu/drawerbox/pkg/plan"
)

// DefaultSegments is the facet count requested for cylindrical cutters.
const DefaultSegments = 48

// Options controls tessellation.
type Options struct {
	// Concurrency bounds the panels meshed at once. Zero means GOMAXPROCS.
	Concurrency int
	// Segments is passed to kernel.Cylinder. Zero means DefaultSegments.
	Segments int
}

func (o Options) limit() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) segments() int {
	if o.Segments > 0 {
		return o.Segments
	}
	return DefaultSegments
}

// Panel builds one placed panel: the base box minus every feature cutter,
// rotated, then translated.
func Panel(k kernel.Kernel, p plan.Panel) kernel.Solid {
	return panelWith(k, p, DefaultSegments)
}

func panelWith(k kernel.Kernel, p plan.Panel, segments int) kernel.Solid {
	s := k.Box(p.Size.X, p.Size.Y, p.Size.Z)
	for _, f := range p.Features {
		for _, c := range f.Cutters() {
			s = k.Difference(s, cutter(k, c, segments))
		}
	}
	if r := p.Placement.Rotation; r != nil && !r.IsZero() {
		s = k.Rotate(s, r.X, r.Y, r.Z)
	}
	if t := p.Placement.Translation; !t.IsZero() {
		s = k.Translate(s, t.X, t.Y, t.Z)
	}
	return s
}

// cutter builds a primitive cutter in panel-local coordinates.
func cutter(k kernel.Kernel, c plan.Cutter, segments int) kernel.Solid {
	switch c.Shape {
	case plan.CutCylinder:
		s := k.Cylinder(c.Height, c.Radius, segments)
		switch c.Axis {
		case plan.AxisX:
			s = k.Rotate(s, 0, 90, 0)
		case plan.AxisY:
			s = k.Rotate(s, 90, 0, 0)
		}
		return k.Translate(s, c.Center.X, c.Center.Y, c.Center.Z)
	default:
		s := k.Box(c.Box.Size.X, c.Box.Size.Y, c.Box.Size.Z)
		if c.Box.Min.IsZero() {
			return s
		}
		return k.Translate(s, c.Box.Min.X, c.Box.Min.Y, c.Box.Min.Z)
	}
}

// Compound builds every panel of a and groups them into one solid. An empty
// plan yields nil.
func Compound(k kernel.Kernel, a *plan.AssemblyPlan) kernel.Solid {
	if a == nil || len(a.Panels) == 0 {
		return nil
	}
	solids := make([]kernel.Solid, len(a.Panels))
	for i, p := range a.Panels {
		solids[i] = Panel(k, p)
	}
	return k.Compound(solids...)
}

// Tessellate meshes every panel of a, one mesh per panel in plan order.
// Panels are built and meshed concurrently; the first failure cancels the
// rest.
func Tessellate(ctx context.Context, k kernel.Kernel, a *plan.AssemblyPlan, opts Options) ([]*kernel.Mesh, error) {
	if a == nil {
		return nil, nil
	}
	meshes := make([]*kernel.Mesh, len(a.Panels))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())
	for i, p := range a.Panels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := k.ToMesh(panelWith(k, p, opts.segments()))
			if err != nil {
				return fmt.Errorf("realize: panel %s: %w", p.Name, err)
			}
			m.PanelName = p.Name
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
