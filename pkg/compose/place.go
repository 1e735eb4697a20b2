package compose

import (
	"fmt"

	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// placedSpec is a panel to build and where its origin goes.
type placedSpec struct {
	spec joinery.PanelSpec
	at   plan.Vec3
}

// assemble builds each spec in order and collects the placed panels.
func assemble(p joinery.Params, name string, specs []placedSpec) (*plan.AssemblyPlan, error) {
	a := plan.New(name)
	for _, s := range specs {
		panel, err := joinery.Build(p, s.spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		panel.Placement = panel.Placement.Translated(s.at)
		a.Add(panel)
	}
	return a, nil
}
