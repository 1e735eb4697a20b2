package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/chazu/drawerbox/internal/app"
	"github.com/chazu/drawerbox/pkg/layout"
	"github.com/chazu/drawerbox/pkg/plan"
)

func dims(v plan.Vec3) string {
	return fmt.Sprintf("%.2f × %.2f × %.2f", v.X, v.Y, v.Z)
}

// renderPanels prints one row per panel with its feature counts. When
// meshes are present a triangle column is added.
func renderPanels(w io.Writer, p *plan.AssemblyPlan, meshes []app.MeshData) {
	tris := make(map[string]int, len(meshes))
	for _, m := range meshes {
		tris[m.PanelName] = len(m.Indices) / 3
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := table.Row{"Panel", "Kind", "Size", "Position", "Slots", "Clear", "Notches", "Reliefs", "Pulls"}
	if len(meshes) > 0 {
		header = append(header, "Triangles")
	}
	t.AppendHeader(header)
	for _, pn := range p.Panels {
		row := table.Row{
			pn.Name,
			pn.Kind,
			dims(pn.Size),
			pn.Placement.Translation,
			pn.Count(plan.FeatureFingerSlot),
			pn.Count(plan.FeatureClearance),
			pn.Count(plan.FeatureInsertionNotch),
			pn.Count(plan.FeatureSawRelief),
			pn.Count(plan.FeaturePullCutout),
		}
		if len(meshes) > 0 {
			row = append(row, tris[pn.Name])
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d panels", p.Len()), "", dims(p.Bounds().Size)})
	t.Render()
}

// renderLevels prints the computed level geometry of a layout.
func renderLevels(w io.Writer, r *layout.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Level", "Drawers", "Z", "Height", "Drawer Width", "Separator"})
	for _, l := range r.Levels {
		sep := "-"
		// Separator i sits below level i, counting from the top.
		if l.Index < len(r.SeparatorOffsets) {
			sep = fmt.Sprintf("%.3f", r.SeparatorOffsets[len(r.SeparatorOffsets)-1-l.Index])
		}
		t.AppendRow(table.Row{
			l.Index,
			l.Count,
			fmt.Sprintf("%.3f", l.Z),
			fmt.Sprintf("%.3f", l.Height),
			fmt.Sprintf("%.3f", l.DrawerWidth),
			sep,
		})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%.3f", r.LevelHeight), fmt.Sprintf("depth %.3f", r.DrawerDepth)})
	t.Render()
}

// renderParams prints the effective configuration.
func renderParams(w io.Writer, c *Config) {
	p := c.Params
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"thickness_structural", p.ThicknessStructural},
		{"thickness_insert", p.ThicknessInsert},
		{"finger_width", p.FingerWidth},
		{"margin", p.Margin},
		{"insert_inset", p.InsertInset},
		{"insertion_notch_depth", p.InsertionNotchDepth},
		{"separator_notch_depth", p.SeparatorNotchDepth},
		{"saw_relief_radius", p.SawReliefRadius},
		{"air_gap", p.AirGap},
		{"pull_width", p.PullWidth},
		{"pull_height", p.PullHeight},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"saw_chord", fmt.Sprintf("%.4f", p.SawChord())},
		{"kernel", c.Kernel},
		{"mesh_cells", c.MeshCells},
		{"concurrency", c.Concurrency},
		{"timeout", c.Timeout},
	})
	if c.File != "" {
		t.AppendRow(table.Row{"config_file", c.File})
	}
	t.Render()
}

// report logs warnings and errors of res and returns an error when the
// request failed.
func report(l *log.Logger, res app.Result) error {
	for _, m := range res.Warnings {
		l.Warn(m.Message, "panel", m.Panel)
	}
	for _, m := range res.Errors {
		switch {
		case m.Line > 0:
			l.Error(m.Message, "line", m.Line, "col", m.Col)
		case m.Panel != "":
			l.Error(m.Message, "panel", m.Panel)
		default:
			l.Error(m.Message)
		}
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d error(s)", len(res.Errors))
	}
	return nil
}
