package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chazu/drawerbox/internal/app"
	"github.com/chazu/drawerbox/pkg/compose"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/layout"
)

var drawerStyles = map[string]compose.DrawerOptions{
	"default": compose.DefaultDrawer,
	"full":    compose.FullDrawer,
	"tray":    compose.TrayDrawer,
}

func newLayoutCmd() *cobra.Command {
	var (
		levels []int
		style  string
		mesh   bool
	)

	cmd := &cobra.Command{
		Use:   "layout WIDTH DEPTH HEIGHT",
		Short: "Arrange drawers in a box of the given outer dimensions",
		Example: `  drawerbox layout 100 60 24 --levels 3,1,1
  drawerbox layout 100 60 24 --levels 2,2 --style full --mesh`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var size [3]float64
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid dimension %q: %w", a, err)
				}
				size[i] = v
			}
			if err := joinery.Finite("box dimension", size[:]...); err != nil {
				return err
			}
			opts, ok := drawerStyles[style]
			if !ok {
				return fmt.Errorf("unknown drawer style %q (want default, full or tray)", style)
			}

			logger := loggerFromContext(cmd.Context())
			a, err := newApp(cmd, app.Options{Layout: &layout.Options{Drawer: opts}})
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			res := a.Layout(cmd.Context(), size[0], size[1], size[2], layout.Arrangement(levels), mesh)
			if err := report(logger, res); err != nil {
				return err
			}
			if mesh {
				prog.done(fmt.Sprintf("meshed %d panels", len(res.Meshes)))
			}

			out := cmd.OutOrStdout()
			renderLevels(out, res.Layout)
			renderPanels(out, res.Plan, res.Meshes)
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&levels, "levels", "l", []int{1}, "drawers per level, top level first")
	cmd.Flags().StringVar(&style, "style", "default", "drawer style: default, full or tray")
	cmd.Flags().BoolVar(&mesh, "mesh", false, "tessellate every panel")
	return cmd
}
