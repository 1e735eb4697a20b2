package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/drawerbox/internal/app"
)

func newEvalCmd() *cobra.Command {
	var mesh bool

	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate a drawerbox script (- reads stdin)",
		Example: `  drawerbox eval examples/chest.lisp
  echo '(assembly "d" (drawer :width 20 :depth 30 :height 7))' | drawerbox eval -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			a, err := newApp(cmd, app.Options{})
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			res := a.Evaluate(cmd.Context(), src, mesh)
			if err := report(logger, res); err != nil {
				return err
			}
			if mesh {
				prog.done(fmt.Sprintf("meshed %d panels", len(res.Meshes)))
			}
			renderPanels(cmd.OutOrStdout(), res.Plan, res.Meshes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mesh, "mesh", false, "tessellate every panel")
	return cmd
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(b), nil
}
