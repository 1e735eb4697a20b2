// Package cli implements the drawerbox command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazu/drawerbox/internal/app"
	"github.com/chazu/drawerbox/pkg/realize"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. It is
// called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the drawerbox CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	root := &cobra.Command{
		Use:   "drawerbox",
		Short: "Plan finger-jointed drawer boxes",
		Long: `drawerbox computes the panels, finger joints, channels and separator
notches of a laser-cut drawer box, either from outer dimensions and a
drawers-per-level arrangement, or from a script.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			cfg, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.File != "" {
				logger.Debug("loaded config", "file", cfg.File)
			}

			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("drawerbox %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./drawerbox.yaml if present)")
	addConfigFlags(pf)

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newParamsCmd())

	return root
}

// newApp builds an App from the command's configuration.
func newApp(cmd *cobra.Command, opts app.Options) (*app.App, error) {
	cfg := configFromContext(cmd.Context())
	k, err := app.NewKernel(cfg.Kernel, cfg.MeshCells)
	if err != nil {
		return nil, err
	}
	opts.Kernel = k
	opts.Params = cfg.Params
	opts.MeshCells = cfg.MeshCells
	opts.Timeout = cfg.Timeout
	opts.Realize = realize.Options{Concurrency: cfg.Concurrency}
	return app.New(loggerFromContext(cmd.Context()), opts), nil
}
