package cli

import "github.com/spf13/cobra"

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the effective joinery parameters",
		Long: `Show the joinery parameters after layering defaults, the config file,
DRAWERBOX_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderParams(cmd.OutOrStdout(), configFromContext(cmd.Context()))
			return nil
		},
	}
}
