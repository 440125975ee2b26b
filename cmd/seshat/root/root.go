package root

import (
	"context"

	"github.com/flarebyte/seshat-compendium/cmd/seshat/compile"
	"github.com/flarebyte/seshat-compendium/cmd/seshat/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seshat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seshat",
		Short: "CLI: Gathers a source tree into one plain-text compendium for chat grounding",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(compile.NewCmd())
	cmd.AddCommand(compile.NewManifestCmd())

	return cmd
}

// Execute runs the root command with provided args. Cancelling ctx aborts a
// running compile.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
