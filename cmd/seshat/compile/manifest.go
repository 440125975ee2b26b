package compile

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flarebyte/seshat-compendium/internal/aggregate"
	"github.com/flarebyte/seshat-compendium/internal/manifestfile"
)

// NewManifestCmd builds `seshat manifest [source]`, which lists the files a
// compile run would include without reading them.
func NewManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "manifest [source]",
		Short:         "Print the manifest (as YAML) of the files a compile run would include",
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyPositional(cmd, args); err != nil {
				return usageError(err)
			}
			return evaluateRunExit(runManifest(cmd))
		},
	}
	cmd.SetFlagErrorFunc(flagError)
	addDiscoveryFlags(cmd.Flags())
	return cmd
}

func runManifest(cmd *cobra.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(s, cmd.ErrOrStderr())
	cfg, err := aggregatorConfig(s, log)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := aggregate.New(cfg).Manifest(ctx)
	if err != nil {
		return err
	}
	b, err := manifestfile.Marshal(m)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
