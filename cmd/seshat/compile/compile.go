// Package compile implements the `seshat compile` and `seshat manifest`
// commands on top of the aggregate package.
package compile

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/seshat-compendium/internal/aggregate"
	"github.com/flarebyte/seshat-compendium/internal/manifestfile"
)

// NewCmd builds `seshat compile [source] [out]`.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [source] [out]",
		Short: "Combine matching source files into one normalized text artifact",
		Long: "Walks the source directory, keeps files whose names match the configured\n" +
			"suffixes, normalizes each one and writes a single artifact headed by a\n" +
			"manifest. Use \"-\" as the output path to write to stdout.",
		Args:          usageArgs(cobra.MaximumNArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyPositional(cmd, args); err != nil {
				return usageError(err)
			}
			return evaluateRunExit(runCompile(cmd))
		},
	}
	cmd.SetFlagErrorFunc(flagError)
	fs := cmd.Flags()
	addDiscoveryFlags(fs)
	fs.StringP(keyOut, "o", aggregate.DefaultOutputPath, "Artifact path, or - for stdout")
	fs.String(keyManifest, "", "Also write the manifest as YAML to this path")
	fs.String(keyNormalize, "plain", "Content normalization: plain, markdown or none")
	fs.Int(keyWorkers, 0, "Concurrent file reads (0 uses the CPU count)")
	fs.Bool(keyProgress, false, "Print progress lines to stderr")
	fs.Duration(keyProgressEvery, 500*time.Millisecond, "Interval between progress lines")
	return cmd
}

func applyPositional(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		if err := cmd.Flags().Set(keySource, args[0]); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		if err := cmd.Flags().Set(keyOut, args[1]); err != nil {
			return err
		}
	}
	return nil
}

func runCompile(cmd *cobra.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(s, cmd.ErrOrStderr())
	cfg, err := aggregatorConfig(s, log)
	if err != nil {
		return err
	}
	cfg.Stdout = cmd.OutOrStdout()
	if s.Progress {
		p := newProgressReporter(s.ProgressEvery, cmd.ErrOrStderr())
		p.start()
		defer p.close()
		cfg.Progress = p
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	art, err := aggregate.New(cfg).Aggregate(ctx)
	if err != nil {
		return err
	}
	if s.Manifest != "" {
		if err := manifestfile.Write(s.Manifest, art.Manifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		log.WithField("manifest", s.Manifest).Info("Wrote manifest")
	}
	return nil
}
