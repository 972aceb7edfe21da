package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"cforge/internal/hooks"
	"cforge/internal/pipeline"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var config, target string

	c := &cobra.Command{
		Use:   "clean [project]",
		Short: "Remove a project's build directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(argAt(args, 0), func(t projectTarget) error {
				cfg := config
				if cfg == "" {
					cfg = t.Manifest.Build.DefaultConfig
				}
				buildDir := filepath.Join(t.Root, pipeline.BuildDirName(t.Manifest, cfg, target))

				env := hooks.Env{ProjectPath: t.Root, BuildPath: buildDir, ConfigType: cfg, Target: target}
				if t.Manifest.Hooks != nil {
					if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PreClean, env); err != nil {
						return fmt.Errorf("pre_clean hook: %w", err)
					}
				}

				if err := os.RemoveAll(buildDir); err != nil {
					return err
				}

				if t.Manifest.Hooks != nil {
					if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PostClean, env); err != nil {
						return fmt.Errorf("post_clean hook: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %s\n", t.Name, buildDir)
				return nil
			})
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&target, "target", "", "cross-compile target triplet")
	return c
}
