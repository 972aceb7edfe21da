package cmd

import (
	"fmt"

	"cforge/internal/manifest"
	"cforge/internal/pipeline"
	"cforge/internal/workspace"

	"github.com/spf13/cobra"
)

func buildOptionsFromFlags(config, variant, target string) pipeline.Options {
	return pipeline.Options{Config: config, Variant: variant, CrossTarget: target}
}

func newBuildCmd() *cobra.Command {
	var config, variant, target string

	c := &cobra.Command{
		Use:   "build [project]",
		Short: "Configure and build a project (or every project in a workspace)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectArg := argAt(args, 0)
			opts := buildOptionsFromFlags(config, variant, target)
			root := cwd()

			if manifest.IsWorkspace(root) && projectArg == "" {
				result, err := workspace.Build(cmd.Context(), sess, root, opts)
				if err != nil {
					return err
				}
				for _, f := range result.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "project %s failed: %s\n", f.Project, f.Err)
				}
				if result.Failed() {
					return fmt.Errorf("%d of %d project(s) failed", len(result.Failures), len(result.Order))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "built %d project(s)\n", len(result.Order))
				return nil
			}

			return forEachProject(projectArg, func(t projectTarget) error {
				res, err := pipeline.Build(cmd.Context(), sess, t.Manifest, t.Root, opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: built in %s\n", t.Name, res.BuildDir)
				return nil
			})
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&variant, "variant", "", "variant profile")
	c.Flags().StringVar(&target, "target", "", "cross-compile target triplet")
	return c
}

// argAt returns args[i] or "" when args is shorter than i+1.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
