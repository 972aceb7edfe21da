package cmd

import (
	"fmt"
	"path/filepath"

	"cforge/internal/cerrors"
	"cforge/internal/hooks"
	"cforge/internal/pipeline"

	"github.com/spf13/cobra"
)

func newScriptCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "script <name> [project]",
		Short: "Run a named script declared in a project's manifest",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			projectArg := argAt(args, 1)

			return forEachProject(projectArg, func(t projectTarget) error {
				if t.Manifest.Scripts == nil {
					return &cerrors.ManifestError{Message: fmt.Sprintf("%s: no scripts declared", t.Name)}
				}
				command, ok := t.Manifest.Scripts.Scripts[name]
				if !ok {
					return &cerrors.ManifestError{Message: fmt.Sprintf("%s: no script named %q", t.Name, name)}
				}
				cfg := t.Manifest.Build.DefaultConfig
				buildDir := filepath.Join(t.Root, pipeline.BuildDirName(t.Manifest, cfg, ""))
				env := hooks.Env{ProjectPath: t.Root, BuildPath: buildDir, ConfigType: cfg}
				if err := hooks.Run(cmd.Context(), t.Root, command, env); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ran script %q\n", t.Name, name)
				return nil
			})
		},
	}
	return c
}
