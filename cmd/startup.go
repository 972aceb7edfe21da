package cmd

import (
	"fmt"

	"cforge/internal/manifest"
	"cforge/internal/workspace"

	"github.com/spf13/cobra"
)

func newStartupCmd() *cobra.Command {
	var list bool

	c := &cobra.Command{
		Use:   "startup [project] [--list]",
		Short: "Show or select the workspace's startup project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cwd()
			if !manifest.IsWorkspace(root) {
				return fmt.Errorf("startup is only meaningful inside a workspace")
			}

			w, err := manifest.LoadWorkspace(root)
			if err != nil {
				return err
			}

			if list {
				eligible := w.Workspace.StartupProjects
				if len(eligible) == 0 {
					eligible = w.Workspace.Projects
				}
				for _, p := range eligible {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			name, err := workspace.StartupProject(w, argAt(args, 0))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	c.Flags().BoolVar(&list, "list", false, "list startup-eligible projects instead of selecting one")
	return c
}
