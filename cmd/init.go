package cmd

import (
	"fmt"
	"path/filepath"

	"cforge/internal/scaffold"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var workspace bool
	var tmpl string

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new project or workspace in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cwd()
			name := filepath.Base(dir)

			if workspace {
				// A workspace with no member projects is not loadable
				// (manifest.LoadWorkspace rejects an empty projects list), so
				// seed one starter project alongside the workspace manifest
				// rather than writing a file that breaks every other verb.
				firstProject := "app"
				if err := scaffold.WriteProject(filepath.Join(dir, firstProject), firstProject, scaffold.TemplateApp); err != nil {
					return err
				}
				if err := scaffold.WriteWorkspace(dir, name, []string{firstProject}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s and %s\n",
					filepath.Join(dir, "cforge-workspace.toml"), filepath.Join(dir, firstProject, "cforge.toml"))
				return nil
			}

			if err := scaffold.WriteProject(dir, name, tmpl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", filepath.Join(dir, "cforge.toml"))
			return nil
		},
	}

	c.Flags().BoolVar(&workspace, "workspace", false, "scaffold a cforge-workspace.toml instead of a project")
	c.Flags().StringVar(&tmpl, "template", scaffold.TemplateApp, "project template: app, lib, or header-only")
	return c
}
