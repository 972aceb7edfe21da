package cmd

import (
	"fmt"

	"cforge/internal/ide"

	"github.com/spf13/cobra"
)

func newIDECmd() *cobra.Command {
	var arch string

	c := &cobra.Command{
		Use:   "ide <type> [project]",
		Short: "Generate IDE project files via the external generator",
		Long:  "type is one of: vscode, clion, xcode, vs, vs2013, vs2015, vs2017, vs2019, vs2022",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			projectArg := argAt(args, 1)

			generator, err := ide.Resolve(kind)
			if err != nil {
				return err
			}

			return forEachProject(projectArg, func(t projectTarget) error {
				out, err := generator.Generate(cmd.Context(), t.Manifest, t.Root, arch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: generated %s\n", t.Name, out)
				return nil
			})
		},
	}

	c.Flags().StringVar(&arch, "arch", "", "target architecture: x64, Win32, ARM, ARM64 (vs* generators only)")
	return c
}
