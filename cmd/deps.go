package cmd

import (
	"fmt"

	"cforge/internal/acquire"
	"cforge/internal/pipeline"

	"github.com/spf13/cobra"
)

func newDepsCmd() *cobra.Command {
	var update bool

	c := &cobra.Command{
		Use:   "deps [project]",
		Short: "Acquire a project's declared dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(argAt(args, 0), func(t projectTarget) error {
				outputs, err := acquire.Acquire(cmd.Context(), pipeline.Backends(), acquire.Request{
					Manifest:    t.Manifest,
					ProjectRoot: t.Root,
					Update:      update,
					Session:     sess,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: acquired %d dependency output(s)\n", t.Name, len(outputs))
				for k, v := range outputs {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", k, v)
				}
				return nil
			})
		},
	}

	c.Flags().BoolVar(&update, "update", false, "pull/update already-acquired dependencies")
	return c
}
