package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/pipeline"
	"cforge/internal/proc"

	"github.com/spf13/cobra"
)

// testTimeout bounds one ctest invocation. spec.md §5 does not name a test
// timeout explicitly (individual test executables carry their own
// per-manifest timeout, spec.md §3's TestExecutable.Timeout); this is the
// outer bound on the whole dispatch.
const testTimeout = 2 * time.Hour

func newTestCmd() *cobra.Command {
	var config, variant, filter string

	c := &cobra.Command{
		Use:   "test [project]",
		Short: "Build a project then dispatch its tests via ctest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(argAt(args, 0), func(t projectTarget) error {
				if t.Manifest.Tests == nil || (t.Manifest.Tests.Enabled != nil && !*t.Manifest.Tests.Enabled) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no tests configured\n", t.Name)
					return nil
				}

				opts := buildOptionsFromFlags(config, variant, "")
				res, err := pipeline.Build(cmd.Context(), sess, t.Manifest, t.Root, opts)
				if err != nil {
					return err
				}

				cfg := config
				if cfg == "" {
					cfg = t.Manifest.Build.DefaultConfig
				}
				return runCTest(cmd.Context(), res.BuildDir, cfg, filter)
			})
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&variant, "variant", "", "variant profile")
	c.Flags().StringVar(&filter, "filter", "", "ctest -R regex filter")
	return c
}

func runCTest(ctx context.Context, buildDir, config, filter string) error {
	args := []string{"--output-on-failure", "-C", config}
	if filter != "" {
		args = append(args, "-R", filter)
	}

	child, err := proc.Spawn(ctx, buildDir, nil, "ctest", args...)
	if err != nil {
		return &cerrors.RunError{Message: fmt.Sprintf("spawn ctest: %s", err)}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			fmt.Fprintln(os.Stdout, line.Text)
		}
	}()

	timedOut, waitErr := child.Wait(testTimeout)
	<-done
	if timedOut {
		return &cerrors.RunError{Message: fmt.Sprintf("ctest exceeded %s", testTimeout)}
	}
	if waitErr != nil {
		return &cerrors.RunError{Message: "ctest reported failing tests"}
	}
	return nil
}
