package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/pipeline"
	"cforge/internal/proc"

	"github.com/spf13/cobra"
)

const packageTimeout = 10 * time.Minute

func newPackageCmd() *cobra.Command {
	var config, genType string

	c := &cobra.Command{
		Use:   "package [project]",
		Short: "Build a project then run the packager (CPack) over it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachProject(argAt(args, 0), func(t projectTarget) error {
				opts := buildOptionsFromFlags(config, "", "")
				res, err := pipeline.Build(cmd.Context(), sess, t.Manifest, t.Root, opts)
				if err != nil {
					return err
				}

				cfg := config
				if cfg == "" {
					cfg = t.Manifest.Build.DefaultConfig
				}
				generator := genType
				if generator == "" && t.Manifest.Package != nil {
					generator = t.Manifest.Package.Generators[runtime.GOOS]
				}

				return runCPack(cmd.Context(), res.BuildDir, cfg, generator)
			})
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&genType, "type", "", "CPack generator override (ZIP, TGZ, NSIS, DragNDrop, DEB, RPM, ...)")
	return c
}

func runCPack(ctx context.Context, buildDir, config, generator string) error {
	args := []string{"-C", config}
	if generator != "" {
		args = append(args, "-G", generator)
	}

	child, err := proc.Spawn(ctx, buildDir, nil, "cpack", args...)
	if err != nil {
		return &cerrors.RunError{Message: fmt.Sprintf("spawn cpack: %s", err)}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			fmt.Fprintln(os.Stdout, line.Text)
		}
	}()

	timedOut, waitErr := child.Wait(packageTimeout)
	<-done
	if timedOut {
		return &cerrors.RunError{Message: fmt.Sprintf("cpack exceeded %s", packageTimeout)}
	}
	if waitErr != nil {
		return &cerrors.RunError{Message: "cpack failed"}
	}
	return nil
}
