package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/hooks"
	"cforge/internal/pipeline"
	"cforge/internal/proc"

	"github.com/spf13/cobra"
)

const installTimeout = 5 * time.Minute

func newInstallCmd() *cobra.Command {
	var config, prefix string

	c := &cobra.Command{
		Use:   "install [project]",
		Short: "Build a project then install its artifacts",
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
				env := hooks.Env{ProjectPath: t.Root, BuildPath: res.BuildDir, ConfigType: cfg, Prefix: prefix}
				if t.Manifest.Hooks != nil {
					if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PreInstall, env); err != nil {
						return fmt.Errorf("pre_install hook: %w", err)
					}
				}

				if err := runCMakeInstall(cmd.Context(), res.BuildDir, cfg, prefix); err != nil {
					return err
				}

				if t.Manifest.Hooks != nil {
					if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PostInstall, env); err != nil {
						return fmt.Errorf("post_install hook: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: installed\n", t.Name)
				return nil
			})
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&prefix, "prefix", "", "install prefix (default: cmake's own default)")
	return c
}

func runCMakeInstall(ctx context.Context, buildDir, config, prefix string) error {
	args := []string{"--install", buildDir, "--config", config}
	if prefix != "" {
		args = append(args, "--prefix", prefix)
	}

	child, err := proc.Spawn(ctx, buildDir, nil, "cmake", args...)
	if err != nil {
		return &cerrors.RunError{Message: fmt.Sprintf("spawn cmake --install: %s", err)}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			fmt.Fprintln(os.Stdout, line.Text)
		}
	}()

	timedOut, waitErr := child.Wait(installTimeout)
	<-done
	if timedOut {
		return &cerrors.RunError{Message: fmt.Sprintf("install exceeded %s", installTimeout)}
	}
	if waitErr != nil {
		return &cerrors.RunError{Message: "cmake --install failed"}
	}
	return nil
}
