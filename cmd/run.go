package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/hooks"
	"cforge/internal/hostprobe"
	"cforge/internal/manifest"
	"cforge/internal/pipeline"
	"cforge/internal/placeholder"
	"cforge/internal/proc"
	"cforge/internal/workspace"

	"github.com/spf13/cobra"
)

// runTimeout bounds how long a `run`-launched executable may stay alive;
// spec.md §5 fixes explicit timeouts for the orchestrator's own child
// invocations but names none for the user's own program, which legitimately
// runs indefinitely (a server, a REPL), so this is deliberately generous.
const runTimeout = 24 * time.Hour

func newRunCmd() *cobra.Command {
	var config, variant string

	c := &cobra.Command{
		Use:   "run [project] [-- args...]",
		Short: "Build a project then run its executable",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectArg, runArgs := splitRunArgs(cmd, args)

			t, err := resolveRunTarget(projectArg)
			if err != nil {
				return err
			}
			if t.Manifest.Project.Kind != manifest.KindExecutable {
				return &cerrors.RunError{Message: t.Name + " is not an executable project"}
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
			sys := hostprobe.DetectSystem(cmd.Context(), sess)
			exe := executablePath(res.BuildDir, t.Manifest, cfg, sys.OS, sys.Arch)
			if _, statErr := os.Stat(exe); statErr != nil {
				return &cerrors.RunError{ExecutablePath: exe, Message: "built executable not found"}
			}

			env := hooks.Env{ProjectPath: t.Root, BuildPath: res.BuildDir, ConfigType: cfg, Variant: variant, Executable: exe}
			if t.Manifest.Hooks != nil {
				if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PreRun, env); err != nil {
					return fmt.Errorf("pre_run hook: %w", err)
				}
			}

			if err := runExecutable(cmd.Context(), exe, runArgs); err != nil {
				return &cerrors.RunError{ExecutablePath: exe, Message: err.Error()}
			}

			if t.Manifest.Hooks != nil {
				if err := hooks.RunSequence(cmd.Context(), t.Root, t.Manifest.Hooks.PostRun, env); err != nil {
					return fmt.Errorf("post_run hook: %w", err)
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&config, "config", "", "configuration profile (default: manifest default_config)")
	c.Flags().StringVar(&variant, "variant", "", "variant profile")
	return c
}

// splitRunArgs separates the optional [project] positional from any
// arguments following a literal "--", which cobra leaves in args as-is when
// ArgsLenAtDash reports a split point.
func splitRunArgs(cmd *cobra.Command, args []string) (project string, runArgs []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return argAt(args, 0), nil
	}
	if dash > 0 {
		project = args[0]
	}
	return project, args[dash:]
}

// executablePath computes where the emitted CMakeLists.txt's
// CMAKE_RUNTIME_OUTPUT_DIRECTORY places the built binary: the manifest's bin
// directory (with ${CONFIG}/${OS}/${ARCH} expanded), relative to the build
// directory, per the same layout internal/emitter writes into the native
// manifest.
func executablePath(buildDir string, m *manifest.ProjectManifest, config, osName, arch string) string {
	pv := placeholder.Values{Config: config, OS: osName, Arch: arch}
	binDir := placeholder.Expand(m.Output.BinDir, pv)
	name := m.Project.Name
	if osName == "windows" {
		name += ".exe"
	}
	return filepath.Join(buildDir, binDir, name)
}

func resolveRunTarget(projectArg string) (projectTarget, error) {
	root := cwd()
	if !manifest.IsWorkspace(root) {
		m, err := manifest.LoadProject(root)
		if err != nil {
			return projectTarget{}, err
		}
		return projectTarget{Name: m.Project.Name, Root: root, Manifest: m}, nil
	}

	w, byName, _, err := workspace.Load(root)
	if err != nil {
		return projectTarget{}, err
	}
	name, err := workspace.StartupProject(w, projectArg)
	if err != nil {
		return projectTarget{}, err
	}
	p, ok := byName[name]
	if !ok {
		return projectTarget{}, fmt.Errorf("startup project %q not found in this workspace", name)
	}
	return projectTarget{Name: name, Root: p.Root, Manifest: p.Manifest}, nil
}

func runExecutable(ctx context.Context, exe string, args []string) error {
	child, err := proc.Spawn(ctx, filepath.Dir(exe), nil, exe, args...)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			fmt.Fprintln(os.Stdout, line.Text)
		}
	}()

	timedOut, waitErr := child.Wait(runTimeout)
	<-done
	if timedOut {
		return fmt.Errorf("exceeded %s timeout", runTimeout)
	}
	if waitErr != nil {
		return waitErr
	}
	if code := child.ExitCode(); code != 0 {
		return fmt.Errorf("exited with status %d", code)
	}
	return nil
}
