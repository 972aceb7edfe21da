package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"cforge/pkg/logging"
)

// Env carries the environment-variable bindings spec.md §6.4 says every
// hook and script invocation receives, beyond the hook's declared command.
type Env struct {
	ProjectPath string
	BuildPath   string
	ConfigType  string
	Variant     string
	Target      string
	Prefix      string
	Executable  string
}

func (e Env) toPairs() []string {
	pairs := os.Environ()
	add := func(k, v string) {
		if v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	add("PROJECT_PATH", e.ProjectPath)
	add("BUILD_PATH", e.BuildPath)
	add("CONFIG_TYPE", e.ConfigType)
	add("VARIANT", e.Variant)
	add("TARGET", e.Target)
	add("PREFIX", e.Prefix)
	add("EXECUTABLE", e.Executable)
	return pairs
}

// shellCommand returns the argv that hands command to the host shell,
// matching spec.md §5 ("hooks and scripts are executed in a subshell").
func shellCommand(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

// Run executes a single hook or script command synchronously in dir,
// streaming its output to the process's own stdout/stderr.
func Run(ctx context.Context, dir, command string, env Env) error {
	bin, args := shellCommand(command)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = env.toPairs()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Debug("hooks", "running: %s", command)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q: %w", command, err)
	}
	return nil
}

// RunSequence executes each command in commands in order, stopping at the
// first failure.
func RunSequence(ctx context.Context, dir string, commands []string, env Env) error {
	for _, c := range commands {
		if err := Run(ctx, dir, c, env); err != nil {
			return err
		}
	}
	return nil
}
