package buildrun

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/proc"
	"cforge/pkg/logging"
)

// Timeout is a generous watchdog for the build step. Spec.md §8 fixes an
// explicit timeout for configure (10 minutes) and the acquisition backends,
// but names none for the build step itself — large C++ builds legitimately
// run far longer than a configure pass — so this is deliberately generous
// rather than spec-derived.
const Timeout = 2 * time.Hour

// Options carries the build driver's inputs (spec.md §4.H).
type Options struct {
	Executable  string // default "cmake"
	BuildDir    string
	ConfigType  string
	Parallelism int // default runtime.NumCPU()
	TotalEstimate int
	Env         []string
}

// Result is the outcome of one build invocation.
type Result struct {
	Lines    []string
	Progress Progress
	TimedOut bool
}

func (o Options) args() []string {
	parallel := o.Parallelism
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	args := []string{"--build", o.BuildDir}
	if o.ConfigType != "" {
		args = append(args, "--config", o.ConfigType)
	}
	args = append(args, "--parallel", strconv.Itoa(parallel))
	return args
}

// Run invokes the external builder once, tracking Progress as output
// streams in, and returns BuildError on failure or timeout.
func Run(ctx context.Context, opts Options) (Result, error) {
	exe := opts.Executable
	if exe == "" {
		exe = "cmake"
	}

	child, err := proc.Spawn(ctx, opts.BuildDir, envOrNil(opts.Env), exe, opts.args()...)
	if err != nil {
		return Result{}, &cerrors.BuildError{Message: fmt.Sprintf("spawn %s: %s", exe, err)}
	}

	progress := Progress{TotalEstimate: opts.TotalEstimate}
	var lines []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			lines = append(lines, line.Text)
			progress.Update(line.Text)
			logging.Debug("buildrun", "%s", line.Text)
		}
	}()

	timedOut, waitErr := child.Wait(Timeout)
	<-done

	if timedOut {
		return Result{Lines: lines, Progress: progress, TimedOut: true}, &cerrors.BuildError{
			Message:  fmt.Sprintf("build exceeded %s", Timeout),
			TimedOut: true,
		}
	}
	if waitErr != nil {
		return Result{Lines: lines, Progress: progress}, &cerrors.BuildError{Message: waitErr.Error()}
	}
	return Result{Lines: lines, Progress: progress}, nil
}

func envOrNil(env []string) []string {
	if len(env) == 0 {
		return nil
	}
	return env
}
