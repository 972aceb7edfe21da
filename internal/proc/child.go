package proc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// execCommandContext is a variable to allow mocking in tests, mirroring the
// teacher's own containerizer package.
var execCommandContext = exec.CommandContext

// Stream identifies which pipe an OutputLine came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// OutputLine is one line read from the child's stdout or stderr.
type OutputLine struct {
	Stream Stream
	Text   string
}

// SupervisedChild wraps a spawned external process with concurrent
// stdout/stderr readers and an explicit spawn/wait/kill/reap lifecycle
// (design note §9). Lines is closed once both pipes reach EOF.
type SupervisedChild struct {
	cmd   *exec.Cmd
	Lines chan OutputLine

	group   *errgroup.Group
	started time.Time
}

// Spawn starts name with args in dir with the given environment (nil means
// inherit), immediately begins reading stdout/stderr concurrently, and
// returns before the child exits.
func Spawn(ctx context.Context, dir string, env []string, name string, args ...string) (*SupervisedChild, error) {
	cmd := execCommandContext(ctx, name, args...)
	cmd.Dir = dir
	if env != nil {
		cmd.Env = env
	}
	configureProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}

	sc := &SupervisedChild{
		cmd:     cmd,
		Lines:   make(chan OutputLine, 256),
		started: time.Now(),
	}

	g := &errgroup.Group{}
	g.Go(func() error { return pump(stdout, Stdout, sc.Lines) })
	g.Go(func() error { return pump(stderr, Stderr, sc.Lines) })
	sc.group = g

	go func() {
		g.Wait()
		close(sc.Lines)
	}()

	return sc, nil
}

func pump(r io.Reader, stream Stream, out chan<- OutputLine) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out <- OutputLine{Stream: stream, Text: scanner.Text()}
	}
	return scanner.Err()
}

// Wait blocks until the child exits or timeout elapses. On timeout it kills
// the child's process group, reaps it, and returns a timeout-classified
// error (the caller wraps this in the appropriate typed error — ConfigureError
// or BuildError — per spec.md §4.G/§4.H).
func (sc *SupervisedChild) Wait(timeout time.Duration) (timedOut bool, err error) {
	done := make(chan error, 1)
	go func() { done <- sc.cmd.Wait() }()

	select {
	case err = <-done:
		return false, err
	case <-time.After(timeout):
		_ = sc.Kill()
		<-done // reap
		return true, fmt.Errorf("process exceeded %s timeout", timeout)
	}
}

// Kill terminates the child's entire process group so that any
// subprocesses it spawned are also reaped (spec.md §5's "kills the child,
// reaps it" requirement).
func (sc *SupervisedChild) Kill() error {
	return killProcessGroup(sc.cmd)
}

// ExitCode returns the child's exit code; valid only after Wait returns.
func (sc *SupervisedChild) ExitCode() int {
	if sc.cmd.ProcessState == nil {
		return -1
	}
	return sc.cmd.ProcessState.ExitCode()
}
