package configure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cforge/internal/cerrors"
	"cforge/internal/proc"
	"cforge/pkg/logging"
)

// Timeout is the watchdog spec.md §8 fixes for the configure step.
const Timeout = 10 * time.Minute

// Options carries every input the configure step passes to the external
// generator (spec.md §4.G).
type Options struct {
	Executable          string // generator driver, default "cmake"
	SourceDir            string
	BuildDir             string
	Generator            string
	ConfigType            string
	ToolchainFile         string
	CCompiler             string
	CXXCompiler           string
	PlatformOptions       []string
	ConfigOptions         []string
	VariantOptions        []string
	CrossCompileOptions   []string
	WorkspaceOptions      []string
	Env                   []string
}

// Result is what a successful (or failed-but-classified) configure run
// produced: the lines a post-mortem diagnostic pass (component I) consumes.
type Result struct {
	Lines        []string
	Retried      bool
	TimedOut     bool
}

func (o Options) args() []string {
	args := []string{"-S", o.SourceDir, "-B", o.BuildDir}
	if o.Generator != "" && o.Generator != "default" {
		args = append(args, "-G", o.Generator)
	}
	if o.ConfigType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+o.ConfigType)
	}
	if o.ToolchainFile != "" {
		args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+o.ToolchainFile)
	}
	if o.CCompiler != "" {
		args = append(args, "-DCMAKE_C_COMPILER="+o.CCompiler)
	}
	if o.CXXCompiler != "" {
		args = append(args, "-DCMAKE_CXX_COMPILER="+o.CXXCompiler)
	}
	args = append(args, o.PlatformOptions...)
	args = append(args, o.ConfigOptions...)
	args = append(args, o.VariantOptions...)
	args = append(args, o.CrossCompileOptions...)
	args = append(args, o.WorkspaceOptions...)
	return args
}

// minimal strips every option but the generator's essentials, for the
// single post-failure retry spec.md §4.G describes.
func (o Options) minimal() Options {
	return Options{
		Executable: o.Executable,
		SourceDir:  o.SourceDir,
		BuildDir:   o.BuildDir,
		Generator:  o.Generator,
		ConfigType: o.ConfigType,
	}
}

// warningMarkers / errorMarkers / headingMarkers classify a captured line
// for immediate streaming (spec.md §4.G).
var errorMarkers = []string{"CMake Error", "error:", "Error "}
var warningMarkers = []string{"CMake Warning", "warning:"}
var headingMarkers = []string{"-- "}

func classify(line string) string {
	for _, m := range errorMarkers {
		if strings.Contains(line, m) {
			return "error"
		}
	}
	for _, m := range warningMarkers {
		if strings.Contains(line, m) {
			return "warning"
		}
	}
	for _, m := range headingMarkers {
		if strings.HasPrefix(line, m) {
			return "heading"
		}
	}
	return ""
}

// Run invokes the external configurator once, streaming error lines
// immediately and returning the full captured output for post-mortem use.
// On failure it removes the build directory's cache file and scratch
// directory and retries once with a minimal option set.
func Run(ctx context.Context, opts Options) (Result, error) {
	exe := opts.Executable
	if exe == "" {
		exe = "cmake"
	}

	lines, timedOut, runErr := invoke(ctx, exe, opts)
	if runErr == nil {
		return Result{Lines: lines}, nil
	}
	if timedOut {
		return Result{Lines: lines, TimedOut: true}, &cerrors.ConfigureError{
			Located: cerrors.Located{File: opts.SourceDir},
			Message: fmt.Sprintf("configure exceeded %s", Timeout),
			TimedOut: true,
		}
	}

	logging.Warn("configure", "configure failed, clearing cache and retrying with minimal options: %s", runErr)
	if err := resetBuildDir(opts.BuildDir); err != nil {
		return Result{Lines: lines}, &cerrors.ConfigureError{
			Located: cerrors.Located{File: opts.SourceDir},
			Message: fmt.Sprintf("clear build dir for retry: %s", err),
		}
	}

	retryLines, retryTimedOut, retryErr := invoke(ctx, exe, opts.minimal())
	combined := append(lines, retryLines...)
	if retryErr != nil {
		return Result{Lines: combined, Retried: true, TimedOut: retryTimedOut}, &cerrors.ConfigureError{
			Located:  cerrors.Located{File: opts.SourceDir},
			Message:  retryErr.Error(),
			TimedOut: retryTimedOut,
		}
	}
	return Result{Lines: combined, Retried: true}, nil
}

func invoke(ctx context.Context, exe string, opts Options) (lines []string, timedOut bool, err error) {
	child, err := proc.Spawn(ctx, opts.BuildDir, envOrNil(opts.Env), exe, opts.args()...)
	if err != nil {
		return nil, false, fmt.Errorf("spawn %s: %w", exe, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range child.Lines {
			lines = append(lines, line.Text)
			switch classify(line.Text) {
			case "error":
				logging.Error("configure", nil, "%s", line.Text)
			case "warning":
				logging.Warn("configure", "%s", line.Text)
			}
		}
	}()

	timedOut, waitErr := child.Wait(Timeout)
	<-done // Wait's reap closes the child's pipes, so Lines finishes draining promptly.
	if waitErr != nil {
		return lines, timedOut, waitErr
	}
	return lines, false, nil
}

func envOrNil(env []string) []string {
	if len(env) == 0 {
		return nil
	}
	return env
}

func resetBuildDir(buildDir string) error {
	if err := os.Remove(filepath.Join(buildDir, "CMakeCache.txt")); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.RemoveAll(filepath.Join(buildDir, "CMakeFiles")); err != nil {
		return err
	}
	return nil
}
