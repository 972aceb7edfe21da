package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cforge/internal/acquire"
	"cforge/internal/acquire/archivefetch"
	"cforge/internal/acquire/configpkg"
	"cforge/internal/acquire/rcs"
	"cforge/internal/acquire/vcpkgindex"
	"cforge/internal/artifact"
	"cforge/internal/buildrun"
	"cforge/internal/cerrors"
	"cforge/internal/configure"
	"cforge/internal/diagnostics"
	"cforge/internal/emitter"
	"cforge/internal/hooks"
	"cforge/internal/hostprobe"
	"cforge/internal/manifest"
	"cforge/internal/placeholder"
	"cforge/internal/session"
	"cforge/pkg/logging"
)

// Backends returns the four acquisition backends in the order spec.md §4.D
// presents them; Acquire iterates the ones each manifest enables. The
// revision-control backend's NestedBuilder closes over Configure so a
// cloned dependency carrying its own native manifest gets a nested
// configure+build without rcs importing this package (spec.md §4.D.3).
func Backends() []acquire.Backend {
	return []acquire.Backend{
		vcpkgindex.New(rcs.Clone),
		configpkg.New(),
		rcs.New(nestedBuild),
		archivefetch.New(),
	}
}

func nestedBuild(ctx context.Context, depRoot string, cmakeOptions []string) error {
	m, err := manifest.LoadProject(depRoot)
	if err != nil {
		return err
	}
	m.Build.CMakeOptions = append(m.Build.CMakeOptions, cmakeOptions...)
	_, err = Build(ctx, session.New(), m, depRoot, Options{})
	return err
}

// Options configures one invocation of Build.
type Options struct {
	Config      string // default: manifest's default configuration
	Variant     string
	CrossTarget string // triplet; empty selects the native build directory name
	Update      bool   // forwarded to the dependency backends (deps --update)
	Parallelism int
}

// Result is everything a caller needs after a build attempt: the resolved
// build directory, the parsed diagnostics (populated on build failure), and
// the raw driver results for progress reporting.
type Result struct {
	BuildDir    string
	Configure   configure.Result
	Build       buildrun.Result
	Diagnostics []diagnostics.Diagnostic
}

// BuildDirName computes "<build-dir>-<lowercase-config>[-<cross-target>]"
// per spec.md §6.6. The result is a deterministic function of its inputs
// (spec.md §3 invariant 5/§8 testable property 4).
func BuildDirName(m *manifest.ProjectManifest, config, crossTarget string) string {
	name := m.Build.BuildDir + "-" + strings.ToLower(config)
	if crossTarget != "" {
		name += "-" + crossTarget
	}
	return name
}

func resolveConfig(m *manifest.ProjectManifest, config string) string {
	if config != "" {
		return config
	}
	return m.Build.DefaultConfig
}

// Configure runs only the pre-configure hook, dependency acquisition,
// native-input emission, and the configure driver — the `configure` verb's
// scope, and the first half of `build`.
func Configure(ctx context.Context, sess *session.Context, m *manifest.ProjectManifest, projectRoot string, opts Options) (Result, error) {
	config := resolveConfig(m, opts.Config)
	buildDir := filepath.Join(projectRoot, BuildDirName(m, config, opts.CrossTarget))
	env := hooks.Env{
		ProjectPath: projectRoot,
		BuildPath:   buildDir,
		ConfigType:  config,
		Variant:     opts.Variant,
		Target:      opts.CrossTarget,
	}

	if m.Hooks != nil {
		if err := hooks.RunSequence(ctx, projectRoot, m.Hooks.PreConfigure, env); err != nil {
			return Result{BuildDir: buildDir}, fmt.Errorf("pre_configure hook: %w", err)
		}
	}

	sys := hostprobe.DetectSystem(ctx, sess)
	compilerLabel := m.Build.Compiler
	if compilerLabel == "" {
		compilerLabel = sys.CompilerLabel
	}

	outputs, err := acquire.Acquire(ctx, Backends(), acquire.Request{
		Manifest:    m,
		ProjectRoot: projectRoot,
		Update:      opts.Update,
		Session:     sess,
	})
	if err != nil {
		return Result{BuildDir: buildDir}, err
	}

	bc := emitter.BuildContext{
		Outputs:       outputs,
		CompilerLabel: compilerLabel,
		OS:            sys.OS,
		Arch:          sys.Arch,
	}
	if _, err := emitter.Emit(m, projectRoot, buildDir, bc); err != nil {
		return Result{BuildDir: buildDir}, &cerrors.InternalError{Message: "emit native manifest", Cause: err}
	}

	cfgOpts := configure.Options{
		SourceDir:  buildDir,
		BuildDir:   buildDir,
		Generator:  m.Build.Generator,
		ConfigType: config,
	}
	if opts.CrossTarget != "" && m.CrossCompile != nil {
		cfgOpts.ToolchainFile = m.CrossCompile.CMakeToolchainFile
		cfgOpts.CrossCompileOptions = crossCompileOptions(m.CrossCompile)
		cfgOpts.Env = crossCompileEnv(m.CrossCompile)
	}
	if tc := outputs[acquire.KeyToolchainFile]; tc != "" && cfgOpts.ToolchainFile == "" {
		cfgOpts.ToolchainFile = tc
	}

	cfgResult, cfgErr := configure.Run(ctx, cfgOpts)
	result := Result{BuildDir: buildDir, Configure: cfgResult}
	if cfgErr != nil {
		return result, cfgErr
	}

	if m.Hooks != nil {
		if err := hooks.RunSequence(ctx, projectRoot, m.Hooks.PostConfigure, env); err != nil {
			return result, fmt.Errorf("post_configure hook: %w", err)
		}
	}
	return result, nil
}

// Build runs Configure followed by the pre/post-build hooks and the build
// driver, and — for a successfully built non-executable target — writes the
// peer-consumable descriptor (spec.md §6.5).
func Build(ctx context.Context, sess *session.Context, m *manifest.ProjectManifest, projectRoot string, opts Options) (Result, error) {
	result, err := Configure(ctx, sess, m, projectRoot, opts)
	if err != nil {
		return result, err
	}

	config := resolveConfig(m, opts.Config)
	env := hooks.Env{
		ProjectPath: projectRoot,
		BuildPath:   result.BuildDir,
		ConfigType:  config,
		Variant:     opts.Variant,
		Target:      opts.CrossTarget,
	}

	if m.Hooks != nil {
		if err := hooks.RunSequence(ctx, projectRoot, m.Hooks.PreBuild, env); err != nil {
			return result, fmt.Errorf("pre_build hook: %w", err)
		}
	}

	buildResult, buildErr := buildrun.Run(ctx, buildrun.Options{
		BuildDir:    result.BuildDir,
		ConfigType:  config,
		Parallelism: opts.Parallelism,
	})
	result.Build = buildResult

	if buildErr != nil {
		diags := diagnostics.Parse(buildResult.Lines, projectRoot)
		result.Diagnostics = diags
		var be *cerrors.BuildError
		if asBuildError(buildErr, &be) {
			be.Diagnostics = diags
		}
		return result, buildErr
	}

	if m.Hooks != nil {
		if err := hooks.RunSequence(ctx, projectRoot, m.Hooks.PostBuild, env); err != nil {
			return result, fmt.Errorf("post_build hook: %w", err)
		}
	}

	sys := hostprobe.DetectSystem(ctx, sess)
	compilerLabel := m.Build.Compiler
	if compilerLabel == "" {
		compilerLabel = sys.CompilerLabel
	}
	if err := writeDescriptorIfLibrary(m, result.BuildDir, projectRoot, config, sys.OS, sys.Arch, compilerLabel); err != nil {
		logging.Warn("pipeline", "peer descriptor not written for %s: %s", m.Project.Name, err)
	}

	return result, nil
}

// crossCompileOptions builds the extra -D... configurator options a cross-
// compile profile contributes, mirroring setup_cross_compilation's option
// ordering: sysroot, define prefix, raw flags, then explicit compiler/binutils
// paths when no toolchain file is set but a toolchain prefix is.
func crossCompileOptions(cc *manifest.CrossCompileProfile) []string {
	var opts []string
	if cc.Sysroot != "" {
		opts = append(opts, "-DCMAKE_SYSROOT="+os.ExpandEnv(cc.Sysroot))
	}
	if cc.DefinePrefix != "" {
		opts = append(opts, "-D"+cc.DefinePrefix+"=1")
	}
	opts = append(opts, cc.Flags...)
	if cc.CMakeToolchainFile == "" && cc.Toolchain != "" {
		opts = append(opts,
			"-DCMAKE_C_COMPILER="+cc.Toolchain+"-gcc",
			"-DCMAKE_CXX_COMPILER="+cc.Toolchain+"-g++",
			"-DCMAKE_AR="+cc.Toolchain+"-ar",
			"-DCMAKE_RANLIB="+cc.Toolchain+"-ranlib",
			"-DCMAKE_STRIP="+cc.Toolchain+"-strip",
		)
	}
	return opts
}

// androidNDKCandidates / emscriptenCandidates are the common install
// locations get_cross_compilation_env probes when the matching environment
// variable isn't already set.
var androidNDKCandidates = []string{
	"$ANDROID_HOME/ndk-bundle",
	"$ANDROID_HOME/ndk/latest",
}

var emscriptenCandidates = []string{
	"$HOME/emsdk/upstream/emscripten",
	"/usr/local/emsdk/upstream/emscripten",
}

// crossCompileEnv builds the configure child's full environment: the
// process's own environment, overlaid with the profile's env_vars, overlaid
// with an auto-detected ANDROID_NDK or EMSCRIPTEN path for the matching
// target triplet when neither the profile nor the process already set one.
func crossCompileEnv(cc *manifest.CrossCompileProfile) []string {
	env := os.Environ()
	for k, v := range cc.EnvVars {
		env = append(env, k+"="+os.ExpandEnv(v))
	}

	switch {
	case strings.Contains(cc.Target, "android"):
		env = withAutoDetectedVar(env, cc.EnvVars, "ANDROID_NDK", androidNDKCandidates)
	case strings.Contains(cc.Target, "emscripten") || strings.Contains(cc.Target, "wasm"):
		env = withAutoDetectedVar(env, cc.EnvVars, "EMSCRIPTEN", emscriptenCandidates)
	}
	return env
}

func withAutoDetectedVar(env []string, explicit map[string]string, name string, candidates []string) []string {
	if _, ok := explicit[name]; ok {
		return env
	}
	if _, ok := os.LookupEnv(name); ok {
		return env
	}
	for _, c := range candidates {
		path := os.ExpandEnv(c)
		if _, err := os.Stat(path); err == nil {
			return append(env, name+"="+path)
		}
	}
	return env
}

func asBuildError(err error, target **cerrors.BuildError) bool {
	be, ok := err.(*cerrors.BuildError)
	if ok {
		*target = be
	}
	return ok
}

func writeDescriptorIfLibrary(m *manifest.ProjectManifest, buildDir, projectRoot, config, os, arch, compilerLabel string) error {
	if m.Project.Kind == manifest.KindExecutable {
		return nil
	}

	pv := placeholder.Values{Config: config, OS: os, Arch: arch}
	libDir := filepath.Join(buildDir, placeholder.Expand(m.Output.LibDir, pv))

	linkage := artifact.Static
	if m.Project.Kind == manifest.KindSharedLibrary {
		linkage = artifact.Shared
	}

	var artifactPath string
	matches, err := artifact.Locate(libDir, m.Project.Name, linkage, compilerLabel)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		artifactPath = matches[0].Path
	}

	includeDir := filepath.Join(projectRoot, "include")
	return emitter.WriteDescriptor(m, buildDir, artifactPath, includeDir)
}
