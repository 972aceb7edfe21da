// Package vcpkgindex implements the source-archive-manager backend
// (spec.md §4.D.1): probe for an installed manager, bootstrap one from its
// repository if absent and enabled, then batch-install the manifest's
// requested packages and surface the resulting toolchain file.
package vcpkgindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"cforge/internal/acquire"
	"cforge/internal/manifest"
	"cforge/internal/proc"
	"cforge/internal/session"
	"cforge/pkg/logging"
)

const backendName = "vcpkg"

// repoURL is the well-known upstream for the manager this backend bootstraps
// when no installation is found (spec.md §4.D.1).
const repoURL = "https://github.com/microsoft/vcpkg.git"

// Backend implements acquire.Backend for the source-archive-manager.
type Backend struct {
	// Clone lets the caller supply the rcs subpackage's clone function
	// without vcpkgindex importing rcs directly, avoiding a cycle since
	// rcs's own nested-build path may in turn want dependency outputs.
	Clone func(ctx context.Context, url, dest, branch string, shallow bool) error
}

func New(clone func(ctx context.Context, url, dest, branch string, shallow bool) error) *Backend {
	return &Backend{Clone: clone}
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Enabled(m *manifest.ProjectManifest) bool {
	return m != nil && m.Dependencies.Vcpkg.Enabled
}

// Acquire probes for (or bootstraps) the manager, then installs every
// package the manifest lists that session hasn't already recorded as
// installed this invocation.
func (b *Backend) Acquire(ctx context.Context, req acquire.Request) (acquire.Outputs, error) {
	cfg := req.Manifest.Dependencies.Vcpkg
	sess := req.Session

	root, err := b.resolveRoot(ctx, cfg, req.ProjectRoot)
	if err != nil {
		return nil, acquire.Transient(fmt.Errorf("resolve vcpkg root: %w", err))
	}

	toolchain := filepath.Join(root, "scripts", "buildsystems", "vcpkg.cmake")
	if _, err := os.Stat(toolchain); err != nil {
		return nil, fmt.Errorf("vcpkg toolchain file missing at %s: %w", toolchain, err)
	}

	pending := make([]string, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		key := acquire.CacheKey(backendName, pkg)
		if sess != nil && sess.PackageInstalled(key) {
			continue
		}
		pending = append(pending, pkg)
	}

	if len(pending) > 0 {
		if err := b.installBatch(ctx, root, pending); err != nil {
			logging.Warn("vcpkgindex", "batch install failed, retrying packages individually: %s", err)
			if err := b.installEach(ctx, root, pending); err != nil {
				return nil, fmt.Errorf("install packages: %w", err)
			}
		}
		if sess != nil {
			for _, pkg := range pending {
				sess.MarkPackageInstalled(acquire.CacheKey(backendName, pkg), toolchain)
			}
		}
	}

	return acquire.Outputs{acquire.KeyToolchainFile: toolchain}, nil
}

// resolveRoot returns the manager's install root, bootstrapping it by
// cloning its repository and running its bootstrap script when the
// configured/well-known paths don't already hold one.
func (b *Backend) resolveRoot(ctx context.Context, cfg manifest.VcpkgDependencies, projectRoot string) (string, error) {
	candidates := []string{}
	if cfg.Path != "" {
		candidates = append(candidates, cfg.Path)
	}
	candidates = append(candidates,
		filepath.Join(projectRoot, ".cforge", "vcpkg"),
		filepath.Join(os.Getenv("VCPKG_ROOT")),
	)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			return c, nil
		}
	}

	dest := filepath.Join(projectRoot, ".cforge", "vcpkg")
	logging.Info("vcpkgindex", "bootstrapping vcpkg into %s", dest)
	if b.Clone == nil {
		return "", fmt.Errorf("no vcpkg installation found and cloning is unavailable")
	}
	if err := b.Clone(ctx, repoURL, dest, "", true); err != nil {
		return "", fmt.Errorf("clone vcpkg: %w", err)
	}

	script := "bootstrap-vcpkg.sh"
	if runtime.GOOS == "windows" {
		script = "bootstrap-vcpkg.bat"
	}
	child, err := proc.Spawn(ctx, dest, nil, filepath.Join(dest, script))
	if err != nil {
		return "", fmt.Errorf("spawn bootstrap script: %w", err)
	}
	go drain(child)
	if _, err := child.Wait(5 * time.Minute); err != nil {
		return "", fmt.Errorf("bootstrap vcpkg: %w", err)
	}
	return dest, nil
}

func (b *Backend) installBatch(ctx context.Context, root string, packages []string) error {
	exe := vcpkgExe(root)
	args := append([]string{"install"}, packages...)
	child, err := proc.Spawn(ctx, root, nil, exe, args...)
	if err != nil {
		return err
	}
	go drain(child)
	timedOut, err := child.Wait(10 * time.Minute)
	if timedOut {
		return fmt.Errorf("vcpkg install timed out")
	}
	return err
}

func (b *Backend) installEach(ctx context.Context, root string, packages []string) error {
	for _, pkg := range packages {
		if err := b.installBatch(ctx, root, []string{pkg}); err != nil {
			return fmt.Errorf("install %s: %w", pkg, err)
		}
	}
	return nil
}

func vcpkgExe(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "vcpkg.exe")
	}
	return filepath.Join(root, "vcpkg")
}

func drain(c *proc.SupervisedChild) {
	for line := range c.Lines {
		logging.Debug("vcpkgindex", "%s", line.Text)
	}
}

// EnsureParentDir creates the parent directory of path (and any missing
// ancestors) if it does not exist yet.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
