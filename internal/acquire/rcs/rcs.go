// Package rcs implements the revision-control backend (spec.md §4.D.3):
// clone-or-pull each manifest git dependency with go-git, checkout a pinned
// revision when given, and optionally configure+build a nested project.
package rcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cforge/internal/acquire"
	"cforge/internal/manifest"
	"cforge/pkg/logging"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

const backendName = "git"

// NestedBuilder configures and builds a cloned dependency that itself has a
// native manifest, wiring back into components G/H. Optional: a Backend
// with a nil NestedBuilder simply skips that step.
type NestedBuilder func(ctx context.Context, depRoot string, cmakeOptions []string) error

// Backend implements acquire.Backend for git dependencies.
type Backend struct {
	NestedBuild NestedBuilder
}

func New(nested NestedBuilder) *Backend {
	return &Backend{NestedBuild: nested}
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Enabled(m *manifest.ProjectManifest) bool {
	return m != nil && len(m.Dependencies.Git) > 0
}

func (b *Backend) Acquire(ctx context.Context, req acquire.Request) (acquire.Outputs, error) {
	depsRoot := filepath.Join(req.ProjectRoot, ".cforge", "deps")
	includePaths := make([]string, 0, len(req.Manifest.Dependencies.Git))

	for _, dep := range req.Manifest.Dependencies.Git {
		dest := filepath.Join(depsRoot, dep.Name)
		if err := syncOne(ctx, dest, dep, req.Update); err != nil {
			return nil, err
		}

		if b.NestedBuild != nil && hasNativeManifest(dest) {
			if err := b.NestedBuild(ctx, dest, dep.CMakeOptions); err != nil {
				return nil, fmt.Errorf("nested build of %s: %w", dep.Name, err)
			}
		}

		if req.Session != nil {
			req.Session.MarkPackageInstalled(acquire.CacheKey(backendName, dep.Name), dest)
		}
		includePaths = append(includePaths, filepath.Join(dest, "include"))
	}

	out := acquire.Outputs{}
	if len(includePaths) > 0 {
		out[acquire.KeyExtraIncludePaths] = joinPaths(includePaths)
	}
	return out, nil
}

func syncOne(ctx context.Context, dest string, dep manifest.GitDependency, update bool) error {
	shallow := dep.Shallow == nil || *dep.Shallow
	repo, err := git.PlainOpen(dest)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logging.Info("rcs", "cloning %s into %s", dep.URL, dest)
		opts := &git.CloneOptions{URL: dep.URL}
		if shallow {
			opts.Depth = 1
		}
		if dep.Branch != "" {
			opts.ReferenceName = plumbing.NewBranchReferenceName(dep.Branch)
			opts.SingleBranch = true
		}
		repo, err = git.PlainCloneContext(ctx, dest, false, opts)
		if err != nil {
			return acquire.Transient(fmt.Errorf("clone %s: %w", dep.URL, err))
		}
	} else if err != nil {
		return fmt.Errorf("open %s: %w", dest, err)
	} else if update || (dep.Update != nil && *dep.Update) {
		wt, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("worktree for %s: %w", dep.Name, err)
		}
		pullErr := wt.PullContext(ctx, &git.PullOptions{})
		if pullErr != nil && !errors.Is(pullErr, git.NoErrAlreadyUpToDate) {
			return acquire.Transient(fmt.Errorf("pull %s: %w", dep.Name, pullErr))
		}
	}

	return checkoutRevision(repo, dep)
}

func checkoutRevision(repo *git.Repository, dep manifest.GitDependency) error {
	ref := ""
	switch {
	case dep.Commit != "":
		ref = dep.Commit
	case dep.Tag != "":
		ref = dep.Tag
	default:
		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree for %s: %w", dep.Name, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("resolve revision %s for %s: %w", ref, dep.Name, err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return fmt.Errorf("checkout %s for %s: %w", ref, dep.Name, err)
	}
	return nil
}

func hasNativeManifest(depRoot string) bool {
	_, err := os.Stat(filepath.Join(depRoot, manifest.ProjectManifestFileName))
	return err == nil
}

// Clone is the plain clone helper other backends (vcpkgindex's bootstrap
// step) use without depending on the full Backend/manifest machinery.
func Clone(ctx context.Context, url, dest, branch string, shallow bool) error {
	opts := &git.CloneOptions{URL: url}
	if shallow {
		opts.Depth = 1
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	_, err := git.PlainCloneContext(ctx, dest, false, opts)
	return err
}

// AuthFromEnv builds an http.BasicAuth from token, for private dependency
// repositories; it does not read the environment itself. An empty token
// yields nil.
func AuthFromEnv(token string) *http.BasicAuth {
	if token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "cforge", Password: token}
}

func joinPaths(paths []string) string {
	out := paths[0]
	for _, p := range paths[1:] {
		out += string(filepath.ListSeparator) + p
	}
	return out
}
