package workspace

import (
	"context"
	"path/filepath"

	"cforge/internal/cerrors"
	"cforge/internal/manifest"
	"cforge/internal/pipeline"
	"cforge/internal/session"
	"cforge/pkg/logging"
)

// project bundles a loaded project manifest with its on-disk path, relative
// to the workspace root.
type project struct {
	RelPath  string
	Root     string
	Manifest *manifest.ProjectManifest
}

// Load reads the workspace manifest and every project it lists, validating
// each project's peer-dependency references against the workspace's own
// project set (spec.md §3 invariant 3). The returned names slice preserves
// the workspace manifest's own project declaration order.
func Load(workspaceRoot string) (*manifest.WorkspaceManifest, map[string]*project, []string, error) {
	w, err := manifest.LoadWorkspace(workspaceRoot)
	if err != nil {
		return nil, nil, nil, err
	}

	names := make(map[string]bool, len(w.Workspace.Projects))
	byName := make(map[string]*project, len(w.Workspace.Projects))
	order := make([]string, 0, len(w.Workspace.Projects))

	loaded := make([]*project, 0, len(w.Workspace.Projects))
	for _, rel := range w.Workspace.Projects {
		root := filepath.Join(workspaceRoot, rel)
		m, err := manifest.LoadProject(root)
		if err != nil {
			return nil, nil, nil, err
		}
		names[m.Project.Name] = true
		p := &project{RelPath: rel, Root: root, Manifest: m}
		loaded = append(loaded, p)
		byName[m.Project.Name] = p
		order = append(order, m.Project.Name)
	}

	for _, p := range loaded {
		if errs := manifest.ValidateProject(p.Manifest, names); len(errs) > 0 {
			return nil, nil, nil, errs[0]
		}
	}

	return w, byName, order, nil
}

func peerDepsOf(byName map[string]*project) func(name string) []string {
	return func(name string) []string {
		p, ok := byName[name]
		if !ok {
			return nil
		}
		deps := make([]string, 0, len(p.Manifest.Dependencies.Workspace))
		for _, d := range p.Manifest.Dependencies.Workspace {
			deps = append(deps, d.Name)
		}
		return deps
	}
}

// Result is the outcome of a workspace-wide run: the order projects were
// attempted in, and any per-project failures collected along the way
// (spec.md §4.J: "Build failures for non-leaf projects are noted and the
// loop continues").
type Result struct {
	Order    []string
	Failures []cerrors.ProjectFailure
}

// Failed reports whether any project failed, per spec.md §4.J: "the run's
// overall exit status is failure iff any project failed."
func (r Result) Failed() bool { return len(r.Failures) > 0 }

// Build computes the topological build order from the workspace's
// peer-dependency graph, then runs pipeline.Build for each project in that
// order, continuing past a failing project so every project's outcome is
// visible in one run.
func Build(ctx context.Context, sess *session.Context, workspaceRoot string, opts pipeline.Options) (Result, error) {
	_, byName, names, err := Load(workspaceRoot)
	if err != nil {
		return Result{}, err
	}

	order, err := TopoOrder(names, peerDepsOf(byName))
	if err != nil {
		return Result{}, err
	}

	var failures []cerrors.ProjectFailure
	for _, name := range order {
		p := byName[name]
		logging.Info("workspace", "building %s", name)
		if _, err := pipeline.Build(ctx, sess, p.Manifest, p.Root, opts); err != nil {
			logging.Error("workspace", err, "project %s failed", name)
			failures = append(failures, cerrors.ProjectFailure{Project: name, Err: err})
			continue
		}
	}

	return Result{Order: order, Failures: failures}, nil
}

// StartupProject selects the project a `run` verb targets when invoked at
// workspace root without an explicit argument, per spec.md §4.J: explicit
// argument > workspace default_startup_project (if it is in projects) >
// first entry of projects.
func StartupProject(w *manifest.WorkspaceManifest, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if w.Workspace.DefaultStartupProject != "" {
		for _, p := range w.Workspace.Projects {
			if p == w.Workspace.DefaultStartupProject {
				return w.Workspace.DefaultStartupProject, nil
			}
		}
	}
	if len(w.Workspace.Projects) == 0 {
		return "", &cerrors.WorkspaceError{Message: "workspace declares no projects"}
	}
	return w.Workspace.Projects[0], nil
}
