package cmd

import (
	"fmt"
	"os"

	"cforge/internal/manifest"
	"cforge/internal/session"
	"cforge/internal/workspace"

	"github.com/fatih/color"
)

// sess is the single process-wide SessionContext spec.md §9 describes,
// threaded through every verb for the duration of this invocation.
var sess = session.New()

// verbosity holds the --verbosity global flag's raw value; root.go's
// PersistentPreRunE turns it into a logging.LogLevel.
var verbosity string

func cwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// projectTarget is one project a verb operates on: its name, root
// directory, and loaded manifest.
type projectTarget struct {
	Name     string
	Root     string
	Manifest *manifest.ProjectManifest
}

// resolveProjects implements the command orchestrator's dispatch rule
// (spec.md §4.K): outside a workspace, the current directory is the one
// (standalone) project; inside a workspace, an explicit projectArg narrows
// to that single project, and its absence means "every project in the
// workspace", in the workspace's declared order.
func resolveProjects(projectArg string) ([]projectTarget, *manifest.WorkspaceManifest, error) {
	root := cwd()

	if !manifest.IsWorkspace(root) {
		m, err := manifest.LoadProject(root)
		if err != nil {
			return nil, nil, err
		}
		return []projectTarget{{Name: m.Project.Name, Root: root, Manifest: m}}, nil, nil
	}

	w, byName, order, err := workspace.Load(root)
	if err != nil {
		return nil, nil, err
	}

	if projectArg != "" {
		p, ok := byName[projectArg]
		if !ok {
			return nil, w, fmt.Errorf("project %q not found in this workspace", projectArg)
		}
		return []projectTarget{{Name: projectArg, Root: p.Root, Manifest: p.Manifest}}, w, nil
	}

	targets := make([]projectTarget, 0, len(order))
	for _, name := range order {
		p := byName[name]
		targets = append(targets, projectTarget{Name: name, Root: p.Root, Manifest: p.Manifest})
	}
	return targets, w, nil
}

// forEachProject resolves projectArg to one or more targets and applies fn
// to each, continuing past a failing project and reporting all failures at
// the end (spec.md §4.J/§4.K: "the run's overall exit status is failure iff
// any project failed, but subsequent projects still run"). With a single
// target the first error is simply returned.
func forEachProject(projectArg string, fn func(projectTarget) error) error {
	targets, _, err := resolveProjects(projectArg)
	if err != nil {
		return err
	}

	if len(targets) == 1 {
		return fn(targets[0])
	}

	var failed []string
	for _, t := range targets {
		if err := fn(t); err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "project %s failed: %s\n", t.Name, err)
			failed = append(failed, t.Name)
			continue
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d project(s) failed: %v", len(failed), failed)
	}
	return nil
}
