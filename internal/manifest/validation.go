package manifest

import (
	"fmt"

	"cforge/internal/cerrors"
)

// ValidateProject checks a loaded ProjectManifest against spec.md §3's
// invariants. workspaceProjects, when non-nil, is the set of project names
// declared in the enclosing workspace, used to validate peer-dependency
// references (invariant 3); pass nil for a standalone (non-workspace)
// project.
func ValidateProject(m *ProjectManifest, workspaceProjects map[string]bool) []*cerrors.ManifestError {
	var errs []*cerrors.ManifestError
	loc := cerrors.Located{File: m.SourcePath}

	// Invariant 1: non-empty name matching [A-Za-z_][A-Za-z0-9_-]*
	if m.Project.Name == "" {
		errs = append(errs, &cerrors.ManifestError{Located: loc, Message: "project.name is required"})
	} else if !nameRe.MatchString(m.Project.Name) {
		errs = append(errs, &cerrors.ManifestError{
			Located: loc,
			Message: fmt.Sprintf("project.name %q must match [A-Za-z_][A-Za-z0-9_-]*", m.Project.Name),
		})
	}

	if !validKind(m.Project.Kind) {
		errs = append(errs, &cerrors.ManifestError{
			Located: loc,
			Message: fmt.Sprintf("project.type %q must be one of executable, static-library, shared-library, header-only", m.Project.Kind),
		})
	}

	// Invariant 2: default configuration name appears as a key in configs
	// (defaults.go fills in Debug/Release when the map is entirely absent
	// and "Debug" when default_config is, so this fires whenever the
	// resulting default name is missing from the resulting configs map).
	if m.Build.DefaultConfig != "" {
		if _, ok := m.Build.Configs[m.Build.DefaultConfig]; !ok {
			errs = append(errs, &cerrors.ManifestError{
				Located: loc,
				Message: fmt.Sprintf("build.default_config %q is not a key in build.configs", m.Build.DefaultConfig),
			})
		}
	}

	// Invariant 3: peer-project dependencies refer only to names present in
	// the enclosing workspace.
	if workspaceProjects != nil {
		for _, dep := range m.Dependencies.Workspace {
			if !workspaceProjects[dep.Name] {
				errs = append(errs, &cerrors.ManifestError{
					Located: loc,
					Message: fmt.Sprintf("peer dependency %q is not a project in this workspace", dep.Name),
				})
			}
		}
	}

	// Every manifest has at least one target.
	if len(m.Targets) == 0 {
		errs = append(errs, &cerrors.ManifestError{Located: loc, Message: "manifest declares no targets"})
	}

	return errs
}

func validKind(kind string) bool {
	switch kind {
	case KindExecutable, KindStaticLibrary, KindSharedLibrary, KindHeaderOnly:
		return true
	default:
		return false
	}
}
