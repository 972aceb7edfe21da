package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"cforge/internal/cerrors"
	"cforge/pkg/logging"
)

// ProjectManifestFileName is the well-known manifest file name within a
// project directory (spec.md §6.2).
const ProjectManifestFileName = "cforge.toml"

// WorkspaceManifestFileName is the well-known workspace manifest file name
// (spec.md §6.3).
const WorkspaceManifestFileName = "cforge-workspace.toml"

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// LoadProject reads and validates cforge.toml from projectDir, applying
// defaults and invariant checks per spec.md §3/§4.A.
func LoadProject(projectDir string) (*ProjectManifest, error) {
	path := filepath.Join(projectDir, ProjectManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &cerrors.ManifestError{
				Located: cerrors.Located{File: path},
				Message: fmt.Sprintf("%s not found; run 'cforge init' to create one", ProjectManifestFileName),
			}
		}
		return nil, &cerrors.ManifestError{
			Located: cerrors.Located{File: path},
			Message: fmt.Sprintf("failed to read %s: %s", path, err),
		}
	}

	var m ProjectManifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, decodeError(path, string(data), err)
	}
	m.SourcePath = path

	applyDefaults(&m)

	if errs := ValidateProject(&m, nil); len(errs) > 0 {
		return nil, errs[0]
	}

	logging.Debug("ManifestLoader", "loaded project manifest %s (%s)", m.Project.Name, path)
	return &m, nil
}

// LoadWorkspace reads and validates cforge-workspace.toml at workspaceDir.
func LoadWorkspace(workspaceDir string) (*WorkspaceManifest, error) {
	path := filepath.Join(workspaceDir, WorkspaceManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &cerrors.ManifestError{
				Located: cerrors.Located{File: path},
				Message: fmt.Sprintf("%s not found", WorkspaceManifestFileName),
			}
		}
		return nil, &cerrors.ManifestError{
			Located: cerrors.Located{File: path},
			Message: fmt.Sprintf("failed to read %s: %s", path, err),
		}
	}

	var w WorkspaceManifest
	if _, err := toml.Decode(string(data), &w); err != nil {
		return nil, decodeError(path, string(data), err)
	}
	w.SourcePath = path

	if w.Workspace.Name == "" {
		return nil, &cerrors.WorkspaceError{
			Located: cerrors.Located{File: path},
			Message: "workspace has no name",
		}
	}
	if len(w.Workspace.Projects) == 0 {
		return nil, &cerrors.WorkspaceError{
			Located: cerrors.Located{File: path},
			Message: "workspace declares no projects",
		}
	}

	logging.Debug("ManifestLoader", "loaded workspace manifest %s (%d projects)", w.Workspace.Name, len(w.Workspace.Projects))
	return &w, nil
}

// IsWorkspace reports whether dir contains a workspace manifest.
func IsWorkspace(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, WorkspaceManifestFileName))
	return err == nil
}

// decodeError turns a toml decode failure into a located ManifestError
// carrying a 3-line context window, per spec.md §4.A. BurntSushi/toml
// reports parse failures as a toml.ParseError value with a Position; we extract the
// surrounding source ourselves since the parser is treated as an interface
// only (spec.md §1 lists it as an external collaborator).
func decodeError(path, source string, err error) *cerrors.ManifestError {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		line := perr.Position.Line
		return &cerrors.ManifestError{
			Located: cerrors.Located{
				File:    path,
				Line:    line,
				Context: contextWindow(source, line),
			},
			Message: perr.Message,
		}
	}
	return &cerrors.ManifestError{
		Located: cerrors.Located{File: path},
		Message: err.Error(),
	}
}

// contextWindow extracts up to three lines of source centered on line
// (1-based), formatted with gutter line numbers.
func contextWindow(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	start := line - 1
	if start < 1 {
		start = 1
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i <= end; i++ {
		if i-1 < 0 || i-1 >= len(lines) {
			continue
		}
		marker := "  "
		if i == line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", marker, i, lines[i-1])
	}
	return strings.TrimRight(b.String(), "\n")
}
