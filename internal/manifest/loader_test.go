package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cforge/internal/cerrors"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectManifestFileName), []byte(contents), 0o644))
}

func TestLoadProjectAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project]
name = "hello"
version = "1.0.0"
description = "a trivial executable"
type = "executable"
language = "c++"
standard = "c++17"

[build]

[targets.default]
sources = ["src/main.cpp"]
`)

	m, err := LoadProject(dir)
	require.NoError(t, err)

	assert.Equal(t, "hello", m.Project.Name)
	assert.Contains(t, m.Build.Configs, "Debug")
	assert.Contains(t, m.Build.Configs, "Release")
	assert.Equal(t, []string{"NO_OPT", "DEBUG_INFO", "RTC1"}, m.Build.Configs["Debug"].Flags)
	assert.Equal(t, "Debug", m.Build.DefaultConfig)
	assert.Equal(t, "default", m.Build.Generator)
	assert.Equal(t, "bin", m.Output.BinDir)
}

func TestLoadProjectMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadProject(dir)
	require.Error(t, err)

	var merr *cerrors.ManifestError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Error(), "not found")
}

func TestLoadProjectInvalidName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project]
name = "1bad name"
version = "1.0.0"
description = ""
type = "executable"
language = "c++"
standard = "c++17"

[build]

[targets.default]
sources = ["src/main.cpp"]
`)

	_, err := LoadProject(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must match")
}

func TestLoadProjectParseErrorIsLocated(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project
name = "broken"
`)

	_, err := LoadProject(dir)
	require.Error(t, err)

	var merr *cerrors.ManifestError
	require.ErrorAs(t, err, &merr)
	assert.NotEmpty(t, merr.File)
}

func TestLoadWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkspaceManifestFileName), []byte(`
[workspace]
name = "demo"
projects = ["libm", "app"]
default_startup_project = "app"
`), 0o644))

	w, err := LoadWorkspace(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", w.Workspace.Name)
	assert.Equal(t, []string{"libm", "app"}, w.Workspace.Projects)
	assert.True(t, IsWorkspace(dir))
}

func TestLoadWorkspaceRejectsEmptyProjects(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkspaceManifestFileName), []byte(`
[workspace]
name = "demo"
projects = []
`), 0o644))

	_, err := LoadWorkspace(dir)
	require.Error(t, err)

	var werr *cerrors.WorkspaceError
	require.ErrorAs(t, err, &werr)
}
