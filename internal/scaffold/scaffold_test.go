package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cforge/internal/manifest"
)

func TestWriteProject_App(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteProject(dir, "hello", TemplateApp))

	m, err := manifest.LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Project.Name)
	assert.Equal(t, manifest.KindExecutable, m.Project.Kind)

	_, err = os.Stat(filepath.Join(dir, "src", "main.cpp"))
	assert.NoError(t, err)
}

func TestWriteProject_Library(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteProject(dir, "mathlib", TemplateLibrary))

	m, err := manifest.LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, manifest.KindStaticLibrary, m.Project.Kind)

	_, err = os.Stat(filepath.Join(dir, "include", "mathlib.h"))
	assert.NoError(t, err)
}

func TestWriteProject_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteProject(dir, "hello", TemplateApp))
	assert.Error(t, WriteProject(dir, "hello", TemplateApp))
}

func TestWriteProject_UnknownTemplate(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, WriteProject(dir, "hello", "bogus"))
}

func TestWriteWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteWorkspace(dir, "myworkspace", []string{"app", "lib"}))

	w, err := manifest.LoadWorkspace(dir)
	require.NoError(t, err)
	assert.Equal(t, "myworkspace", w.Workspace.Name)
	assert.Equal(t, []string{"app", "lib"}, w.Workspace.Projects)
}
