package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesMSVCShared(t *testing.T) {
	got := Candidates("mylib", Shared, "msvc")
	assert.Equal(t, []string{"mylib.lib", "libmylib.lib", "mylib.dll", "libmylib.dll"}, got)
}

func TestCandidatesGNUStatic(t *testing.T) {
	got := Candidates("mylib", Static, "gcc")
	assert.Equal(t, []string{"libmylib.a", "mylib.a"}, got)
}

func TestCandidatesGNUShared(t *testing.T) {
	got := Candidates("mylib", Shared, "clang")
	assert.Contains(t, got, "libmylib.so")
	assert.Contains(t, got, "libmylib.dylib")
}

func TestLocateFindsInBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libfoo.a"), []byte(""), 0o644))

	matches, err := Locate(dir, "foo", Static, "gcc")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "libfoo.a", matches[0].Name)
}

func TestLocateFindsInConventionalSubdir(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "libfoo.a"), []byte(""), 0o644))

	matches, err := Locate(dir, "foo", Static, "gcc")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(libDir, "libfoo.a"), matches[0].Path)
}

func TestLocateFindsViaBoundedBFS(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "libfoo.a"), []byte(""), 0o644))

	matches, err := Locate(dir, "foo", Static, "gcc")
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestLocateReturnsNoMatchesWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	matches, err := Locate(dir, "foo", Static, "gcc")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
