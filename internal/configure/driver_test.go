package configure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeCMake(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-cmake.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestClassifyDetectsErrorWarningHeading(t *testing.T) {
	assert.Equal(t, "error", classify("CMake Error at CMakeLists.txt:1"))
	assert.Equal(t, "warning", classify("CMake Warning: something"))
	assert.Equal(t, "heading", classify("-- Configuring done"))
	assert.Equal(t, "", classify("plain output"))
}

func TestOptionsArgsIncludesCoreFlags(t *testing.T) {
	o := Options{SourceDir: "/src", BuildDir: "/build", Generator: "Ninja", ConfigType: "Debug", ToolchainFile: "/tc.cmake"}
	args := o.args()
	assert.Contains(t, args, "-G")
	assert.Contains(t, args, "Ninja")
	assert.Contains(t, args, "-DCMAKE_BUILD_TYPE=Debug")
	assert.Contains(t, args, "-DCMAKE_TOOLCHAIN_FILE=/tc.cmake")
}

func TestOptionsMinimalDropsExtras(t *testing.T) {
	o := Options{SourceDir: "/src", BuildDir: "/build", ConfigOptions: []string{"-DFOO=1"}}
	m := o.minimal()
	assert.Empty(t, m.ConfigOptions)
	assert.Equal(t, o.SourceDir, m.SourceDir)
}

func TestRunSucceedsOnCleanExit(t *testing.T) {
	fake := writeFakeCMake(t, "echo '-- Configuring done'\nexit 0\n")
	buildDir := t.TempDir()

	res, err := Run(context.Background(), Options{Executable: fake, SourceDir: t.TempDir(), BuildDir: buildDir})
	require.NoError(t, err)
	assert.False(t, res.Retried)
	assert.Contains(t, res.Lines, "-- Configuring done")
}

func TestRunRetriesOnceAfterFailure(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "attempt")
	fake := writeFakeCMake(t, `
if [ -f "`+marker+`" ]; then
  echo '-- Configuring done'
  exit 0
else
  touch "`+marker+`"
  echo 'CMake Error: boom'
  exit 1
fi
`)
	buildDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "CMakeCache.txt"), []byte(""), 0o644))

	res, err := Run(context.Background(), Options{Executable: fake, SourceDir: t.TempDir(), BuildDir: buildDir})
	require.NoError(t, err)
	assert.True(t, res.Retried)
}

func TestRunFailsAfterRetryAlsoFails(t *testing.T) {
	fake := writeFakeCMake(t, "echo 'CMake Error: always boom'\nexit 1\n")
	buildDir := t.TempDir()

	_, err := Run(context.Background(), Options{Executable: fake, SourceDir: t.TempDir(), BuildDir: buildDir})
	assert.Error(t, err)
}
