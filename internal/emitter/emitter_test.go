package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"cforge/internal/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseManifest() *manifest.ProjectManifest {
	return &manifest.ProjectManifest{
		Project: manifest.ProjectInfo{
			Name:     "hello",
			Version:  "1.0.0",
			Kind:     manifest.KindExecutable,
			Language: manifest.LanguageCpp,
			Standard: "c++17",
		},
		Build: manifest.BuildSettings{
			Configs: map[string]manifest.ConfigurationProfile{
				"Debug":   {Defines: []string{"DEBUG"}, Flags: []string{"NO_OPT", "DEBUG_INFO"}},
				"Release": {Defines: []string{"NDEBUG"}, Flags: []string{"OPTIMIZE"}},
			},
		},
		Targets: map[string]manifest.TargetSpec{
			"default": {Sources: []string{"src/main.cpp"}},
		},
		Output: manifest.OutputLayout{BinDir: "bin/${OS}", LibDir: "lib", ObjDir: "obj"},
	}
}

func TestRenderExecutableProducesAddExecutable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.cpp"), []byte("int main(){}"), 0o644))

	m := baseManifest()
	out, err := Render(m, dir, BuildContext{CompilerLabel: "gcc", OS: "linux", Arch: "x86_64"})
	require.NoError(t, err)

	assert.Contains(t, out, `project("hello"`)
	assert.Contains(t, out, "add_executable(default")
	assert.Contains(t, out, "src/main.cpp")
	assert.Contains(t, out, "-O0")
	assert.Contains(t, out, "bin/linux")
}

func TestRenderLibraryAliasesOnNameConflict(t *testing.T) {
	m := baseManifest()
	m.Project.Kind = manifest.KindStaticLibrary
	m.Targets = map[string]manifest.TargetSpec{
		"hello": {Sources: []string{"src/lib.cpp"}},
	}

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.cpp"), []byte("void f(){}"), 0o644))

	out, err := Render(m, dir, BuildContext{CompilerLabel: "clang", OS: "darwin", Arch: "aarch64"})
	require.NoError(t, err)

	assert.Contains(t, out, "add_library(hello_lib STATIC")
	assert.Contains(t, out, "add_library(hello::hello ALIAS hello_lib)")
}

func TestEmitWritesSynthesizedMainWhenGlobEmpty(t *testing.T) {
	dir := t.TempDir()
	m := baseManifest()
	m.Targets = map[string]manifest.TargetSpec{
		"default": {Sources: []string{"src/nonexistent/*.cpp"}},
	}

	buildDir := filepath.Join(dir, "build")
	path, err := Emit(m, dir, buildDir, BuildContext{CompilerLabel: "gcc", OS: "linux", Arch: "x86_64"})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "synth")

	synthPath := filepath.Join(dir, ".cforge", "synth", "default_main.c")
	_, err = os.Stat(synthPath)
	require.NoError(t, err)
}

func TestRenderIncludesToolchainFileWhenPresent(t *testing.T) {
	m := baseManifest()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.cpp"), []byte("int main(){}"), 0o644))

	out, err := Render(m, dir, BuildContext{
		CompilerLabel: "gcc", OS: "linux", Arch: "x86_64",
		Outputs: map[string]string{"toolchain-file": "/opt/vcpkg/scripts/buildsystems/vcpkg.cmake"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "CMAKE_TOOLCHAIN_FILE")
	assert.Contains(t, out, "vcpkg.cmake")
}
