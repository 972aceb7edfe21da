package configpkg

import (
	"os"
	"path/filepath"
	"testing"

	"cforge/internal/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledReflectsManifestFlag(t *testing.T) {
	b := New()
	m := &manifest.ProjectManifest{}
	assert.False(t, b.Enabled(m))
	m.Dependencies.Conan.Enabled = true
	assert.True(t, b.Enabled(m))
}

func TestWriteDeclarationRendersSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conanfile.txt")
	cfg := manifest.ConanDependencies{
		Packages: []string{"fmt/10.1.1", "zlib/1.3"},
		Options:  map[string]string{"fmt:shared": "False"},
	}
	require.NoError(t, writeDeclaration(path, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "fmt/10.1.1")
	assert.Contains(t, text, "zlib/1.3")
	assert.Contains(t, text, "fmt:shared=False")
	assert.Contains(t, text, "CMakeDeps")
}

func TestFindIntegrationFilePrefersPresentCandidate(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", findIntegrationFile(dir))

	p := filepath.Join(dir, "conanbuildinfo.cmake")
	require.NoError(t, os.WriteFile(p, []byte(""), 0o644))
	assert.Equal(t, p, findIntegrationFile(dir))
}
