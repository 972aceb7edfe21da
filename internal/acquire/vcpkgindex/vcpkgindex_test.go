package vcpkgindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cforge/internal/acquire"
	"cforge/internal/manifest"
	"cforge/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledReflectsManifestFlag(t *testing.T) {
	b := New(nil)
	m := &manifest.ProjectManifest{}
	assert.False(t, b.Enabled(m))

	m.Dependencies.Vcpkg.Enabled = true
	assert.True(t, b.Enabled(m))
}

func TestAcquireUsesPreconfiguredPath(t *testing.T) {
	root := t.TempDir()
	toolchain := filepath.Join(root, "scripts", "buildsystems", "vcpkg.cmake")
	require.NoError(t, os.MkdirAll(filepath.Dir(toolchain), 0o755))
	require.NoError(t, os.WriteFile(toolchain, []byte("# stub"), 0o644))

	b := New(nil)
	m := &manifest.ProjectManifest{}
	m.Dependencies.Vcpkg.Enabled = true
	m.Dependencies.Vcpkg.Path = root

	out, err := b.Acquire(context.Background(), acquire.Request{
		Manifest:    m,
		ProjectRoot: t.TempDir(),
		Session:     session.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, toolchain, out[acquire.KeyToolchainFile])
}

func TestAcquireFailsWithoutRootOrCloner(t *testing.T) {
	b := New(nil)
	m := &manifest.ProjectManifest{}
	m.Dependencies.Vcpkg.Enabled = true

	_, err := b.Acquire(context.Background(), acquire.Request{
		Manifest:    m,
		ProjectRoot: t.TempDir(),
		Session:     session.New(),
	})
	assert.Error(t, err)
}
