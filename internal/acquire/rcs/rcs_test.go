package rcs

import (
	"testing"

	"cforge/internal/manifest"

	"github.com/stretchr/testify/assert"
)

func TestEnabledReflectsGitDependencyPresence(t *testing.T) {
	b := New(nil)
	m := &manifest.ProjectManifest{}
	assert.False(t, b.Enabled(m))

	m.Dependencies.Git = []manifest.GitDependency{{Name: "fmt", URL: "https://example.com/fmt.git"}}
	assert.True(t, b.Enabled(m))
}

func TestAuthFromEnvNilWhenNoToken(t *testing.T) {
	assert.Nil(t, AuthFromEnv(""))
	auth := AuthFromEnv("sekret")
	assert.NotNil(t, auth)
	assert.Equal(t, "sekret", auth.Password)
}

func TestHasNativeManifestFalseForEmptyDir(t *testing.T) {
	assert.False(t, hasNativeManifest(t.TempDir()))
}

func TestJoinPathsSingle(t *testing.T) {
	assert.Equal(t, "/a", joinPaths([]string{"/a"}))
}
