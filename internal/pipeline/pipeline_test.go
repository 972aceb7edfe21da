package pipeline

import (
	"testing"

	"cforge/internal/manifest"

	"github.com/stretchr/testify/assert"
)

// Testable property 4: for equal inputs, the derived build-directory name
// is byte-identical.
func TestBuildDirName_Deterministic(t *testing.T) {
	m := &manifest.ProjectManifest{Build: manifest.BuildSettings{BuildDir: "build"}}

	a := BuildDirName(m, "Debug", "")
	b := BuildDirName(m, "Debug", "")
	assert.Equal(t, a, b)
	assert.Equal(t, "build-debug", a)
}

func TestBuildDirName_CrossTargetSuffix(t *testing.T) {
	m := &manifest.ProjectManifest{Build: manifest.BuildSettings{BuildDir: "build"}}
	assert.Equal(t, "build-release-arm64-linux", BuildDirName(m, "Release", "arm64-linux"))
}
