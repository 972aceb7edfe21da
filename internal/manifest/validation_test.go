package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseManifest() *ProjectManifest {
	m := &ProjectManifest{
		Project: ProjectInfo{Name: "libm", Kind: KindStaticLibrary, Language: LanguageCpp, Standard: "c++17"},
		Targets: map[string]TargetSpec{"default": {Sources: []string{"src/a.cpp"}}},
	}
	applyDefaults(m)
	return m
}

func TestValidateProjectOK(t *testing.T) {
	m := baseManifest()
	errs := ValidateProject(m, nil)
	assert.Empty(t, errs)
}

func TestValidateProjectRejectsBadKind(t *testing.T) {
	m := baseManifest()
	m.Project.Kind = "gizmo"
	errs := ValidateProject(m, nil)
	assert.NotEmpty(t, errs)
}

func TestValidateProjectPeerDependencyOutsideWorkspace(t *testing.T) {
	m := baseManifest()
	m.Dependencies.Workspace = []PeerDependency{{Name: "ghost"}}

	errs := ValidateProject(m, map[string]bool{"libm": true, "app": true})
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "ghost")
}

func TestValidateProjectRequiresAtLeastOneTarget(t *testing.T) {
	m := baseManifest()
	m.Targets = map[string]TargetSpec{}
	errs := ValidateProject(m, nil)
	assert.NotEmpty(t, errs)
}
