package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"cforge/internal/manifest"
	"cforge/pkg/pathnorm"
)

var (
	descriptorConfigTmpl  = template.Must(template.New("Config.cmake").Funcs(sprig.TxtFuncMap()).Parse(descriptorConfigTemplate))
	descriptorVersionTmpl = template.Must(template.New("ConfigVersion.cmake").Funcs(sprig.TxtFuncMap()).Parse(descriptorVersionTemplate))
)

// descriptorConfigTemplate produces an IMPORTED target declaration carrying
// the absolute path to the built artifact and the include directory, so a
// dependent project's find_package() / ALIAS resolves to real paths
// (spec.md §6.5).
const descriptorConfigTemplate = `# Generated by cforge. Do not edit by hand.
if(NOT TARGET {{.ProjectName}}::{{.ProjectName}})
  add_library({{.ProjectName}}::{{.ProjectName}} {{.Linkage}} IMPORTED)
  set_target_properties({{.ProjectName}}::{{.ProjectName}} PROPERTIES
    IMPORTED_LOCATION "{{.ArtifactPath}}"
    INTERFACE_INCLUDE_DIRECTORIES "{{.IncludeDir}}"
  )
endif()
`

// descriptorVersionTemplate implements the exact-match version policy
// spec.md §6.5 names.
const descriptorVersionTemplate = `# Generated by cforge. Do not edit by hand.
set(PACKAGE_VERSION "{{.Version}}")
if(NOT PACKAGE_FIND_VERSION STREQUAL PACKAGE_VERSION)
  set(PACKAGE_VERSION_COMPATIBLE FALSE)
else()
  set(PACKAGE_VERSION_COMPATIBLE TRUE)
  set(PACKAGE_VERSION_EXACT TRUE)
endif()
`

// WriteDescriptor writes <project>Config.cmake and <project>ConfigVersion.cmake
// into buildDir for a successfully-built non-executable target, per spec.md
// §3 Lifecycles ("the peer-consumable descriptor for a library target is
// (re)written at the end of each successful build") and §6.5. artifactPath
// and includeDir are normalized (long-path prefix stripped, backslashes
// converted) before being embedded.
func WriteDescriptor(m *manifest.ProjectManifest, buildDir, artifactPath, includeDir string) error {
	if m.Project.Kind == manifest.KindExecutable {
		return nil
	}

	linkage := "STATIC"
	if m.Project.Kind == manifest.KindSharedLibrary {
		linkage = "SHARED"
	}
	if m.Project.Kind == manifest.KindHeaderOnly {
		linkage = "INTERFACE"
	}

	data := struct {
		ProjectName  string
		Linkage      string
		ArtifactPath string
		IncludeDir   string
		Version      string
	}{
		ProjectName:  m.Project.Name,
		Linkage:      linkage,
		ArtifactPath: pathnorm.Normalize(artifactPath),
		IncludeDir:   pathnorm.Normalize(includeDir),
		Version:      orDefault(m.Project.Version, "0.0.0"),
	}

	configPath := filepath.Join(buildDir, m.Project.Name+"Config.cmake")
	if err := renderDescriptor(configPath, descriptorConfigTmpl, data); err != nil {
		return err
	}

	versionPath := filepath.Join(buildDir, m.Project.Name+"ConfigVersion.cmake")
	if err := renderDescriptor(versionPath, descriptorVersionTmpl, data); err != nil {
		return err
	}
	return nil
}

func renderDescriptor(path string, t *template.Template, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := t.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
