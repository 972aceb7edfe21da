// Package scaffold generates a new project or workspace tree for the
// `init` verb (spec.md §6.1), writing a minimal valid cforge.toml/
// cforge-workspace.toml plus a starter source file.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"cforge/internal/manifest"
)

// Template names accepted by `init --template`.
const (
	TemplateApp        = "app"
	TemplateLibrary     = "lib"
	TemplateHeaderOnly = "header-only"
)

func validTemplate(t string) bool {
	switch t {
	case TemplateApp, TemplateLibrary, TemplateHeaderOnly:
		return true
	default:
		return false
	}
}

var manifestTmpl = template.Must(template.New("cforge.toml").Parse(`[project]
name = "{{.Name}}"
version = "0.1.0"
type = "{{.Kind}}"
language = "c++"
standard = "c++17"

[build]
build_dir = "build"
default_config = "Debug"

[build.configs.Debug]
defines = ["DEBUG"]
flags = ["DEBUG_INFO", "NO_OPT"]

[build.configs.Release]
defines = ["NDEBUG"]
flags = ["OPTIMIZE"]

[targets.{{.Name}}]
sources = [{{.SourcesList}}]
{{if .IncludeDirs}}include_dirs = [{{.IncludeDirs}}]
{{end}}
[output]
bin_dir = "bin/${CONFIG}"
lib_dir = "lib/${CONFIG}"
obj_dir = "obj/${CONFIG}"
`))

var workspaceTmpl = template.Must(template.New("cforge-workspace.toml").Parse(`[workspace]
name = "{{.Name}}"
projects = [{{.ProjectsList}}]
`))

type projectData struct {
	Name        string
	Kind        string
	SourcesList string
	IncludeDirs string
}

func kindFor(tmpl string) string {
	switch tmpl {
	case TemplateLibrary:
		return manifest.KindStaticLibrary
	case TemplateHeaderOnly:
		return manifest.KindHeaderOnly
	default:
		return manifest.KindExecutable
	}
}

// WriteProject scaffolds a new project directory at dir, named name, with
// the layout spec.md's template implies. It refuses to overwrite an
// existing cforge.toml.
func WriteProject(dir, name, tmpl string) error {
	if !validTemplate(tmpl) {
		return fmt.Errorf("unknown template %q (want app, lib, or header-only)", tmpl)
	}

	manifestPath := filepath.Join(dir, manifest.ProjectManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return err
	}

	data := projectData{Name: name, Kind: kindFor(tmpl)}
	switch tmpl {
	case TemplateHeaderOnly:
		data.SourcesList = ""
		data.IncludeDirs = `"include"`
		if err := writeStarterHeader(dir, name); err != nil {
			return err
		}
	case TemplateLibrary:
		data.SourcesList = fmt.Sprintf("%q", "src/"+name+".cpp")
		data.IncludeDirs = `"include"`
		if err := writeStarterLibrary(dir, name); err != nil {
			return err
		}
	default:
		data.SourcesList = `"src/main.cpp"`
		if err := writeStarterMain(dir, name); err != nil {
			return err
		}
	}

	return renderTemplate(manifestPath, manifestTmpl, data)
}

// WriteWorkspace scaffolds a new cforge-workspace.toml at dir listing
// projects (relative paths already known to the caller).
func WriteWorkspace(dir, name string, projects []string) error {
	manifestPath := filepath.Join(dir, manifest.WorkspaceManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	list := ""
	for i, p := range projects {
		if i > 0 {
			list += ", "
		}
		list += fmt.Sprintf("%q", p)
	}

	return renderTemplate(manifestPath, workspaceTmpl, struct {
		Name         string
		ProjectsList string
	}{Name: name, ProjectsList: list})
}

func renderTemplate(path string, t *template.Template, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

func writeStarterMain(dir, name string) error {
	content := fmt.Sprintf(`#include <cstdio>

int main() {
    std::puts("%s");
    return 0;
}
`, name)
	return os.WriteFile(filepath.Join(dir, "src", "main.cpp"), []byte(content), 0o644)
}

func writeStarterLibrary(dir, name string) error {
	if err := os.MkdirAll(filepath.Join(dir, "include"), 0o755); err != nil {
		return err
	}
	header := fmt.Sprintf(`#pragma once

namespace %s {
int answer();
}
`, name)
	if err := os.WriteFile(filepath.Join(dir, "include", name+".h"), []byte(header), 0o644); err != nil {
		return err
	}
	source := fmt.Sprintf(`#include "%s.h"

namespace %s {
int answer() { return 42; }
}
`, name, name)
	return os.WriteFile(filepath.Join(dir, "src", name+".cpp"), []byte(source), 0o644)
}

func writeStarterHeader(dir, name string) error {
	if err := os.MkdirAll(filepath.Join(dir, "include"), 0o755); err != nil {
		return err
	}
	header := fmt.Sprintf(`#pragma once

namespace %s {
inline int answer() { return 42; }
}
`, name)
	return os.WriteFile(filepath.Join(dir, "include", name+".h"), []byte(header), 0o644)
}
