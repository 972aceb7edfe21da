// Package configpkg implements the configurator-package backend
// (spec.md §4.D.2): it writes a declaration file enumerating the
// manifest's packages/options/generators into the build directory, invokes
// the external package manager's install step there, and verifies the
// resulting CMake integration file appears.
package configpkg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"cforge/internal/acquire"
	"cforge/internal/manifest"
	"cforge/internal/proc"
	"cforge/pkg/logging"
)

const backendName = "conan"

const declarationTemplate = `[requires]
{{- range .Packages}}
{{.}}
{{- end}}

[generators]
{{- range .Generators}}
{{.}}
{{- end}}

[options]
{{- range $k, $v := .Options}}
{{$k}}={{$v}}
{{- end}}
`

var tmpl = template.Must(template.New("conanfile").Parse(declarationTemplate))

// Backend implements acquire.Backend for the configurator-package manager.
type Backend struct {
	// ExeName is the manager's executable name, overridable in tests.
	ExeName string
}

func New() *Backend {
	return &Backend{ExeName: "conan"}
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Enabled(m *manifest.ProjectManifest) bool {
	return m != nil && m.Dependencies.Conan.Enabled
}

func (b *Backend) Acquire(ctx context.Context, req acquire.Request) (acquire.Outputs, error) {
	cfg := req.Manifest.Dependencies.Conan
	buildDir := filepath.Join(req.ProjectRoot, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return nil, fmt.Errorf("create build dir: %w", err)
	}

	declPath := filepath.Join(buildDir, "conanfile.txt")
	if err := writeDeclaration(declPath, cfg); err != nil {
		return nil, fmt.Errorf("write declaration file: %w", err)
	}

	exe := b.ExeName
	if exe == "" {
		exe = "conan"
	}
	child, err := proc.Spawn(ctx, buildDir, nil, exe, "install", ".", "--build=missing")
	if err != nil {
		return nil, acquire.Transient(fmt.Errorf("spawn %s: %w", exe, err))
	}
	go func() {
		for range child.Lines {
		}
	}()
	timedOut, err := child.Wait(10 * time.Minute)
	if timedOut {
		return nil, fmt.Errorf("%s install timed out", exe)
	}
	if err != nil {
		return nil, fmt.Errorf("%s install: %w", exe, err)
	}

	integration := findIntegrationFile(buildDir)
	if integration == "" {
		return nil, fmt.Errorf("%s install did not produce a CMake integration file in %s", exe, buildDir)
	}

	logging.Info("configpkg", "resolved %d conan packages", len(cfg.Packages))
	return acquire.Outputs{acquire.KeyConfiguratorPackageCmake: integration}, nil
}

func writeDeclaration(path string, cfg manifest.ConanDependencies) error {
	var buf bytes.Buffer
	data := struct {
		Packages   []string
		Generators []string
		Options    map[string]string
	}{
		Packages:   cfg.Packages,
		Generators: cfg.Generators,
		Options:    cfg.Options,
	}
	if len(data.Generators) == 0 {
		data.Generators = []string{"CMakeDeps", "CMakeToolchain"}
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// candidateIntegrationNames are the files recent conan generator versions
// emit; we accept whichever is present rather than pinning one generator
// version.
var candidateIntegrationNames = []string{
	"conan_toolchain.cmake",
	"conanbuildinfo.cmake",
}

func findIntegrationFile(buildDir string) string {
	for _, name := range candidateIntegrationNames {
		p := filepath.Join(buildDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
