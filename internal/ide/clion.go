package ide

import (
	"context"
	"os"
	"path/filepath"

	"cforge/internal/emitter"
	"cforge/internal/manifest"
)

// CLion writes the emitted CMakeLists.txt directly into the project root
// (rather than a build directory, per spec.md §4.F), since CLion discovers
// and manages its own out-of-source build directories from the root-level
// CMakeLists.txt.
type CLion struct{}

func (CLion) Name() string { return "clion" }

func (CLion) Generate(_ context.Context, m *manifest.ProjectManifest, projectRoot, _ string) (string, error) {
	content, err := emitter.Render(m, projectRoot, emitter.BuildContext{})
	if err != nil {
		return "", err
	}

	path := filepath.Join(projectRoot, "CMakeLists.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
