package ide

import (
	"context"
	"path/filepath"

	"cforge/internal/configure"
	"cforge/internal/emitter"
	"cforge/internal/manifest"
)

// Xcode drives the external configurator with the Xcode generator, per
// spec.md §1 ("IDE project-file emitters" delegate to the native generator;
// CMake has first-class Xcode project generation).
type Xcode struct{}

func (Xcode) Name() string { return "xcode" }

func (Xcode) Generate(ctx context.Context, m *manifest.ProjectManifest, projectRoot, _ string) (string, error) {
	buildDir := filepath.Join(projectRoot, "build-xcode")
	if _, err := emitter.Emit(m, projectRoot, buildDir, emitter.BuildContext{CompilerLabel: "clang"}); err != nil {
		return "", err
	}

	_, err := configure.Run(ctx, configure.Options{
		SourceDir: buildDir,
		BuildDir:  buildDir,
		Generator: "Xcode",
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(buildDir, m.Project.Name+".xcodeproj"), nil
}
