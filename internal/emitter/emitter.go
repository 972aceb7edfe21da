package emitter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cforge/internal/manifest"
)

// FileName is the native generator's manifest file name this package emits.
const FileName = "CMakeLists.txt"

// Render produces the CMakeLists.txt content for m without touching disk.
func Render(m *manifest.ProjectManifest, projectRoot string, bc BuildContext) (string, error) {
	data, err := buildRenderData(m, projectRoot, bc)
	if err != nil {
		return "", fmt.Errorf("build render data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", FileName, err)
	}
	return buf.String(), nil
}

// Emit renders and writes CMakeLists.txt into buildDir, synthesizing any
// trivial main files the source-glob expansion required along the way.
func Emit(m *manifest.ProjectManifest, projectRoot, buildDir string, bc BuildContext) (string, error) {
	content, err := Render(m, projectRoot, bc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return "", fmt.Errorf("create build dir: %w", err)
	}

	if err := writeSynthesizedMains(m, projectRoot); err != nil {
		return "", err
	}

	path := filepath.Join(buildDir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func writeSynthesizedMains(m *manifest.ProjectManifest, projectRoot string) error {
	for name, spec := range m.Targets {
		sources, synthesized, err := resolveTargetSources(projectRoot, name, spec.Sources)
		if err != nil {
			return err
		}
		if !synthesized {
			continue
		}
		path := filepath.Join(projectRoot, filepath.FromSlash(sources[0]))
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(defaultSynthMain), 0o644); err != nil {
			return err
		}
	}
	return nil
}
