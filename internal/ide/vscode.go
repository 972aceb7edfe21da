package ide

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"cforge/internal/manifest"
)

// VSCode writes .vscode/c_cpp_properties.json (for the C/C++ extension's
// IntelliSense) and .vscode/tasks.json (wiring the editor's build/clean
// keybindings to the cforge CLI) into the project root.
type VSCode struct{}

func (VSCode) Name() string { return "vscode" }

type cppProperties struct {
	Configurations []cppConfiguration `json:"configurations"`
	Version        int                `json:"version"`
}

type cppConfiguration struct {
	Name                   string   `json:"name"`
	IncludePath            []string `json:"includePath"`
	Defines                []string `json:"defines"`
	CStandard              string   `json:"cStandard"`
	CppStandard            string   `json:"cppStandard"`
	ConfigurationProvider  string   `json:"configurationProvider"`
}

type vscodeTask struct {
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Group   any      `json:"group,omitempty"`
}

type vscodeTasks struct {
	Version string       `json:"version"`
	Tasks   []vscodeTask `json:"tasks"`
}

func (VSCode) Generate(_ context.Context, m *manifest.ProjectManifest, projectRoot, _ string) (string, error) {
	dir := filepath.Join(projectRoot, ".vscode")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	includeSet := map[string]bool{}
	defineSet := map[string]bool{}
	for _, t := range m.Targets {
		for _, inc := range t.IncludeDirs {
			includeSet[inc] = true
		}
		for _, d := range t.Defines {
			defineSet[d] = true
		}
	}
	if profile, ok := m.Build.Configs[m.Build.DefaultConfig]; ok {
		for _, d := range profile.Defines {
			defineSet[d] = true
		}
	}
	includeSet["${workspaceFolder}/include"] = true

	props := cppProperties{
		Configurations: []cppConfiguration{{
			Name:                  "cforge",
			IncludePath:           sortedKeys(includeSet),
			Defines:               sortedKeys(defineSet),
			CStandard:             cStandard(m.Project.Standard, m.Project.Language),
			CppStandard:           cppStandard(m.Project.Standard, m.Project.Language),
			ConfigurationProvider: "ms-vscode.cmake-tools",
		}},
		Version: 4,
	}
	if err := writeJSON(filepath.Join(dir, "c_cpp_properties.json"), props); err != nil {
		return "", err
	}

	tasks := vscodeTasks{
		Version: "2.0.0",
		Tasks: []vscodeTask{
			{Label: "cforge: build", Type: "shell", Command: "cforge", Args: []string{"build"}, Group: map[string]any{"kind": "build", "isDefault": true}},
			{Label: "cforge: clean", Type: "shell", Command: "cforge", Args: []string{"clean"}},
			{Label: "cforge: run", Type: "shell", Command: "cforge", Args: []string{"run"}},
			{Label: "cforge: test", Type: "shell", Command: "cforge", Args: []string{"test"}},
		},
	}
	if err := writeJSON(filepath.Join(dir, "tasks.json"), tasks); err != nil {
		return "", err
	}

	return dir, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func cStandard(standard, language string) string {
	if language != manifest.LanguageC {
		return "c17"
	}
	return "c" + digitsOf(standard, "17")
}

func cppStandard(standard, language string) string {
	if language != manifest.LanguageCpp {
		return "c++17"
	}
	return "c++" + digitsOf(standard, "17")
}

func digitsOf(s, def string) string {
	out := ""
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out += string(r)
		}
	}
	if out == "" {
		return def
	}
	return out
}
