package emitter

import (
	"fmt"
	"path/filepath"
	"sort"

	"cforge/internal/acquire"
	"cforge/internal/flags"
	"cforge/internal/manifest"
	"cforge/internal/placeholder"
)

// configData is one rendered configuration's data for the template.
type configData struct {
	Name            string
	Defines         []string
	Flags           []string
	LinkFlags       []string
	CMakeOptions    []string
	OutputDirSuffix string
}

// targetData is one rendered target for the template.
type targetData struct {
	Name          string // original manifest name
	NativeName    string // name used in the generated add_executable/add_library call
	Aliased       bool   // true when Name collides with the project name
	Sources       []string
	SynthesizedMain bool
	IncludeDirs   []string
	Defines       []string
	Links         []string
	PlatformLinks map[string][]string
	PCHApplies    bool
}

// renderData is the complete set of values the CMakeLists.txt template needs.
type renderData struct {
	ProjectName     string
	NativeProjectName string
	Version         string
	Description     string
	Language        string // C, CXX
	Standard        string // 17, 11, ...
	Kind            string
	IsLibrary       bool
	IsHeaderOnly    bool

	Configs []configData

	BinDir string
	LibDir string
	ObjDir string

	ToolchainFile       string
	ConfiguratorCMake   string
	ExtraIncludePaths   []string

	CMakeMinimum string
	CMakeOptions []string

	SystemPackages []string
	CMakePackages  []string
	ConanEnabled   bool

	Targets []targetData

	PCH *manifest.PCHSpec

	PackagerName        string
	PackagerVersion      string
	PackagerVendor       string
	PackagerDescFile     string
	PackagerGenerator    string
}

// languageStandard maps the manifest's "c++17"/"c11" style standard strings
// onto CMake's CXX_STANDARD/C_STANDARD numeric values.
func languageStandard(standard string) string {
	out := ""
	for _, r := range standard {
		if r >= '0' && r <= '9' {
			out += string(r)
		}
	}
	if out == "" {
		return "17"
	}
	return out
}

func cmakeLanguage(lang string) string {
	if lang == manifest.LanguageC {
		return "C"
	}
	return "CXX"
}

// BuildContext carries everything Emit needs beyond the manifest itself:
// dependency-acquisition outputs and the host compiler style, used to
// translate configuration flag tokens (component C) into concrete flags.
type BuildContext struct {
	Outputs       acquire.Outputs
	CompilerLabel string
	OS            string
	Arch          string
}

func buildRenderData(m *manifest.ProjectManifest, projectRoot string, bc BuildContext) (renderData, error) {
	nativeName := m.Project.Name
	targets := make([]targetData, 0, len(m.Targets))

	names := make([]string, 0, len(m.Targets))
	for name := range m.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := m.Targets[name]
		sources, synthesized, err := resolveTargetSources(projectRoot, name, spec.Sources)
		if err != nil {
			return renderData{}, fmt.Errorf("target %q: %w", name, err)
		}

		native := name
		aliased := false
		if name == m.Project.Name {
			native = name + "_lib"
			aliased = true
		}

		targets = append(targets, targetData{
			Name:            name,
			NativeName:      native,
			Aliased:         aliased,
			Sources:         sources,
			SynthesizedMain: synthesized,
			IncludeDirs:     spec.IncludeDirs,
			Defines:         spec.Defines,
			Links:           spec.Links,
			PlatformLinks:   spec.PlatformLinks,
			PCHApplies:      pchAppliesTo(m.PCH, name),
		})
	}

	msvc := flags.IsMSVCStyle(bc.CompilerLabel)

	configNames := make([]string, 0, len(m.Build.Configs))
	for name := range m.Build.Configs {
		configNames = append(configNames, name)
	}
	sort.Strings(configNames)

	configs := make([]configData, 0, len(configNames))
	for _, name := range configNames {
		profile := m.Build.Configs[name]
		configs = append(configs, configData{
			Name:            name,
			Defines:         profile.Defines,
			Flags:           flags.Translate(profile.Flags, msvc),
			LinkFlags:       profile.LinkFlags,
			CMakeOptions:    profile.CMakeOptions,
			OutputDirSuffix: profile.OutputDirSuffix,
		})
	}

	pv := placeholder.Values{Config: "$<CONFIG>", OS: bc.OS, Arch: bc.Arch}

	var extraIncludes []string
	if bc.Outputs != nil {
		if p := bc.Outputs[acquire.KeyExtraIncludePaths]; p != "" {
			extraIncludes = filepath.SplitList(p)
		}
	}

	data := renderData{
		ProjectName:       m.Project.Name,
		NativeProjectName: nativeName,
		Version:           orDefault(m.Project.Version, "0.0.0"),
		Description:       m.Project.Description,
		Language:          cmakeLanguage(m.Project.Language),
		Standard:          languageStandard(m.Project.Standard),
		Kind:              m.Project.Kind,
		IsLibrary:         m.Project.Kind == manifest.KindStaticLibrary || m.Project.Kind == manifest.KindSharedLibrary || m.Project.Kind == manifest.KindHeaderOnly,
		IsHeaderOnly:      m.Project.Kind == manifest.KindHeaderOnly,
		Configs:           configs,
		BinDir:            placeholder.Expand(m.Output.BinDir, pv),
		LibDir:            placeholder.Expand(m.Output.LibDir, pv),
		ObjDir:            placeholder.Expand(m.Output.ObjDir, pv),
		CMakeMinimum:      "3.20",
		CMakeOptions:      m.Build.CMakeOptions,
		SystemPackages:    m.Dependencies.System,
		CMakePackages:     m.Dependencies.CMake,
		ConanEnabled:      m.Dependencies.Conan.Enabled,
		Targets:           targets,
		PCH:               m.PCH,
		PackagerName:      m.Project.Name,
		PackagerVersion:   orDefault(m.Project.Version, "0.0.0"),
		ExtraIncludePaths: extraIncludes,
	}

	if m.Package != nil {
		data.PackagerVendor = m.Package.Vendor
		data.PackagerDescFile = m.Package.DescriptionFile
		data.PackagerGenerator = m.Package.Generators[bc.OS]
	}

	if bc.Outputs != nil {
		data.ToolchainFile = bc.Outputs[acquire.KeyToolchainFile]
		data.ConfiguratorCMake = bc.Outputs[acquire.KeyConfiguratorPackageCmake]
	}

	return data, nil
}

// pchAppliesTo honors the per-target opt-in list (only_for_targets): when
// empty, every target gets the PCH; when non-empty, only listed targets do.
func pchAppliesTo(pch *manifest.PCHSpec, targetName string) bool {
	if pch == nil || !pch.Enabled {
		return false
	}
	if len(pch.OnlyForTargets) == 0 {
		return true
	}
	for _, name := range pch.OnlyForTargets {
		if name == targetName {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
