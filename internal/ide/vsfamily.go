package ide

import (
	"context"
	"path/filepath"

	"cforge/internal/configure"
	"cforge/internal/emitter"
	"cforge/internal/hostprobe"
	"cforge/internal/manifest"
)

// hintVersions maps the CLI's vsNNNN hint vocabulary onto the numeric
// generator version hostprobe.DetectVisualStudioGenerators reports.
var hintVersions = map[string]int{
	"vs2013": 13,
	"vs2015": 14,
	"vs2017": 15,
	"vs2019": 16,
	"vs2022": 17,
}

// VisualStudio drives the external configurator with one of the vs*
// generator variants; Hint is the CLI's `ide` argument (vs, vs2013, ...,
// vs2022). The vs* family shares this single implementation, resolving the
// concrete generator name from the version hint (design note §9).
type VisualStudio struct {
	Hint string
}

func (g VisualStudio) Name() string { return g.Hint }

// resolveGeneratorName picks the concrete "Visual Studio NN YYYY" string:
// an explicit vsNNNN hint pins the version; the bare "vs" hint takes the
// newest detected installation (falling back to hostprobe's modern
// default when detection finds nothing, per spec.md §4.B).
func resolveGeneratorName(hint string) string {
	wanted, pinned := hintVersions[hint]
	detected := hostprobe.DetectVisualStudioGenerators()

	if !pinned {
		if len(detected) > 0 {
			return detected[0].Name
		}
		return "Visual Studio 17 2022"
	}

	for _, g := range detected {
		if g.Version == wanted {
			return g.Name
		}
	}
	// Not detected on this host; still honor the explicit hint so a
	// generate-for-CI-on-another-machine workflow isn't blocked.
	return fallbackName(wanted)
}

func fallbackName(version int) string {
	switch version {
	case 13:
		return "Visual Studio 13 2013"
	case 14:
		return "Visual Studio 14 2015"
	case 15:
		return "Visual Studio 15 2017"
	case 16:
		return "Visual Studio 16 2019"
	default:
		return "Visual Studio 17 2022"
	}
}

// archFlag maps the CLI's --arch vocabulary (x64, Win32, ARM, ARM64) onto
// the -A flag value CMake's Visual Studio generators expect; they share the
// same vocabulary, so this is an identity passthrough with a default.
func archFlag(arch string) string {
	if arch == "" {
		return "x64"
	}
	return arch
}

func (g VisualStudio) Generate(ctx context.Context, m *manifest.ProjectManifest, projectRoot, arch string) (string, error) {
	buildDir := filepath.Join(projectRoot, "build-"+g.Hint)
	if _, err := emitter.Emit(m, projectRoot, buildDir, emitter.BuildContext{CompilerLabel: "msvc"}); err != nil {
		return "", err
	}

	_, err := configure.Run(ctx, configure.Options{
		SourceDir:       buildDir,
		BuildDir:        buildDir,
		Generator:       resolveGeneratorName(g.Hint),
		PlatformOptions: []string{"-A", archFlag(arch)},
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(buildDir, m.Project.Name+".sln"), nil
}
