package ide

import (
	"context"
	"fmt"

	"cforge/internal/manifest"
)

// Generator produces the project-file input a particular IDE or native
// generator needs to open/build a cforge project, per spec.md §6.1's `ide`
// verb and design note §9.
type Generator interface {
	Name() string
	Generate(ctx context.Context, m *manifest.ProjectManifest, projectRoot, arch string) (string, error)
}

// Resolve returns the Generator registered for kind (one of vscode, clion,
// xcode, vs, vs2013, vs2015, vs2017, vs2019, vs2022), or an error when kind
// is unrecognized.
func Resolve(kind string) (Generator, error) {
	switch kind {
	case "vscode":
		return VSCode{}, nil
	case "clion":
		return CLion{}, nil
	case "xcode":
		return Xcode{}, nil
	case "vs", "vs2013", "vs2015", "vs2017", "vs2019", "vs2022":
		return VisualStudio{Hint: kind}, nil
	default:
		return nil, fmt.Errorf("unknown ide type %q", kind)
	}
}
