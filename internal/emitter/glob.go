package emitter

import (
	"path/filepath"

	"cforge/pkg/logging"
)

// defaultSynthMain is written when a target's source globs resolve to
// nothing, so the generated project still configures and builds.
const defaultSynthMain = `int main(void) { return 0; }
`

// ExpandSources expands each glob pattern relative to projectRoot and
// returns the matched paths, deduplicated, in pattern order (each pattern's
// matches in the lexical order filepath.Glob returns). An empty expansion is
// returned as is; resolveTargetSources warns and falls back to a synthesized
// main file, per spec.md §4.F.
func ExpandSources(projectRoot string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(projectRoot, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			rel, err := filepath.Rel(projectRoot, m)
			if err != nil {
				rel = m
			}
			rel = filepath.ToSlash(rel)
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}

	return out, nil
}

// resolveTargetSources expands a target's declared source globs, warning
// and synthesizing a trivial main when the result is empty.
func resolveTargetSources(projectRoot, targetName string, patterns []string) (sources []string, synthesized bool, err error) {
	sources, err = ExpandSources(projectRoot, patterns)
	if err != nil {
		return nil, false, err
	}
	if len(sources) == 0 {
		logging.Warn("emitter", "target %q: source globs matched no files, synthesizing a trivial main", targetName)
		return []string{synthMainRelPath(targetName)}, true, nil
	}
	return sources, false, nil
}

func synthMainRelPath(targetName string) string {
	return filepath.ToSlash(filepath.Join(".cforge", "synth", targetName+"_main.c"))
}
