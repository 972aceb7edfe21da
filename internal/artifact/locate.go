package artifact

import (
	"os"
	"path/filepath"

	"cforge/internal/flags"
)

// Linkage is the library linkage mode a target was built with.
type Linkage int

const (
	Static Linkage = iota
	Shared
)

// Match is one located artifact: its absolute path and bare file name.
type Match struct {
	Path string
	Name string
}

// conventionalSubdirs is the fixed phase-2 search set (spec.md §4.E).
var conventionalSubdirs = []string{"lib", "libs", "bin", filepath.Join("build", "lib"), filepath.Join("build", "bin")}

// configNames are the configuration-named subdirectories phase 2 also
// checks, alongside conventionalSubdirs.
var configNames = []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}

const maxBFSDepth = 3

// Candidates computes the ordered set of file names that would satisfy
// baseName under the given linkage and compiler style (spec.md §4.E step 1).
func Candidates(baseName string, linkage Linkage, compilerLabel string) []string {
	libName := "lib" + baseName

	if flags.IsMSVCStyle(compilerLabel) {
		out := []string{baseName + ".lib", libName + ".lib"}
		if linkage == Shared {
			out = append(out, baseName+".dll", libName+".dll")
		}
		return out
	}

	if linkage == Shared {
		return []string{
			libName + ".dll.a", baseName + ".dll.a",
			libName + ".so", libName + ".dylib",
			libName + ".dll", baseName + ".dll",
		}
	}
	return []string{libName + ".a", baseName + ".a"}
}

// Locate searches baseDir for baseName, returning the ranked matches that
// actually exist on disk (spec.md §4.E steps 2-4). Callers typically use the
// first element.
func Locate(baseDir, baseName string, linkage Linkage, compilerLabel string) ([]Match, error) {
	candidates := Candidates(baseName, linkage, compilerLabel)

	if m := probeDir(baseDir, candidates); m != nil {
		return []Match{*m}, nil
	}

	dirs := make([]string, 0, len(conventionalSubdirs)+len(configNames))
	dirs = append(dirs, conventionalSubdirs...)
	for _, cfg := range configNames {
		dirs = append(dirs, cfg)
		for _, sub := range conventionalSubdirs {
			dirs = append(dirs, filepath.Join(cfg, sub))
		}
	}
	for _, d := range dirs {
		if m := probeDir(filepath.Join(baseDir, d), candidates); m != nil {
			return []Match{*m}, nil
		}
	}

	m, err := bfsSearch(baseDir, candidates)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return []Match{*m}, nil
	}
	return nil, nil
}

func probeDir(dir string, candidates []string) *Match {
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return &Match{Path: p, Name: name}
		}
	}
	return nil
}

// bfsSearch walks baseDir breadth-first, bounded to maxBFSDepth, with a
// visited set guarding against symlink cycles.
func bfsSearch(baseDir string, candidates []string) (*Match, error) {
	type node struct {
		path  string
		depth int
	}

	visited := map[string]bool{}
	queue := []node{{path: baseDir, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		real, err := filepath.EvalSymlinks(cur.path)
		if err != nil {
			continue
		}
		if visited[real] {
			continue
		}
		visited[real] = true

		if m := probeDir(cur.path, candidates); m != nil {
			return m, nil
		}
		if cur.depth >= maxBFSDepth {
			continue
		}

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				queue = append(queue, node{path: filepath.Join(cur.path, e.Name()), depth: cur.depth + 1})
			}
		}
	}

	return nil, nil
}
