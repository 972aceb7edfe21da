package workspace

import (
	"cforge/internal/cerrors"
)

// visitState tracks a node's progress through the DFS (spec.md §4.J).
type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// TopoOrder computes the dependency-first build order for projects, given
// depsOf which returns a project's peer-dependency names (edges A->B meaning
// "A depends on B"). The result places every B strictly before every A with
// an edge A->B (spec.md §3 invariant 7, §8 testable property 2).
//
// DFS uses a visited set and a temporary-visited ("in the current recursion
// stack") set per spec.md §4.J; a repeat visit to a node already in the
// temporary set is a cycle, reported as a located WorkspaceError naming the
// offending project.
func TopoOrder(projects []string, depsOf func(name string) []string) ([]string, error) {
	state := make(map[string]visitState, len(projects))
	var order []string

	var visit func(name string, stack []string) error
	visit = func(name string, stack []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return &cerrors.WorkspaceError{
				Message: "peer-dependency cycle detected",
				Cycle:   append(append([]string{}, stack...), name),
			}
		}

		state[name] = visiting
		stack = append(stack, name)

		for _, dep := range depsOf(name) {
			if err := visit(dep, stack); err != nil {
				return err
			}
		}

		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, p := range projects {
		if err := visit(p, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
