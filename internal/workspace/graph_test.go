package workspace

import (
	"testing"

	"cforge/internal/cerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

// S2 / testable property 2: for every edge B->A (A depends on B), the
// scheduled order places B before A.
func TestTopoOrder_DependencyBeforeDependent(t *testing.T) {
	edges := map[string][]string{
		"app":  {"libm"},
		"libm": {},
	}
	order, err := TopoOrder([]string{"libm", "app"}, func(n string) []string { return edges[n] })
	require.NoError(t, err)
	assert.Less(t, indexOf(order, "libm"), indexOf(order, "app"))
}

func TestTopoOrder_DiamondDependency(t *testing.T) {
	edges := map[string][]string{
		"app": {"b", "c"},
		"b":   {"base"},
		"c":   {"base"},
		"base": {},
	}
	order, err := TopoOrder([]string{"app", "b", "c", "base"}, func(n string) []string { return edges[n] })
	require.NoError(t, err)
	require.Len(t, order, 4)
	assert.Less(t, indexOf(order, "base"), indexOf(order, "b"))
	assert.Less(t, indexOf(order, "base"), indexOf(order, "c"))
	assert.Less(t, indexOf(order, "b"), indexOf(order, "app"))
	assert.Less(t, indexOf(order, "c"), indexOf(order, "app"))
}

// S3: a cycle a->b->a fails with a WorkspaceError naming both projects.
func TestTopoOrder_CycleDetected(t *testing.T) {
	edges := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	_, err := TopoOrder([]string{"a", "b"}, func(n string) []string { return edges[n] })
	require.Error(t, err)

	var werr *cerrors.WorkspaceError
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, werr.Cycle, "a")
	assert.Contains(t, werr.Cycle, "b")
}

// Self-dependency is a 1-node cycle, not a silent no-op (spec.md §9 open
// question, resolved in DESIGN.md): it must fail the same WorkspaceError
// path a normal cycle takes.
func TestTopoOrder_SelfDependencyIsCycle(t *testing.T) {
	edges := map[string][]string{
		"a": {"a"},
	}
	_, err := TopoOrder([]string{"a"}, func(n string) []string { return edges[n] })
	require.Error(t, err)

	var werr *cerrors.WorkspaceError
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, werr.Cycle, "a")
}
