// Package buildrun drives the external builder (spec.md §4.H): invokes it
// for a selected configuration with host-parallel jobs, and tracks progress
// by matching captured output lines against a fixed pattern table.
package buildrun
