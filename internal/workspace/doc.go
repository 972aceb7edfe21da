// Package workspace implements the workspace dependency resolver and
// topological build scheduler (spec.md §4.J, component J): it orders
// projects declared in a WorkspaceManifest by their peer-project
// dependencies, builds each in that order, and on success publishes the
// peer-consumable package descriptor (spec.md §6.5) so dependents can find
// it.
package workspace
