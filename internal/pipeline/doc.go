// Package pipeline drives the per-project F→G→H sequence spec.md §2's data
// flow describes (native-input emission, configure, build), wiring in
// dependency acquisition, host detection, lifecycle hooks, and — for
// library targets — the peer-consumable descriptor (§6.5). The command
// orchestrator (cmd/) calls this directly for a single project; the
// workspace scheduler (internal/workspace) calls it once per project in
// topological order.
package pipeline
