// Package session holds the process-wide caches spec.md §5 and §9 describe:
// a single Context value, threaded through every component by parameter,
// replacing the original implementation's module-level mutable globals.
// Its lifetime equals one CLI invocation; nothing it holds persists across
// invocations.
package session
