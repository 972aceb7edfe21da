// Package hostprobe detects the host operating system, architecture,
// available compilers and generators, and package managers (spec.md §4.B).
// Results are memoized for the lifetime of one invocation via
// internal/session.Context, mirroring the teacher's own process-attribute
// split between Unix and Windows build files.
package hostprobe
