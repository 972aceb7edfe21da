// Package cerrors defines cforge's typed error taxonomy: one concrete struct
// per failure category (manifest, host, dependency, configure, build, run,
// workspace, internal), each optionally carrying a source location and a
// context snippet so the command orchestrator can render "Error: ... --> file:line"
// output uniformly regardless of which component raised it.
package cerrors
