// Package artifact locates a built library's on-disk file given its base
// name, the target linkage, and the compiler style in use (spec.md §4.E).
package artifact
