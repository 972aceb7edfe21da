// Package flags translates the closed abstract flag-token vocabulary
// (spec.md §4.C) into concrete MSVC-style or GNU-style compiler flags. The
// translator is a pure function with no I/O and no external dependency.
package flags
