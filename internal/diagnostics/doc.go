// Package diagnostics extracts structured diagnostics from captured compiler
// output and renders them in a uniform, locatable form (spec.md §4.I,
// component I). Three regex families are matched in order of specificity
// (GNU-style, MSVC-with-column, MSVC-without-column); results are
// deduplicated, sorted, and truncated to at most 20 entries.
package diagnostics
