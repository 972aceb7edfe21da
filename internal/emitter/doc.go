// Package emitter generates the single native-generator input file
// (CMakeLists.txt) a project's manifest describes (spec.md §4.F), via
// text/template and sprig's string/list helpers.
package emitter
