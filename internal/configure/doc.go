// Package configure drives the external generator (spec.md §4.G): invokes
// it in the build directory with the emitted manifest, a 10-minute
// watchdog, line classification for immediate error streaming, and a
// single minimal-option retry on failure.
package configure
