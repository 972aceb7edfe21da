// Package pathnorm centralizes the one path-normalization rule every
// component that writes a path into a generated file (the native-input
// emitter, the peer-descriptor writer) must apply: strip Windows
// `\\?\` long-path prefixes and convert backslash separators to forward
// slashes, per spec.md §6.5 and design note §9 ("Path normalization ...
// Centralize this in one function").
package pathnorm

import "strings"

const longPathPrefix = `\\?\`

// Normalize strips a leading Windows long-path prefix and converts
// backslashes to forward slashes, so the result is safe to embed verbatim
// in a CMake-generated file on any host OS.
func Normalize(path string) string {
	path = strings.TrimPrefix(path, longPathPrefix)
	return strings.ReplaceAll(path, `\`, "/")
}
