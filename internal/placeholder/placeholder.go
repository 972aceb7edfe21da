// Package placeholder expands the `${CONFIG}`/`${OS}`/`${ARCH}` output-path
// tokens spec.md §3 invariant 5 defines, adapted from the teacher's
// variable-substitution engine (internal/template.Engine) to this repo's
// token syntax.
package placeholder

import "strings"

// Values is the set of substitutions available at expansion time.
type Values struct {
	Config string
	OS     string
	Arch   string
}

var tokens = []string{"${CONFIG}", "${OS}", "${ARCH}"}

// Expand replaces every occurrence of ${CONFIG}, ${OS}, and ${ARCH} in s
// with the corresponding value. Unknown tokens are left untouched, matching
// the teacher's own missing-variable-tolerant default when no strict
// validation is requested.
func Expand(s string, v Values) string {
	r := strings.NewReplacer(
		"${CONFIG}", v.Config,
		"${OS}", v.OS,
		"${ARCH}", v.Arch,
	)
	return r.Replace(s)
}

// ExpandAll applies Expand to every string in a slice, returning a new slice.
func ExpandAll(ss []string, v Values) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Expand(s, v)
	}
	return out
}

// ContainsToken reports whether s references any of the known tokens.
func ContainsToken(s string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
