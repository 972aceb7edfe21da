package cerrors

import "fmt"

// Render produces the user-visible "Error: ..." block spec.md §7 describes:
// the typed message, then the located context when available. Diagnostic
// rendering for BuildError is appended separately by the caller (internal/diagnostics
// owns the colored block), since cerrors does not depend on a color library.
func Render(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// ExitCode maps any cforge error to the process exit status. Spec.md §6.1
// specifies exactly two: 0 on success, 1 on any failure — there is no
// semantic exit-code taxonomy here, unlike some CLIs that split auth/usage
// errors into their own codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
