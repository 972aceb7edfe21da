// Package ide implements the `cforge ide <type>` verb's project-file
// generators (spec.md §6.1, design note §9 "polymorphism of IDE
// generators"): vscode, clion, xcode, and the vs*/vs2013.../vs2022 family,
// all sharing a Generator interface. The vs* family additionally shares a
// helper that resolves a Visual Studio generator version from a string hint,
// built on internal/hostprobe's detection.
package ide
