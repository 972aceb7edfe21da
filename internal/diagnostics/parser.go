package diagnostics

import (
	"fmt"
	"hash/fnv"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxDiagnostics is the truncation limit spec.md §4.I fixes.
const maxDiagnostics = 20

// The three regex families, ordered by specificity (spec.md §4.I):
//  1. GNU-style:                path:line:col: level: message
//  2. MSVC-style with column:   path(line,col): level[ Cnnnn]: message
//  3. MSVC-style without column: path(line): level[ Cnnnn]: message
var (
	gnuPattern        = regexp.MustCompile(`^(\S.*?):(\d+):(\d+):\s*(error|warning|note):\s*(.+)$`)
	msvcColPattern    = regexp.MustCompile(`^(\S.*?)\((\d+),(\d+)\):\s*(error|warning|note)(?:\s+[A-Za-z]+\d+)?:\s*(.+)$`)
	msvcNoColPattern  = regexp.MustCompile(`^(\S.*?)\((\d+)\):\s*(error|warning|note)(?:\s+[A-Za-z]+\d+)?:\s*(.+)$`)
	sourceEchoPattern = regexp.MustCompile(`^\s*\d+\s*\|\s?(.*)$`)
)

// suggestionRule is one entry in the substring-keyed suggestion table.
type suggestionRule struct {
	substr     string
	suggestion string
}

// suggestionRules is the fixed rule table spec.md §4.I names (the exact
// substrings it lists, plus the suggestion each one implies).
var suggestionRules = []suggestionRule{
	{"template parameter pack must be last", "move the parameter pack to the end of the template parameter list"},
	{"constexpr not a literal type", "this type must have a trivial destructor and all members must be literal types to be used in a constexpr context"},
	{"use of undeclared identifier", "check that the identifier is declared and its declaring header is included"},
	{"member initializer does not name", "check the member name matches a field declared in the class, and that it appears in the initializer list in declaration order"},
	{"expected ';'", "a statement is likely missing its terminating semicolon on the preceding line"},
	{"no matching function for call", "check the argument types and count against the available overloads"},
	{"redefinition of", "this name is declared more than once; remove or rename the duplicate declaration"},
	{"unused variable", "remove the variable, or mark it with [[maybe_unused]] if it is intentionally unused"},
	{"implicit conversion", "add an explicit cast if the conversion is intended"},
	{"incompatible pointer types", "check that the pointer types match, or add an explicit cast"},
}

// suggestionFor returns the help text for message, or "" when no rule matches.
func suggestionFor(message string) string {
	for _, r := range suggestionRules {
		if strings.Contains(message, r.substr) {
			return r.suggestion
		}
	}
	return ""
}

// syntheticCode derives a stable 4-digit code from message, prefixed by the
// severity's letter (E/W/N). Spec.md §9 flags the 32-bit-truncation-at-10^4
// collision risk as an open question the source leaves ambiguous; we
// preserve the original behavior (purely informational, not guaranteed
// stable across releases) rather than guess at a stronger scheme.
func syntheticCode(level Severity, message string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	n := h.Sum32() % 10000

	prefix := "N"
	switch level {
	case SeverityError:
		prefix = "E"
	case SeverityWarning:
		prefix = "W"
	}
	return fmt.Sprintf("%s%04d", prefix, n)
}

// Parse scans lines (typically the combined stdout/stderr captured by the
// configure or build driver) for compiler diagnostics, returning them
// deduplicated by (file, line, column, message), sorted by
// (severity ascending, file, line, column), and truncated to at most 20.
//
// sourceRoot, when non-empty, is used to resolve a diagnostic's file path
// for disk-fallback source-line extraction when the captured output itself
// contains no echoed source line.
func Parse(lines []string, sourceRoot string) []Diagnostic {
	seen := make(map[string]bool)
	var out []Diagnostic

	for i, line := range lines {
		d, ok := matchLine(line)
		if !ok {
			continue
		}

		key := fmt.Sprintf("%s:%d:%d:%s", d.File, d.Line, d.Column, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true

		d.SourceLine = sourceLineFor(lines, i, d.File, d.Line, sourceRoot)
		d.Code = syntheticCode(d.Level, d.Message)
		d.Suggestion = suggestionFor(d.Message)

		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Level.rank() != b.Level.rank() {
			return a.Level.rank() < b.Level.rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	if len(out) > maxDiagnostics {
		out = out[:maxDiagnostics]
	}
	return out
}

// matchLine tries each pattern family, most specific first, and returns the
// parsed diagnostic on the first match.
func matchLine(line string) (Diagnostic, bool) {
	if m := gnuPattern.FindStringSubmatch(line); m != nil {
		col, _ := strconv.Atoi(m[3])
		return Diagnostic{
			File:    m[1],
			Line:    atoiOr(m[2], 0),
			Column:  colOrDefault(col),
			Level:   Severity(m[4]),
			Message: strings.TrimSpace(m[5]),
		}, true
	}
	if m := msvcColPattern.FindStringSubmatch(line); m != nil {
		col, _ := strconv.Atoi(m[3])
		return Diagnostic{
			File:    m[1],
			Line:    atoiOr(m[2], 0),
			Column:  colOrDefault(col),
			Level:   Severity(m[4]),
			Message: strings.TrimSpace(m[5]),
		}, true
	}
	if m := msvcNoColPattern.FindStringSubmatch(line); m != nil {
		return Diagnostic{
			File:    m[1],
			Line:    atoiOr(m[2], 0),
			Column:  1,
			Level:   Severity(m[3]),
			Message: strings.TrimSpace(m[4]),
		}, true
	}
	return Diagnostic{}, false
}

func colOrDefault(col int) int {
	if col <= 0 {
		return 1
	}
	return col
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// sourceLineFor recovers the offending source line: first by looking at the
// lines immediately following the diagnostic in the captured output for a
// compiler-echoed `NN | source` form, falling back to reading the file
// itself from disk.
func sourceLineFor(lines []string, diagIdx int, file string, line int, sourceRoot string) string {
	for j := diagIdx + 1; j < len(lines) && j <= diagIdx+3; j++ {
		if m := sourceEchoPattern.FindStringSubmatch(lines[j]); m != nil {
			return m[1]
		}
	}

	path := file
	if sourceRoot != "" && !isAbs(path) {
		path = joinPath(sourceRoot, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	fileLines := strings.Split(string(data), "\n")
	if line <= 0 || line > len(fileLines) {
		return ""
	}
	return strings.TrimRight(fileLines[line-1], "\r")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || (len(p) > 1 && p[1] == ':')
}

func joinPath(root, rel string) string {
	if strings.HasSuffix(root, "/") {
		return root + rel
	}
	return root + "/" + rel
}
