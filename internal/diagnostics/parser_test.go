package diagnostics

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S6: a single GNU-style captured line yields exactly one diagnostic with
// the expected fields, a well-formed code, and a suggestion mentioning
// "declared".
func TestParse_GNUStyleScenarioS6(t *testing.T) {
	lines := []string{`foo.cpp:12:5: error: use of undeclared identifier 'bar'`}

	diags := Parse(lines, "")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "foo.cpp", d.File)
	assert.Equal(t, 12, d.Line)
	assert.Equal(t, 5, d.Column)
	assert.Equal(t, SeverityError, d.Level)
	assert.Contains(t, d.Message, "bar")
	assert.Regexp(t, regexp.MustCompile(`^E[0-9]{4}$`), d.Code)
	assert.Contains(t, d.Suggestion, "declared")
}

func TestParse_MSVCWithColumn(t *testing.T) {
	lines := []string{`C:\src\foo.cpp(42,9): error C2065: 'bar': undeclared identifier`}
	diags := Parse(lines, "")
	require.Len(t, diags, 1)
	assert.Equal(t, 42, diags[0].Line)
	assert.Equal(t, 9, diags[0].Column)
	assert.Equal(t, SeverityError, diags[0].Level)
}

func TestParse_MSVCWithoutColumn(t *testing.T) {
	lines := []string{`foo.cpp(7): warning C4101: 'x': unreferenced local variable`}
	diags := Parse(lines, "")
	require.Len(t, diags, 1)
	assert.Equal(t, 7, diags[0].Line)
	assert.Equal(t, 1, diags[0].Column) // defaults to 1 when absent
	assert.Equal(t, SeverityWarning, diags[0].Level)
}

// Property 7: no two entries share (file, line, column, message).
func TestParse_Dedup(t *testing.T) {
	lines := []string{
		`foo.cpp:12:5: error: use of undeclared identifier 'bar'`,
		`foo.cpp:12:5: error: use of undeclared identifier 'bar'`,
		`foo.cpp:13:1: error: use of undeclared identifier 'baz'`,
	}
	diags := Parse(lines, "")
	require.Len(t, diags, 2)

	seen := make(map[string]bool)
	for _, d := range diags {
		key := fmt.Sprintf("%s:%d:%d:%s", d.File, d.Line, d.Column, d.Message)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestParse_SortOrder(t *testing.T) {
	lines := []string{
		`b.cpp:1:1: warning: unused variable 'x'`,
		`a.cpp:1:1: error: redefinition of 'x'`,
	}
	diags := Parse(lines, "")
	require.Len(t, diags, 2)
	assert.Equal(t, SeverityError, diags[0].Level)
	assert.Equal(t, SeverityWarning, diags[1].Level)
}

func TestParse_TruncatesAt20(t *testing.T) {
	var lines []string
	for i := 1; i <= 30; i++ {
		lines = append(lines, "f.cpp:"+itoa(i)+":1: error: unique message "+itoa(i))
	}
	diags := Parse(lines, "")
	assert.Len(t, diags, 20)
}

func TestParse_SourceLineFromEchoedOutput(t *testing.T) {
	lines := []string{
		`foo.cpp:12:5: error: use of undeclared identifier 'bar'`,
		`   12 | int x = bar;`,
		`      |          ^`,
	}
	diags := Parse(lines, "")
	require.Len(t, diags, 1)
	assert.Equal(t, "int x = bar;", diags[0].SourceLine)
}

func TestParse_IgnoresNonDiagnosticLines(t *testing.T) {
	lines := []string{"-- Configuring done", "Scanning dependencies of target foo"}
	assert.Empty(t, Parse(lines, ""))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}
