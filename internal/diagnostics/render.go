package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan, color.Bold)
	locationColor = color.New(color.FgBlue)
	helpColor    = color.New(color.FgGreen)
)

func colorFor(level Severity) *color.Color {
	switch level {
	case SeverityError:
		return errorColor
	case SeverityWarning:
		return warningColor
	default:
		return noteColor
	}
}

// Render produces the block §4.I describes for a single diagnostic: a
// `LEVEL[code]: message` header in the severity color, a `--> path:line:col`
// location line, the source snippet prefixed by its line number, a
// caret-underline pointing at the column, and the suggestion on a `help:`
// line when one exists.
func Render(d Diagnostic) string {
	var b strings.Builder

	c := colorFor(d.Level)
	fmt.Fprintf(&b, "%s[%s]: %s\n", c.Sprint(strings.ToUpper(string(d.Level))), d.Code, d.Message)
	fmt.Fprintf(&b, "  %s\n", locationColor.Sprintf("--> %s:%d:%d", d.File, d.Line, d.Column))

	if d.SourceLine != "" {
		gutter := fmt.Sprintf("%d", d.Line)
		fmt.Fprintf(&b, "   %s | %s\n", gutter, d.SourceLine)
		caretCol := d.Column
		if caretCol < 1 {
			caretCol = 1
		}
		fmt.Fprintf(&b, "   %s | %s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", caretCol-1), c.Sprint("^"))
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&b, "   %s\n", helpColor.Sprintf("help: %s", d.Suggestion))
	}

	return b.String()
}

// RenderAll joins Render output for each diagnostic, separated by a blank
// line, matching the per-diagnostic block layout used throughout a build
// failure's reported output.
func RenderAll(diags []Diagnostic) string {
	blocks := make([]string, 0, len(diags))
	for _, d := range diags {
		blocks = append(blocks, Render(d))
	}
	return strings.Join(blocks, "\n")
}
