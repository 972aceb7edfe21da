package cerrors

import (
	"fmt"
	"strings"

	"cforge/internal/diagnostics"
)

// Located is embedded by every error kind that can point at a line in a
// manifest or captured build output: file path, 1-based line number (0 when
// unknown), and a short context snippet (e.g. three lines of surrounding
// source, or the offending output line).
type Located struct {
	File    string
	Line    int
	Context string
}

func (l Located) locationSuffix() string {
	if l.File == "" {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("\n  --> %s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("\n  --> %s", l.File)
}

func (l Located) contextSuffix() string {
	if l.Context == "" {
		return ""
	}
	return "\n" + l.Context
}

// ManifestError is a parse or validation failure in a project or workspace
// manifest; always located per spec §4.A.
type ManifestError struct {
	Located
	Message string
}

func (e *ManifestError) Error() string {
	return "manifest error: " + e.Message + e.Located.locationSuffix() + e.Located.contextSuffix()
}

// HostError reports a required external tool that is absent or unusable.
// Soft is true when the engine can continue with the feature disabled.
type HostError struct {
	Tool    string
	Message string
	Soft    bool
}

func (e *HostError) Error() string {
	kind := "required"
	if e.Soft {
		kind = "optional"
	}
	return fmt.Sprintf("host error: %s tool %q: %s", kind, e.Tool, e.Message)
}

// DependencyError reports a failure from an acquisition backend: a permanent
// one, or a transient one that recurred on its single retry.
type DependencyError struct {
	Backend string
	Package string
	Message string
}

func (e *DependencyError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("dependency error: [%s] %s: %s", e.Backend, e.Package, e.Message)
	}
	return fmt.Sprintf("dependency error: [%s] %s", e.Backend, e.Message)
}

// ConfigureError reports a configurator failure or timeout.
type ConfigureError struct {
	Located
	Message  string
	TimedOut bool
}

func (e *ConfigureError) Error() string {
	msg := e.Message
	if e.TimedOut {
		msg = "timed out: " + msg
	}
	return "configure error: " + msg + e.Located.locationSuffix() + e.Located.contextSuffix()
}

// BuildError reports a builder failure or timeout; it carries the parsed
// diagnostics (already truncated to at most 20, per spec §4.I) so the
// orchestrator can render them without re-parsing.
type BuildError struct {
	Message     string
	TimedOut    bool
	Diagnostics []diagnostics.Diagnostic
}

func (e *BuildError) Error() string {
	if e.TimedOut {
		return "build error: timed out: " + e.Message
	}
	return "build error: " + e.Message
}

// RunError reports that the requested executable was missing or exited
// nonzero.
type RunError struct {
	ExecutablePath string
	ExitCode       int
	Message        string
}

func (e *RunError) Error() string {
	if e.ExecutablePath == "" {
		return "run error: " + e.Message
	}
	return fmt.Sprintf("run error: %s (exit %d): %s", e.ExecutablePath, e.ExitCode, e.Message)
}

// WorkspaceError reports a cycle in the peer-dependency graph, a reference
// to a project outside the workspace, or an empty project list.
type WorkspaceError struct {
	Located
	Message string
	Cycle   []string
}

func (e *WorkspaceError) Error() string {
	msg := e.Message
	if len(e.Cycle) > 0 {
		msg = fmt.Sprintf("%s (cycle: %s)", msg, strings.Join(e.Cycle, " -> "))
	}
	return "workspace error: " + msg + e.Located.locationSuffix()
}

// InternalError signals an invariant violation that should never happen in
// correct operation — a bug, not a user-facing condition.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Message, e.Cause)
	}
	return "internal error: " + e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// ProjectFailure records one project's failure during a workspace-wide run;
// the workspace scheduler collects these so every project's outcome is
// visible in a single invocation (spec §4.J, §7).
type ProjectFailure struct {
	Project string
	Err     error
}

func (f ProjectFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Project, f.Err)
}
