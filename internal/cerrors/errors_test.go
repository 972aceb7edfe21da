package cerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifestErrorLocation(t *testing.T) {
	err := &ManifestError{
		Located: Located{File: "cforge.toml", Line: 12, Context: "12 | name = \n   |        ^"},
		Message: "missing value for key 'name'",
	}

	msg := err.Error()
	assert.Contains(t, msg, "missing value for key 'name'")
	assert.Contains(t, msg, "cforge.toml:12")
	assert.Contains(t, msg, "name = ")
}

func TestHostErrorSoftVsHard(t *testing.T) {
	hard := &HostError{Tool: "cl.exe", Message: "not found on PATH"}
	soft := &HostError{Tool: "ninja", Message: "not found on PATH", Soft: true}

	assert.Contains(t, hard.Error(), "required")
	assert.Contains(t, soft.Error(), "optional")
}

func TestWorkspaceErrorCycleRendersPath(t *testing.T) {
	err := &WorkspaceError{
		Message: "dependency cycle detected",
		Cycle:   []string{"a", "b", "a"},
	}
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("index out of range")
	err := &InternalError{Message: "scheduler invariant violated", Cause: cause}

	assert.ErrorIs(t, err, cause)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(&BuildError{Message: "compile failed"}))
}

func TestRenderPrefixesError(t *testing.T) {
	err := &RunError{ExecutablePath: "./bin/hello", ExitCode: 1, Message: "nonzero exit"}
	assert.Contains(t, Render(err), "Error: run error:")
}
