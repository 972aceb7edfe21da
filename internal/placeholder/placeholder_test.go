package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandReplacesAllTokens(t *testing.T) {
	got := Expand("build/${OS}-${ARCH}/${CONFIG}", Values{Config: "Debug", OS: "linux", Arch: "x86_64"})
	assert.Equal(t, "build/linux-x86_64/Debug", got)
}

func TestExpandLeavesUnknownTokens(t *testing.T) {
	got := Expand("build/${CONFIG}/${UNKNOWN}", Values{Config: "Release"})
	assert.Equal(t, "build/Release/${UNKNOWN}", got)
}

func TestContainsToken(t *testing.T) {
	assert.True(t, ContainsToken("out/${CONFIG}"))
	assert.False(t, ContainsToken("out/fixed"))
}

func TestExpandAll(t *testing.T) {
	got := ExpandAll([]string{"${CONFIG}/a", "${CONFIG}/b"}, Values{Config: "Debug"})
	assert.Equal(t, []string{"Debug/a", "Debug/b"}, got)
}
