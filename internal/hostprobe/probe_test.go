package hostprobe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cforge/internal/session"
)

func TestCompilerPreferenceOrder(t *testing.T) {
	assert.Equal(t, []string{"msvc", "clang-cl", "clang", "gcc"}, compilerPreference("windows"))
	assert.Equal(t, []string{"clang", "gcc"}, compilerPreference("darwin"))
	assert.Equal(t, []string{"clang", "gcc"}, compilerPreference("linux"))
}

func TestNormalizeArch(t *testing.T) {
	assert.Equal(t, "x86_64", normalizeArch("amd64"))
	assert.Equal(t, "x86", normalizeArch("386"))
	assert.Equal(t, "aarch64", normalizeArch("arm64"))
	assert.Equal(t, "unknown", normalizeArch("riscv64"))
}

func TestIsCommandAvailableMemoizes(t *testing.T) {
	sess := session.New()

	first := IsCommandAvailable(context.Background(), sess, "definitely-not-a-real-compiler-xyz", 0)
	assert.False(t, first)

	available, cached := sess.ToolAvailability("definitely-not-a-real-compiler-xyz")
	assert.True(t, cached)
	assert.False(t, available)

	// Second call must come back from the cache, not re-probe (which a
	// zero timeout would time out on immediately).
	second := IsCommandAvailable(context.Background(), sess, "definitely-not-a-real-compiler-xyz", 0)
	assert.Equal(t, first, second)
}

func TestDetectSystemPopulatesOSAndArch(t *testing.T) {
	info := DetectSystem(context.Background(), session.New())
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
}

func TestDetectVisualStudioGeneratorsNeverEmpty(t *testing.T) {
	gens := DetectVisualStudioGenerators()
	assert.NotEmpty(t, gens)
}

func TestSortGeneratorsNewestFirst(t *testing.T) {
	in := []VisualStudioGenerator{{Name: "old", Version: 14}, {Name: "new", Version: 17}, {Name: "mid", Version: 16}}
	out := sortGeneratorsNewestFirst(in)
	assert.Equal(t, 17, out[0].Version)
	assert.Equal(t, 16, out[1].Version)
	assert.Equal(t, 14, out[2].Version)
}
