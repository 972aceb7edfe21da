package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeenCommandSuppressesRepeat(t *testing.T) {
	s := New()
	assert.False(t, s.SeenCommand("configure:libm:Debug"))
	assert.True(t, s.SeenCommand("configure:libm:Debug"))
	assert.False(t, s.SeenCommand("configure:app:Debug"))
}

func TestToolAvailabilityCache(t *testing.T) {
	s := New()
	_, cached := s.ToolAvailability("cl.exe")
	assert.False(t, cached)

	s.SetToolAvailability("cl.exe", true)
	available, cached := s.ToolAvailability("cl.exe")
	assert.True(t, cached)
	assert.True(t, available)
}

func TestPackageInstalledAndCachedPath(t *testing.T) {
	s := New()
	assert.False(t, s.PackageInstalled("fmt"))

	s.MarkPackageInstalled("fmt", "/opt/vcpkg/installed/x64-linux")
	assert.True(t, s.PackageInstalled("fmt"))

	path, ok := s.CachedPath("fmt")
	assert.True(t, ok)
	assert.Equal(t, "/opt/vcpkg/installed/x64-linux", path)
}

func TestZeroValueContextIsUsable(t *testing.T) {
	var s Context
	assert.False(t, s.SeenCommand("x"))
	assert.True(t, s.SeenCommand("x"))
}
