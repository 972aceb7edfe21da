package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTranslatorPurity covers spec.md §8 testable property 1: every token
// in the closed vocabulary round-trips to its documented column, and list
// translation is the ordered concatenation of per-token translations.
func TestTranslatorPurity(t *testing.T) {
	cases := []struct {
		token string
		msvc  []string
		gnu   []string
	}{
		{"NO_OPT", []string{"/Od"}, []string{"-O0"}},
		{"NO_WARNINGS", []string{"/W0"}, []string{"-w"}},
		{"OPTIMIZE", []string{"/O2"}, []string{"-O2"}},
		{"OPTIMIZE_MAX", []string{"/O3"}, []string{"-O3"}},
		{"MIN_SIZE", []string{"/O1"}, []string{"-Os"}},
		{"OB1", []string{"/Ob1"}, []string{}},
		{"OB2", []string{"/Ob2"}, []string{"-finline-functions"}},
		{"DEBUG_INFO", []string{"/Zi"}, []string{"-g"}},
		{"RTC1", []string{"/RTC1"}, []string{}},
		{"LTO", []string{"/GL"}, []string{"-flto"}},
		{"PARALLEL", []string{"/Qpar"}, []string{"-fopenmp"}},
		{"MEMSAFE", []string{"/sdl", "/GS"}, []string{"-fsanitize=address", "-fno-omit-frame-pointer"}},
		{"DNDEBUG", []string{"/DNDEBUG"}, []string{"-DNDEBUG"}},
	}

	for _, c := range cases {
		assert.Equal(t, c.msvc, Translate([]string{c.token}, true), "msvc: %s", c.token)
		assert.Equal(t, c.gnu, Translate([]string{c.token}, false), "gnu: %s", c.token)
	}
}

func TestTranslateConcatenatesInOrder(t *testing.T) {
	got := Translate([]string{"OPTIMIZE", "DEBUG_INFO"}, true)
	assert.Equal(t, []string{"/O2", "/Zi"}, got)

	got = Translate([]string{"OPTIMIZE", "DEBUG_INFO"}, false)
	assert.Equal(t, []string{"-O2", "-g"}, got)
}

func TestUnknownTokenPassesThrough(t *testing.T) {
	got := Translate([]string{"SOME_FUTURE_TOKEN"}, true)
	assert.Equal(t, []string{"SOME_FUTURE_TOKEN"}, got)
}

func TestIsMSVCStyle(t *testing.T) {
	assert.True(t, IsMSVCStyle("msvc"))
	assert.True(t, IsMSVCStyle("clang-cl"))
	assert.False(t, IsMSVCStyle("gcc"))
	assert.False(t, IsMSVCStyle("clang"))
}
