package flags

import "cforge/pkg/logging"

// translation holds one token's MSVC and GNU expansions. A nil slice (as
// opposed to an empty non-nil one) is never used here — both OB1 and RTC1
// legitimately expand to nothing under GNU, which table represents with
// an explicit empty slice, matching spec.md §4.C's "(omit)" cells.
type translation struct {
	msvc []string
	gnu  []string
}

// table is the closed vocabulary from spec.md §4.C.
var table = map[string]translation{
	"NO_OPT":      {msvc: []string{"/Od"}, gnu: []string{"-O0"}},
	"NO_WARNINGS": {msvc: []string{"/W0"}, gnu: []string{"-w"}},
	"OPTIMIZE":    {msvc: []string{"/O2"}, gnu: []string{"-O2"}},
	"OPTIMIZE_MAX": {msvc: []string{"/O3"}, gnu: []string{"-O3"}},
	"MIN_SIZE":    {msvc: []string{"/O1"}, gnu: []string{"-Os"}},
	"OB1":         {msvc: []string{"/Ob1"}, gnu: []string{}},
	"OB2":         {msvc: []string{"/Ob2"}, gnu: []string{"-finline-functions"}},
	"DEBUG_INFO":  {msvc: []string{"/Zi"}, gnu: []string{"-g"}},
	"RTC1":        {msvc: []string{"/RTC1"}, gnu: []string{}},
	"LTO":         {msvc: []string{"/GL"}, gnu: []string{"-flto"}},
	"PARALLEL":    {msvc: []string{"/Qpar"}, gnu: []string{"-fopenmp"}},
	"MEMSAFE":     {msvc: []string{"/sdl", "/GS"}, gnu: []string{"-fsanitize=address", "-fno-omit-frame-pointer"}},
	"DNDEBUG":     {msvc: []string{"/DNDEBUG"}, gnu: []string{"-DNDEBUG"}},
}

// TranslateOne expands a single abstract token. Unknown tokens are passed
// through unchanged with a logged warning, per spec.md §4.C.
func TranslateOne(token string, msvcStyle bool) []string {
	t, ok := table[token]
	if !ok {
		logging.Warn("FlagTranslator", "unrecognized flag token %q, passing through unchanged", token)
		return []string{token}
	}
	if msvcStyle {
		return append([]string(nil), t.msvc...)
	}
	return append([]string(nil), t.gnu...)
}

// Translate expands an ordered list of abstract tokens into concrete
// compiler flags. The result is the concatenation of each token's expansion
// in order (testable property 1, spec.md §8).
func Translate(tokens []string, msvcStyle bool) []string {
	out := []string{}
	for _, t := range tokens {
		out = append(out, TranslateOne(t, msvcStyle)...)
	}
	return out
}

// IsMSVCStyle reports whether a compiler label uses slash-style flags.
// Only msvc and clang-cl do; gcc and clang use the GNU driver.
func IsMSVCStyle(compilerLabel string) bool {
	switch compilerLabel {
	case "msvc", "clang-cl":
		return true
	default:
		return false
	}
}
