package buildrun

import (
	"regexp"
	"strconv"
	"strings"
)

// Progress is the state record the build driver updates as it observes
// output lines (spec.md §4.H).
type Progress struct {
	CompiledCount int
	TotalEstimate int
	Percent       int
	Linking       bool
	Errors        []string
}

var (
	sourceExtensions  = []string{".c", ".cpp", ".cc"}
	compilingKeywords = []string{"Compiling", "Building"}
	linkingKeywords   = []string{"Linking", "Generating library"}
	completionMarkers = []string{"Built target", "Built all targets", "[100%]", "build succeeded"}
	percentPattern    = regexp.MustCompile(`(\d{1,3})%`)
)

// Update folds one captured output line into p, per the fixed pattern table
// spec.md §4.H describes.
func (p *Progress) Update(line string) {
	if containsAny(line, completionMarkers) {
		p.Percent = 100
		return
	}

	if containsAny(line, linkingKeywords) {
		p.Linking = true
		if p.Percent < 90 {
			p.Percent = 90
		}
	} else if hasSourceExtension(line) && containsAny(line, compilingKeywords) {
		p.CompiledCount++
		if p.TotalEstimate > 0 && p.Percent < 90 {
			computed := p.CompiledCount * 90 / p.TotalEstimate
			if computed > p.Percent {
				p.Percent = computed
			}
		}
	}

	if m := percentPattern.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > p.Percent {
			p.Percent = n
		}
	}
}

func hasSourceExtension(line string) bool {
	for _, ext := range sourceExtensions {
		if strings.Contains(line, ext) {
			return true
		}
	}
	return false
}

func containsAny(line string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
