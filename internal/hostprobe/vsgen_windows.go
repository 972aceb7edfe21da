//go:build windows

package hostprobe

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/windows/registry"

	"cforge/pkg/logging"
)

// vswherePaths is the well-known install location of Microsoft's vendor
// locator tool, which ships alongside Visual Studio since 2017.
var vswherePaths = []string{
	`C:\Program Files (x86)\Microsoft Visual Studio\Installer\vswhere.exe`,
	`C:\Program Files\Microsoft Visual Studio\Installer\vswhere.exe`,
}

// detectVisualStudioGeneratorsPlatform runs the three-strategy detection
// spec.md §4.B describes: vendor locator tool, then registry, then compiler
// banner.
func detectVisualStudioGeneratorsPlatform() []VisualStudioGenerator {
	if gens := detectViaVswhere(); len(gens) > 0 {
		return gens
	}
	if gens := detectViaRegistry(); len(gens) > 0 {
		return gens
	}
	if gens := detectViaCompilerBanner(); len(gens) > 0 {
		return gens
	}
	return nil
}

func detectViaVswhere() []VisualStudioGenerator {
	var tool string
	for _, p := range vswherePaths {
		if _, err := exec.LookPath(p); err == nil {
			tool = p
			break
		}
	}
	if tool == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, tool, "-latest", "-property", "catalog_productLineVersion").Output()
	if err != nil {
		logging.Debug("HostProbe", "vswhere probe failed: %s", err)
		return nil
	}

	year := strings.TrimSpace(string(out))
	name := "Visual Studio " + year
	for _, g := range knownVisualStudioGenerators {
		if strings.Contains(g.Name, year) {
			return []VisualStudioGenerator{g}
		}
	}
	return []VisualStudioGenerator{{Name: name}}
}

func detectViaRegistry() []VisualStudioGenerator {
	var found []VisualStudioGenerator
	roots := []string{
		`SOFTWARE\Microsoft\VisualStudio`,
		`SOFTWARE\WOW6432Node\Microsoft\VisualStudio`,
	}
	for _, root := range roots {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, root, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}
		names, err := k.ReadSubKeyNames(-1)
		k.Close()
		if err != nil {
			continue
		}
		for _, n := range names {
			major, err := strconv.Atoi(strings.SplitN(n, ".", 2)[0])
			if err != nil {
				continue
			}
			for _, g := range knownVisualStudioGenerators {
				if g.Version == major {
					found = append(found, g)
				}
			}
		}
	}
	return found
}

func detectViaCompilerBanner() []VisualStudioGenerator {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "cl").CombinedOutput()
	if err != nil {
		return nil
	}
	banner := string(out)
	for _, g := range knownVisualStudioGenerators {
		if strings.Contains(banner, strconv.Itoa(g.Version)) {
			return []VisualStudioGenerator{g}
		}
	}
	return nil
}
