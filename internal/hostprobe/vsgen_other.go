//go:build !windows

package hostprobe

// detectVisualStudioGeneratorsPlatform is a no-op off Windows: none of the
// three detection strategies (vendor locator tool, registry, compiler
// banner) applies, so the caller falls back to defaultVisualStudioGenerators.
func detectVisualStudioGeneratorsPlatform() []VisualStudioGenerator {
	return nil
}
