package manifest

// defaultConfigs synthesizes the standard Debug/Release configuration pair
// with the standard abstract flag tokens, per spec.md §4.A. Applied when a
// manifest's [build] table omits `configs` entirely.
func defaultConfigs() map[string]ConfigurationProfile {
	return map[string]ConfigurationProfile{
		"Debug": {
			Defines: []string{"DEBUG", "_DEBUG"},
			Flags:   []string{"NO_OPT", "DEBUG_INFO", "RTC1"},
		},
		"Release": {
			Defines: []string{"NDEBUG"},
			Flags:   []string{"OPTIMIZE", "OB2", "DNDEBUG"},
		},
	}
}

// defaultOutputLayout synthesizes bin/lib/obj when the manifest's [output]
// table is absent or partially populated.
func defaultOutputLayout() OutputLayout {
	return OutputLayout{
		BinDir: "bin",
		LibDir: "lib",
		ObjDir: "obj",
	}
}

const defaultGenerator = "default"

// applyDefaults fills in every default spec.md §4.A names, mutating m in
// place. It never overwrites a value the manifest explicitly set.
func applyDefaults(m *ProjectManifest) {
	if m.Build.Configs == nil {
		m.Build.Configs = defaultConfigs()
	}
	if m.Build.DefaultConfig == "" {
		m.Build.DefaultConfig = "Debug"
	}
	if m.Build.Generator == "" {
		m.Build.Generator = defaultGenerator
	}
	if m.Build.BuildDir == "" {
		m.Build.BuildDir = "build"
	}

	if m.Output.BinDir == "" {
		m.Output.BinDir = "bin"
	}
	if m.Output.LibDir == "" {
		m.Output.LibDir = "lib"
	}
	if m.Output.ObjDir == "" {
		m.Output.ObjDir = "obj"
	}

	if m.Targets == nil {
		m.Targets = make(map[string]TargetSpec)
	}
	if m.Platforms == nil {
		m.Platforms = make(map[string]PlatformOverlay)
	}

	if m.Package == nil {
		m.Package = &PackagingSpec{}
	}
	if m.Package.Vendor == "" {
		m.Package.Vendor = "cforge"
	}
	if m.Package.DescriptionFile == "" {
		m.Package.DescriptionFile = m.Project.Description
	}
	if m.Package.Generators == nil {
		m.Package.Generators = defaultPackageGenerators()
	}
}

// defaultPackageGenerators gives every project a usable CPack generator per
// host OS even when [package] is omitted entirely.
func defaultPackageGenerators() map[string]string {
	return map[string]string{
		"windows": "NSIS",
		"darwin":  "DragNDrop",
		"linux":   "TGZ",
	}
}
