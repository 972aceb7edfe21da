package manifest

// ProjectManifest is the root of a single project's declaration, loaded from
// a cforge.toml document (spec.md §6.2).
type ProjectManifest struct {
	Project      ProjectInfo                 `toml:"project"`
	Build        BuildSettings                `toml:"build"`
	Tests        *TestSpec                    `toml:"tests"`
	Dependencies DependencySet                `toml:"dependencies"`
	Targets      map[string]TargetSpec        `toml:"targets"`
	Platforms    map[string]PlatformOverlay   `toml:"platforms"`
	Output       OutputLayout                 `toml:"output"`
	Hooks        *Hooks                       `toml:"hooks"`
	Scripts      *ScriptSet                   `toml:"scripts"`
	Variants     *VariantSet                  `toml:"variants"`
	CrossCompile *CrossCompileProfile         `toml:"cross_compile"`
	PCH          *PCHSpec                     `toml:"pch"`
	Package      *PackagingSpec               `toml:"package"`

	// SourcePath is the absolute path to the cforge.toml this manifest was
	// loaded from; not serialized, set by the loader for use in diagnostics
	// and relative-path resolution.
	SourcePath string `toml:"-"`
}

// ProjectInfo is the manifest's [project] table.
type ProjectInfo struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Kind        string `toml:"type"`     // executable, static-library, shared-library, header-only
	Language    string `toml:"language"` // c, c++
	Standard    string `toml:"standard"` // c11, c++17, ...
}

// Kind enumeration values for ProjectInfo.Kind.
const (
	KindExecutable    = "executable"
	KindStaticLibrary = "static-library"
	KindSharedLibrary = "shared-library"
	KindHeaderOnly    = "header-only"
)

// Language enumeration values for ProjectInfo.Language.
const (
	LanguageC   = "c"
	LanguageCpp = "c++"
)

// BuildSettings is the manifest's [build] table.
type BuildSettings struct {
	BuildDir         string                       `toml:"build_dir"`
	Generator        string                       `toml:"generator"`
	DefaultConfig    string                       `toml:"default_config"`
	Debug            *bool                        `toml:"debug"`
	CMakeOptions     []string                     `toml:"cmake_options"`
	Configs          map[string]ConfigurationProfile `toml:"configs"`
	Compiler         string                       `toml:"compiler"` // msvc, clang-cl, gcc, clang
}

// ConfigurationProfile is one named build mode (spec.md §3, "ConfigurationProfile").
type ConfigurationProfile struct {
	Defines         []string `toml:"defines"`
	Flags           []string `toml:"flags"`
	LinkFlags       []string `toml:"link_flags"`
	OutputDirSuffix string   `toml:"output_dir_suffix"`
	CMakeOptions    []string `toml:"cmake_options"`
}

// DependencySet groups the four acquisition backends plus peer (workspace)
// dependencies, per spec.md §4.D.
type DependencySet struct {
	Vcpkg     VcpkgDependencies      `toml:"vcpkg"`
	System    []string               `toml:"system"`
	CMake     []string               `toml:"cmake"`
	Conan     ConanDependencies      `toml:"conan"`
	Custom    []ArchiveDependency    `toml:"custom"`
	Git       []GitDependency        `toml:"git"`
	Workspace []PeerDependency       `toml:"workspace"`
}

// VcpkgDependencies configures the source-archive-manager backend (§4.D.1).
type VcpkgDependencies struct {
	Enabled  bool     `toml:"enabled"`
	Path     string   `toml:"path"`
	Packages []string `toml:"packages"`
}

// ConanDependencies configures the configurator-package backend (§4.D.2).
type ConanDependencies struct {
	Enabled    bool              `toml:"enabled"`
	Packages   []string          `toml:"packages"`
	Options    map[string]string `toml:"options"`
	Generators []string          `toml:"generators"`
}

// ArchiveDependency is one inline source-archive entry (§4.D.4).
type ArchiveDependency struct {
	Name           string   `toml:"name"`
	URL            string   `toml:"url"`
	Version        string   `toml:"version"`
	CMakeOptions   []string `toml:"cmake_options"`
	BuildCommand   string   `toml:"build_command"`
	InstallCommand string   `toml:"install_command"`
	IncludePath    string   `toml:"include_path"`
	LibraryPath    string   `toml:"library_path"`
}

// GitDependency is one revision-control entry (§4.D.3).
type GitDependency struct {
	Name         string   `toml:"name"`
	URL          string   `toml:"url"`
	Branch       string   `toml:"branch"`
	Tag          string   `toml:"tag"`
	Commit       string   `toml:"commit"`
	CMakeOptions []string `toml:"cmake_options"`
	Shallow      *bool    `toml:"shallow"`
	Update       *bool    `toml:"update"`
}

// PeerDependency refers to another project in the enclosing workspace.
type PeerDependency struct {
	Name         string   `toml:"name"`
	LinkType     string   `toml:"link_type"` // static, shared, interface
	IncludePaths []string `toml:"include_paths"`
}

// TargetSpec is one target-name -> build unit mapping.
type TargetSpec struct {
	Sources       []string            `toml:"sources"`
	IncludeDirs   []string            `toml:"include_dirs"`
	Defines       []string            `toml:"defines"`
	Links         []string            `toml:"links"`
	PlatformLinks map[string][]string `toml:"platform_links"`
}

// PlatformOverlay adds per-OS defines, flags, and compiler choice.
type PlatformOverlay struct {
	Compiler string   `toml:"compiler"`
	Defines  []string `toml:"defines"`
	Flags    []string `toml:"flags"`
}

// OutputLayout holds the three output-directory patterns, each possibly
// containing ${CONFIG}/${OS}/${ARCH} placeholders (spec.md §3 invariant 5).
type OutputLayout struct {
	BinDir string `toml:"bin_dir"`
	LibDir string `toml:"lib_dir"`
	ObjDir string `toml:"obj_dir"`
}

// Hooks holds the ten optional ordered shell-command sequences, one pair per
// lifecycle stage.
type Hooks struct {
	PreConfigure  []string `toml:"pre_configure"`
	PostConfigure []string `toml:"post_configure"`
	PreBuild      []string `toml:"pre_build"`
	PostBuild     []string `toml:"post_build"`
	PreClean      []string `toml:"pre_clean"`
	PostClean     []string `toml:"post_clean"`
	PreInstall    []string `toml:"pre_install"`
	PostInstall   []string `toml:"post_install"`
	PreRun        []string `toml:"pre_run"`
	PostRun       []string `toml:"post_run"`
}

// ScriptSet is the named-script table (spec.md §3, "Named scripts").
type ScriptSet struct {
	Scripts map[string]string `toml:"scripts"`
}

// VariantSet is the optional set of named variant profiles with one
// designated default.
type VariantSet struct {
	Default  string                   `toml:"default"`
	Variants map[string]VariantProfile `toml:"variants"`
}

// VariantProfile is an additive overlay, orthogonal to configuration.
type VariantProfile struct {
	Description  string   `toml:"description"`
	Defines      []string `toml:"defines"`
	Flags        []string `toml:"flags"`
	Dependencies []string `toml:"dependencies"`
	Features     []string `toml:"features"`
	Platforms    []string `toml:"platforms"`
	CMakeOptions []string `toml:"cmake_options"`
}

// CrossCompileProfile describes a cross-compilation target.
type CrossCompileProfile struct {
	Enabled            bool              `toml:"enabled"`
	Target             string            `toml:"target"`
	Toolchain          string            `toml:"toolchain"`
	Sysroot            string            `toml:"sysroot"`
	CMakeToolchainFile string            `toml:"cmake_toolchain_file"`
	DefinePrefix       string            `toml:"define_prefix"`
	Flags              []string          `toml:"flags"`
	EnvVars            map[string]string `toml:"env_vars"`
}

// PCHSpec is the optional precompiled-header configuration.
type PCHSpec struct {
	Enabled            bool     `toml:"enabled"`
	Header             string   `toml:"header"`
	Source             string   `toml:"source"`
	IncludeDirectories []string `toml:"include_directories"`
	CompilerOptions    []string `toml:"compiler_options"`
	OnlyForTargets     []string `toml:"only_for_targets"`
	ExcludeSources     []string `toml:"exclude_sources"`
	DisableUnityBuild  bool     `toml:"disable_unity_build"`
}

// PackagingSpec configures the CPack invocation the `package` verb drives
// (spec.md §4.F's packager-configuration bullet). Every field is optional;
// defaults.go fills vendor/generator/description when absent.
type PackagingSpec struct {
	Vendor         string            `toml:"vendor"`
	DescriptionFile string           `toml:"description_file"`
	Generators     map[string]string `toml:"generators"` // OS name -> CPack generator (ZIP, TGZ, NSIS, DragNDrop, DEB, RPM, ...)
}

// TestSpec is the optional [tests] table.
type TestSpec struct {
	Directory   string             `toml:"directory"`
	Enabled     *bool              `toml:"enabled"`
	Timeout     int                `toml:"timeout"`
	Labels      []string           `toml:"labels"`
	Executables []TestExecutable   `toml:"executables"`
}

// TestExecutable is one named test binary.
type TestExecutable struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
	Includes []string `toml:"includes"`
	Links   []string `toml:"links"`
	Defines []string `toml:"defines"`
	Args    []string `toml:"args"`
	Timeout int      `toml:"timeout"`
	Labels  []string `toml:"labels"`
}

// WorkspaceManifest is the root of a cforge-workspace.toml document
// (spec.md §6.3).
type WorkspaceManifest struct {
	Workspace WorkspaceInfo `toml:"workspace"`

	// SourcePath mirrors ProjectManifest.SourcePath.
	SourcePath string `toml:"-"`
}

// WorkspaceInfo is the single [workspace] table.
type WorkspaceInfo struct {
	Name                  string   `toml:"name"`
	Projects              []string `toml:"projects"`
	StartupProjects       []string `toml:"startup_projects"`
	DefaultStartupProject string   `toml:"default_startup_project"`
}
