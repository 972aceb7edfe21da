package emitter

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// cmakeListsTemplate is the generator manifest this package emits (spec.md
// §4.F). Sprig's quote/join/upper functions format the per-configuration
// generator-expression-guarded blocks.
const cmakeListsTemplate = `# Generated by cforge. Do not edit by hand.
cmake_minimum_required(VERSION {{.CMakeMinimum}})
project({{quote .NativeProjectName}} VERSION {{quote .Version}} LANGUAGES {{.Language}})

set(CMAKE_{{.Language}}_STANDARD {{.Standard}})
set(CMAKE_{{.Language}}_STANDARD_REQUIRED ON)

{{- if .ToolchainFile}}
set(CMAKE_TOOLCHAIN_FILE {{quote .ToolchainFile}} CACHE FILEPATH "")
{{- end}}
{{- if .ConfiguratorCMake}}
include({{quote .ConfiguratorCMake}})
{{- end}}

{{- range .CMakeOptions}}
{{.}}
{{- end}}

{{- range .SystemPackages}}
find_package({{.}} REQUIRED)
{{- end}}
{{- range .CMakePackages}}
find_package({{.}} REQUIRED)
{{- end}}

{{- range .Configs}}
{{- $cfgName := .Name}}
set(CMAKE_{{$.Language}}_FLAGS_{{upper .Name}} "${CMAKE_{{$.Language}}_FLAGS_{{upper .Name}}} {{join " " .Flags}}")
set(CMAKE_EXE_LINKER_FLAGS_{{upper .Name}} "${CMAKE_EXE_LINKER_FLAGS_{{upper .Name}}} {{join " " .LinkFlags}}")
{{- range .Defines}}
add_compile_definitions($<$<CONFIG:{{$cfgName}}>:{{.}}>)
{{- end}}
{{- end}}

set(CFORGE_BIN_DIR {{quote .BinDir}})
set(CFORGE_LIB_DIR {{quote .LibDir}})
set(CFORGE_OBJ_DIR {{quote .ObjDir}})
set(CMAKE_RUNTIME_OUTPUT_DIRECTORY "${CFORGE_BIN_DIR}")
set(CMAKE_ARCHIVE_OUTPUT_DIRECTORY "${CFORGE_LIB_DIR}")
set(CMAKE_LIBRARY_OUTPUT_DIRECTORY "${CFORGE_LIB_DIR}")

{{range .Targets}}
{{- if $.IsHeaderOnly}}
add_library({{.NativeName}} INTERFACE)
target_include_directories({{.NativeName}} INTERFACE
{{- range .IncludeDirs}}
  {{.}}
{{- end}}
{{- range $.ExtraIncludePaths}}
  {{.}}
{{- end}}
)
target_link_libraries({{.NativeName}} INTERFACE
{{- range .Links}}
  {{.}}
{{- end}}
)
{{- else if eq $.Kind "executable"}}
add_executable({{.NativeName}}
{{- range .Sources}}
  {{.}}
{{- end}}
)
target_include_directories({{.NativeName}} PRIVATE
{{- range .IncludeDirs}}
  {{.}}
{{- end}}
{{- range $.ExtraIncludePaths}}
  {{.}}
{{- end}}
)
target_compile_definitions({{.NativeName}} PRIVATE
{{- range .Defines}}
  {{.}}
{{- end}}
)
target_link_libraries({{.NativeName}} PRIVATE
{{- range .Links}}
  {{.}}
{{- end}}
)
{{- else}}
add_library({{.NativeName}} {{if eq $.Kind "shared-library"}}SHARED{{else}}STATIC{{end}}
{{- range .Sources}}
  {{.}}
{{- end}}
)
target_include_directories({{.NativeName}} PUBLIC
{{- range .IncludeDirs}}
  {{.}}
{{- end}}
{{- range $.ExtraIncludePaths}}
  {{.}}
{{- end}}
)
target_compile_definitions({{.NativeName}} PUBLIC
{{- range .Defines}}
  {{.}}
{{- end}}
)
target_link_libraries({{.NativeName}} PUBLIC
{{- range .Links}}
  {{.}}
{{- end}}
)
{{- if .Aliased}}
add_library({{$.ProjectName}}::{{.Name}} ALIAS {{.NativeName}})
{{- end}}
{{- end}}
{{end}}

{{- if .PCH}}
{{- if .PCH.Enabled}}
{{- range .Targets}}
{{- if .PCHApplies}}
target_precompile_headers({{.NativeName}} PRIVATE {{$.PCH.Header}})
{{- end}}
{{- end}}
{{- end}}
{{- end}}

{{- if .IsLibrary}}
include(GNUInstallDirs)
install(TARGETS {{range .Targets}}{{.NativeName}} {{end}}
  EXPORT {{.ProjectName}}Targets
  ARCHIVE DESTINATION ${CMAKE_INSTALL_LIBDIR}
  LIBRARY DESTINATION ${CMAKE_INSTALL_LIBDIR}
  RUNTIME DESTINATION ${CMAKE_INSTALL_BINDIR}
)
install(EXPORT {{.ProjectName}}Targets
  FILE {{.ProjectName}}Targets.cmake
  NAMESPACE {{.ProjectName}}::
  DESTINATION lib/cmake/{{.ProjectName}}
)
{{- end}}

{{- if .PackagerGenerator}}
set(CPACK_PACKAGE_NAME {{quote .PackagerName}})
set(CPACK_PACKAGE_VERSION {{quote .PackagerVersion}})
set(CPACK_PACKAGE_VENDOR {{quote .PackagerVendor}})
set(CPACK_PACKAGE_DESCRIPTION_FILE {{quote .PackagerDescFile}})
set(CPACK_GENERATOR {{quote .PackagerGenerator}})
include(CPack)
{{- end}}
`

var tmpl = template.Must(template.New("CMakeLists.txt").Funcs(sprig.TxtFuncMap()).Parse(cmakeListsTemplate))
