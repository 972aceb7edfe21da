// Package logging provides subsystem-tagged structured logging for cforge,
// built on log/slog. Initialize once at startup with Init, then log through
// the package-level Debug/Info/Warn/Error functions.
//
// Subsystem tags in use across the codebase: ManifestLoader, HostProbe,
// FlagTranslator, Acquire, vcpkgindex, configpkg, rcs, archivefetch, emitter,
// configure, buildrun, hooks, pipeline, workspace.
package logging
