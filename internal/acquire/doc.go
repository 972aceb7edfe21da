// Package acquire and its subpackages implement dependency acquisition
// (spec.md §4.D): vcpkgindex (source-archive-manager, §4.D.1), configpkg
// (configurator-package, §4.D.2), rcs (revision-control, §4.D.3), and
// archivefetch (source-archive, §4.D.4).
package acquire
