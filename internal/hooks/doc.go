// Package hooks runs the lifecycle hook and named-script shell commands
// spec.md §3/§6.4 describe. Commands are handed to the host shell verbatim;
// escaping and quoting are the manifest author's responsibility (spec.md §9
// open question — no argv-array form is provided, per the source's own
// behavior).
package hooks
