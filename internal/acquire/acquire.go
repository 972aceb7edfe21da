// Package acquire unifies the four dependency-acquisition backends behind
// one operation (spec.md §4.D): acquire(manifest, project-root, update-mode)
// -> map<string,string>. Each backend is a Backend implementor; Acquire
// iterates the ones a manifest enables and merges their outputs.
package acquire

import (
	"context"
	"fmt"

	"cforge/internal/cerrors"
	"cforge/internal/manifest"
	"cforge/internal/session"
	"cforge/pkg/logging"
)

// Well-known output keys §4.F consumes when emitting the native manifest.
const (
	KeyToolchainFile            = "toolchain-file"
	KeyConfiguratorPackageCmake = "configurator-package-cmake"
	KeyExtraIncludePaths        = "extra-include-paths"
)

// Outputs is the result of one or more backends' acquisition, keyed by the
// well-known constants above.
type Outputs map[string]string

// Backend is one dependency-acquisition strategy (design note §9:
// "polymorphism of dependency backends").
type Backend interface {
	Name() string
	Enabled(m *manifest.ProjectManifest) bool
	Acquire(ctx context.Context, req Request) (Outputs, error)
}

// Request carries everything a Backend needs to do its work.
type Request struct {
	Manifest    *manifest.ProjectManifest
	ProjectRoot string
	Update      bool
	Session     *session.Context
}

// transientError marks a failure a backend believes is worth retrying once,
// per spec.md §4.D ("failures are classified as transient ... or permanent").
type transientError struct{ err error }

func (t transientError) Error() string { return t.err.Error() }
func (t transientError) Unwrap() error { return t.err }

// Transient wraps err to mark it retry-eligible.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

func isTransient(err error) bool {
	_, ok := err.(transientError)
	if ok {
		return ok
	}
	var t transientError
	return asTransient(err, &t)
}

func asTransient(err error, target *transientError) bool {
	for err != nil {
		if t, ok := err.(transientError); ok {
			*target = t
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Acquire runs every backend enabled by m, merging their Outputs. A
// transient backend failure is retried once; a permanent one (or a
// transient failure that recurs) aborts with a DependencyError.
func Acquire(ctx context.Context, backends []Backend, req Request) (Outputs, error) {
	merged := make(Outputs)

	for _, b := range backends {
		if !b.Enabled(req.Manifest) {
			continue
		}

		out, err := b.Acquire(ctx, req)
		if err != nil && isTransient(err) {
			logging.Warn("Acquire", "backend %s failed transiently, retrying once: %s", b.Name(), err)
			out, err = b.Acquire(ctx, req)
		}
		if err != nil {
			return merged, &cerrors.DependencyError{Backend: b.Name(), Message: err.Error()}
		}

		for k, v := range out {
			merged[k] = v
		}
		logging.Info("Acquire", "backend %s completed", b.Name())
	}

	return merged, nil
}

// CacheKey builds the session-scoped idempotence key a backend uses to
// avoid repeating acquisition work within one invocation (spec.md §3
// invariant 6).
func CacheKey(backendName, projectRoot string) string {
	return fmt.Sprintf("acquire:%s:%s", backendName, projectRoot)
}
