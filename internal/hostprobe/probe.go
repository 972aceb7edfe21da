package hostprobe

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"cforge/internal/session"
	"cforge/pkg/logging"
)

// SystemInfo is the result of detect-system (spec.md §4.B).
type SystemInfo struct {
	OS             string // windows, darwin, linux
	Arch           string // x86_64, x86, aarch64, unknown
	CompilerLabel  string // msvc, clang-cl, clang, gcc, or "" if none found
}

// compilerPreference returns the platform-specific compiler preference
// order spec.md §4.B fixes: Windows prefers msvc, then clang-cl, clang, gcc;
// macOS prefers clang then gcc; Linux prefers clang then gcc.
func compilerPreference(osName string) []string {
	switch osName {
	case "windows":
		return []string{"msvc", "clang-cl", "clang", "gcc"}
	case "darwin":
		return []string{"clang", "gcc"}
	default:
		return []string{"clang", "gcc"}
	}
}

// versionQuery is the command-line argument that makes each compiler label
// print version info and exit zero, used by IsCommandAvailable.
var versionQuery = map[string]struct {
	bin  string
	args []string
}{
	"msvc":     {"cl", nil},
	"clang-cl": {"clang-cl", []string{"--version"}},
	"clang":    {"clang", []string{"--version"}},
	"gcc":      {"gcc", []string{"--version"}},
}

func normalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	default:
		return "unknown"
	}
}

// DetectSystem returns the host OS, architecture, and the first available
// compiler in platform preference order. sess memoizes each tool probe for
// the remainder of the invocation.
func DetectSystem(ctx context.Context, sess *session.Context) SystemInfo {
	info := SystemInfo{OS: runtime.GOOS, Arch: normalizeArch(runtime.GOARCH)}

	for _, label := range compilerPreference(info.OS) {
		if IsCommandAvailable(ctx, sess, label, 5*time.Second) {
			info.CompilerLabel = label
			break
		}
	}

	logging.Debug("HostProbe", "detected system os=%s arch=%s compiler=%s", info.OS, info.Arch, info.CompilerLabel)
	return info
}

// DetectSystemWithInstall behaves like DetectSystem, but when the
// first-preference compiler is absent it invokes install (typically the
// source-archive-manager backend's compiler bootstrap, §4.D.1) and re-probes
// once before falling through to the next preference. install receives the
// compiler label and reports whether it believes installation succeeded;
// hostprobe re-verifies regardless.
func DetectSystemWithInstall(ctx context.Context, sess *session.Context, install func(label string) bool) SystemInfo {
	info := SystemInfo{OS: runtime.GOOS, Arch: normalizeArch(runtime.GOARCH)}

	for i, label := range compilerPreference(info.OS) {
		if IsCommandAvailable(ctx, sess, label, 5*time.Second) {
			info.CompilerLabel = label
			break
		}
		if i == 0 && install != nil && install(label) {
			if IsCommandAvailable(ctx, sess, label, 5*time.Second) {
				info.CompilerLabel = label
				break
			}
		}
	}

	logging.Debug("HostProbe", "detected system (with install) os=%s arch=%s compiler=%s", info.OS, info.Arch, info.CompilerLabel)
	return info
}

// IsCommandAvailable returns true iff invoking the compiler labeled name
// with a version query succeeds within timeout. Results are memoized in
// sess for the remainder of the invocation.
func IsCommandAvailable(ctx context.Context, sess *session.Context, name string, timeout time.Duration) bool {
	if sess != nil {
		if available, cached := sess.ToolAvailability(name); cached {
			return available
		}
	}

	q, known := versionQuery[name]
	if !known {
		q = struct {
			bin  string
			args []string
		}{name, []string{"--version"}}
	}

	available := probeOnce(ctx, q.bin, q.args, timeout)

	if sess != nil {
		sess.SetToolAvailability(name, available)
	}
	return available
}

func probeOnce(ctx context.Context, bin string, args []string, timeout time.Duration) bool {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, bin, args...)
	// cl.exe (MSVC) writes its banner to stderr and exits 0 with no
	// arguments; every other compiler we probe accepts --version. Either
	// way we only care whether the process started and exited cleanly.
	err := cmd.Run()
	return err == nil
}
