// Package archivefetch implements the source-archive backend (spec.md
// §4.D.4): download a URL with retryablehttp, extract it with an
// extension-selected decoder, and optionally run declared build/install
// commands rooted at the extracted directory.
package archivefetch

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cforge/internal/acquire"
	"cforge/internal/manifest"
	"cforge/internal/proc"
	"cforge/pkg/logging"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
)

const backendName = "archive"

// Backend implements acquire.Backend for inline source-archive entries.
type Backend struct {
	Client *retryablehttp.Client
}

func New() *Backend {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.CheckRetry = checkRetry
	return &Backend{Client: client}
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Enabled(m *manifest.ProjectManifest) bool {
	return m != nil && len(m.Dependencies.Custom) > 0
}

func (b *Backend) Acquire(ctx context.Context, req acquire.Request) (acquire.Outputs, error) {
	depsRoot := filepath.Join(req.ProjectRoot, ".cforge", "deps")
	includePaths := make([]string, 0, len(req.Manifest.Dependencies.Custom))

	for _, dep := range req.Manifest.Dependencies.Custom {
		dest := filepath.Join(depsRoot, dep.Name)
		if req.Session != nil {
			if _, ok := req.Session.CachedPath(acquire.CacheKey(backendName, dep.Name)); ok && !req.Update {
				includePaths = append(includePaths, includeDirFor(dest, dep))
				continue
			}
		}

		if err := b.fetchAndExtract(ctx, dep.URL, dest); err != nil {
			return nil, err
		}

		if dep.BuildCommand != "" {
			if err := runShell(ctx, dest, dep.BuildCommand); err != nil {
				return nil, fmt.Errorf("build %s: %w", dep.Name, err)
			}
		}
		if dep.InstallCommand != "" {
			if err := runShell(ctx, dest, dep.InstallCommand); err != nil {
				return nil, fmt.Errorf("install %s: %w", dep.Name, err)
			}
		}

		if req.Session != nil {
			req.Session.MarkPackageInstalled(acquire.CacheKey(backendName, dep.Name), dest)
		}
		includePaths = append(includePaths, includeDirFor(dest, dep))
	}

	out := acquire.Outputs{}
	if len(includePaths) > 0 {
		out[acquire.KeyExtraIncludePaths] = strings.Join(includePaths, string(filepath.ListSeparator))
	}
	return out, nil
}

func includeDirFor(dest string, dep manifest.ArchiveDependency) string {
	if dep.IncludePath != "" {
		return filepath.Join(dest, dep.IncludePath)
	}
	return filepath.Join(dest, "include")
}

func (b *Backend) fetchAndExtract(ctx context.Context, url, dest string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return acquire.Transient(fmt.Errorf("download %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	logging.Info("archivefetch", "downloading %s", url)
	switch extractorFor(url) {
	case extZip:
		return extractZip(resp.Body, dest)
	default:
		return extractTarGz(resp.Body, dest)
	}
}

type extractor int

const (
	extTarGz extractor = iota
	extZip
)

func extractorFor(url string) extractor {
	lower := strings.ToLower(url)
	if strings.HasSuffix(lower, ".zip") {
		return extZip
	}
	return extTarGz
}

// checkRetry classifies transport errors and 5xx responses as retryable;
// 4xx responses are permanent (spec.md §4.D's transient/permanent split).
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode == 0 || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

func extractTarGz(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		}
	}
}

func extractZip(r io.Reader, dest string) error {
	tmp, err := os.CreateTemp("", "cforge-archive-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, r); err != nil {
		return err
	}

	zr, err := zip.OpenReader(tmp.Name())
	if err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.Mode())
		if err != nil {
			src.Close()
			return err
		}
		_, copyErr := io.Copy(out, src)
		src.Close()
		out.Close()
		if copyErr != nil {
			return copyErr
		}
	}
	return nil
}

// safeJoin prevents a malicious or malformed archive entry from writing
// outside dest via "../" path segments (zip-slip).
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) && target != filepath.Clean(dest) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

func runShell(ctx context.Context, dir, command string) error {
	child, err := proc.Spawn(ctx, dir, nil, "sh", "-c", command)
	if err != nil {
		return err
	}
	go func() {
		for range child.Lines {
		}
	}()
	timedOut, err := child.Wait(15 * time.Minute)
	if timedOut {
		return fmt.Errorf("command timed out: %s", command)
	}
	return err
}
