package archivefetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"cforge/internal/manifest"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledReflectsManifestEntries(t *testing.T) {
	b := New()
	m := &manifest.ProjectManifest{}
	assert.False(t, b.Enabled(m))
	m.Dependencies.Custom = []manifest.ArchiveDependency{{Name: "fmt"}}
	assert.True(t, b.Enabled(m))
}

func TestExtractorForSelectsByExtension(t *testing.T) {
	assert.Equal(t, extZip, extractorFor("https://example.com/lib.ZIP"))
	assert.Equal(t, extTarGz, extractorFor("https://example.com/lib.tar.gz"))
	assert.Equal(t, extTarGz, extractorFor("https://example.com/lib.tgz"))
}

func TestSafeJoinRejectsPathEscape(t *testing.T) {
	dest := t.TempDir()
	_, err := safeJoin(dest, "../../etc/passwd")
	assert.Error(t, err)

	p, err := safeJoin(dest, "include/foo.h")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "include", "foo.h"), p)
}

func TestExtractTarGzWritesFiles(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	content := []byte("hello")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "include/foo.h", Mode: 0o644, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	dest := t.TempDir()
	require.NoError(t, extractTarGz(&buf, dest))

	got, err := os.ReadFile(filepath.Join(dest, "include", "foo.h"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestExtractZipWritesFiles(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("include/bar.h")
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dest := t.TempDir()
	require.NoError(t, extractZip(&buf, dest))

	got, err := os.ReadFile(filepath.Join(dest, "include", "bar.h"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))
}

func TestCheckRetryClassification(t *testing.T) {
	retry, err := checkRetry(context.Background(), &http.Response{StatusCode: 503}, nil)
	assert.NoError(t, err)
	assert.True(t, retry)

	retry, err = checkRetry(context.Background(), &http.Response{StatusCode: 404}, nil)
	assert.NoError(t, err)
	assert.False(t, retry)
}
