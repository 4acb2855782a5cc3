package cricsheet

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArchive(t *testing.T) []byte {
	t.Helper()
	match, err := os.ReadFile(filepath.Join("testdata", "1002.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string][]byte{
		"t20s/1002.yaml": match,
		"README.txt":     []byte("readme"),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEnsureData_DownloadsAndExtracts(t *testing.T) {
	archive := buildArchive(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, EnsureData(context.Background(), dir, srv.URL))

	files, err := ListMatchFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"1002.yaml"}, files)
	assert.NoFileExists(t, filepath.Join(dir, "README.txt"))

	// Data present: no second download.
	require.NoError(t, EnsureData(context.Background(), dir, srv.URL))
	assert.Equal(t, 1, hits)
}

func TestEnsureData_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := EnsureData(context.Background(), t.TempDir(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
