package cricsheet

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the Cricsheet T20 international archive.
const DefaultURL = "https://cricsheet.org/downloads/t20s.zip"

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// EnsureData downloads and extracts the archive at url into dir unless dir already holds match files.
// The extracted YAML files are placed directly in dir regardless of their path inside the archive.
func EnsureData(ctx context.Context, dir, url string) error {
	if HasMatchFiles(dir) {
		log.Info().Str("dir", dir).Msg("Match data already present")
		return nil
	}

	log.Info().Str("url", url).Msg("Match data not found, downloading archive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	zipPath, err := download(ctx, url)
	if err != nil {
		return err
	}
	defer os.Remove(zipPath)

	count, err := extract(zipPath, dir)
	if err != nil {
		return err
	}

	log.Info().Str("dir", dir).Int("files", count).Msg("Match data download and extraction complete")
	return nil
}

func download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "cricsheet-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp archive: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close archive: %w", err)
	}
	return tmp.Name(), nil
}

func extract(zipPath, dir string) (int, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	count := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !IsMatchFile(f.Name) {
			continue
		}
		if err := extractFile(f, filepath.Join(dir, filepath.Base(f.Name))); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractFile(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}
