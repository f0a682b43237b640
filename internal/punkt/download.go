// Package punkt provisions the NLTK punkt tokenizer tables used for word tokenization.
package punkt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultURL points at the punkt_tab package published in the nltk_data repository.
const DefaultURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages/tokenizers/punkt_tab.zip"

// ArchiveName is the file name of the cached archive.
const ArchiveName = "punkt_tab.zip"

// Archive describes a cached punkt archive.
type Archive struct {
	Path   string
	Cached bool
}

// DownloadOptions configures Download.
type DownloadOptions struct {
	URL      string
	CacheDir string
	Force    bool
}

// ArchivePath returns where the archive lives inside cacheDir.
func ArchivePath(cacheDir string) string {
	return filepath.Join(cacheDir, ArchiveName)
}

// Download fetches the punkt archive into the cache directory. An existing archive is
// reused unless Force is set.
func Download(ctx context.Context, opts DownloadOptions) (Archive, error) {
	if opts.CacheDir == "" {
		return Archive{}, fmt.Errorf("cache directory is required")
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return Archive{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	destPath := ArchivePath(opts.CacheDir)
	if !opts.Force {
		if _, err := os.Stat(destPath); err == nil {
			return Archive{Path: destPath, Cached: true}, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return Archive{}, fmt.Errorf("failed to stat cached archive: %w", err)
		}
	}

	tmpFile, err := os.CreateTemp(opts.CacheDir, "punkt-*.zip")
	if err != nil {
		return Archive{}, fmt.Errorf("failed to create temp archive: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := httpRequest(ctx, opts.URL)
	if err != nil {
		return Archive{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Archive{}, fmt.Errorf("unexpected download status: %s", resp.Status)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return Archive{}, fmt.Errorf("failed to download archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Archive{}, fmt.Errorf("failed to close temp archive: %w", err)
	}
	if _, err := ListLanguages(tmpPath); err != nil {
		return Archive{}, fmt.Errorf("downloaded archive is not usable: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Archive{}, fmt.Errorf("failed to move archive into cache: %w", err)
	}

	return Archive{Path: destPath, Cached: false}, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
