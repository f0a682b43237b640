package punkt

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestLoadAbbreviations(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"punkt_tab/english/abbrev_types.txt":  []byte("dr\ne.g\n\nMr\n"),
		"punkt_tab/english/sent_starters.txt": []byte("however\n"),
	})

	abbrevs, err := LoadAbbreviations(archive, "English")
	if err != nil {
		t.Fatalf("LoadAbbreviations failed: %v", err)
	}
	for _, word := range []string{"dr", "e.g", "mr"} {
		if _, ok := abbrevs[word]; !ok {
			t.Fatalf("expected %q in abbreviations: %v", word, abbrevs)
		}
	}
	if len(abbrevs) != 3 {
		t.Fatalf("expected 3 abbreviations, got %d", len(abbrevs))
	}
}

func TestLoadAbbreviationsMissingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), ArchiveName)
	_, err := LoadAbbreviations(path, "english")
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
	var rerr *ResourceUnavailableError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ResourceUnavailableError, got %T", err)
	}
	if rerr.Remedy == "" || !bytes.Contains([]byte(err.Error()), []byte(path)) {
		t.Fatalf("error should name the archive and a remedy: %v", err)
	}
}

func TestLoadAbbreviationsMissingLanguage(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"punkt_tab/english/abbrev_types.txt": []byte("dr\n"),
	})
	_, err := LoadAbbreviations(archive, "klingon")
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestListLanguages(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"punkt_tab/russian/abbrev_types.txt": []byte("т.е\n"),
		"punkt_tab/english/abbrev_types.txt": []byte("dr\n"),
		"punkt_tab/english/collocations.tab": []byte(""),
		"punkt_tab/README":                   []byte("readme"),
	})
	langs, err := ListLanguages(archive)
	if err != nil {
		t.Fatalf("ListLanguages failed: %v", err)
	}
	expected := []string{"english", "russian"}
	if len(langs) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, langs)
	}
	for i, lang := range expected {
		if langs[i] != lang {
			t.Fatalf("expected %q at index %d, got %q", lang, i, langs[i])
		}
	}
}

func TestDownloadCachesArchive(t *testing.T) {
	payload := buildTestArchive(t, map[string][]byte{
		"punkt_tab/english/abbrev_types.txt": []byte("dr\n"),
	})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	opts := DownloadOptions{URL: srv.URL, CacheDir: dir}
	first, err := Download(context.Background(), opts)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if first.Cached {
		t.Fatalf("expected fresh download")
	}
	if first.Path != ArchivePath(dir) {
		t.Fatalf("unexpected archive path %q", first.Path)
	}

	second, err := Download(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Download failed: %v", err)
	}
	if !second.Cached || hits.Load() != 1 {
		t.Fatalf("expected cached archive, hits=%d cached=%v", hits.Load(), second.Cached)
	}

	opts.Force = true
	if _, err := Download(context.Background(), opts); err != nil {
		t.Fatalf("forced Download failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected forced download to refetch, hits=%d", hits.Load())
	}
}

func TestDownloadRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	if _, err := Download(context.Background(), DownloadOptions{URL: srv.URL, CacheDir: dir}); err == nil {
		t.Fatalf("expected error for 404")
	}
	if _, err := os.Stat(ArchivePath(dir)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no archive after failed download, stat err=%v", err)
	}
}

func buildTestArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func writeTestArchive(t *testing.T, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ArchiveName)
	if err := os.WriteFile(path, buildTestArchive(t, files), 0o644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}
