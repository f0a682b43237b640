package punkt

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

const archiveRoot = "punkt_tab/"

// ErrResourceUnavailable matches every ResourceUnavailableError.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ResourceUnavailableError reports a missing tokenizer resource and how to provision it.
type ResourceUnavailableError struct {
	Resource string
	Remedy   string
	Err      error
}

func (e *ResourceUnavailableError) Error() string {
	msg := fmt.Sprintf("tokenizer resource %s is unavailable", e.Resource)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Remedy != "" {
		msg += "\n" + e.Remedy
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ResourceUnavailableError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrResourceUnavailable.
func (e *ResourceUnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

const downloadRemedy = "Run: bibaboba model download"

// LoadAbbreviations reads the abbreviation table for language from the archive.
// Entries are lowercase and carry no trailing dot, e.g. "dr" or "e.g".
func LoadAbbreviations(archivePath, language string) (map[string]struct{}, error) {
	language = normalizeLanguage(language)
	if language == "" {
		return nil, fmt.Errorf("language is required")
	}
	reader, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	name := archiveRoot + language + "/abbrev_types.txt"
	var file *zip.File
	for _, f := range reader.File {
		if f.Name == name {
			file = f
			break
		}
	}
	if file == nil {
		return nil, &ResourceUnavailableError{
			Resource: fmt.Sprintf("punkt %s tables", language),
			Remedy:   fmt.Sprintf("List available languages: bibaboba model langs\n%s --force", downloadRemedy),
			Err:      fmt.Errorf("%s not found in %s", name, archivePath),
		}
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	abbrevs := make(map[string]struct{})
	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		abbrevs[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return abbrevs, nil
}

// ListLanguages returns the sorted languages that have abbreviation tables in the archive.
func ListLanguages(archivePath string) ([]string, error) {
	reader, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	var langs []string
	for _, f := range reader.File {
		lang, ok := languageFromName(f.Name)
		if !ok {
			continue
		}
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in punkt archive")
	}
	sort.Strings(langs)
	return langs, nil
}

func openArchive(archivePath string) (*zip.ReadCloser, error) {
	if archivePath == "" {
		return nil, &ResourceUnavailableError{Resource: "punkt archive", Remedy: downloadRemedy, Err: fmt.Errorf("archive path is empty")}
	}
	if _, err := os.Stat(archivePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ResourceUnavailableError{
				Resource: fmt.Sprintf("punkt archive %s", archivePath),
				Remedy:   downloadRemedy,
				Err:      err,
			}
		}
		return nil, fmt.Errorf("failed to stat punkt archive: %w", err)
	}
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &ResourceUnavailableError{
			Resource: fmt.Sprintf("punkt archive %s", archivePath),
			Remedy:   downloadRemedy + " --force",
			Err:      err,
		}
	}
	return reader, nil
}

func languageFromName(name string) (string, bool) {
	if !strings.HasPrefix(name, archiveRoot) || !strings.HasSuffix(name, "/abbrev_types.txt") {
		return "", false
	}
	lang := strings.TrimSuffix(strings.TrimPrefix(name, archiveRoot), "/abbrev_types.txt")
	if lang == "" || strings.Contains(lang, "/") {
		return "", false
	}
	return lang, true
}

func normalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
