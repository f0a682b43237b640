// Package wordlist loads word lists used to exclude vocabulary from rankings.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
// Blank lines and lines starting with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return words, nil
}

// LoadSet reads a word list file into a Set.
func LoadSet(path string) (Set, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	return NewSet(words), nil
}
