package ponds

import (
	"bufio"
	"os"
	"strings"
)

// ReadSeedURLs loads a newline-delimited seed URL file, keeping only
// http(s)-prefixed lines. A missing or unreadable file degrades to an empty
// list.
func ReadSeedURLs(path string) []string {
	return readLines(path, func(line string) bool {
		return strings.HasPrefix(line, "http")
	})
}

// ReadSeedDomains loads a newline-delimited domain file, skipping blanks and
// # comments.
func ReadSeedDomains(path string) []string {
	return readLines(path, func(line string) bool {
		return !strings.HasPrefix(line, "#")
	})
}

// ReadSeedQueries loads a newline-delimited search query file, skipping
// blanks and # comments.
func ReadSeedQueries(path string) []string {
	return readLines(path, func(line string) bool {
		return !strings.HasPrefix(line, "#")
	})
}

func readLines(path string, keep func(string) bool) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !keep(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
