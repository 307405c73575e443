package recordio

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var hexHashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NormalizeHash lowercases and trims a raw input line so hashes are
// compared in a single canonical form.
func NormalizeHash(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidHash reports whether s is a 32-character lowercase hexadecimal
// MD5 digest. Callers should normalize with NormalizeHash first.
func IsValidHash(s string) bool {
	return hexHashPattern.MatchString(s)
}

// ParseInputFile reads the master's input file: one hash per line, blank
// lines ignored. Lines are returned exactly as encountered after only
// whitespace-trimming, so validation (and INVALID_INPUT classification)
// remains the orchestrator's responsibility.
func ParseInputFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return lines, nil
}
