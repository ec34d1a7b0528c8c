package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one document listed in a batch file
type Entry struct {
	Source string // URL or local path of the PDF
	Output string // JSON output path; empty means derive one
	Line   int    // 1-based line number in the batch file
}

// ReadBatchFile reads document sources from a file
// Supports formats:
// - Source only: "https://arxiv.org/pdf/2106.14881.pdf"
// - With output: "https://arxiv.org/pdf/2106.14881.pdf = paper.json"
// Blank lines and lines starting with '#' are ignored. The output
// separator must have whitespace on both sides so '=' inside URLs is kept.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []Entry
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Source: line, Line: i + 1}
		if idx := separatorIndex(line); idx >= 0 {
			entry.Source = strings.TrimSpace(line[:idx])
			entry.Output = strings.TrimSpace(line[idx+1:])
		}

		if entry.Source == "" {
			return nil, fmt.Errorf("batch file %s line %d: missing source", filename, entry.Line)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// separatorIndex returns the index of the last '=' surrounded by
// whitespace, or -1
func separatorIndex(line string) int {
	for i := len(line) - 2; i >= 0; i-- {
		if line[i] != '=' {
			continue
		}
		if (i == 0 || isSpace(line[i-1])) && isSpace(line[i+1]) {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
