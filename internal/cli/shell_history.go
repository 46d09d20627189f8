package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// inputHistory is the shell's Up/Down recall list, persisted one line per
// entry. A zero path keeps it in memory only.
type inputHistory struct {
	path  string
	lines []string
}

// defaultHistoryPath returns ~/.learnhub/shell_history, or "" when the home
// directory is unknown.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".learnhub", "shell_history")
}

// loadInputHistory reads the most recent entries from path. A missing or
// unreadable file yields an empty history.
func loadInputHistory(path string) *inputHistory {
	h := &inputHistory{path: path}
	if path == "" {
		return h
	}
	f, err := os.Open(path)
	if err != nil {
		return h
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.lines = append(h.lines, line)
		}
	}
	if len(h.lines) > maxHistoryLines {
		h.lines = h.lines[len(h.lines)-maxHistoryLines:]
	}
	return h
}

// Len returns the number of entries.
func (h *inputHistory) Len() int { return len(h.lines) }

// At returns entry i, oldest first.
func (h *inputHistory) At(i int) string { return h.lines[i] }

// Add records a line in memory and appends it to the file. Write errors are
// ignored; history is best-effort.
func (h *inputHistory) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > maxHistoryLines {
		h.lines = h.lines[1:]
	}
	if h.path == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
