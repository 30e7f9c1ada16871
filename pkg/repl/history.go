package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const historyFileName = ".prom-cli_history"

// HistoryFilePath returns where query history is persisted. The
// PROM_CLI_HISTORY environment variable wins, then the user's home
// directory, then the current working directory.
func HistoryFilePath() string {
	if histPath := os.Getenv("PROM_CLI_HISTORY"); histPath != "" {
		return histPath
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, historyFileName)
	}
	if cwd, err := os.Getwd(); err == nil && cwd != "" {
		return filepath.Join(cwd, historyFileName)
	}
	return historyFileName
}

// loadHistory reads the history file, oldest entry first. A missing or
// unreadable file yields no history.
func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// appendHistory adds one entry to the history file. readline maintains
// its own file; this is for the go-prompt backend, which does not.
func appendHistory(path, entry string) {
	if path == "" || entry == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, entry)
}
