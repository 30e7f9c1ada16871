// Package repl reads a single query line from the user, with tab
// completion over known metric names and persistent history.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"prom-cli/pkg/completion"
)

var (
	// ErrEmptyQuery is returned when the user submits a blank line.
	ErrEmptyQuery = errors.New("no query entered")
	// ErrInterrupted is returned when the user aborts the prompt
	// (Ctrl-C or Ctrl-D).
	ErrInterrupted = errors.New("input interrupted")
)

// Options controls how a query line is read.
type Options struct {
	// Backend selects the line editor: "readline" or "prompt".
	Backend string
	// HistoryFile persists submitted queries across invocations.
	HistoryFile string
	// Completer provides tab completion candidates.
	Completer *completion.Completer
}

// ReadQuery prompts the user for one query line on the selected backend.
// Blank input yields ErrEmptyQuery; an aborted prompt yields
// ErrInterrupted.
func ReadQuery(opts Options) (string, error) {
	switch opts.Backend {
	case "prompt":
		return readPromptQuery(opts)
	case "", "readline":
		return readReadlineQuery(opts)
	default:
		return "", fmt.Errorf("unknown repl backend %q", opts.Backend)
	}
}

func readReadlineQuery(opts Options) (string, error) {
	cfg := &readline.Config{
		Prompt:          "query> ",
		HistoryFile:     opts.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if opts.Completer != nil {
		cfg.AutoComplete = opts.Completer
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("reading input: %w", err)
	}

	query := strings.TrimSpace(line)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}

// ReadPlain reads one line from r without any line editing. It is the
// fallback when stdin is not a terminal.
func ReadPlain(r io.Reader) (string, error) {
	fmt.Fprint(os.Stderr, "query> ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrInterrupted
	}
	query := strings.TrimSpace(scanner.Text())
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}
