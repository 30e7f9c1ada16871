package repl

import (
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"prom-cli/pkg/completion"
)

// readPromptQuery reads one query line using the go-prompt backend.
// go-prompt has no readline-style abort error, so an empty result is
// treated as an aborted or blank prompt.
func readPromptQuery(opts Options) (string, error) {
	completer := func(d prompt.Document) []prompt.Suggest {
		if opts.Completer == nil {
			return nil
		}
		return opts.Completer.Suggest(d)
	}

	line := prompt.Input("query> ", completer,
		prompt.OptionTitle("prom-cli"),
		prompt.OptionCompletionWordSeparator(completion.Separators),
		prompt.OptionHistory(loadHistory(opts.HistoryFile)),
		prompt.OptionMaxSuggestion(20),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)

	query := strings.TrimSpace(line)
	if query == "" {
		return "", ErrEmptyQuery
	}
	appendHistory(opts.HistoryFile, query)
	return query, nil
}
