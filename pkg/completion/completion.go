// Package completion provides prefix completion over the metric-name list
// fetched at startup, with adapters for both line-editor backends.
package completion

import (
	"strings"

	"github.com/c-bata/go-prompt"
)

// Separators are the rune boundaries used to find the word being completed,
// matching PromQL token boundaries.
const Separators = "(){}[]\" \t\n,="

// Completer suggests metric names for the query being typed. It performs no
// I/O and never mutates the list it was built with.
type Completer struct {
	metrics []string
}

// New creates a Completer over the given metric names.
func New(metrics []string) *Completer {
	return &Completer{metrics: metrics}
}

// Matches returns every metric name starting with prefix, in list order.
// The empty prefix matches all names.
func (c *Completer) Matches(prefix string) []string {
	out := make([]string, 0, len(c.metrics))
	for _, m := range c.metrics {
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
	}
	return out
}

// At returns the i-th (0-based) match for prefix. ok is false once i is
// past the last match, which tells the line editor to stop asking.
func (c *Completer) At(prefix string, i int) (name string, ok bool) {
	if i < 0 {
		return "", false
	}
	matches := c.Matches(prefix)
	if i >= len(matches) {
		return "", false
	}
	return matches[i], true
}

// Do implements readline.AutoCompleter. Candidates are returned as suffixes
// of the word left of the cursor together with the word length, the same
// contract readline's own PrefixCompleter follows.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	word := currentWord(string(line[:pos]))
	for _, m := range c.Matches(word) {
		newLine = append(newLine, []rune(m[len(word):]))
	}
	return newLine, len(word)
}

// Suggest implements the go-prompt completion callback.
func (c *Completer) Suggest(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursorUntilSeparator(Separators)
	matches := c.Matches(word)
	out := make([]prompt.Suggest, 0, len(matches))
	for _, m := range matches {
		out = append(out, prompt.Suggest{Text: m})
	}
	return out
}

// currentWord returns the trailing run of non-separator characters.
func currentWord(text string) string {
	start := len(text)
	for start > 0 && !strings.ContainsRune(Separators, rune(text[start-1])) {
		start--
	}
	return text[start:]
}
