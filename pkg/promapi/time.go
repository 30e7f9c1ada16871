package promapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime parses a range boundary argument: "now", "now±duration",
// RFC3339, or unix seconds/milliseconds.
func ParseTime(tok string) (time.Time, error) {
	if strings.HasPrefix(tok, "now") {
		if tok == "now" {
			return time.Now(), nil
		}
		if len(tok) < 5 || (tok[3] != '+' && tok[3] != '-') {
			return time.Time{}, fmt.Errorf("unsupported time format: %s", tok)
		}
		d, err := time.ParseDuration(strings.TrimSpace(tok[4:]))
		if err != nil {
			return time.Time{}, err
		}
		if tok[3] == '+' {
			return time.Now().Add(d), nil
		}
		return time.Now().Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, tok); err == nil {
		return t, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		if n > 1_000_000_000_000 { // ms
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", tok)
}
