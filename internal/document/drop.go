package document

import (
	"net/url"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ParseDropped splits text pasted into the terminal, which is how terminals
// deliver dragged files, into paths. Lines may hold several shell-quoted or
// backslash-escaped paths; file:// URIs are decoded.
func ParseDropped(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words, err := shellwords.Parse(line)
		if err != nil || len(words) == 0 {
			words = []string{line}
		}
		for _, w := range words {
			if p := normalizeDropped(w); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func normalizeDropped(w string) string {
	w = strings.TrimSpace(w)
	if !strings.HasPrefix(w, "file://") {
		return w
	}
	u, err := url.Parse(w)
	if err != nil {
		return strings.TrimPrefix(w, "file://")
	}
	return u.Path
}
