package picker

import (
	"net/url"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ParseDropped splits the text a terminal pastes when files are dragged onto
// it. Terminals shell-quote each path; some send file:// URIs instead.
func ParseDropped(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	words, err := shellquote.Split(text)
	if err != nil {
		words = []string{text}
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if u, err := url.Parse(w); err == nil && u.Scheme == "file" {
			w = u.Path
		}
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// FirstDropped returns the first dropped path; only one file is uploaded.
func FirstDropped(text string) (string, bool) {
	paths := ParseDropped(text)
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}
