package search

import (
	"net/url"
	"strings"
)

// shareBase is the public web front end the share links point at.
const shareBase = "https://streamfinder.tw/"

// ShareLink builds a shareable deep link that re-triggers the same search
// when opened (or pasted back into this tool as the query argument).
func ShareLink(query string) string {
	return shareBase + "?q=" + url.QueryEscape(query)
}

// UnwrapShareLink extracts the query from a pasted deep link. Anything
// that is not an http(s) URL with a q parameter passes through unchanged,
// so plain titles are unaffected.
func UnwrapShareLink(arg string) string {
	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		return arg
	}
	u, err := url.Parse(arg)
	if err != nil {
		return arg
	}
	if q := strings.TrimSpace(u.Query().Get("q")); q != "" {
		return q
	}
	return arg
}
