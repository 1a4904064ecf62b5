// Package models contains the data structures shared across ottfinder
package models

import "strings"

// Citation is a grounding source returned alongside a generated answer.
// Order follows the relevance ordering of the backend and is preserved
// everywhere citations travel.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// RawResponse is the opaque result of one generative search call.
type RawResponse struct {
	Text      string
	Citations []Citation
}

// ParsedResult holds the structured fields extracted from a raw response.
// Every field is optional; an empty string (or nil slice) means the label
// was absent from the text. Instances are built once and never mutated.
type ParsedResult struct {
	RawText   string
	Category  string
	Year      string
	Genres    []string
	Rating    string
	Highlight string
	Summary   string
	PosterURL string
	Citations []Citation
	NotFound  bool
}

// maxDisplayGenres limits how many genre chips the UI shows
const maxDisplayGenres = 3

// DisplayGenres returns at most the first three genres for rendering.
// The full list stays available on the struct.
func (p *ParsedResult) DisplayGenres() []string {
	if len(p.Genres) <= maxDisplayGenres {
		return p.Genres
	}
	return p.Genres[:maxDisplayGenres]
}

// PlatformLink is one clickable streaming platform resolved from a response.
type PlatformLink struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	IconURL string `json:"logoUrl"`
}

// WatchlistEntry is a saved search result. The title doubles as the entry
// ID, so the watchlist holds at most one entry per title. JSON tags keep
// the serialized form compatible with the original web client's storage.
type WatchlistEntry struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	PosterURL string     `json:"posterUrl"`
	RawText   string     `json:"text"`
	Citations []Citation `json:"sources"`
}

// HighlightLine digs the one-sentence 亮點 blurb out of the stored text for
// the watchlist listing. Returns empty when the label is missing.
func (w *WatchlistEntry) HighlightLine() string {
	_, after, found := strings.Cut(w.RawText, "亮點")
	if !found {
		return ""
	}
	line := after
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimPrefix(line, "觀點")
	line = strings.TrimLeft(line, "：: ")
	return strings.TrimSpace(line)
}
