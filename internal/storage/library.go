package storage

import (
	"encoding/json"
	"strings"

	"github.com/a0929639992ca-hub/OTT/internal/models"
	"github.com/a0929639992ca-hub/OTT/internal/util"
)

// Storage keys, kept identical to the original web client's localStorage
// keys so an exported dump round-trips.
const (
	watchlistKey = "streamfinder_watchlist"
	recentKey    = "streamfinder_recent_searches"
)

// maxRecentSearches caps the recent-search log.
const maxRecentSearches = 10

// Library is the in-memory view of the two persisted collections. It loads
// both once at startup and writes the affected collection back after every
// mutation. A corrupted value is discarded with a warning and the
// collection starts empty; the two collections load and fail independently.
//
// Library is not safe for concurrent use. All mutations happen on the UI
// control goroutine at well-defined resume points.
type Library struct {
	store     Store
	watchlist []models.WatchlistEntry
	recent    []string
}

// NewLibrary loads both collections from the store.
func NewLibrary(store Store) *Library {
	l := &Library{store: store}
	l.loadWatchlist()
	l.loadRecent()
	return l
}

func (l *Library) loadWatchlist() {
	raw, ok, err := l.store.Get(watchlistKey)
	if err != nil {
		util.Warn("Failed to read watchlist from store:", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), &l.watchlist); err != nil {
		util.Warn("Discarding corrupted watchlist data:", err)
		l.watchlist = nil
	}
}

func (l *Library) loadRecent() {
	raw, ok, err := l.store.Get(recentKey)
	if err != nil {
		util.Warn("Failed to read recent searches from store:", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), &l.recent); err != nil {
		util.Warn("Discarding corrupted recent-search data:", err)
		l.recent = nil
	}
}

// Watchlist returns the saved entries, most recently added first.
func (l *Library) Watchlist() []models.WatchlistEntry {
	out := make([]models.WatchlistEntry, len(l.watchlist))
	copy(out, l.watchlist)
	return out
}

// Recent returns the recent queries, most recent first.
func (l *Library) Recent() []string {
	out := make([]string, len(l.recent))
	copy(out, l.recent)
	return out
}

// InWatchlist reports whether a title is saved.
func (l *Library) InWatchlist(title string) bool {
	for _, e := range l.watchlist {
		if e.Title == title || e.ID == title {
			return true
		}
	}
	return false
}

// Toggle removes the entry when its title is already saved, otherwise
// inserts it at the front. This is the only watchlist mutation.
// Returns true when the entry was added.
func (l *Library) Toggle(entry models.WatchlistEntry) bool {
	for i, e := range l.watchlist {
		if e.ID == entry.ID || e.Title == entry.Title {
			l.watchlist = append(l.watchlist[:i], l.watchlist[i+1:]...)
			l.saveWatchlist()
			return false
		}
	}
	l.watchlist = append([]models.WatchlistEntry{entry}, l.watchlist...)
	l.saveWatchlist()
	return true
}

// RecordSearch moves the query to the front of the recent log, dropping an
// existing occurrence and anything beyond the cap.
func (l *Library) RecordSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	filtered := make([]string, 0, len(l.recent)+1)
	filtered = append(filtered, query)
	for _, q := range l.recent {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > maxRecentSearches {
		filtered = filtered[:maxRecentSearches]
	}
	l.recent = filtered
	l.saveRecent()
}

// RemoveRecent drops a single query from the recent log.
func (l *Library) RemoveRecent(query string) {
	filtered := l.recent[:0]
	for _, q := range l.recent {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	l.recent = filtered
	l.saveRecent()
}

// ClearRecent empties the recent log and removes its stored value.
func (l *Library) ClearRecent() {
	l.recent = nil
	if err := l.store.Delete(recentKey); err != nil {
		util.Warn("Failed to clear recent searches:", err)
	}
}

func (l *Library) saveWatchlist() {
	l.save(watchlistKey, l.watchlist)
}

func (l *Library) saveRecent() {
	l.save(recentKey, l.recent)
}

// save serializes the whole collection and writes it through. Store
// failures are logged, never propagated: losing a write degrades
// durability, not the session.
func (l *Library) save(key string, collection interface{}) {
	data, err := json.Marshal(collection)
	if err != nil {
		util.Warn("Failed to serialize collection:", err)
		return
	}
	if err := l.store.Set(key, string(data)); err != nil {
		util.Warn("Failed to persist collection:", err)
	}
}
