// Package search coordinates one search round trip: query validation,
// the backend call, parsing, platform resolution and the state machine
// the UI renders from.
package search

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/a0929639992ca-hub/OTT/internal/gemini"
	"github.com/a0929639992ca-hub/OTT/internal/models"
	"github.com/a0929639992ca-hub/OTT/internal/parser"
	"github.com/a0929639992ca-hub/OTT/internal/platform"
	"github.com/a0929639992ca-hub/OTT/internal/storage"
	"github.com/a0929639992ca-hub/OTT/internal/util"
)

// State is the orchestrator's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateSuccess
	StateNotFound
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSearching:
		return "SEARCHING"
	case StateSuccess:
		return "SUCCESS"
	case StateNotFound:
		return "NOT_FOUND"
	case StateError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Backend is the external generative search collaborator.
type Backend interface {
	Search(ctx context.Context, query string) (*models.RawResponse, error)
}

// Result is one finished search: the parsed response plus resolved
// platform links, tagged with the query that produced it.
type Result struct {
	Query     string
	Parsed    *models.ParsedResult
	Platforms []models.PlatformLink
}

// Orchestrator owns the search state. Begin/Complete must run on the UI
// control goroutine; Execute is side-effect free and may run anywhere.
// Overlapping searches are not serialized: whichever Complete lands last
// wins the state, and the sequence number only tells callers a completion
// was stale.
type Orchestrator struct {
	backend Backend
	lib     *storage.Library

	state      State
	seq        int
	current    *Result
	errMessage string
	credential bool
}

// New builds an orchestrator over the given backend and library.
func New(backend Backend, lib *storage.Library) *Orchestrator {
	return &Orchestrator{backend: backend, lib: lib, state: StateIdle}
}

func (o *Orchestrator) State() State        { return o.state }
func (o *Orchestrator) Current() *Result    { return o.current }
func (o *Orchestrator) ErrMessage() string  { return o.errMessage }
func (o *Orchestrator) Credential() bool    { return o.credential }
func (o *Orchestrator) Seq() int            { return o.seq }

// Begin starts a search: validates the query, records it in the recent
// log, clears the previous result and moves to SEARCHING. An empty query
// is a no-op and leaves the state untouched. Returns the sequence number
// to hand back to Complete.
func (o *Orchestrator) Begin(query string) (int, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, false
	}

	o.lib.RecordSearch(query)
	o.seq++
	o.state = StateSearching
	o.current = nil
	o.errMessage = ""
	o.credential = false
	util.Debug("search started", "query", query, "seq", o.seq)
	return o.seq, true
}

// Execute performs the backend call and builds the result. It never
// touches orchestrator state, so it is safe to run off the control
// goroutine.
func (o *Orchestrator) Execute(ctx context.Context, query string) (*Result, error) {
	raw, err := o.backend.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	parsed := parser.Parse(raw.Text)
	parsed.Citations = raw.Citations

	return &Result{
		Query:     strings.TrimSpace(query),
		Parsed:    parsed,
		Platforms: platform.ResolveResult(parsed),
	}, nil
}

// Complete applies a finished search to the state machine. Stale
// completions still apply (last resolved wins); the return value reports
// whether the completion was the latest one.
func (o *Orchestrator) Complete(seq int, result *Result, err error) bool {
	latest := seq == o.seq
	if !latest {
		util.Debug("stale search completion overwrites state", "seq", seq, "latest", o.seq)
	}

	if err != nil {
		o.state = StateError
		o.current = nil
		o.credential = errors.Is(err, gemini.ErrCredential)
		if o.credential {
			o.errMessage = "API 金鑰無效或未設定，請重新設定 GEMINI_API_KEY 後再試"
		} else {
			o.errMessage = "搜尋失敗：" + err.Error()
		}
		return latest
	}

	o.current = result
	if result.Parsed.NotFound {
		o.state = StateNotFound
	} else {
		o.state = StateSuccess
	}
	return latest
}

// Retry acknowledges an error and returns to IDLE. Only meaningful from
// the ERROR state.
func (o *Orchestrator) Retry() {
	if o.state != StateError {
		return
	}
	o.state = StateIdle
	o.errMessage = ""
	o.credential = false
}

// ShowSaved restores a watchlist entry as the current result without a
// backend round trip. The saved raw text is re-parsed so the card renders
// exactly as it did when the entry was stored. Bumping the sequence number
// marks any in-flight poster probe as stale.
func (o *Orchestrator) ShowSaved(entry models.WatchlistEntry) *Result {
	parsed := parser.Parse(entry.RawText)
	parsed.Citations = entry.Citations
	parsed.PosterURL = entry.PosterURL

	result := &Result{
		Query:     entry.Title,
		Parsed:    parsed,
		Platforms: platform.ResolveResult(parsed),
	}
	o.seq++
	o.state = StateSuccess
	o.current = result
	o.errMessage = ""
	o.credential = false
	return result
}

// Search runs one search synchronously: Begin, Execute, Complete. Used by
// the one-shot CLI path and tests; the TUI splits the steps across the
// event loop instead.
func (o *Orchestrator) Search(ctx context.Context, query string) (*Result, error) {
	seq, ok := o.Begin(query)
	if !ok {
		return nil, nil
	}
	result, err := o.Execute(ctx, query)
	o.Complete(seq, result, err)
	return result, err
}

// WatchlistEntry converts a result into its persistable form. Only the
// essential fields are copied; the displayed (possibly proxied) poster URL
// is never the one stored.
func (r *Result) WatchlistEntry() models.WatchlistEntry {
	return models.WatchlistEntry{
		ID:        r.Query,
		Title:     r.Query,
		PosterURL: r.Parsed.PosterURL,
		RawText:   r.Parsed.RawText,
		Citations: r.Parsed.Citations,
	}
}
