// Package appflow wires the pieces together: storage, backend, search
// orchestrator and the terminal UI, plus the fuzzy pickers behind the
// -history and -watchlist flags.
package appflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pkg/errors"

	"github.com/a0929639992ca-hub/OTT/internal/gemini"
	"github.com/a0929639992ca-hub/OTT/internal/models"
	"github.com/a0929639992ca-hub/OTT/internal/poster"
	"github.com/a0929639992ca-hub/OTT/internal/search"
	"github.com/a0929639992ca-hub/OTT/internal/storage"
	"github.com/a0929639992ca-hub/OTT/internal/ui"
	"github.com/a0929639992ca-hub/OTT/internal/util"
)

// App holds the wired application.
type App struct {
	Store  *storage.SQLiteStore
	Lib    *storage.Library
	Orch   *search.Orchestrator
	Prober *poster.Prober
}

// DataDir resolves where the watchlist database lives. OTT_DATA_DIR
// overrides the per-user default.
func DataDir() (string, error) {
	if dir := os.Getenv("OTT_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, ".local", "share", "ottfinder"), nil
}

// Setup opens the database and builds the orchestrator over the Gemini
// backend.
func Setup() (*App, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(filepath.Join(dir, "ottfinder.db"))
	if err != nil {
		return nil, errors.Wrap(err, "opening watchlist database")
	}

	lib := storage.NewLibrary(store)
	return &App{
		Store:  store,
		Lib:    lib,
		Orch:   search.New(gemini.NewClient(), lib),
		Prober: poster.NewProber(),
	}, nil
}

// Close releases the database.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		util.Warn("closing watchlist database", "error", err)
	}
}

// RunTUI starts the interactive program. A non-empty query (possibly a
// pasted share link) is searched immediately.
func (a *App) RunTUI(query string) error {
	model := ui.New(a.Orch, a.Lib, a.Prober, search.UnwrapShareLink(query))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "running interface")
	}
	return nil
}

// PickRecent lets the user fuzzy-pick one of the recent searches and
// returns it as the startup query.
func (a *App) PickRecent() (string, error) {
	recent := a.Lib.Recent()
	if len(recent) == 0 {
		return "", errors.New("尚無搜尋紀錄")
	}

	idx, err := fuzzyfinder.Find(recent, func(i int) string {
		return recent[i]
	})
	if err != nil {
		return "", errors.Wrap(err, "picking recent search")
	}
	return recent[idx], nil
}

// PickWatchlist fuzzy-picks a saved entry, with the stored response text
// as the preview pane.
func (a *App) PickWatchlist() (models.WatchlistEntry, error) {
	entries := a.Lib.Watchlist()
	if len(entries) == 0 {
		return models.WatchlistEntry{}, errors.New("收藏片單是空的")
	}

	idx, err := fuzzyfinder.Find(entries,
		func(i int) string {
			if hl := entries[i].HighlightLine(); hl != "" {
				return fmt.Sprintf("%s  %s", entries[i].Title, hl)
			}
			return entries[i].Title
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, height int) string {
			if i < 0 {
				return ""
			}
			lines := strings.Split(entries[i].RawText, "\n")
			if len(lines) > height {
				lines = lines[:height]
			}
			return strings.Join(lines, "\n")
		}),
	)
	if err != nil {
		return models.WatchlistEntry{}, errors.Wrap(err, "picking watchlist entry")
	}
	return entries[idx], nil
}

// RunSaved opens the TUI directly on a stored entry, skipping the backend.
func (a *App) RunSaved(entry models.WatchlistEntry) error {
	a.Orch.ShowSaved(entry)
	return a.RunTUI("")
}
