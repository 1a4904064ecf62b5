// Package ui is the terminal front end: a search box, the result card and
// the watchlist, driven by the search orchestrator.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/a0929639992ca-hub/OTT/internal/poster"
	"github.com/a0929639992ca-hub/OTT/internal/search"
	"github.com/a0929639992ca-hub/OTT/internal/storage"
)

type view int

const (
	viewSearch view = iota
	viewWatchlist
)

type (
	// startSearchMsg kicks off a search from Init (deep links) or a key press.
	startSearchMsg struct {
		query string
	}

	// probePosterMsg starts a poster probe for an already-current result,
	// used when the app starts on a restored watchlist entry.
	probePosterMsg struct{}

	// searchDoneMsg resumes the orchestrator on the control goroutine. All
	// state mutation happens here, never in the command goroutine.
	searchDoneMsg struct {
		seq    int
		result *search.Result
		err    error
	}

	posterMsg struct {
		seq     int
		display poster.Display
	}

	downloadDoneMsg struct {
		path string
		err  error
	}
)

// Model is the Bubble Tea model for the whole app.
type Model struct {
	orch   *search.Orchestrator
	lib    *storage.Library
	prober *poster.Prober

	input textinput.Model
	spin  spinner.Model

	view          view
	cursor        int
	poster        poster.Display
	posterPending bool
	status        string
	width         int
	initialQuery  string
}

// New builds the model. A non-empty initialQuery (CLI argument or unwrapped
// share link) is searched immediately on startup.
func New(orch *search.Orchestrator, lib *storage.Library, prober *poster.Prober, initialQuery string) Model {
	ti := textinput.New()
	ti.Placeholder = "輸入片名、影集或心情關鍵字…"
	ti.CharLimit = 100
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = badgeStyle

	return Model{
		orch:         orch,
		lib:          lib,
		prober:       prober,
		input:        ti,
		spin:         sp,
		initialQuery: strings.TrimSpace(initialQuery),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialQuery != "" {
		query := m.initialQuery
		cmds = append(cmds, func() tea.Msg { return startSearchMsg{query: query} })
	} else if res := m.orch.Current(); res != nil && res.Parsed.PosterURL != "" {
		cmds = append(cmds, func() tea.Msg { return probePosterMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case startSearchMsg:
		return m.startSearch(msg.query)

	case probePosterMsg:
		if res := m.orch.Current(); res != nil && res.Parsed.PosterURL != "" {
			m.input.SetValue(res.Query)
			m.posterPending = true
			return m, tea.Batch(m.spin.Tick, m.resolvePosterCmd(m.orch.Seq(), res.Parsed.PosterURL))
		}
		return m, nil

	case searchDoneMsg:
		latest := m.orch.Complete(msg.seq, msg.result, msg.err)
		m.poster = poster.Display{}
		m.posterPending = false
		if latest && m.orch.State() == search.StateSuccess && msg.result.Parsed.PosterURL != "" {
			m.posterPending = true
			return m, tea.Batch(m.spin.Tick, m.resolvePosterCmd(msg.seq, msg.result.Parsed.PosterURL))
		}
		return m, nil

	case posterMsg:
		if msg.seq != m.orch.Seq() {
			// a newer search or saved entry took over; drop the stale probe
			return m, nil
		}
		m.posterPending = false
		m.poster = msg.display
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("海報下載失敗: " + msg.err.Error())
		} else {
			m.status = savedStyle.Render("海報已儲存: " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if m.orch.State() == search.StateSearching || m.posterPending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.view == viewSearch {
			m.view = viewWatchlist
		} else {
			m.view = viewSearch
		}
		m.cursor = 0
		m.status = ""
		return m, nil
	}

	if m.view == viewWatchlist {
		return m.handleWatchlistKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := m.lib.Recent()
	onIdleList := m.orch.State() == search.StateIdle && len(recent) > 0

	switch msg.String() {
	case "enter":
		// empty input on the dashboard re-runs the selected recent search
		if strings.TrimSpace(m.input.Value()) == "" && onIdleList {
			return m.startSearch(recent[min(m.cursor, len(recent)-1)])
		}
		return m.startSearch(m.input.Value())

	case "up":
		if onIdleList && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if onIdleList && m.cursor < len(recent)-1 {
			m.cursor++
		}
		return m, nil

	case "ctrl+r":
		if onIdleList {
			m.lib.RemoveRecent(recent[min(m.cursor, len(recent)-1)])
			if m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil

	case "esc":
		if m.orch.State() == search.StateError {
			m.orch.Retry()
		}
		m.input.SetValue("")
		m.status = ""
		return m, nil

	case "ctrl+s":
		if res := m.orch.Current(); res != nil && !res.Parsed.NotFound {
			if m.lib.Toggle(res.WatchlistEntry()) {
				m.status = savedStyle.Render("⭐ 已加入收藏片單")
			} else {
				m.status = dimStyle.Render("已自收藏片單移除")
			}
		}
		return m, nil

	case "ctrl+l":
		if res := m.orch.Current(); res != nil {
			m.status = "分享連結: " + linkStyle.Render(search.ShareLink(res.Query))
		}
		return m, nil

	case "ctrl+d":
		if res := m.orch.Current(); res != nil && m.poster.URL != "" {
			dest := fmt.Sprintf("%s_海報.jpg", res.Query)
			return m, m.downloadCmd(m.poster.URL, dest)
		}
		return m, nil

	case "ctrl+x":
		if m.orch.State() == search.StateIdle {
			m.lib.ClearRecent()
			m.status = dimStyle.Render("已清空搜尋紀錄")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleWatchlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.lib.Watchlist()
	switch msg.String() {
	case "q", "esc":
		m.view = viewSearch
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
		return m, nil
	case "x":
		if m.cursor < len(entries) {
			m.lib.Toggle(entries[m.cursor])
			if m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil
	case "enter":
		if m.cursor < len(entries) {
			entry := entries[m.cursor]
			res := m.orch.ShowSaved(entry)
			m.view = viewSearch
			m.input.SetValue(entry.Title)
			m.poster = poster.Display{}
			m.posterPending = false
			if res.Parsed.PosterURL != "" {
				m.posterPending = true
				return m, tea.Batch(m.spin.Tick, m.resolvePosterCmd(m.orch.Seq(), res.Parsed.PosterURL))
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) startSearch(query string) (tea.Model, tea.Cmd) {
	seq, ok := m.orch.Begin(query)
	if !ok {
		return m, nil
	}
	m.view = viewSearch
	m.cursor = 0
	m.poster = poster.Display{}
	m.posterPending = false
	m.status = ""
	m.input.SetValue(strings.TrimSpace(query))
	return m, tea.Batch(m.spin.Tick, m.searchCmd(seq, query))
}

func (m Model) searchCmd(seq int, query string) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		result, err := orch.Execute(context.Background(), query)
		return searchDoneMsg{seq: seq, result: result, err: err}
	}
}

func (m Model) resolvePosterCmd(seq int, canonical string) tea.Cmd {
	prober := m.prober
	return func() tea.Msg {
		return posterMsg{seq: seq, display: prober.Resolve(context.Background(), canonical)}
	}
}

func (m Model) downloadCmd(displayURL, dest string) tea.Cmd {
	prober := m.prober
	return func() tea.Msg {
		err := prober.Download(context.Background(), displayURL, dest)
		return downloadDoneMsg{path: dest, err: err}
	}
}
