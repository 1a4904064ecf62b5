package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/a0929639992ca-hub/OTT/internal/platform"
	"github.com/a0929639992ca-hub/OTT/internal/poster"
	"github.com/a0929639992ca-hub/OTT/internal/search"
)

const bodyWidth = 76

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render("STREAMFINDER"))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render("台灣串流平台搜尋"))
	b.WriteString("\n\n")

	if m.view == viewWatchlist {
		b.WriteString(m.watchlistView())
	} else {
		b.WriteString(m.searchView())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.orch.State() {
	case search.StateSearching:
		b.WriteString(m.spin.View())
		b.WriteString(bodyStyle.Render(" 正在搜尋各大平台…"))
		b.WriteString("\n")
	case search.StateSuccess:
		b.WriteString(m.resultCard())
	case search.StateNotFound:
		b.WriteString(warnStyle.Render("未在指定平台中找到此內容"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("換個關鍵字或中英文片名再試一次。"))
		b.WriteString("\n")
	case search.StateError:
		b.WriteString(m.errorView())
	default:
		b.WriteString(m.idleView())
	}
	return b.String()
}

func (m Model) idleView() string {
	var b strings.Builder

	if recent := m.lib.Recent(); len(recent) > 0 {
		b.WriteString(sectionStyle.Render("最近搜尋"))
		b.WriteString(dimStyle.Render("  (↑/↓ 選取 · enter 重新搜尋 · ctrl+r 移除)"))
		b.WriteString("\n")
		for i, q := range recent {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("▸ "+q) + "\n")
			} else {
				b.WriteString(dimStyle.Render("  · ") + bodyStyle.Render(q) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("現在想看什麼？"))
	b.WriteString("\n")
	b.WriteString(chips(MoodTags))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("熱門搜尋"))
	b.WriteString("\n")
	b.WriteString(chips(SuggestedTitles))
	b.WriteString("\n\n")

	names := platform.Names()
	shown := names
	if len(shown) > 12 {
		shown = shown[:12]
	}
	b.WriteString(sectionStyle.Render("支援平台"))
	b.WriteString("\n")
	line := strings.Join(shown, " · ")
	if len(names) > len(shown) {
		line += fmt.Sprintf(" 等 %d 個平台", len(names))
	}
	b.WriteString(dimStyle.Width(bodyWidth).Render(line))
	b.WriteString("\n")
	return b.String()
}

func (m Model) resultCard() string {
	res := m.orch.Current()
	if res == nil {
		return ""
	}
	parsed := res.Parsed

	var b strings.Builder

	title := titleStyle.Render(res.Query)
	if m.lib.InWatchlist(res.Query) {
		title += " " + savedStyle.Render("⭐ 已收藏")
	}
	b.WriteString(title + "\n")

	var badges []string
	if parsed.Category != "" {
		badges = append(badges, badgeStyle.Render(parsed.Category))
	}
	if parsed.Year != "" {
		badges = append(badges, chipStyle.Render(parsed.Year))
	}
	if parsed.Rating != "" {
		badges = append(badges, ratingStyle.Render("★ "+parsed.Rating))
	}
	for _, genre := range parsed.DisplayGenres() {
		badges = append(badges, chipStyle.Render(genre))
	}
	if len(badges) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, interleave(badges)...))
		b.WriteString("\n")
	}

	if parsed.Highlight != "" {
		b.WriteString("\n" + warnStyle.Render("💡 ") + bodyStyle.Width(bodyWidth).Render(parsed.Highlight) + "\n")
	}
	if parsed.Summary != "" {
		b.WriteString("\n" + bodyStyle.Width(bodyWidth).Render(parsed.Summary) + "\n")
	} else if parsed.Highlight == "" {
		b.WriteString("\n" + bodyStyle.Width(bodyWidth).Render(parsed.RawText) + "\n")
	}

	b.WriteString("\n" + m.posterLine(parsed.PosterURL) + "\n")

	if len(res.Platforms) > 0 {
		b.WriteString("\n" + sectionStyle.Render("可觀看平台") + "\n")
		for _, link := range res.Platforms {
			b.WriteString("  " + titleStyle.Render(link.Name))
			b.WriteString("  " + linkStyle.Render(link.URL) + "\n")
		}
	}

	if len(parsed.Citations) > 0 {
		b.WriteString("\n" + sectionStyle.Render("資料來源") + "\n")
		for _, c := range parsed.Citations {
			label := c.Title
			if label == "" {
				label = c.URI
			}
			b.WriteString(dimStyle.Render("  · ") + bodyStyle.Render(label))
			b.WriteString(" " + dimStyle.Render(c.URI) + "\n")
		}
	}

	return cardStyle.Render(b.String()) + "\n"
}

func (m Model) posterLine(canonical string) string {
	if canonical == "" {
		return dimStyle.Render("🎬 無海報")
	}
	if m.posterPending {
		return m.spin.View() + dimStyle.Render(" 檢查海報連結…")
	}
	switch m.poster.Status {
	case poster.StatusDirect:
		return dimStyle.Render("海報 ") + linkStyle.Render(m.poster.URL)
	case poster.StatusProxied:
		return dimStyle.Render("海報(代理) ") + linkStyle.Render(m.poster.URL)
	case poster.StatusFailed:
		return dimStyle.Render("🎬 海報連結已失效")
	}
	return dimStyle.Render("海報 ") + dimStyle.Render(canonical)
}

func (m Model) errorView() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("❌ " + m.orch.ErrMessage()))
	b.WriteString("\n")
	if m.orch.Credential() {
		b.WriteString(dimStyle.Render("   在 .env 或環境變數中設定 GEMINI_API_KEY 後重新啟動。"))
	} else {
		b.WriteString(dimStyle.Render("   按 esc 返回後再試一次。"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) watchlistView() string {
	entries := m.lib.Watchlist()

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("收藏片單 (%d)", len(entries))))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("尚無收藏。搜尋後按 ctrl+s 加入。"))
		b.WriteString("\n")
		return b.String()
	}

	for i, entry := range entries {
		marker := "  " + bodyStyle.Render(entry.Title)
		if i == m.cursor {
			marker = selectedStyle.Render("▸ " + entry.Title)
		}
		if hl := entry.HighlightLine(); hl != "" {
			marker += dimStyle.Render("  " + hl)
		}
		b.WriteString(marker + "\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	if m.view == viewWatchlist {
		return dimStyle.Render("↑/↓ 移動 · enter 開啟 · x 移除 · tab 返回搜尋 · ctrl+c 離開")
	}
	return dimStyle.Render("enter 搜尋 · tab 收藏片單 · ctrl+s 收藏 · ctrl+l 分享 · ctrl+d 下載海報 · ctrl+x 清除紀錄 · ctrl+c 離開")
}

func chips(items []string) string {
	rendered := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			rendered = append(rendered, " ")
		}
		rendered = append(rendered, chipStyle.Render(item))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

func interleave(badges []string) []string {
	out := make([]string, 0, len(badges)*2)
	for i, badge := range badges {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, badge)
	}
	return out
}
