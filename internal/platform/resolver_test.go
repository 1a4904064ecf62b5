package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a0929639992ca-hub/OTT/internal/models"
)

func TestResolveDeduplicatesMentions(t *testing.T) {
	text := "Netflix 已上架。Netflix 提供 4K。快去 Netflix 看吧。"
	links := Resolve(text, nil, Registry)

	require.Len(t, links, 1)
	assert.Equal(t, "Netflix", links[0].Name)
	assert.Equal(t, "https://www.netflix.com/", links[0].URL)
}

func TestResolveFollowsRegistryOrder(t *testing.T) {
	// mention order in the text is reversed relative to the registry
	text := "可在 myVideo 與 KKTV 以及 Netflix 觀看"
	links := Resolve(text, nil, Registry)

	require.Len(t, links, 3)
	assert.Equal(t, "Netflix", links[0].Name)
	assert.Equal(t, "KKTV", links[1].Name)
	assert.Equal(t, "myVideo", links[2].Name)
}

func TestResolveCaseInsensitive(t *testing.T) {
	links := Resolve("available on NETFLIX and kktv", nil, Registry)
	require.Len(t, links, 2)
	assert.Equal(t, "Netflix", links[0].Name)
	assert.Equal(t, "KKTV", links[1].Name)
}

func TestResolveCitationOverrideByTitle(t *testing.T) {
	citations := []models.Citation{
		{URI: "https://news.example.com/article", Title: "上架消息"},
		{URI: "https://www.netflix.com/title/81234567", Title: "Netflix 正式頁面"},
	}
	links := Resolve("Netflix 已上架", citations, Registry)

	require.Len(t, links, 1)
	assert.Equal(t, "https://www.netflix.com/title/81234567", links[0].URL)
}

func TestResolveCitationOverrideByCompactURL(t *testing.T) {
	// "LINE TV" matches linetv.tw only once spaces are stripped
	citations := []models.Citation{
		{URI: "https://www.linetv.tw/drama/12345", Title: "戲劇頁"},
	}
	links := Resolve("LINE TV 獨家", citations, Registry)

	require.Len(t, links, 1)
	assert.Equal(t, "https://www.linetv.tw/drama/12345", links[0].URL)
}

func TestResolveFirstMatchingCitationWins(t *testing.T) {
	citations := []models.Citation{
		{URI: "https://www.kktv.me/a", Title: "KKTV page A"},
		{URI: "https://www.kktv.me/b", Title: "KKTV page B"},
	}
	links := Resolve("KKTV 上架", citations, Registry)

	require.Len(t, links, 1)
	assert.Equal(t, "https://www.kktv.me/a", links[0].URL)
}

func TestResolveFallsBackToCanonicalURL(t *testing.T) {
	citations := []models.Citation{
		{URI: "https://blog.example.com/review", Title: "影評"},
	}
	links := Resolve("Disney+ 獨家上架", citations, Registry)

	require.Len(t, links, 1)
	assert.Equal(t, "https://www.disneyplus.com/", links[0].URL)
}

func TestResolveNoMentionsNoLinks(t *testing.T) {
	assert.Empty(t, Resolve("這部片尚未在任何平台上架", nil, Registry))
}

func TestResolveResultSkipsNotFound(t *testing.T) {
	parsed := &models.ParsedResult{
		RawText:  "Netflix 未在指定平台中找到此內容",
		NotFound: true,
	}
	assert.Nil(t, ResolveResult(parsed))
}

func TestFaviconURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/s2/favicons?domain=www.netflix.com&sz=128",
		FaviconURL("https://www.netflix.com/title/81234567"))
}

func TestFaviconURLMalformedTargetStillBuilds(t *testing.T) {
	got := FaviconURL("::not a url::")
	assert.Contains(t, got, "https://www.google.com/s2/favicons?domain=")
}

func TestLinkIconMatchesResolvedTarget(t *testing.T) {
	citations := []models.Citation{
		{URI: "https://www.kktv.me/play/123", Title: "KKTV"},
	}
	links := Resolve("KKTV", citations, Registry)
	require.Len(t, links, 1)
	assert.Equal(t, FaviconURL("https://www.kktv.me/play/123"), links[0].IconURL)
}
