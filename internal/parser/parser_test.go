package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `中文標題：沙丘：第二部
原文名稱：Dune: Part Two
**作品類別**：電影
上映年份：2024
作品類型：科幻, 動作
影評評分：8.8/10
海報連結：https://image.tmdb.org/poster.jpg.
亮點觀點：[視覺與敘事的極致結合]
劇情大綱：保羅·亞崔迪與弗瑞曼人聯手復仇。
串流平台供應與進度：
- Netflix：已上架
- CATCHPLAY+：可租借
`

func TestParseStructuredFields(t *testing.T) {
	result := Parse(sampleResponse)

	assert.False(t, result.NotFound)
	assert.Equal(t, "電影", result.Category)
	assert.Equal(t, "2024", result.Year)
	assert.Equal(t, []string{"科幻", "動作"}, result.Genres)
	assert.Equal(t, "8.8/10", result.Rating)
	assert.Equal(t, "視覺與敘事的極致結合", result.Highlight)
	assert.Equal(t, "保羅·亞崔迪與弗瑞曼人聯手復仇。", result.Summary)
}

func TestParsePosterTrailingPunctuationStripped(t *testing.T) {
	result := Parse(sampleResponse)
	assert.Equal(t, "https://image.tmdb.org/poster.jpg", result.PosterURL)
}

func TestParsePosterLineRemovedFromText(t *testing.T) {
	result := Parse(sampleResponse)
	assert.NotContains(t, result.RawText, "海報連結")
	assert.NotContains(t, result.RawText, "https://image.tmdb.org/poster.jpg")
	// other lines survive
	assert.Contains(t, result.RawText, "上映年份：2024")
}

func TestParseIdempotentCleanup(t *testing.T) {
	first := Parse(sampleResponse)
	second := Parse(first.RawText)
	assert.Equal(t, first.RawText, second.RawText)
	assert.Empty(t, second.PosterURL)
}

func TestParseDeterministic(t *testing.T) {
	a := Parse(sampleResponse)
	b := Parse(sampleResponse)
	assert.Equal(t, a, b)
}

func TestParseNotFoundSentinel(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare sentinel", "未在指定平台中找到此內容"},
		{"sentinel with surrounding prose", "很抱歉，未在指定平台中找到此內容。建議稍後再試。"},
		{"sentinel despite other labels", "上映年份：2024\n未在指定平台中找到此內容"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.text)
			assert.True(t, result.NotFound)
		})
	}
}

func TestParseFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"half-width colon", "上映年份: 1999", "1999"},
		{"full-width colon", "上映年份：1999", "1999"},
		{"bold label", "**上映年份**：1999", "1999"},
		{"bracketed value", "上映年份：[1999]", "1999"},
		{"padded value", "上映年份：  1999  ", "1999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text).Year)
		})
	}
}

func TestParseAbsentFieldsStayEmpty(t *testing.T) {
	result := Parse("一段沒有任何標籤的回覆文字。")
	assert.False(t, result.NotFound)
	assert.Empty(t, result.Category)
	assert.Empty(t, result.Year)
	assert.Empty(t, result.Rating)
	assert.Empty(t, result.Highlight)
	assert.Empty(t, result.Summary)
	assert.Nil(t, result.Genres)
	assert.Empty(t, result.PosterURL)
}

func TestSplitGenresSeparators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"half-width comma", "作品類型：科幻, 動作", []string{"科幻", "動作"}},
		{"full-width comma", "作品類型：科幻，動作", []string{"科幻", "動作"}},
		{"enumeration comma", "作品類型：科幻、動作、冒險", []string{"科幻", "動作", "冒險"}},
		{"whitespace", "作品類型：科幻 動作", []string{"科幻", "動作"}},
		{"mixed with empties", "作品類型：科幻,, ，動作", []string{"科幻", "動作"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text).Genres)
		})
	}
}

func TestParsePosterLabelVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"official poster label", "官方海報：https://image.tmdb.org/p.jpg"},
		{"english poster label", "Poster URL: https://image.tmdb.org/p.jpg"},
		{"english image label", "image url: https://image.tmdb.org/p.jpg"},
		{"bold label", "**海報連結**：https://image.tmdb.org/p.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.line)
			assert.Equal(t, "https://image.tmdb.org/p.jpg", result.PosterURL)
			assert.NotContains(t, result.RawText, "https://")
		})
	}
}

func TestParsePosterHostFallback(t *testing.T) {
	text := "找不到標準欄位，但文中提到 https://upload.wikimedia.org/wiki/poster.png 這張圖。"
	result := Parse(text)
	assert.Equal(t, "https://upload.wikimedia.org/wiki/poster.png", result.PosterURL)
	// fallback matches are not labeled lines, so the text keeps them
	assert.Contains(t, result.RawText, "upload.wikimedia.org")
}

func TestParsePosterFallbackIgnoresUnknownHosts(t *testing.T) {
	result := Parse("圖片在 https://example.com/poster.jpg")
	assert.Empty(t, result.PosterURL)
}

func TestParsePosterStripIsGlobal(t *testing.T) {
	text := "海報連結：https://image.tmdb.org/a.jpg\n中段文字\n官方海報：https://image.tmdb.org/b.jpg\n尾段"
	result := Parse(text)
	require.NotEmpty(t, result.PosterURL)
	assert.False(t, strings.Contains(result.RawText, "https://"))
	assert.Contains(t, result.RawText, "中段文字")
	assert.Contains(t, result.RawText, "尾段")
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://a/p.jpg.", "https://a/p.jpg"},
		{"https://a/p.jpg),", "https://a/p.jpg"},
		{"https://a/p.jpg**", "https://a/p.jpg"},
		{"https://a/p.jpg]! ", "https://a/p.jpg"},
		{"https://a/p.jpg", "https://a/p.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeURL(tt.in))
	}
}
