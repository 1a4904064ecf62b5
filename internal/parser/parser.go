// Package parser turns the free-form answer text returned by the search
// backend into a structured result. Extraction is best effort: a missing
// label yields an absent field, never an error, so parsing cannot fail.
package parser

import (
	"regexp"
	"strings"

	"github.com/a0929639992ca-hub/OTT/internal/models"
)

// NotFoundSentinel is the exact phrase the backend is instructed to reply
// with when a title is unavailable on every known platform.
const NotFoundSentinel = "未在指定平台中找到此內容"

// Field labels the backend is prompted to emit, one per line, followed by a
// half-width or full-width colon.
const (
	labelCategory  = "作品類別"
	labelYear      = "上映年份"
	labelGenre     = "作品類型"
	labelRating    = "影評評分"
	labelHighlight = "亮點觀點"
	labelSummary   = "劇情大綱"
)

var (
	// poster line, strict form: one of the poster labels, a colon, then a URL
	posterLineRe = regexp.MustCompile(`(?i)(?:海報連結|官方海報|Poster URL|Image URL)[：:].*?(https?://[^\s)*]+)`)

	// fallback: any URL on a known image host with a raster extension
	posterHostRe = regexp.MustCompile(`(?i)(https?://(?:image\.tmdb\.org|m\.media-amazon\.com|upload\.wikimedia\.org)\S+\.(?:jpg|jpeg|png|webp))`)

	// whole poster line for removal from the displayed text, tolerating
	// markdown emphasis around the label
	posterStripRe = regexp.MustCompile(`(?i)(?:\*\*|__)?(?:海報連結|官方海報|Poster URL|Image URL)(?:\*\*|__)?[：:].*?https?://\S+\n?`)

	genreSplitRe = regexp.MustCompile(`[，,、\s]+`)

	valueJunkRe = regexp.MustCompile(`[*\[\]]`)

	fieldRes = map[string]*regexp.Regexp{}
)

func init() {
	for _, label := range []string{labelCategory, labelYear, labelGenre, labelRating, labelHighlight, labelSummary} {
		fieldRes[label] = regexp.MustCompile(`(?:\*\*)?` + label + `(?:\*\*)?[：:]\s*(.*)`)
	}
}

// Parse extracts the structured fields from one raw response text.
// Deterministic: the same input always produces the same result.
func Parse(rawText string) *models.ParsedResult {
	posterURL := extractPosterURL(rawText)
	cleaned := posterStripRe.ReplaceAllString(rawText, "")

	result := &models.ParsedResult{
		RawText:   cleaned,
		PosterURL: posterURL,
		NotFound:  strings.Contains(cleaned, NotFoundSentinel),
	}
	if result.NotFound {
		return result
	}

	result.Category = field(cleaned, labelCategory)
	result.Year = field(cleaned, labelYear)
	result.Rating = field(cleaned, labelRating)
	result.Highlight = field(cleaned, labelHighlight)
	result.Summary = field(cleaned, labelSummary)
	result.Genres = splitGenres(field(cleaned, labelGenre))
	return result
}

// field returns the trimmed value after the first occurrence of the label,
// or empty when the label is absent.
func field(text, label string) string {
	m := fieldRes[label].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(valueJunkRe.ReplaceAllString(m[1], ""))
}

// splitGenres breaks the genre field on commas (half and full width), the
// enumeration comma, and whitespace, dropping empty tokens.
func splitGenres(value string) []string {
	if value == "" {
		return nil
	}
	var genres []string
	for _, g := range genreSplitRe.Split(value, -1) {
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// extractPosterURL finds the poster URL in the raw text: first the strict
// labeled line, then any URL on a known image host. Either way the result
// is sanitized before use.
func extractPosterURL(rawText string) string {
	if m := posterLineRe.FindStringSubmatch(rawText); m != nil {
		return SanitizeURL(m[1])
	}
	if m := posterHostRe.FindStringSubmatch(rawText); m != nil {
		return SanitizeURL(m[1])
	}
	return ""
}

// SanitizeURL strips trailing punctuation the model tends to append to
// URLs despite instructions not to.
func SanitizeURL(url string) string {
	return strings.TrimRight(url, ".,)*]! \t\r\n")
}
