package platform

import (
	"strings"

	"github.com/a0929639992ca-hub/OTT/internal/models"
)

// Resolve cross-references the response text against the registry and
// returns a link for every platform the text names. Each platform appears
// at most once no matter how often it is mentioned, ordered by registry
// position. When a citation's title or URL names the platform, its URL
// replaces the canonical homepage, so the link points at the actual
// listing the backend grounded on.
func Resolve(rawText string, citations []models.Citation, registry []Platform) []models.PlatformLink {
	lowerText := strings.ToLower(rawText)

	var links []models.PlatformLink
	for _, p := range registry {
		if !strings.Contains(lowerText, strings.ToLower(p.Name)) {
			continue
		}
		target := p.URL
		if uri := citationFor(p.Name, citations); uri != "" {
			target = uri
		}
		links = append(links, models.PlatformLink{
			Name:    p.Name,
			URL:     target,
			IconURL: FaviconURL(target),
		})
	}
	return links
}

// ResolveResult applies Resolve to a parsed result, honoring its not-found
// flag: a negative result carries no platform links.
func ResolveResult(parsed *models.ParsedResult) []models.PlatformLink {
	if parsed == nil || parsed.NotFound {
		return nil
	}
	return Resolve(parsed.RawText, parsed.Citations, Registry)
}

// citationFor finds the first citation that names the platform, either in
// its title or, with spaces stripped, in its URL.
func citationFor(name string, citations []models.Citation) string {
	lowerName := strings.ToLower(name)
	compactName := strings.ReplaceAll(lowerName, " ", "")
	for _, c := range citations {
		if strings.Contains(strings.ToLower(c.Title), lowerName) ||
			strings.Contains(strings.ToLower(c.URI), compactName) {
			return c.URI
		}
	}
	return ""
}
