// Package poster resolves the display URL for a result's poster image.
// The canonical URL stays untouched in the result and the watchlist; only
// the transient display URL goes through the proxy fallback when the
// origin refuses to serve us (hotlink protection, CORS, dead links).
package poster

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/a0929639992ca-hub/OTT/internal/util"
)

// Status tracks the per-image state machine:
// Loading -> Direct | ProxyRetry -> Failed.
type Status int

const (
	StatusLoading Status = iota
	StatusDirect
	StatusProxied
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusDirect:
		return "direct"
	case StatusProxied:
		return "proxied"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

const (
	proxyHost     = "images.weserv.nl"
	proxyTemplate = "https://images.weserv.nl/?url=%s&w=800&output=jpg"
)

// Display is a resolved poster: the canonical URL as parsed, and the URL
// actually shown (identical, proxied, or empty when everything failed).
type Display struct {
	Canonical string
	URL       string
	Status    Status
}

// ProxyURL rewrites a poster URL through the image proxy.
func ProxyURL(raw string) string {
	return "https://" + proxyHost + "/?url=" + url.QueryEscape(raw) + "&w=800&output=jpg"
}

// IsProxied reports whether a URL already goes through the proxy, so a
// failing proxy fetch is not retried through itself.
func IsProxied(raw string) bool {
	return strings.Contains(raw, proxyHost)
}

// Prober checks poster URLs over HTTP.
type Prober struct {
	client *http.Client
	proxy  func(string) string
}

// NewProber uses the shared fast client.
func NewProber() *Prober {
	return &Prober{client: util.GetFastClient(), proxy: ProxyURL}
}

// Resolve walks the state machine for one canonical poster URL: try the
// origin, then the proxy rewrite, then give up. An empty canonical URL is
// an immediate failure (the caller renders the placeholder).
func (p *Prober) Resolve(ctx context.Context, canonical string) Display {
	display := Display{Canonical: canonical, Status: StatusFailed}
	if canonical == "" {
		return display
	}

	if p.probe(ctx, canonical) {
		display.URL = canonical
		display.Status = StatusDirect
		return display
	}

	if !IsProxied(canonical) {
		proxied := p.proxy(canonical)
		if p.probe(ctx, proxied) {
			util.Debug("poster served via proxy", "canonical", canonical)
			display.URL = proxied
			display.Status = StatusProxied
			return display
		}
	}

	util.Debug("poster unavailable", "canonical", canonical)
	return display
}

// probe fetches the URL and reports whether it looks like a usable image.
func (p *Prober) probe(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			util.Debug("Failed to close response body:", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	contentType := resp.Header.Get("Content-Type")
	return contentType == "" || strings.HasPrefix(contentType, "image/")
}

// Download saves the displayed poster to destPath.
func (p *Prober) Download(ctx context.Context, displayURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, displayURL, nil)
	if err != nil {
		return errors.Wrap(err, "building poster request")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetching poster")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			util.Debug("Failed to close response body:", closeErr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("poster download failed with status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.Wrap(err, "creating poster file")
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			util.Debug("Failed to close poster file:", closeErr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.Wrap(err, "writing poster file")
	}
	return nil
}
