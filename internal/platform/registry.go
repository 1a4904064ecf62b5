// Package platform maps mentions of known Taiwanese streaming services in
// a response text to clickable links.
package platform

import (
	"fmt"
	"net/url"
)

// Platform is one registry entry. Name is the exact string matched against
// the response text (case-insensitive); Label is the human display name.
type Platform struct {
	Name  string
	Label string
	URL   string
}

// Registry lists every platform the search prompt covers. The slice order
// is the canonical presentation order for resolved links.
var Registry = []Platform{
	{Name: "Netflix", Label: "Netflix", URL: "https://www.netflix.com/"},
	{Name: "Disney+", Label: "Disney+", URL: "https://www.disneyplus.com/"},
	{Name: "Hami Video", Label: "Hami Video", URL: "https://hamivideo.hinet.net/"},
	{Name: "KKTV", Label: "KKTV", URL: "https://www.kktv.me/"},
	{Name: "LINE TV", Label: "LINE TV", URL: "https://www.linetv.tw/"},
	{Name: "LiTV", Label: "LiTV", URL: "https://www.litv.tv/"},
	{Name: "myVideo", Label: "myVideo", URL: "https://www.myvideo.net.tw/"},
	{Name: "Amazon Prime Video", Label: "Amazon Prime Video", URL: "https://www.primevideo.com/"},
	{Name: "CATCHPLAY+", Label: "CATCHPLAY+", URL: "https://www.catchplay.com/"},
	{Name: "friDay影音", Label: "friDay影音", URL: "https://video.friday.tw/"},
	{Name: "Google Play電影", Label: "Google Play", URL: "https://play.google.com/store/movies"},
	{Name: "動畫瘋", Label: "巴哈姆特動畫瘋", URL: "https://ani.gamer.com.tw/"},
	{Name: "愛奇藝台灣", Label: "iQIYI 愛奇藝", URL: "https://www.iq.com/"},
	{Name: "WeTV", Label: "WeTV", URL: "https://wetv.vip/"},
	{Name: "GagaOOLala", Label: "GagaOOLala", URL: "https://www.gagaoolala.com/"},
	{Name: "ELTA TV", Label: "ELTA TV", URL: "https://eltaott.tv/"},
	{Name: "公視+", Label: "公視+", URL: "https://www.ptsplus.tv/"},
	{Name: "四季線上", Label: "四季線上", URL: "https://www.4gtv.tv/"},
	{Name: "木棉花Youtube", Label: "木棉花 Youtube", URL: "https://www.youtube.com/@MuseTaiwan"},
	{Name: "羚邦Youtube", Label: "羚邦 Youtube", URL: "https://www.youtube.com/@AniOneTaiwan"},
}

// Names returns the registry names in canonical order, for the idle-screen
// coverage listing.
func Names() []string {
	names := make([]string, len(Registry))
	for i, p := range Registry {
		names[i] = p.Name
	}
	return names
}

const faviconTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=128"

// FaviconURL builds an icon URL for the domain of target. It never fails:
// an unparsable target is passed through as the domain and the consumer
// deals with the broken image.
func FaviconURL(target string) string {
	domain := target
	if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
		domain = u.Hostname()
	}
	return fmt.Sprintf(faviconTemplate, domain)
}
