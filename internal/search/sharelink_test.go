package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareLinkEscapesQuery(t *testing.T) {
	link := ShareLink("沙丘：第二部")
	assert.Equal(t, "https://streamfinder.tw/?q="+"%E6%B2%99%E4%B8%98%EF%BC%9A%E7%AC%AC%E4%BA%8C%E9%83%A8", link)
}

func TestUnwrapShareLinkRoundTrip(t *testing.T) {
	query := "Dune Part Two"
	assert.Equal(t, query, UnwrapShareLink(ShareLink(query)))
}

func TestUnwrapShareLinkPassthrough(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"plain title", "沙丘"},
		{"url without q", "https://streamfinder.tw/"},
		{"url with empty q", "https://streamfinder.tw/?q="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.arg, UnwrapShareLink(tt.arg))
		})
	}
}

func TestUnwrapShareLinkForeignURLWithQuery(t *testing.T) {
	assert.Equal(t, "奧本海默", UnwrapShareLink("https://example.com/search?q=奧本海默"))
}
