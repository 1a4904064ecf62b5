// Package gemini calls the Gemini generateContent API with Google Search
// grounding enabled and returns the answer text together with its
// grounding citations.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/a0929639992ca-hub/OTT/internal/models"
	"github.com/a0929639992ca-hub/OTT/internal/util"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-flash-preview"
)

// ErrCredential marks authorization-class failures: a missing, invalid or
// revoked API key. Callers surface these with a re-configure hint instead
// of a generic retry.
var ErrCredential = errors.New("gemini: invalid or missing API key")

// systemPrompt instructs the model to answer with the labeled fields the
// parser expects and the fixed not-found sentinel.
const systemPrompt = `你是一個專業的台灣 OTT 影音搜尋助手。
你的目標是協助使用者找到電影或影集在台灣哪些合法平台上架，並提供準確且道地的繁體中文資訊。

你的任務：
1. **基本資訊**：提供中文標題、原文名稱、類別、年份、類型、評分。
2. **高品質海報**：必須提供該作品的高清官方電影海報直接連結。
   - **優先來源**：請務必搜尋來自 themoviedb.org (image.tmdb.org) 的圖片網址，這是最穩定的來源。
   - **備選來源**：IMDb (m.media-amazon.com) 或 維基百科 (upload.wikimedia.org)。
   - **嚴格格式**：海報連結必須獨立一行，格式為「海報連結：[直接圖片URL]」。
   - **禁止事項**：絕對禁止在網址末尾加上句號。絕對禁止使用 Markdown 的 [文字](網址) 格式。
3. **格式化輸出**（請完全按照此格式）：
   中文標題：[名稱]
   原文名稱：[Original Title]
   作品類別：[電影/影集/動畫]
   上映年份：[年份]
   作品類型：[類型]
   影評評分：[分數]
   海報連結：[純網址]
   亮點觀點：[一句話總結]
   劇情大綱：[100-150字]
   串流平台供應與進度：
   - [平台名稱]：[狀態]

重要：
- 海報連結必須是能直接在 <img> 標籤顯示的圖片檔網址。
- 如果完全找不到平台，回覆：「未在指定平台中找到此內容」。`

// Client talks to the Gemini API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient builds a client from the environment: GEMINI_API_KEY for the
// credential and optional OTT_MODEL to override the model.
func NewClient() *Client {
	model := os.Getenv("OTT_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout:   120 * time.Second,
			Transport: util.SharedTransport(),
		},
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Tools             []tool           `json:"tools,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search asks the model where the queried title streams, returning the raw
// answer text and the grounding citations in relevance order.
func (c *Client) Search(ctx context.Context, query string) (*models.RawResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrCredential
	}

	instruction := fmt.Sprintf("搜尋作品供應平台與官方高清海報連結： 「%s」。優先提供 image.tmdb.org 的海報 URL。", query)
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: instruction}}},
		},
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		Tools:             []tool{{}},
		GenerationConfig:  generationConfig{MaxOutputTokens: 2048},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	util.Debug("Gemini request starting", "model", c.model)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			util.Debug("Failed to close response body:", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	var result generateResponse
	if unmarshalErr := json.Unmarshal(body, &result); unmarshalErr != nil && resp.StatusCode == http.StatusOK {
		return nil, errors.Wrap(unmarshalErr, "failed to parse response")
	}

	if resp.StatusCode != http.StatusOK {
		if isCredentialStatus(resp.StatusCode, result.Error.Message) {
			util.Debug("Gemini credential failure", "status", resp.StatusCode)
			return nil, ErrCredential
		}
		return nil, errors.Errorf("gemini: API error (status %d): %s", resp.StatusCode, result.Error.Message)
	}

	raw := &models.RawResponse{}
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		var text strings.Builder
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
		raw.Text = text.String()
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web.URI == "" {
				continue
			}
			raw.Citations = append(raw.Citations, models.Citation{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}
	util.Debug("Gemini request finished", "chars", len(raw.Text), "citations", len(raw.Citations))
	return raw, nil
}

// isCredentialStatus recognizes the authorization-class error responses the
// API returns for bad keys. Invalid keys come back as 400 INVALID_ARGUMENT
// with an "API key" message, revoked ones as 401/403.
func isCredentialStatus(status int, message string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	return status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "api key")
}
