// Package webfetch provides the HTTP client that turns a product page URL
// into markdown + HTML evidence, backed by the Firecrawl scrape API.
package webfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Snapshot is a single fetched page, ready to be hashed and stored as
// evidence.
type Snapshot struct {
	URL       string
	Markdown  string
	HTML      string
	SourceURL string
	OGImage   string
}

// Client talks to the Firecrawl-shaped scrape endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
	cache      *Cache
}

// NewClient builds a webfetch client. apiKey may be empty; calls will then
// fail with a FetchError carrying the upstream 401 rather than failing
// fast, matching the "checked lazily" contract for FIRECRAWL_API_KEY.
func NewClient(baseURL, apiKey string, timeout time.Duration, cacheTTL time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: rc,
		cache:      NewCache(cacheTTL),
	}
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		HTML     string `json:"html"`
		Metadata struct {
			SourceURL string `json:"sourceURL"`
			OGImage   string `json:"ogImage"`
		} `json:"metadata"`
	} `json:"data"`
	Error string `json:"error"`
}

// Scrape fetches url and returns its markdown + HTML content, consulting the
// in-memory cache first so repeated items in one workflow run don't refetch
// the same canonical URL.
func (c *Client) Scrape(ctx context.Context, url string) (*Snapshot, error) {
	if snap, ok := c.cache.Get(url); ok {
		return snap, nil
	}

	body, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return nil, apperrors.NewFetchError(url, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", body)
	if err != nil {
		return nil, apperrors.NewFetchError(url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewFetchError(url, fmt.Errorf("firecrawl returned HTTP %d", resp.StatusCode))
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewFetchError(url, fmt.Errorf("decode scrape response: %w", err))
	}
	if !parsed.Success {
		return nil, apperrors.NewFetchError(url, fmt.Errorf("firecrawl scrape failed: %s", parsed.Error))
	}

	snap := &Snapshot{
		URL:       url,
		Markdown:  parsed.Data.Markdown,
		HTML:      parsed.Data.HTML,
		SourceURL: parsed.Data.Metadata.SourceURL,
		OGImage:   parsed.Data.Metadata.OGImage,
	}
	c.cache.Set(url, snap)
	return snap, nil
}
