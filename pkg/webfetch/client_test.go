package webfetch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Scrape_Success(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/v1/scrape", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body scrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"markdown"}, body.Formats)

		resp := scrapeResponse{Success: true}
		resp.Data.Markdown = "# Anker Prime Cable"
		resp.Data.HTML = "<h1>Anker Prime Cable</h1>"
		resp.Data.Metadata.SourceURL = body.URL
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, time.Minute)
	snap, err := client.Scrape(t.Context(), "https://www.anker.com/products/prime-cable")
	require.NoError(t, err)
	assert.Equal(t, "# Anker Prime Cable", snap.Markdown)
	assert.Equal(t, 1, requests)

	// Second call for the same URL should be served from cache.
	snap2, err := client.Scrape(t.Context(), "https://www.anker.com/products/prime-cable")
	require.NoError(t, err)
	assert.Equal(t, snap.Markdown, snap2.Markdown)
	assert.Equal(t, 1, requests)
}

func TestClient_Scrape_NonSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := scrapeResponse{Success: false, Error: "could not render page"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, time.Minute)
	_, err := client.Scrape(t.Context(), "https://www.anker.com/products/broken")
	assert.Error(t, err)
}

func TestClient_Scrape_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second, time.Minute)
	client.httpClient.RetryMax = 0
	_, err := client.Scrape(t.Context(), "https://www.anker.com/products/x")
	assert.Error(t, err)
}
