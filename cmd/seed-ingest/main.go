// seed-ingest is a thin CLI that posts a seed-ingestion request to a running
// catalog-server instance and prints the resulting workflow summary.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type runSeedIngestRequest struct {
	SeedURLs       []string `json:"seedUrls"`
	AllowedDomains []string `json:"allowedDomains,omitempty"`
	MaxItems       int      `json:"maxItems,omitempty"`
}

type runSeedIngestResponse struct {
	WorkflowRunID  string `json:"workflowRunId"`
	TotalItems     int    `json:"totalItems"`
	CompletedItems int    `json:"completedItems"`
	FailedItems    int    `json:"failedItems"`
	Status         string `json:"status"`
}

func main() {
	serverAddr := flag.String("server", "http://localhost:8080", "catalog-server base URL")
	seedURLs := flag.String("seed-urls", "", "comma-separated list of seed URLs")
	allowedDomains := flag.String("allowed-domains", "", "comma-separated list of allowed domains")
	maxItems := flag.Int("max-items", 0, "maximum number of items to process (0 uses the server default)")
	timeout := flag.Duration("timeout", 5*time.Minute, "request timeout")
	flag.Parse()

	if strings.TrimSpace(*seedURLs) == "" {
		log.Fatal("--seed-urls is required")
	}

	req := runSeedIngestRequest{
		SeedURLs: splitNonEmpty(*seedURLs),
		MaxItems: *maxItems,
	}
	if *allowedDomains != "" {
		req.AllowedDomains = splitNonEmpty(*allowedDomains)
	}

	if err := run(*serverAddr, req, *timeout); err != nil {
		log.Fatalf("seed ingest failed: %v", err)
	}
}

func run(serverAddr string, req runSeedIngestRequest, timeout time.Duration) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	httpReq, err := http.NewRequest(http.MethodPost, strings.TrimRight(serverAddr, "/")+"/api/v1/ingest/seed", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call catalog-server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog-server returned HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result runSeedIngestResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
