// Package llmgateway provides a bounded, schema-constrained client for the
// generateObject-shaped LLM gateway used by the generic extractor and the
// manual inference engine's LLM pass.
package llmgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// Client is the Go-side interface for calling the LLM gateway. Implementations
// must honor the context deadline and never retry past MaxRetries.
type Client interface {
	// GenerateObject calls the LLM with system+prompt and a JSON schema the
	// response must validate against, returning the raw decoded object.
	// HTTPClient retries network errors, 429 and 5xx responses up to
	// maxRetries times; other 4xx responses and errors reported by the
	// gateway itself (such as schema-validation failures) are returned
	// without a retry.
	GenerateObject(ctx context.Context, req GenerateObjectRequest) (json.RawMessage, error)
}

// GenerateObjectRequest is a single bounded, temperature=0 object-generation
// call.
type GenerateObjectRequest struct {
	Model       string
	System      string
	Prompt      string
	Schema      json.RawMessage
	Temperature float64
}

// HTTPClient implements Client against an HTTP JSON gateway.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	httpClient  *retryablehttp.Client
	maxRetries  int
	defaultTemp float64
}

// NewHTTPClient builds a gateway client bounded by timeout and maxRetries.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, maxRetries int, defaultTemperature float64) *HTTPClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &HTTPClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  rc,
		maxRetries:  maxRetries,
		defaultTemp: defaultTemperature,
	}
}

type generateObjectWireRequest struct {
	Model       string          `json:"model"`
	System      string          `json:"system,omitempty"`
	Prompt      string          `json:"prompt"`
	Schema      json.RawMessage `json:"schema"`
	Temperature float64         `json:"temperature"`
}

type generateObjectWireResponse struct {
	Object json.RawMessage `json:"object"`
	Error  string          `json:"error"`
}

// GenerateObject issues one bounded call to the gateway. The context's
// deadline governs the whole call, including retries; callers should apply
// an 8-second budget.
func (c *HTTPClient) GenerateObject(ctx context.Context, req GenerateObjectRequest) (json.RawMessage, error) {
	temp := req.Temperature
	if temp == 0 {
		temp = c.defaultTemp
	}

	wireReq := generateObjectWireRequest{
		Model:       req.Model,
		System:      req.System,
		Prompt:      req.Prompt,
		Schema:      req.Schema,
		Temperature: temp,
	}
	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate-object", body)
	if err != nil {
		return nil, apperrors.NewExtractionError("llm", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("llm_generate_object", ctx.Err())
		}
		return nil, apperrors.NewExtractionError("llm", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("gateway returned HTTP %d", resp.StatusCode))
	}

	var parsed generateObjectWireResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("decode gateway response: %w", err))
	}
	if parsed.Error != "" {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("gateway error: %s", parsed.Error))
	}
	if len(parsed.Object) == 0 {
		return nil, apperrors.NewExtractionError("llm", fmt.Errorf("gateway returned an empty object"))
	}

	return parsed.Object, nil
}
