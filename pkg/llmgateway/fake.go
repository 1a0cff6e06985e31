package llmgateway

import (
	"context"
	"encoding/json"
)

// Fake is an in-memory Client used by tests of packages that depend on the
// LLM gateway (extract, inference) without making network calls.
type Fake struct {
	// Responses is consumed in order, one per call to GenerateObject.
	Responses []json.RawMessage
	// Errs, if set at index i, is returned instead of Responses[i].
	Errs []error

	calls int
	// Requests records every request passed to GenerateObject.
	Requests []GenerateObjectRequest
}

// GenerateObject returns the next canned response or error.
func (f *Fake) GenerateObject(_ context.Context, req GenerateObjectRequest) (json.RawMessage, error) {
	f.Requests = append(f.Requests, req)
	i := f.calls
	f.calls++

	if i < len(f.Errs) && f.Errs[i] != nil {
		return nil, f.Errs[i]
	}
	if i < len(f.Responses) {
		return f.Responses[i], nil
	}
	return nil, nil
}
