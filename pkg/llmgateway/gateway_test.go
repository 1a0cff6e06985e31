package llmgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_GenerateObject_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate-object", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var wireReq generateObjectWireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wireReq))
		assert.Equal(t, float64(0), wireReq.Temperature)

		json.NewEncoder(w).Encode(generateObjectWireResponse{
			Object: json.RawMessage(`{"confidence":0.8}`),
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", 2*time.Second, 1, 0)
	obj, err := client.GenerateObject(context.Background(), GenerateObjectRequest{
		Model:  "gpt-manual-inference",
		Prompt: "usb c to lightening apple cable",
		Schema: json.RawMessage(`{"type":"object"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"confidence":0.8}`, string(obj))
}

func TestHTTPClient_GenerateObject_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateObjectWireResponse{Error: "schema validation failed"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 2*time.Second, 0, 0)
	_, err := client.GenerateObject(context.Background(), GenerateObjectRequest{Prompt: "x", Schema: json.RawMessage(`{}`)})
	assert.Error(t, err)
}

func TestHTTPClient_GenerateObject_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 2*time.Second, 0, 0)
	_, err := client.GenerateObject(context.Background(), GenerateObjectRequest{Prompt: "x", Schema: json.RawMessage(`{}`)})
	assert.Error(t, err)
}

func TestFake_ReturnsResponsesThenErrors(t *testing.T) {
	fake := &Fake{
		Responses: []json.RawMessage{json.RawMessage(`{"a":1}`)},
		Errs:      []error{nil, assertErr},
	}

	obj, err := fake.GenerateObject(context.Background(), GenerateObjectRequest{Prompt: "p1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(obj))

	_, err = fake.GenerateObject(context.Background(), GenerateObjectRequest{Prompt: "p2"})
	assert.ErrorIs(t, err, assertErr)

	assert.Len(t, fake.Requests, 2)
}

var assertErr = assertError("boom")

type assertError string

func (e assertError) Error() string { return string(e) }
