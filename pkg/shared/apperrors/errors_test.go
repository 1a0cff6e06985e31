package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("AI_GATEWAY_API_KEY", errors.New("missing"))
	assert.Contains(t, err.Error(), "AI_GATEWAY_API_KEY")
	assert.ErrorIs(t, err, errors.Unwrap(err))
}

func TestFetchError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewFetchError("https://example.com/product", inner)
	assert.Contains(t, err.Error(), "https://example.com/product")
	assert.ErrorIs(t, err, inner)
}

func TestNotFoundErrorIsNotFound(t *testing.T) {
	err := NewNotFoundError("workflow", "wf-123")
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "wf-123")
}

func TestIsNotFoundOnSentinel(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(errors.New("something else")))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("maxWatts", "must be positive")
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.Contains(t, err.Error(), "maxWatts")
}

func TestPersistenceAndTimeoutErrors(t *testing.T) {
	inner := errors.New("deadline exceeded")
	pErr := NewPersistenceError("upsert_variant", inner)
	assert.ErrorIs(t, pErr, inner)

	tErr := NewTimeoutError("llm_generate", inner)
	assert.ErrorIs(t, tErr, inner)
	assert.Contains(t, tErr.Error(), "llm_generate")
}
