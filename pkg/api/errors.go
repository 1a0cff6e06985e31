package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// writeError maps an internal error to the HTTP response shape the RPCs
// share: {"error": "<message>"} with a status code picked from the error's
// taxonomy. Anything unrecognized becomes a 500 and gets logged, since it
// represents a bug rather than an expected failure mode.
func writeError(c *gin.Context, err error) {
	status, message := classifyError(err)
	if status == http.StatusInternalServerError {
		slog.Error("unhandled API error", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, gin.H{"error": message})
}

func classifyError(err error) (int, string) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, notFoundErr.Error()
	}

	var timeoutErr *apperrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout, timeoutErr.Error()
	}

	var fetchErr *apperrors.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway, fetchErr.Error()
	}

	var extractionErr *apperrors.ExtractionError
	if errors.As(err, &extractionErr) {
		return http.StatusUnprocessableEntity, extractionErr.Error()
	}

	var configErr *apperrors.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusInternalServerError, configErr.Error()
	}

	var persistenceErr *apperrors.PersistenceError
	if errors.As(err, &persistenceErr) {
		return http.StatusInternalServerError, "internal server error"
	}

	return http.StatusInternalServerError, "internal server error"
}
