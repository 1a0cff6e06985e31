package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cableintel/catalog/pkg/ingest"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

type runSeedIngestRequest struct {
	SeedURLs       []string `json:"seedUrls" binding:"required"`
	AllowedDomains []string `json:"allowedDomains"`
	MaxItems       int      `json:"maxItems"`
}

type runSeedIngestResponse struct {
	WorkflowRunID  string `json:"workflowRunId"`
	TotalItems     int    `json:"totalItems"`
	CompletedItems int    `json:"completedItems"`
	FailedItems    int    `json:"failedItems"`
	Status         string `json:"status"`
}

// RunSeedIngest handles runSeedIngest.
func (s *Server) RunSeedIngest(c *gin.Context) {
	var req runSeedIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}
	if len(req.SeedURLs) == 0 {
		writeError(c, apperrors.NewValidationError("seedUrls", "at least one seed URL is required"))
		return
	}

	result, err := s.ingest.RunSeedIngest(c.Request.Context(), ingest.RunSeedIngestRequest{
		SeedURLs:       req.SeedURLs,
		AllowedDomains: req.AllowedDomains,
		MaxItems:       req.MaxItems,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, runSeedIngestResponse{
		WorkflowRunID:  result.WorkflowRunID,
		TotalItems:     result.TotalItems,
		CompletedItems: result.CompletedItems,
		FailedItems:    result.FailedItems,
		Status:         result.Status,
	})
}

type discoverShopifySeedURLsRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	MaxItems   int    `json:"maxItems"`
}

// DiscoverShopifySeedURLs handles discoverShopifySeedUrls.
func (s *Server) DiscoverShopifySeedURLs(c *gin.Context) {
	var req discoverShopifySeedURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	tpl, err := s.templates.Get(req.TemplateID)
	if err != nil {
		writeError(c, err)
		return
	}

	urls, err := s.vendor.DiscoverProductURLs(c.Request.Context(), tpl, req.MaxItems)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, urls)
}

type shopifyTemplateResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`
}

// ListShopifyTemplates handles listShopifyTemplates.
func (s *Server) ListShopifyTemplates(c *gin.Context) {
	tpls := s.templates.List()
	out := make([]shopifyTemplateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, shopifyTemplateResponse{ID: tpl.ID, Name: tpl.Name, BaseURL: tpl.BaseURL})
	}
	c.JSON(http.StatusOK, out)
}

// parseIntQuery parses a query parameter as an int, returning def if absent
// or malformed.
func parseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
