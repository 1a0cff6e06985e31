package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cableintel/catalog/pkg/rank"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

const defaultTopCablesLimit = 50

// GetTopCables handles getTopCables.
func (s *Server) GetTopCables(c *gin.Context) {
	limit := parseIntQuery(c, "limit", defaultTopCablesLimit)
	query := c.Query("searchQuery")
	includeStates := c.Query("includeStates")

	var (
		rows []rank.TopCableRow
		err  error
	)
	if strings.Contains(includeStates, "needs_enrichment") {
		rows, err = s.reports.TopCablesForReview(c.Request.Context(), limit)
	} else {
		rows, err = s.reports.TopCables(c.Request.Context(), rank.Options{Limit: limit, SearchQuery: query})
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTopCablesForReview handles getTopCablesForReview.
func (s *Server) GetTopCablesForReview(c *gin.Context) {
	limit := parseIntQuery(c, "limit", defaultTopCablesLimit)
	rows, err := s.reports.TopCablesForReview(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetWorkflowReport handles getWorkflowReport.
func (s *Server) GetWorkflowReport(c *gin.Context) {
	workflowRunID := c.Param("workflowRunId")
	if workflowRunID == "" {
		writeError(c, apperrors.NewValidationError("workflowRunId", "is required"))
		return
	}
	limit := parseIntQuery(c, "limit", defaultTopCablesLimit)

	report, err := s.reports.WorkflowReportByID(c.Request.Context(), workflowRunID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetLatestWorkflowReport handles getLatestWorkflowReport.
func (s *Server) GetLatestWorkflowReport(c *gin.Context) {
	limit := parseIntQuery(c, "limit", defaultTopCablesLimit)

	report, err := s.reports.LatestWorkflowReport(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetEnrichmentQueueSummary handles getEnrichmentQueueSummary.
func (s *Server) GetEnrichmentQueueSummary(c *gin.Context) {
	summary, err := s.reports.GetEnrichmentQueueSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
