// Package api wires the catalog's gin HTTP handlers to the ingestion,
// ranking, reporting, and manual inference packages.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cableintel/catalog/pkg/config"
	"github.com/cableintel/catalog/pkg/database"
	"github.com/cableintel/catalog/pkg/extract"
	"github.com/cableintel/catalog/pkg/inference"
	"github.com/cableintel/catalog/pkg/ingest"
	"github.com/cableintel/catalog/pkg/reports"
)

// Server holds the dependencies behind every route and exposes Engine as a
// *gin.Engine ready to run.
type Server struct {
	Engine *gin.Engine

	ingest    *ingest.Engine
	reports   *reports.Service
	inference *inference.Manager
	templates *config.TemplateRegistry
	vendor    *extract.VendorExtractor
	db        *database.Client
}

// NewServer builds the server and registers all routes. db may be nil, in
// which case /health reports liveness only, without a database round trip.
func NewServer(ingestEngine *ingest.Engine, reportsSvc *reports.Service, inferenceMgr *inference.Manager, templates *config.TemplateRegistry, vendor *extract.VendorExtractor, db *database.Client) *Server {
	s := &Server{
		Engine:    gin.New(),
		ingest:    ingestEngine,
		reports:   reportsSvc,
		inference: inferenceMgr,
		templates: templates,
		vendor:    vendor,
		db:        db,
	}
	s.Engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Engine.GET("/health", s.Health)

	v1 := s.Engine.Group("/api/v1")
	{
		v1.POST("/ingest/seed", s.RunSeedIngest)
		v1.POST("/ingest/shopify/discover", s.DiscoverShopifySeedURLs)
		v1.GET("/ingest/shopify/templates", s.ListShopifyTemplates)

		v1.GET("/cables/top", s.GetTopCables)
		v1.GET("/cables/top/review", s.GetTopCablesForReview)
		v1.GET("/workflows/:workflowRunId/report", s.GetWorkflowReport)
		v1.GET("/workflows/latest/report", s.GetLatestWorkflowReport)
		v1.GET("/enrichment/queue-summary", s.GetEnrichmentQueueSummary)

		sessions := v1.Group("/inference/sessions/:workspaceId")
		{
			sessions.POST("", s.EnsureSession)
			sessions.GET("", s.GetSession)
			sessions.PATCH("/draft", s.PatchDraft)
			sessions.POST("/reset", s.ResetSession)
			sessions.POST("/prompt", s.SubmitPrompt)
			sessions.POST("/questions/:questionId/answer", s.AnswerQuestion)
			sessions.GET("/status", s.GetStatusSummary)
		}
		v1.GET("/inference/defaults", s.GetDefaults)
	}
}

// Health reports liveness for load balancers and container orchestrators,
// and database health when a client is wired in.
func (s *Server) Health(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbHealth, err := database.Health(reqCtx, s.db.DB())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": dbHealth, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": dbHealth})
}
