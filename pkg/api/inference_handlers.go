package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cableintel/catalog/pkg/inference"
	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// EnsureSession handles ensureSession.
func (s *Server) EnsureSession(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	session, err := s.inference.EnsureSession(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSession handles getSession.
func (s *Server) GetSession(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	session, err := s.inference.GetSession(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ResetSession handles resetSession.
func (s *Server) ResetSession(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	session, err := s.inference.ResetSession(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type patchDraftRequest struct {
	Patch inference.Draft `json:"patch"`
}

// PatchDraft handles patchDraft.
func (s *Server) PatchDraft(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	var req patchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	session, err := s.inference.PatchDraft(c.Request.Context(), workspaceID, req.Patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type submitPromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// SubmitPrompt handles submitPrompt.
func (s *Server) SubmitPrompt(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	var req submitPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	session, err := s.inference.SubmitPrompt(c.Request.Context(), workspaceID, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type answerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// AnswerQuestion handles answerQuestion.
func (s *Server) AnswerQuestion(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	questionID := c.Param("questionId")
	var req answerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	choice, ok := parseAnswerChoice(req.Answer)
	if !ok {
		writeError(c, apperrors.NewValidationError("answer", "must be one of yes, no, skip"))
		return
	}

	session, err := s.inference.AnswerQuestion(c.Request.Context(), workspaceID, questionID, choice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func parseAnswerChoice(raw string) (inference.AnswerChoice, bool) {
	switch raw {
	case string(inference.AnswerYes):
		return inference.AnswerYes, true
	case string(inference.AnswerNo):
		return inference.AnswerNo, true
	case string(inference.AnswerSkip):
		return inference.AnswerSkip, true
	default:
		return "", false
	}
}

type statusSummaryResponse struct {
	Status             inference.Status         `json:"status"`
	Confidence         float64                  `json:"confidence"`
	Band               inference.ConfidenceBand `json:"band"`
	PendingQuestionIDs []string                 `json:"pendingQuestionIds"`
}

// GetStatusSummary handles getStatusSummary.
func (s *Server) GetStatusSummary(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	session, err := s.inference.GetSession(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}

	pending := make([]string, 0, len(session.Questions))
	for _, q := range session.Questions {
		if !q.Answered {
			pending = append(pending, q.ID)
		}
	}

	c.JSON(http.StatusOK, statusSummaryResponse{
		Status:             session.Status,
		Confidence:         session.Confidence,
		Band:               session.Band,
		PendingQuestionIDs: pending,
	})
}

type defaultsResponse struct {
	ConnectorOptions []string `json:"connectorOptions"`
	USBGenerations   []string `json:"usbGenerations"`
}

// GetDefaults handles getDefaults. The option lists mirror the connector and
// generation tokens the deterministic parser recognizes, so a manual-entry
// UI offers the same vocabulary the parser understands.
func (s *Server) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, defaultsResponse{
		ConnectorOptions: []string{"USB-C", "USB-A", "Lightning", "Micro-USB"},
		USBGenerations:   []string{"USB 2.0", "USB 3.2 Gen 1", "USB 3.2 Gen 2", "USB4", "Thunderbolt 3", "Thunderbolt 4", "Thunderbolt 5"},
	})
}
