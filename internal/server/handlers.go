package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"readmegen/internal/models"
	"readmegen/internal/services"
)

// RepoRequest is the generate-readme request body.
type RepoRequest struct {
	RepoURL string `json:"repo_url" binding:"required"`
}

// ReadmeResponse is the generate-readme response body.
type ReadmeResponse struct {
	ReadmeContent string           `json:"readme_content"`
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Metadata      *ReadmeMetadata  `json:"metadata,omitempty"`
	Sections      []models.Section `json:"sections,omitempty"`
}

// ReadmeMetadata summarizes the run for API consumers.
type ReadmeMetadata struct {
	RequestID       string `json:"request_id"`
	FilesSelected   int    `json:"files_selected"`
	FilesAnalyzed   int    `json:"files_analyzed"`
	PrimaryLanguage string `json:"primary_language"`
	ModelUsed       string `json:"model_used"`
	FallbackUsed    bool   `json:"fallback_used"`
	Status          string `json:"status"`
	DurationMs      int64  `json:"duration_ms"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "readmegen API is running",
		"model":   s.cfg.Model,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"backend_configured": s.cfg.HasBackend(),
		"provider":           s.cfg.Provider,
	})
}

func (s *Server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.BackendInfo())
}

func (s *Server) handleSessions(c *gin.Context) {
	if s.sessions == nil {
		c.JSON(http.StatusOK, []models.GenerationSession{})
		return
	}
	sessions, err := s.sessions.ListRecent(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// handleGenerate runs the full pipeline. Only retrieval failures surface as
// HTTP errors; everything else degrades into fallback-heavy content.
func (s *Server) handleGenerate(c *gin.Context) {
	var req RepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ReadmeResponse{
			Success: false,
			Message: "repo_url is required",
		})
		return
	}

	doc, stats, err := s.readme.Generate(c.Request.Context(), req.RepoURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRepoURL) {
			c.JSON(http.StatusBadRequest, ReadmeResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, ReadmeResponse{
			Success: false,
			Message: "repository retrieval failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ReadmeResponse{
		ReadmeContent: doc.Render(),
		Success:       true,
		Message:       "README generated successfully",
		Sections:      doc.Sections,
		Metadata: &ReadmeMetadata{
			RequestID:       stats.RequestID,
			FilesSelected:   stats.FilesSelected,
			FilesAnalyzed:   stats.FilesAnalyzed,
			PrimaryLanguage: stats.PrimaryLang,
			ModelUsed:       stats.Model,
			FallbackUsed:    stats.FallbackUsed,
			Status:          stats.Status,
			DurationMs:      stats.Duration.Milliseconds(),
		},
	})
}
