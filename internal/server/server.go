// Package server exposes the generation pipeline over HTTP. The transport
// is a thin boundary: all failure handling lives in the pipeline itself.
package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"readmegen/internal/config"
	"readmegen/internal/models"
	"readmegen/internal/services"
)

// Generator is the pipeline entry point the server depends on.
type Generator interface {
	Generate(ctx context.Context, repoURL string) (*models.ReadmeDocument, *services.GenerateStats, error)
}

// SessionLister lists recent generation sessions.
type SessionLister interface {
	ListRecent(limit int) ([]models.GenerationSession, error)
}

// Server is the readmegen HTTP API.
type Server struct {
	cfg      config.Config
	readme   Generator
	sessions SessionLister
	router   *gin.Engine
}

// New builds the server and its routes. sessions may be nil when the
// session store is disabled.
func New(cfg config.Config, readme Generator, sessions SessionLister) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, readme: readme, sessions: sessions, router: router}

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/models", s.handleModels)
	router.GET("/sessions", s.handleSessions)
	router.POST("/generate-readme", s.handleGenerate)

	return s
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	return s.router.Run(s.cfg.ServerAddr)
}

// Router exposes the handler for tests.
func (s *Server) Router() *gin.Engine { return s.router }
