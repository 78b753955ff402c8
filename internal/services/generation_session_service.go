package services

import (
	"fmt"

	"readmegen/internal/models"
	"readmegen/internal/repositories"
)

// GenerationSessionService records and lists generation-run metadata. The
// generated document itself is never stored.
type GenerationSessionService interface {
	Record(stats *GenerateStats) error
	ListRecent(limit int) ([]models.GenerationSession, error)
}

type generationSessionService struct {
	repo repositories.GenerationSessionRepository
}

func NewGenerationSessionService(repo repositories.GenerationSessionRepository) GenerationSessionService {
	return &generationSessionService{repo: repo}
}

func (s *generationSessionService) Record(stats *GenerateStats) error {
	if stats == nil {
		return fmt.Errorf("stats are required")
	}
	return s.repo.Create(&models.GenerationSession{
		RequestID:     stats.RequestID,
		RepoURL:       stats.RepoURL,
		Provider:      stats.Provider,
		Model:         stats.Model,
		Status:        stats.Status,
		FallbackUsed:  stats.FallbackUsed,
		FilesSelected: stats.FilesSelected,
		FilesAnalyzed: stats.FilesAnalyzed,
		DurationMs:    stats.Duration.Milliseconds(),
	})
}

func (s *generationSessionService) ListRecent(limit int) ([]models.GenerationSession, error) {
	return s.repo.ListRecent(limit)
}
