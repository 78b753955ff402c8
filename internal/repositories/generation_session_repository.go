package repositories

import (
	"fmt"

	"readmegen/internal/models"

	"gorm.io/gorm"
)

type GenerationSessionRepository interface {
	Create(session *models.GenerationSession) error
	ListRecent(limit int) ([]models.GenerationSession, error)
	CountByStatus(status string) (int64, error)
}

type generationSessionRepository struct {
	db *gorm.DB
}

func NewGenerationSessionRepository(db *gorm.DB) GenerationSessionRepository {
	return &generationSessionRepository{db: db}
}

func (r *generationSessionRepository) Create(session *models.GenerationSession) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if session.RequestID == "" {
		return fmt.Errorf("request ID is required")
	}
	if session.RepoURL == "" {
		return fmt.Errorf("repo URL is required")
	}
	return r.db.Create(session).Error
}

func (r *generationSessionRepository) ListRecent(limit int) ([]models.GenerationSession, error) {
	if limit <= 0 {
		limit = 20
	}
	var sessions []models.GenerationSession
	res := r.db.Order("created_at desc").Limit(limit).Find(&sessions)
	if res.Error != nil {
		return nil, res.Error
	}
	return sessions, nil
}

func (r *generationSessionRepository) CountByStatus(status string) (int64, error) {
	var n int64
	res := r.db.Model(&models.GenerationSession{}).Where("status = ?", status).Count(&n)
	if res.Error != nil {
		return 0, res.Error
	}
	return n, nil
}
