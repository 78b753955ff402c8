package models

import "time"

// GenerationSession records the metadata of one README generation request.
// The generated document itself is never persisted; only what is needed to
// list recent runs and their degradation status.
type GenerationSession struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	RequestID     string `gorm:"size:36;not null;uniqueIndex" json:"requestId"`
	RepoURL       string `gorm:"size:512;not null;index" json:"repoUrl"`
	Provider      string `gorm:"size:64" json:"provider"`
	Model         string `gorm:"size:128" json:"model"`
	Status        string `gorm:"size:32;not null" json:"status"`
	FallbackUsed  bool   `json:"fallbackUsed"`
	FilesSelected int    `json:"filesSelected"`
	FilesAnalyzed int    `json:"filesAnalyzed"`
	DurationMs    int64  `json:"durationMs"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session statuses.
const (
	SessionStatusOK       = "ok"
	SessionStatusDegraded = "degraded"
	SessionStatusFallback = "fallback"
)
