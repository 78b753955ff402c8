package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"readmegen/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GenerationSession{}))
	return db
}

func TestCreateAndListRecent(t *testing.T) {
	repo := NewGenerationSessionRepository(openTestDB(t))

	for i, status := range []string{models.SessionStatusOK, models.SessionStatusDegraded, models.SessionStatusFallback} {
		err := repo.Create(&models.GenerationSession{
			RequestID: string(rune('a' + i)),
			RepoURL:   "https://github.com/acme/widgets",
			Status:    status,
		})
		require.NoError(t, err)
	}

	sessions, err := repo.ListRecent(2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	all, err := repo.ListRecent(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreate_RejectsIncompleteSessions(t *testing.T) {
	repo := NewGenerationSessionRepository(openTestDB(t))

	assert.Error(t, repo.Create(nil))
	assert.Error(t, repo.Create(&models.GenerationSession{RepoURL: "https://github.com/a/b"}))
	assert.Error(t, repo.Create(&models.GenerationSession{RequestID: "req-1"}))
}

func TestCountByStatus(t *testing.T) {
	repo := NewGenerationSessionRepository(openTestDB(t))

	require.NoError(t, repo.Create(&models.GenerationSession{
		RequestID: "req-1", RepoURL: "https://github.com/a/b", Status: models.SessionStatusOK,
	}))
	require.NoError(t, repo.Create(&models.GenerationSession{
		RequestID: "req-2", RepoURL: "https://github.com/a/b", Status: models.SessionStatusFallback,
	}))

	n, err := repo.CountByStatus(models.SessionStatusOK)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
