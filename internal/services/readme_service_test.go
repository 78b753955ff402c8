package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmegen/internal/config"
	"readmegen/internal/models"
)

func newPipelineFixture(t *testing.T, cfg config.Config, cm model.BaseChatModel) *ReadmeService {
	t.Helper()
	var analysis *AnalysisService
	if cm != nil {
		analysis = newAnalysisFixture(t, cfg, cm)
	}
	return NewReadmeService(cfg, NewGitService(), NewFileSelector(cfg), analysis,
		NewFallbackService(), NewAggregator(), nil)
}

func pythonTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"main.py":          "print('hello')",
		"utils.py":         "def helper(): pass",
		"requirements.txt": "flask==3.0.0",
		"README.md":        "# Old readme",
		"LICENSE":          "MIT License",
	})
}

func TestGenerateFromPath_NoBackendUsesFallback(t *testing.T) {
	svc := newPipelineFixture(t, config.Default(), nil)

	doc, stats, err := svc.GenerateFromPath(context.Background(), pythonTree(t))

	require.NoError(t, err)
	require.Len(t, doc.Sections, len(models.SectionOrder))
	for _, s := range doc.Sections {
		assert.NotEmpty(t, s.Content)
	}
	assert.True(t, stats.FallbackUsed)
	assert.Equal(t, models.SessionStatusFallback, stats.Status)
	assert.Equal(t, "Python", stats.PrimaryLang)
	assert.NotEmpty(t, stats.RequestID)
}

func TestGenerateFromPath_DeterministicBackendIsIdempotent(t *testing.T) {
	root := pythonTree(t)
	cm := &stubChatModel{fn: func(call int, input []*schema.Message) (*schema.Message, error) {
		for _, m := range input {
			if strings.Contains(m.Content, "BEGIN SUMMARIES") {
				return reply("# Demo\n\n## Description\n\nStable description.\n"), nil
			}
		}
		return reply("stable file summary"), nil
	}}
	svc := newPipelineFixture(t, config.Default(), cm)

	first, _, err := svc.GenerateFromPath(context.Background(), root)
	require.NoError(t, err)
	second, _, err := svc.GenerateFromPath(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first.Render(), second.Render())
}

func TestGenerateFromPath_AllAnalysesFailStillProducesDocument(t *testing.T) {
	cm := &stubChatModel{fn: func(call int, input []*schema.Message) (*schema.Message, error) {
		return nil, errors.New("401 invalid api key")
	}}
	svc := newPipelineFixture(t, config.Default(), cm)

	doc, stats, err := svc.GenerateFromPath(context.Background(), pythonTree(t))

	require.NoError(t, err)
	for _, s := range doc.Sections {
		assert.NotEmpty(t, s.Content)
	}
	assert.True(t, stats.FallbackUsed)
	assert.Equal(t, models.SessionStatusFallback, stats.Status)
	assert.Equal(t, 0, stats.FilesAnalyzed)
}

func TestGenerateFromPath_PartialFailureIsDegraded(t *testing.T) {
	cm := &stubChatModel{fn: func(call int, input []*schema.Message) (*schema.Message, error) {
		for _, m := range input {
			if strings.Contains(m.Content, "helper") {
				return nil, errors.New("400 content rejected")
			}
		}
		return reply("summary"), nil
	}}
	svc := newPipelineFixture(t, config.Default(), cm)

	doc, stats, err := svc.GenerateFromPath(context.Background(), pythonTree(t))

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.True(t, stats.FallbackUsed)
	assert.Equal(t, models.SessionStatusDegraded, stats.Status)
	assert.Greater(t, stats.FilesAnalyzed, 0)
	assert.Less(t, stats.FilesAnalyzed, stats.FilesSelected)
}

func TestGenerateFromPath_SuccessfulAnalysesAppearInStructure(t *testing.T) {
	cm := &stubChatModel{fn: func(call int, input []*schema.Message) (*schema.Message, error) {
		return reply("Handles the core logic."), nil
	}}
	svc := newPipelineFixture(t, config.Default(), cm)

	doc, _, err := svc.GenerateFromPath(context.Background(), pythonTree(t))

	require.NoError(t, err)
	structure, _ := doc.Section(models.SectionStructure)
	assert.Contains(t, structure, "### Key Files")
	assert.Contains(t, structure, "main.py")
}

func TestGenerateFromPath_ExpiredDeadlineStillProducesDocument(t *testing.T) {
	cm := &stubChatModel{fn: func(call int, input []*schema.Message) (*schema.Message, error) {
		return reply("summary"), nil
	}}
	cfg := config.Default()
	cfg.RequestTimeout = time.Nanosecond
	svc := newPipelineFixture(t, cfg, cm)

	doc, stats, err := svc.GenerateFromPath(context.Background(), pythonTree(t))

	require.NoError(t, err)
	require.NotNil(t, doc)
	for _, s := range doc.Sections {
		assert.NotEmpty(t, s.Content)
	}
	assert.True(t, stats.FallbackUsed)
}

func TestGenerateFromPath_RejectsMissingDirectory(t *testing.T) {
	svc := newPipelineFixture(t, config.Default(), nil)

	_, _, err := svc.GenerateFromPath(context.Background(), "/nonexistent/path/here")
	assert.Error(t, err)
}

func TestGenerate_RejectsInvalidURL(t *testing.T) {
	svc := newPipelineFixture(t, config.Default(), nil)

	for _, bad := range []string{"", "not-a-url", "ftp://host/a/b", "https://github.com/onlyowner"} {
		_, _, err := svc.Generate(context.Background(), bad)
		assert.Error(t, err, "expected rejection for %q", bad)
	}
}
