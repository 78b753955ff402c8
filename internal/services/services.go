package services

import (
	"context"

	"gorm.io/gorm"

	"readmegen/internal/config"
	"readmegen/internal/llm/client"
	"readmegen/internal/repositories"
)

// Services aggregates the pipeline services wired for one configuration.
type Services struct {
	Git      *GitService
	Selector *FileSelector
	Fallback *FallbackService
	Sessions GenerationSessionService
	Readme   *ReadmeService
}

// NewServices constructs the service container. db may be nil, in which case
// session history is disabled. When no backend is configured the analysis
// service is left nil and the pipeline short-circuits to the fallback
// synthesizer.
func NewServices(ctx context.Context, cfg config.Config, db *gorm.DB) (*Services, error) {
	git := NewGitService()
	selector := NewFileSelector(cfg)
	fallback := NewFallbackService()
	aggregator := NewAggregator()

	var analysis *AnalysisService
	if cfg.HasBackend() {
		llmClient, err := client.New(ctx, client.Options{
			Provider:    cfg.Provider,
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			TopP:        cfg.TopP,
			Timeout:     cfg.CallTimeout,
		})
		if err != nil {
			return nil, err
		}
		analysis, err = NewAnalysisService(ctx, cfg, llmClient.ChatModel())
		if err != nil {
			return nil, err
		}
	}

	var sessions GenerationSessionService
	if db != nil {
		sessions = NewGenerationSessionService(repositories.NewGenerationSessionRepository(db))
	}

	return &Services{
		Git:      git,
		Selector: selector,
		Fallback: fallback,
		Sessions: sessions,
		Readme:   NewReadmeService(cfg, git, selector, analysis, fallback, aggregator, sessions),
	}, nil
}
