package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"readmegen/internal/config"
	"readmegen/internal/events"
	"readmegen/internal/models"
	"readmegen/internal/utils"
)

// existingReadmeBytes caps the excerpt of an existing README passed to the
// synthesis prompt as additional context.
const existingReadmeBytes = 2000

// GenerateStats summarizes one generation run for callers and the session
// store.
type GenerateStats struct {
	RequestID     string        `json:"requestId"`
	RepoURL       string        `json:"repoUrl"`
	Provider      string        `json:"provider"`
	Model         string        `json:"model"`
	FilesSelected int           `json:"filesSelected"`
	FilesAnalyzed int           `json:"filesAnalyzed"`
	FallbackUsed  bool          `json:"fallbackUsed"`
	Status        string        `json:"status"`
	Duration      time.Duration `json:"duration"`
	PrimaryLang   string        `json:"primaryLanguage"`
}

// ReadmeService is the pipeline entry point: clone, select, chunk, analyze,
// aggregate. It always returns a complete document; the only error it can
// surface is a repository retrieval failure.
type ReadmeService struct {
	cfg        config.Config
	git        *GitService
	selector   *FileSelector
	analysis   *AnalysisService // nil when no backend is configured
	fallback   *FallbackService
	aggregator *Aggregator
	sessions   GenerationSessionService // optional
}

func NewReadmeService(cfg config.Config, git *GitService, selector *FileSelector, analysis *AnalysisService, fallback *FallbackService, aggregator *Aggregator, sessions GenerationSessionService) *ReadmeService {
	return &ReadmeService{
		cfg:        cfg,
		git:        git,
		selector:   selector,
		analysis:   analysis,
		fallback:   fallback,
		aggregator: aggregator,
		sessions:   sessions,
	}
}

// Generate produces a README for a remote repository. Analysis-level
// failures never surface as errors, only as degraded document quality.
func (s *ReadmeService) Generate(ctx context.Context, repoURL string) (*models.ReadmeDocument, *GenerateStats, error) {
	if err := s.git.ValidateRepoURL(repoURL); err != nil {
		return nil, nil, err
	}

	requestID := uuid.NewString()
	ctx = events.WithRequest(ctx, requestID)
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	started := time.Now()
	events.Emit(ctx, events.NewInfo(events.StageClone, "cloning "+repoURL))

	root, cleanup, err := s.git.CloneTemp(ctx, repoURL)
	if err != nil {
		events.Emit(ctx, events.NewError(events.StageClone, err.Error()))
		return nil, nil, fmt.Errorf("repository retrieval failed: %w", err)
	}
	defer cleanup()

	doc, stats := s.run(ctx, repoURL, s.git.RepoName(repoURL), root, requestID)
	stats.Duration = time.Since(started)
	s.record(ctx, stats)
	events.Emit(ctx, events.NewDone(fmt.Sprintf("generated README for %s in %s", repoURL, stats.Duration.Round(time.Millisecond))))
	return doc, stats, nil
}

// GenerateFromPath runs the pipeline over an already checked-out tree.
// Used by the CLI local mode and by tests; no clone, no cleanup, no session
// record.
func (s *ReadmeService) GenerateFromPath(ctx context.Context, root string) (*models.ReadmeDocument, *GenerateStats, error) {
	if !utils.DirectoryExists(root) {
		return nil, nil, fmt.Errorf("not a directory: %s", root)
	}
	requestID := uuid.NewString()
	ctx = events.WithRequest(ctx, requestID)
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	started := time.Now()
	doc, stats := s.run(ctx, "", filepath.Base(filepath.Clean(root)), root, requestID)
	stats.Duration = time.Since(started)
	return doc, stats, nil
}

// run executes the analysis pipeline over a checkout. It cannot fail: every
// degraded path ends in the fallback synthesizer.
func (s *ReadmeService) run(ctx context.Context, repoURL, name, root, requestID string) (*models.ReadmeDocument, *GenerateStats) {
	stats := &GenerateStats{
		RequestID: requestID,
		RepoURL:   repoURL,
		Provider:  s.cfg.Provider,
		Model:     s.cfg.Model,
	}

	snap := s.git.Snapshot(root, name)
	stats.PrimaryLang = snap.PrimaryLanguage()

	candidates := s.selector.Select(snap)
	stats.FilesSelected = len(candidates)
	events.Emit(ctx, events.NewInfo(events.StageSelect,
		fmt.Sprintf("selected %d of %d files", len(candidates), snap.FileCount)))

	manifests := DiscoverManifests(root)
	fallbackDoc := s.fallback.Synthesize(snap, candidates, manifests, repoURL)

	if s.analysis == nil {
		// Backend unavailability is detected once, before any per-unit call.
		events.Emit(ctx, events.NewInfo(events.StageFallback, "no model backend configured, using fallback synthesizer"))
		stats.FallbackUsed = true
		stats.Status = models.SessionStatusFallback
		return fallbackDoc, stats
	}

	results := s.analysis.AnalyzeAll(ctx, root, candidates)
	succeeded := 0
	for _, r := range results {
		if r.OK {
			succeeded++
		}
	}
	stats.FilesAnalyzed = succeeded
	events.Emit(ctx, events.NewInfo(events.StageAnalyze,
		fmt.Sprintf("%d of %d file analyses succeeded", succeeded, len(results))))

	synthOK := false
	if succeeded > 0 {
		synth := s.analysis.Synthesize(ctx, snap, results,
			FormatManifests(manifests), s.existingReadme(root, snap))
		if synth.OK {
			synthOK = true
		} else {
			events.Emit(ctx, events.NewWarn(events.StageSynthesis, "project synthesis failed: "+synth.Err))
		}
		results = append(results, synth)
	}

	doc := s.aggregator.Compose(fallbackDoc, results)

	switch {
	case succeeded == 0:
		stats.FallbackUsed = true
		stats.Status = models.SessionStatusFallback
	case succeeded < len(candidates) || !synthOK:
		stats.FallbackUsed = true
		stats.Status = models.SessionStatusDegraded
	default:
		stats.Status = models.SessionStatusOK
	}
	return doc, stats
}

// existingReadme returns a capped excerpt of a pre-existing README, or "".
func (s *ReadmeService) existingReadme(root string, snap *models.RepositorySnapshot) string {
	for _, candidate := range []string{"README.md", "README", "README.txt", "readme.md"} {
		for _, f := range snap.Files {
			if f != candidate {
				continue
			}
			content, _, err := utils.ReadCapped(filepath.Join(root, f), existingReadmeBytes)
			if err == nil {
				return content
			}
		}
	}
	return ""
}

// record persists the session metadata when a store is configured. Failure
// to record never affects the response.
func (s *ReadmeService) record(ctx context.Context, stats *GenerateStats) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Record(stats); err != nil {
		events.Emit(ctx, events.NewWarn(events.StageDone, "failed to record session: "+err.Error()))
	}
}
