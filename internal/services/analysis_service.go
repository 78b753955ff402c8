package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"readmegen/internal/config"
	"readmegen/internal/events"
	"readmegen/internal/llm/client"
	"readmegen/internal/llm/splitter"
	"readmegen/internal/models"
	"readmegen/internal/utils"
)

// AnalysisService binds the prompt templates to the configured chat model
// and runs them per unit of work. Per-unit failure is routine: every path
// returns an AnalysisResult, success or not, and the aggregator compensates.
type AnalysisService struct {
	cfg   config.Config
	split *splitter.Splitter

	fileChain   compose.Runnable[map[string]any, *schema.Message]
	reduceChain compose.Runnable[map[string]any, *schema.Message]
	synthChain  compose.Runnable[map[string]any, *schema.Message]
}

// NewAnalysisService compiles one chain per template against the chat model.
func NewAnalysisService(ctx context.Context, cfg config.Config, cm model.BaseChatModel) (*AnalysisService, error) {
	tpls, err := client.NewTemplates()
	if err != nil {
		return nil, err
	}
	split, err := splitter.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	fileChain, err := compileChain(ctx, tpls.FileAnalysis, cm)
	if err != nil {
		return nil, fmt.Errorf("compile file analysis chain: %w", err)
	}
	reduceChain, err := compileChain(ctx, tpls.ChunkReduce, cm)
	if err != nil {
		return nil, fmt.Errorf("compile chunk reduce chain: %w", err)
	}
	synthChain, err := compileChain(ctx, tpls.ProjectSynthesis, cm)
	if err != nil {
		return nil, fmt.Errorf("compile synthesis chain: %w", err)
	}

	return &AnalysisService{
		cfg:         cfg,
		split:       split,
		fileChain:   fileChain,
		reduceChain: reduceChain,
		synthChain:  synthChain,
	}, nil
}

func compileChain(ctx context.Context, tpl *client.Template, cm model.BaseChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	return compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(tpl).
		AppendChatModel(cm).
		Compile(ctx)
}

// AnalyzeAll fans out one analysis per candidate file, bounded by the
// configured in-flight maximum, and fans back in before returning. Results
// come back in candidate order so two runs over the same snapshot with a
// deterministic backend produce identical output. Tasks cut off by the
// request deadline report failed results; nothing is force-killed.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, root string, candidates []models.CandidateFile) []models.AnalysisResult {
	if len(candidates) == 0 {
		return nil
	}

	results := make([]models.AnalysisResult, len(candidates))
	sem := make(chan struct{}, s.cfg.MaxInFlight)
	var wg sync.WaitGroup

	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand models.CandidateFile) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = models.FailedAnalysis(models.AnalysisPerFile, cand.Path, "request deadline exceeded before analysis started")
				return
			}
			results[i] = s.analyzeFile(ctx, root, cand)
		}(i, cand)
	}
	wg.Wait()
	return results
}

// analyzeFile runs the per-file template once per chunk, then reduces the
// chunk summaries into a single result.
func (s *AnalysisService) analyzeFile(ctx context.Context, root string, cand models.CandidateFile) models.AnalysisResult {
	content, _, err := utils.ReadCapped(filepath.Join(root, filepath.FromSlash(cand.Path)), s.cfg.MaxFileSize)
	if err != nil {
		return models.FailedAnalysis(models.AnalysisPerFile, cand.Path, "read: "+err.Error())
	}
	if strings.TrimSpace(content) == "" {
		return models.FailedAnalysis(models.AnalysisPerFile, cand.Path, "file is empty")
	}

	language := cand.Language
	if language == "" {
		language = "plain text"
	}

	var summaries []string
	var lastErr string
	for chunk := range s.split.Chunks(cand.Path, content) {
		out, invErr := s.invoke(ctx, s.fileChain, map[string]any{
			"file_name":     cand.Path,
			"file_language": language,
			"file_content":  chunk.Content,
		})
		if invErr != nil {
			lastErr = invErr.Error()
			events.Emit(ctx, events.NewWarn(events.StageAnalyze,
				fmt.Sprintf("analysis of %s chunk %d failed: %v", cand.Path, chunk.Index, invErr)))
			continue
		}
		summaries = append(summaries, out)
	}
	if len(summaries) == 0 {
		return models.FailedAnalysis(models.AnalysisPerFile, cand.Path, lastErr)
	}

	return models.AnalysisResult{
		Kind:     models.AnalysisPerFile,
		FilePath: cand.Path,
		Content:  s.reduce(ctx, cand.Path, summaries),
		OK:       true,
	}
}

// reduce merges per-chunk summaries into one file summary: plain
// concatenation with chunk markers, or a second model pass when the combined
// text exceeds the compaction threshold. A failed compaction falls back to
// the concatenation; the file result stays successful.
func (s *AnalysisService) reduce(ctx context.Context, filePath string, summaries []string) string {
	if len(summaries) == 1 {
		return summaries[0]
	}
	var b strings.Builder
	for i, part := range summaries {
		fmt.Fprintf(&b, "[part %d] %s\n", i+1, strings.TrimSpace(part))
	}
	joined := strings.TrimSpace(b.String())
	if len(joined) <= s.cfg.CompactionSize {
		return joined
	}

	out, err := s.invoke(ctx, s.reduceChain, map[string]any{
		"file_name":         filePath,
		"partial_summaries": joined,
	})
	if err != nil {
		events.Emit(ctx, events.NewWarn(events.StageAnalyze,
			fmt.Sprintf("compaction of %s failed, keeping concatenation: %v", filePath, err)))
		return joined
	}
	return out
}

// Synthesize runs the single project-level invocation. Callers run it only
// after AnalyzeAll has returned, which is the fan-in barrier.
func (s *AnalysisService) Synthesize(ctx context.Context, snap *models.RepositorySnapshot, perFile []models.AnalysisResult, manifestExcerpt, existingReadme string) models.AnalysisResult {
	var b strings.Builder
	for _, r := range perFile {
		if !r.OK {
			continue
		}
		b.WriteString("### " + r.FilePath + "\n" + strings.TrimSpace(r.Content) + "\n\n")
	}
	summaries := strings.TrimSpace(b.String())
	if summaries == "" {
		summaries = "No per-file summaries available."
	}
	languages := strings.Join(snap.Languages, ", ")
	if languages == "" {
		languages = "Unknown"
	}
	if strings.TrimSpace(existingReadme) == "" {
		existingReadme = "No existing README found."
	}
	if strings.TrimSpace(manifestExcerpt) == "" {
		manifestExcerpt = "No dependency manifests detected."
	}

	out, err := s.invoke(ctx, s.synthChain, map[string]any{
		"project_name":                snap.Name,
		"detected_languages":          languages,
		"per_file_summaries":          summaries,
		"dependency_manifest_excerpt": manifestExcerpt,
		"existing_readme":             existingReadme,
	})
	if err != nil {
		return models.FailedAnalysis(models.AnalysisProjectSummary, "", err.Error())
	}
	return models.AnalysisResult{Kind: models.AnalysisProjectSummary, Content: out, OK: true}
}

// invoke runs one chain call under the per-call timeout, with a single
// automatic retry on transient transport errors. Well-formed backend
// rejections are terminal for the unit.
func (s *AnalysisService) invoke(ctx context.Context, chain compose.Runnable[map[string]any, *schema.Message], vars map[string]any) (string, error) {
	out, err := s.invokeOnce(ctx, chain, vars)
	if err != nil && client.IsTransient(err) && ctx.Err() == nil {
		out, err = s.invokeOnce(ctx, chain, vars)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("backend returned empty content")
	}
	return out, nil
}

func (s *AnalysisService) invokeOnce(ctx context.Context, chain compose.Runnable[map[string]any, *schema.Message], vars map[string]any) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	msg, err := chain.Invoke(callCtx, vars)
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("backend returned no message")
	}
	return msg.Content, nil
}
