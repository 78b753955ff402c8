package services

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"readmegen/internal/config"
	"readmegen/internal/models"
	"readmegen/internal/utils"
)

// FileSelector picks an ordered, bounded set of candidate files from a
// repository snapshot. The result is deterministic for a fixed tree and
// configuration: scoring is pure and ties break on lexicographic path order.
type FileSelector struct {
	MaxFiles        int
	MaxFileSize     int
	Weights         config.SelectorWeights
	AllowExtensions map[string]struct{}
}

func NewFileSelector(cfg config.Config) *FileSelector {
	return &FileSelector{
		MaxFiles:        cfg.MaxFiles,
		MaxFileSize:     cfg.MaxFileSize,
		Weights:         cfg.Selector,
		AllowExtensions: defaultAllowExtensions,
	}
}

// Select scores every snapshot file, drops binary-looking ones, and returns
// the top MaxFiles by score. Files over the size cap are kept and marked
// Truncated rather than silently dropped.
func (s *FileSelector) Select(snap *models.RepositorySnapshot) []models.CandidateFile {
	if snap == nil || len(snap.Files) == 0 {
		return nil
	}

	candidates := make([]models.CandidateFile, 0, len(snap.Files))
	for _, rel := range snap.Files {
		abs := filepath.Join(snap.Root, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		ext := strings.ToLower(path.Ext(rel))
		if s.looksBinary(rel, abs, ext) {
			continue
		}
		candidates = append(candidates, models.CandidateFile{
			Path:      rel,
			Size:      info.Size(),
			Language:  languageByExtension[ext],
			Extension: ext,
			Score:     s.score(rel, ext),
			Truncated: info.Size() > int64(s.MaxFileSize),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Path < candidates[j].Path
	})

	if s.MaxFiles > 0 && len(candidates) > s.MaxFiles {
		candidates = candidates[:s.MaxFiles]
	}
	return candidates
}

// score computes the relevance of one relative path. The weights are
// configuration; only the resulting ordering is contracted.
func (s *FileSelector) score(rel, ext string) float64 {
	w := s.Weights
	base := path.Base(rel)
	depth := strings.Count(rel, "/")

	score := -w.DepthPenalty * float64(depth)
	if depth == 0 {
		score += w.RootLevel
	}
	if isEntryName(base) {
		score += w.EntryName
	}
	if _, ok := ecosystemFor(base); ok {
		score += w.Manifest
	}
	if _, ok := s.AllowExtensions[ext]; ok {
		score += w.SourceExt
	}
	return score
}

// binaryExtensions short-circuit the content probe for well-known formats.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".pdf": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".jar": {}, ".class": {}, ".exe": {},
	".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".wasm": {}, ".woff": {},
	".woff2": {}, ".ttf": {}, ".mp3": {}, ".mp4": {}, ".sqlite": {}, ".db": {},
}

func (s *FileSelector) looksBinary(rel, abs, ext string) bool {
	if _, ok := binaryExtensions[ext]; ok {
		return true
	}
	return utils.LooksBinary(abs)
}
