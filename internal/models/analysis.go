package models

// AnalysisKind tags what an AnalysisResult describes.
type AnalysisKind string

const (
	AnalysisPerFile        AnalysisKind = "per-file"
	AnalysisProjectSummary AnalysisKind = "project-summary"
)

// AnalysisResult is the model's (or fallback's) output for one unit of work.
// Failure is routine: a failed result carries Err and is compensated at
// aggregation time, it is never propagated as a Go error.
type AnalysisResult struct {
	Kind     AnalysisKind `json:"kind"`
	FilePath string       `json:"filePath,omitempty"`
	Content  string       `json:"content"`
	OK       bool         `json:"ok"`
	Err      string       `json:"err,omitempty"`
}

// FailedAnalysis builds a failed per-unit result carrying an error note.
func FailedAnalysis(kind AnalysisKind, filePath, note string) AnalysisResult {
	return AnalysisResult{Kind: kind, FilePath: filePath, OK: false, Err: note}
}
