package models

// RepositorySnapshot is a read-only view over a checked-out repository tree,
// owned by a single request for the request's lifetime.
type RepositorySnapshot struct {
	Root      string   `json:"root"`
	Name      string   `json:"name"`
	Files     []string `json:"files"`
	FileCount int      `json:"fileCount"`
	Languages []string `json:"languages"`
}

// PrimaryLanguage returns the most frequent detected language, or "Unknown"
// when the tree contained no recognized source files.
func (s *RepositorySnapshot) PrimaryLanguage() string {
	if s == nil || len(s.Languages) == 0 {
		return "Unknown"
	}
	return s.Languages[0]
}

// CandidateFile is a file picked by the selector for analysis. Truncated
// records that the on-disk content exceeded the configured size cap, so the
// cap is never applied silently.
type CandidateFile struct {
	Path      string  `json:"path"`
	Size      int64   `json:"size"`
	Language  string  `json:"language"`
	Extension string  `json:"extension"`
	Score     float64 `json:"score"`
	Truncated bool    `json:"truncated"`
}

// ContentChunk is a contiguous slice of a candidate file's content prepared
// for independent analysis. Overlap is the number of runes shared with the
// previous chunk; it is zero for the first chunk.
type ContentChunk struct {
	FilePath string `json:"filePath"`
	Index    int    `json:"index"`
	Content  string `json:"content"`
	Overlap  int    `json:"overlap"`
}
