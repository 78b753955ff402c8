package services

import (
	"strings"

	"readmegen/internal/models"
)

// Aggregator merges analysis results into the fixed section order. Fallback
// composition is section-granular: any section without a corresponding
// successful result is backfilled from the fallback document independently,
// so the final document is always complete.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Compose builds the final document. fallbackDoc must be complete (the
// fallback synthesizer guarantees that); results may be empty, partial, or
// contain failures.
func (a *Aggregator) Compose(fallbackDoc *models.ReadmeDocument, results []models.AnalysisResult) *models.ReadmeDocument {
	sections := map[models.SectionName]string{}
	for _, s := range fallbackDoc.Sections {
		sections[s.Name] = s.Content
	}

	if synth, ok := findProjectSummary(results); ok {
		title, parsed := parseSynthesis(synth.Content)
		if title != "" {
			sections[models.SectionTitle] = title
		}
		if body := parsed["description"]; body != "" {
			sections[models.SectionDescription] = body
		}
		if body := parsed["features"]; body != "" {
			sections[models.SectionFeatures] = body
		}
	}

	if narrative := keyFilesNarrative(results); narrative != "" {
		sections[models.SectionStructure] = strings.TrimSpace(
			sections[models.SectionStructure] + "\n\n### Key Files\n\n" + narrative)
	}

	return models.NewReadmeDocument(sections)
}

func findProjectSummary(results []models.AnalysisResult) (models.AnalysisResult, bool) {
	for _, r := range results {
		if r.Kind == models.AnalysisProjectSummary && r.OK {
			return r, true
		}
	}
	return models.AnalysisResult{}, false
}

// keyFilesNarrative renders the successful per-file analyses, in result
// order, as the key-files portion of the structure section.
func keyFilesNarrative(results []models.AnalysisResult) string {
	var b strings.Builder
	for _, r := range results {
		if r.Kind != models.AnalysisPerFile || !r.OK {
			continue
		}
		b.WriteString("- **" + r.FilePath + "**: " + strings.TrimSpace(r.Content) + "\n")
	}
	return strings.TrimSpace(b.String())
}

// parseSynthesis extracts the title and level-two sections from the model's
// synthesis output. Malformed output simply parses to nothing, and the
// affected sections fall back.
func parseSynthesis(content string) (string, map[string]string) {
	title := ""
	sections := map[string]string{}
	current := ""
	var body strings.Builder

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			current = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "## ")))
		case strings.HasPrefix(trimmed, "# "):
			if title == "" {
				title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			}
		default:
			if current != "" {
				body.WriteString(line + "\n")
			}
		}
	}
	flush()
	return title, sections
}
