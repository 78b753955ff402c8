package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmegen/internal/models"
)

func fallbackFixture() *models.ReadmeDocument {
	return models.NewReadmeDocument(map[models.SectionName]string{
		models.SectionTitle:        "Fallback Title",
		models.SectionDescription:  "Fallback description.",
		models.SectionFeatures:     "- Fallback feature",
		models.SectionTechStack:    "- Python",
		models.SectionInstallation: "```bash\ngit clone x\n```",
		models.SectionUsage:        "```bash\npython main.py\n```",
		models.SectionStructure:    "```\nmain.py\n```",
		models.SectionContributing: "Contributions welcome.",
		models.SectionLicense:      "MIT",
	})
}

func TestCompose_FailedResultsStillYieldCompleteDocument(t *testing.T) {
	agg := NewAggregator()
	results := []models.AnalysisResult{
		models.FailedAnalysis(models.AnalysisPerFile, "main.py", "backend timeout"),
		models.FailedAnalysis(models.AnalysisProjectSummary, "", "backend timeout"),
	}

	doc := agg.Compose(fallbackFixture(), results)

	require.Len(t, doc.Sections, len(models.SectionOrder))
	for _, s := range doc.Sections {
		assert.NotEmpty(t, s.Content)
	}
	desc, _ := doc.Section(models.SectionDescription)
	assert.Equal(t, "Fallback description.", desc)
}

func TestCompose_SynthesisOverlaysTitleDescriptionFeatures(t *testing.T) {
	agg := NewAggregator()
	results := []models.AnalysisResult{
		{
			Kind: models.AnalysisProjectSummary,
			OK:   true,
			Content: "# Data Pipeline\n\n" +
				"## Description\n\nAn ETL tool for CSV data.\n\n" +
				"## Features\n\n- Streaming ingestion\n- Schema validation\n",
		},
	}

	doc := agg.Compose(fallbackFixture(), results)

	title, _ := doc.Section(models.SectionTitle)
	assert.Equal(t, "Data Pipeline", title)
	desc, _ := doc.Section(models.SectionDescription)
	assert.Equal(t, "An ETL tool for CSV data.", desc)
	features, _ := doc.Section(models.SectionFeatures)
	assert.Contains(t, features, "- Streaming ingestion")

	// Sections the synthesis does not cover keep their fallback content.
	install, _ := doc.Section(models.SectionInstallation)
	assert.Contains(t, install, "git clone x")
}

func TestCompose_BackfillIsSectionGranular(t *testing.T) {
	agg := NewAggregator()
	// Synthesis succeeded but produced only a description.
	results := []models.AnalysisResult{
		{Kind: models.AnalysisProjectSummary, OK: true, Content: "## Description\n\nModel description.\n"},
	}

	doc := agg.Compose(fallbackFixture(), results)

	desc, _ := doc.Section(models.SectionDescription)
	assert.Equal(t, "Model description.", desc)
	title, _ := doc.Section(models.SectionTitle)
	assert.Equal(t, "Fallback Title", title)
	features, _ := doc.Section(models.SectionFeatures)
	assert.Equal(t, "- Fallback feature", features)
}

func TestCompose_KeyFilesNarrativeAppendsToStructure(t *testing.T) {
	agg := NewAggregator()
	results := []models.AnalysisResult{
		{Kind: models.AnalysisPerFile, FilePath: "main.py", OK: true, Content: "Program entry point."},
		models.FailedAnalysis(models.AnalysisPerFile, "utils.py", "timeout"),
		{Kind: models.AnalysisPerFile, FilePath: "db.py", OK: true, Content: "Database layer."},
	}

	doc := agg.Compose(fallbackFixture(), results)

	structure, _ := doc.Section(models.SectionStructure)
	assert.Contains(t, structure, "### Key Files")
	assert.Contains(t, structure, "- **main.py**: Program entry point.")
	assert.Contains(t, structure, "- **db.py**: Database layer.")
	assert.NotContains(t, structure, "utils.py")
}

func TestParseSynthesis_MalformedOutputParsesToNothing(t *testing.T) {
	title, sections := parseSynthesis("just some prose with no headings at all")
	assert.Empty(t, title)
	assert.Empty(t, sections)
}
