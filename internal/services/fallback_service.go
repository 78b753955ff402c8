package services

import (
	"fmt"
	"strings"

	"readmegen/internal/models"
)

// FallbackService is the deterministic, model-free document generator. It
// operates only on already-validated in-memory data and never fails; every
// degraded path in the pipeline ends here.
type FallbackService struct{}

func NewFallbackService() *FallbackService {
	return &FallbackService{}
}

// maxStructureEntries bounds the structure listing.
const maxStructureEntries = 15

// Synthesize builds a complete ReadmeDocument from snapshot metadata,
// selector output and discovered manifests.
func (f *FallbackService) Synthesize(snap *models.RepositorySnapshot, candidates []models.CandidateFile, manifests []Manifest, repoURL string) *models.ReadmeDocument {
	name := snap.Name
	if name == "" {
		name = "unknown-repo"
	}
	primary := snap.PrimaryLanguage()

	return models.NewReadmeDocument(map[models.SectionName]string{
		models.SectionTitle:        humanizeName(name),
		models.SectionDescription:  f.description(name, primary, snap),
		models.SectionFeatures:     f.features(snap, candidates, manifests),
		models.SectionTechStack:    f.techStack(snap, manifests),
		models.SectionInstallation: f.installation(name, repoURL, manifests),
		models.SectionUsage:        usageByLanguage(primary),
		models.SectionStructure:    f.structure(candidates),
		models.SectionContributing: "Contributions are welcome. Fork the repository, create a feature branch, and open a pull request.",
		models.SectionLicense:      f.license(snap),
	})
}

func (f *FallbackService) description(name, primary string, snap *models.RepositorySnapshot) string {
	if snap.FileCount == 0 {
		return fmt.Sprintf("%s is an empty repository; no files were found to analyze.", humanizeName(name))
	}
	if primary == "Unknown" {
		return fmt.Sprintf("%s is a repository containing %d files.", humanizeName(name), snap.FileCount)
	}
	return fmt.Sprintf("%s is a %s project containing %d files.", humanizeName(name), primary, snap.FileCount)
}

func (f *FallbackService) features(snap *models.RepositorySnapshot, candidates []models.CandidateFile, manifests []Manifest) string {
	var lines []string
	if primary := snap.PrimaryLanguage(); primary != "Unknown" {
		lines = append(lines, "- Written primarily in "+primary)
	}
	for _, eco := range Ecosystems(manifests) {
		lines = append(lines, "- Ships a "+eco+" dependency manifest")
	}
	if len(candidates) > 0 {
		lines = append(lines, fmt.Sprintf("- %d source files identified as most relevant", len(candidates)))
	}
	if len(lines) == 0 {
		lines = append(lines, "- Repository contents pending analysis")
	}
	return strings.Join(lines, "\n")
}

func (f *FallbackService) techStack(snap *models.RepositorySnapshot, manifests []Manifest) string {
	var lines []string
	for _, lang := range snap.Languages {
		lines = append(lines, "- "+lang)
	}
	for _, eco := range Ecosystems(manifests) {
		// Skip ecosystems already implied by a detected language.
		if contains(snap.Languages, eco) {
			continue
		}
		lines = append(lines, "- "+eco+" ecosystem")
	}
	if len(lines) == 0 {
		return "No technologies detected."
	}
	return strings.Join(lines, "\n")
}

// installCommands maps ecosystems to their dependency install step.
var installCommands = map[string]string{
	"Node.js":       "npm install",
	"Python":        "pip install -r requirements.txt",
	"Go":            "go build ./...",
	"Rust":          "cargo build",
	"Java (Maven)":  "mvn install",
	"Java (Gradle)": "gradle build",
	"Ruby":          "bundle install",
	"PHP":           "composer install",
}

func (f *FallbackService) installation(name, repoURL string, manifests []Manifest) string {
	cloneTarget := repoURL
	if cloneTarget == "" {
		cloneTarget = "<repository-url>"
	}
	var b strings.Builder
	b.WriteString("```bash\ngit clone " + cloneTarget + "\ncd " + name + "\n")
	for _, eco := range Ecosystems(manifests) {
		if cmd, ok := installCommands[eco]; ok {
			b.WriteString(cmd + "\n")
		}
	}
	b.WriteString("```")
	return b.String()
}

// usageByLanguage returns a fixed usage snippet for the primary language.
func usageByLanguage(primary string) string {
	switch primary {
	case "Go":
		return "```bash\ngo run .\n```"
	case "Python":
		return "```bash\npython main.py\n```"
	case "JavaScript", "TypeScript":
		return "```bash\nnpm start\n```"
	case "Rust":
		return "```bash\ncargo run\n```"
	case "Java":
		return "Build the project with your build tool, then run the produced artifact."
	default:
		return "Refer to the project documentation for usage instructions."
	}
}

func (f *FallbackService) structure(candidates []models.CandidateFile) string {
	if len(candidates) == 0 {
		return "No notable files identified."
	}
	n := len(candidates)
	if n > maxStructureEntries {
		n = maxStructureEntries
	}
	var b strings.Builder
	b.WriteString("```\n")
	for _, c := range candidates[:n] {
		b.WriteString(c.Path + "\n")
	}
	b.WriteString("```")
	return b.String()
}

func (f *FallbackService) license(snap *models.RepositorySnapshot) string {
	for _, file := range snap.Files {
		base := strings.ToLower(file)
		if base == "license" || base == "license.md" || base == "license.txt" || base == "copying" {
			return "See the [LICENSE](" + file + ") file for details."
		}
	}
	return "No license file detected. MIT is assumed by default; verify before use."
}

// humanizeName turns a repository slug into a display title.
func humanizeName(name string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
