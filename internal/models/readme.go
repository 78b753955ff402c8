package models

import "strings"

// SectionName identifies one of the fixed README sections.
type SectionName string

const (
	SectionTitle        SectionName = "title"
	SectionDescription  SectionName = "description"
	SectionFeatures     SectionName = "features"
	SectionTechStack    SectionName = "tech-stack"
	SectionInstallation SectionName = "installation"
	SectionUsage        SectionName = "usage"
	SectionStructure    SectionName = "structure"
	SectionContributing SectionName = "contributing"
	SectionLicense      SectionName = "license"
)

// SectionOrder is the fixed order sections appear in the final document,
// independent of the completion order of the analyses that populated them.
var SectionOrder = []SectionName{
	SectionTitle,
	SectionDescription,
	SectionFeatures,
	SectionTechStack,
	SectionInstallation,
	SectionUsage,
	SectionStructure,
	SectionContributing,
	SectionLicense,
}

// sectionHeadings maps section names to their rendered Markdown headings.
var sectionHeadings = map[SectionName]string{
	SectionDescription:  "Description",
	SectionFeatures:     "Features",
	SectionTechStack:    "Technologies Used",
	SectionInstallation: "Installation",
	SectionUsage:        "Usage",
	SectionStructure:    "Project Structure",
	SectionContributing: "Contributing",
	SectionLicense:      "License",
}

// Section is one named, populated README section.
type Section struct {
	Name    SectionName `json:"name"`
	Content string      `json:"content"`
}

// ReadmeDocument is the final output: an ordered sequence of sections.
// Every section is always present; construction never fails partially.
type ReadmeDocument struct {
	Sections []Section `json:"sections"`
}

const placeholderContent = "_Not available._"

// NewReadmeDocument builds a document from per-section content in the fixed
// order. Sections missing from content or empty receive a placeholder so the
// document invariant (all sections present, non-empty) always holds.
func NewReadmeDocument(content map[SectionName]string) *ReadmeDocument {
	doc := &ReadmeDocument{Sections: make([]Section, 0, len(SectionOrder))}
	for _, name := range SectionOrder {
		body := strings.TrimSpace(content[name])
		if body == "" {
			body = placeholderContent
		}
		doc.Sections = append(doc.Sections, Section{Name: name, Content: body})
	}
	return doc
}

// Section returns the content of the named section.
func (d *ReadmeDocument) Section(name SectionName) (string, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s.Content, true
		}
	}
	return "", false
}

// Render emits the document as Markdown in the fixed section order.
func (d *ReadmeDocument) Render() string {
	var b strings.Builder
	for _, s := range d.Sections {
		if s.Name == SectionTitle {
			b.WriteString("# " + s.Content + "\n\n")
			continue
		}
		b.WriteString("## " + sectionHeadings[s.Name] + "\n\n")
		b.WriteString(s.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
