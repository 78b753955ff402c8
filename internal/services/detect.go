package services

import (
	"path/filepath"
	"sort"
	"strings"
)

// defaultDenyDirs are never descended into: version-control metadata,
// dependency caches, build output and editor state.
var defaultDenyDirs = map[string]struct{}{
	".git":         {},
	".idea":        {},
	".vscode":      {},
	".next":        {},
	"node_modules": {},
	"__pycache__":  {},
	"venv":         {},
	"env":          {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
}

// languageByExtension maps source extensions to display language names.
var languageByExtension = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".go":    "Go",
	".rs":    "Rust",
	".java":  "Java",
	".cpp":   "C++",
	".cc":    "C++",
	".c":     "C",
	".h":     "C",
	".cs":    "C#",
	".php":   "PHP",
	".rb":    "Ruby",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".sql":   "SQL",
}

// defaultAllowExtensions is the selector's source-file allow list.
var defaultAllowExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".go": {}, ".rs": {}, ".java": {}, ".cpp": {}, ".cc": {}, ".c": {}, ".h": {},
	".cs": {}, ".php": {}, ".rb": {}, ".swift": {}, ".kt": {}, ".scala": {}, ".sql": {},
}

// manifestFileNames are the conventional on-disk spellings of the known
// dependency manifests. Discovery globs use these; glob matching is
// case-sensitive on Linux, so a lowercased name would miss Cargo.toml and
// Gemfile.
var manifestFileNames = []string{
	"package.json",
	"requirements.txt",
	"pyproject.toml",
	"setup.py",
	"go.mod",
	"Cargo.toml",
	"pom.xml",
	"build.gradle",
	"Gemfile",
	"composer.json",
}

// manifestEcosystems maps lowercased dependency-manifest filenames to the
// ecosystem their presence implies. Scoring matches case-insensitively
// through ecosystemFor.
var manifestEcosystems = map[string]string{
	"package.json":     "Node.js",
	"requirements.txt": "Python",
	"pyproject.toml":   "Python",
	"setup.py":         "Python",
	"go.mod":           "Go",
	"cargo.toml":       "Rust",
	"pom.xml":          "Java (Maven)",
	"build.gradle":     "Java (Gradle)",
	"gemfile":          "Ruby",
	"composer.json":    "PHP",
}

// entryStems are filename stems that usually mark program entry points.
var entryStems = map[string]struct{}{
	"main":     {},
	"app":      {},
	"index":    {},
	"server":   {},
	"program":  {},
	"__init__": {},
}

// shouldSkipDir reports whether a directory is excluded from traversal.
// Hidden directories are skipped wholesale.
func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, deny := defaultDenyDirs[name]
	return deny
}

// isEntryName reports whether a base filename looks like an entry point.
func isEntryName(base string) bool {
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	_, ok := entryStems[stem]
	return ok
}

// ecosystemFor returns the ecosystem implied by a manifest filename.
func ecosystemFor(base string) (string, bool) {
	eco, ok := manifestEcosystems[strings.ToLower(base)]
	return eco, ok
}

// detectLanguages counts recognized extensions over relative paths and
// returns languages ordered by frequency, name as tie-break.
func detectLanguages(files []string) []string {
	counts := map[string]int{}
	for _, f := range files {
		if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(f))]; ok {
			counts[lang]++
		}
	}
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}
