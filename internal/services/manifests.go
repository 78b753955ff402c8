package services

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/yargevad/filepathx"

	"readmegen/internal/utils"
)

// manifestExcerptBytes caps how much of each manifest file is carried into
// prompts and the tech-stack section.
const manifestExcerptBytes = 500

// Manifest is a discovered dependency-manifest file with a capped excerpt.
type Manifest struct {
	Path      string
	Ecosystem string
	Excerpt   string
}

// DiscoverManifests globs the checkout for known dependency manifests at any
// depth, excluding denied directories, and returns them sorted by path.
func DiscoverManifests(root string) []Manifest {
	var out []Manifest
	for _, name := range manifestFileNames {
		eco, ok := ecosystemFor(name)
		if !ok {
			continue
		}
		matches, err := filepathx.Glob(filepath.Join(root, "**", name))
		if err != nil {
			continue
		}
		for _, match := range matches {
			rel, relErr := filepath.Rel(root, match)
			if relErr != nil || deniedPath(rel) {
				continue
			}
			excerpt, _, readErr := utils.ReadCapped(match, manifestExcerptBytes)
			if readErr != nil {
				continue
			}
			out = append(out, Manifest{
				Path:      filepath.ToSlash(rel),
				Ecosystem: eco,
				Excerpt:   excerpt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// FormatManifests renders manifests as a labeled excerpt block for prompts.
func FormatManifests(manifests []Manifest) string {
	if len(manifests) == 0 {
		return "No dependency manifests detected."
	}
	var b strings.Builder
	for _, m := range manifests {
		b.WriteString("**" + m.Ecosystem + "** (" + m.Path + "):\n")
		b.WriteString(m.Excerpt)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// Ecosystems lists the distinct ecosystems implied by the manifests, sorted.
func Ecosystems(manifests []Manifest) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range manifests {
		if _, ok := seen[m.Ecosystem]; ok {
			continue
		}
		seen[m.Ecosystem] = struct{}{}
		out = append(out, m.Ecosystem)
	}
	sort.Strings(out)
	return out
}

func deniedPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if shouldSkipDir(part) {
			return true
		}
	}
	return false
}
