package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverManifests_FindsNestedManifests(t *testing.T) {
	root := writeTree(t, map[string]string{
		"go.mod":                        "module demo",
		"web/package.json":              `{"name": "web"}`,
		"node_modules/dep/package.json": `{"name": "dep"}`,
	})

	manifests := DiscoverManifests(root)

	require.Len(t, manifests, 2)
	assert.Equal(t, "go.mod", manifests[0].Path)
	assert.Equal(t, "Go", manifests[0].Ecosystem)
	assert.Equal(t, "web/package.json", manifests[1].Path)
	assert.Equal(t, "Node.js", manifests[1].Ecosystem)
	assert.Contains(t, manifests[0].Excerpt, "module demo")
}

func TestDiscoverManifests_FindsConventionallyCasedNames(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml": "[package]\nname = \"demo\"",
		"Gemfile":    "source 'https://rubygems.org'",
		"go.mod":     "module demo",
	})

	ecosystems := Ecosystems(DiscoverManifests(root))

	assert.Contains(t, ecosystems, "Rust")
	assert.Contains(t, ecosystems, "Ruby")
	assert.Contains(t, ecosystems, "Go")
}

func TestEcosystems_Deduplicates(t *testing.T) {
	manifests := []Manifest{
		{Path: "requirements.txt", Ecosystem: "Python"},
		{Path: "setup.py", Ecosystem: "Python"},
		{Path: "go.mod", Ecosystem: "Go"},
	}
	assert.Equal(t, []string{"Go", "Python"}, Ecosystems(manifests))
}

func TestFormatManifests_EmptyInput(t *testing.T) {
	assert.Equal(t, "No dependency manifests detected.", FormatManifests(nil))
}
