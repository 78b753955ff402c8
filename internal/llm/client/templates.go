package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// Template wraps an eino chat template with required-field validation so a
// missing input fails fast instead of being silently interpolated away.
type Template struct {
	name     string
	required []string
	inner    prompt.ChatTemplate
}

// Format validates the inputs and renders the template into messages.
func (t *Template) Format(ctx context.Context, vs map[string]any, opts ...prompt.Option) ([]*schema.Message, error) {
	for _, key := range t.required {
		v, ok := vs[key]
		if !ok {
			return nil, fmt.Errorf("template %s: missing required field %q", t.name, key)
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("template %s: required field %q is empty", t.name, key)
		}
	}
	return t.inner.Format(ctx, vs, opts...)
}

// Templates is the full parametrized prompt set used by the analysis chain.
type Templates struct {
	FileAnalysis     *Template
	ProjectSynthesis *Template
	ChunkReduce      *Template
}

const analystPersona = "You are a code analysis expert. You summarize source files accurately and concisely."
const writerPersona = "You are an expert technical writer. You produce clear, professional README content."

// NewTemplates loads the embedded prompt texts and builds the chat templates.
func NewTemplates() (*Templates, error) {
	fileAnalysis, err := loadTemplate("file_analysis", analystPersona,
		[]string{"file_name", "file_language", "file_content"})
	if err != nil {
		return nil, err
	}
	synthesis, err := loadTemplate("project_synthesis", writerPersona,
		[]string{"project_name", "detected_languages", "per_file_summaries",
			"dependency_manifest_excerpt", "existing_readme"})
	if err != nil {
		return nil, err
	}
	reduce, err := loadTemplate("chunk_reduce", analystPersona,
		[]string{"file_name", "partial_summaries"})
	if err != nil {
		return nil, err
	}
	return &Templates{
		FileAnalysis:     fileAnalysis,
		ProjectSynthesis: synthesis,
		ChunkReduce:      reduce,
	}, nil
}

func loadTemplate(name, persona string, required []string) (*Template, error) {
	raw, err := embeddedPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", name, err)
	}
	return &Template{
		name:     name,
		required: required,
		inner: prompt.FromMessages(schema.FString,
			schema.SystemMessage(persona),
			schema.UserMessage(string(raw)),
		),
	}, nil
}
