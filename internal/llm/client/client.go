// Package client wraps the eino chat-model providers behind a single
// constructor, so the rest of the pipeline depends only on the eino
// model interface and the config value.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Options carries the backend configuration for one client instance.
type Options struct {
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	TopP        float32
	Timeout     time.Duration
}

// LLMClient is a provider-agnostic handle on a chat model.
type LLMClient struct {
	chatModel model.BaseChatModel
	provider  string
	modelName string
}

// New instantiates the chat model for the configured provider.
func New(ctx context.Context, opts Options) (*LLMClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("API key for %s is not configured", opts.Provider)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("model name is required")
	}

	var (
		cm  model.BaseChatModel
		err error
	)
	switch opts.Provider {
	case "openai":
		cm, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			Temperature: &opts.Temperature,
			MaxTokens:   &opts.MaxTokens,
			TopP:        &opts.TopP,
			Timeout:     opts.Timeout,
		})
	case "anthropic":
		cm, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			MaxTokens:   opts.MaxTokens,
			Temperature: &opts.Temperature,
			TopP:        &opts.TopP,
		})
	case "gemini":
		var gc *genai.Client
		gc, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  opts.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err == nil {
			cm, err = gemini.NewChatModel(ctx, &gemini.Config{
				Client: gc,
				Model:  opts.Model,
			})
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", opts.Provider, err)
	}

	return &LLMClient{chatModel: cm, provider: opts.Provider, modelName: opts.Model}, nil
}

// ChatModel exposes the underlying eino model for chain composition.
func (c *LLMClient) ChatModel() model.BaseChatModel { return c.chatModel }

// Provider returns the configured provider identifier.
func (c *LLMClient) Provider() string { return c.provider }

// Model returns the configured model name.
func (c *LLMClient) Model() string { return c.modelName }

// terminalMarkers identify well-formed backend rejections. These are never
// retried: the same request would fail the same way.
var terminalMarkers = []string{
	"api key", "unauthorized", "forbidden", "invalid model", "model not found",
	"not found", "400", "401", "403", "404",
}

// transientMarkers identify transport-level failures worth one retry.
var transientMarkers = []string{
	"connection reset", "connection refused", "broken pipe", "unexpected eof",
	"rate limit", "overloaded", "429", "500", "502", "503", "504",
	"timeout awaiting response", "no such host",
}

// IsTransient classifies a backend error as a retryable transport failure.
// Context cancellation and deadline expiry are never transient: the budget
// that would fund a retry is already gone.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range terminalMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
