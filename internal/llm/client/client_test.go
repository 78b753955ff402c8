package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RequiresAPIKeyAndModel(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "openai", Model: "gpt-4o-mini"})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Provider: "openai", APIKey: "sk-test"})
	assert.Error(t, err)
}

func TestNew_RejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "cohere", Model: "m", APIKey: "k"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestIsTransient(t *testing.T) {
	transient := []error{
		errors.New("read tcp 10.0.0.1:443: connection reset by peer"),
		errors.New("429 too many requests, rate limit exceeded"),
		errors.New("received 503 from upstream"),
		errors.New("dial tcp: lookup api.example.com: no such host"),
	}
	for _, err := range transient {
		assert.True(t, IsTransient(err), "expected transient: %v", err)
	}

	terminal := []error{
		nil,
		errors.New("401 unauthorized"),
		errors.New("invalid model name"),
		errors.New("incorrect api key provided"),
		context.Canceled,
		context.DeadlineExceeded,
		fmt.Errorf("call failed: %w", context.DeadlineExceeded),
	}
	for _, err := range terminal {
		assert.False(t, IsTransient(err), "expected terminal: %v", err)
	}
}
