package services

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "readmegen"

// apiKeyEnvVars maps providers to the conventional environment variable
// checked before the OS keyring.
var apiKeyEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// KeyringService resolves and manages model-backend API keys.
type KeyringService struct{}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

// Resolve returns the API key for a provider: the provider's conventional
// environment variable first, then the OS keyring. An empty result means no
// backend is configured, which the pipeline treats as the fallback path,
// not an error.
func (s *KeyringService) Resolve(provider string) string {
	if env, ok := apiKeyEnvVars[provider]; ok {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	key, err := keyring.Get(keyringServiceName, provider)
	if err != nil {
		return ""
	}
	return key
}

func (s *KeyringService) StoreApiKey(provider, apiKey string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(keyringServiceName, provider, apiKey)
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	return keyring.Delete(keyringServiceName, provider)
}
