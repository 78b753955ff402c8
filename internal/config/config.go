// Package config holds the immutable configuration value threaded through
// every pipeline component. Nothing in the pipeline reads ambient process
// state; the config is resolved once at startup from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"readmegen/internal/models"
	"readmegen/internal/utils"
)

// SelectorWeights are the tunable relevance-scoring weights of the file
// selector. Behavior is contracted only at the ordering level; the specific
// values are configuration, not API.
type SelectorWeights struct {
	RootLevel    float64
	DepthPenalty float64
	EntryName    float64
	Manifest     float64
	SourceExt    float64
}

// Config is the full pipeline configuration.
type Config struct {
	// Model backend.
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	TopP        float32

	// Budgets and limits.
	MaxFiles       int
	MaxFileSize    int
	ChunkSize      int
	ChunkOverlap   int
	CompactionSize int
	MaxInFlight    int
	CallTimeout    time.Duration
	RequestTimeout time.Duration

	Selector SelectorWeights

	// Collaborator settings, outside the pipeline itself.
	ServerAddr   string
	DatabasePath string
	Debug        bool
}

// Default returns the baseline configuration before environment overrides.
func Default() Config {
	return Config{
		Provider:       "",
		Model:          "",
		Temperature:    0.7,
		MaxTokens:      2048,
		TopP:           0.95,
		MaxFiles:       10,
		MaxFileSize:    5000,
		ChunkSize:      1000,
		ChunkOverlap:   200,
		CompactionSize: 4000,
		MaxInFlight:    4,
		CallTimeout:    120 * time.Second,
		RequestTimeout: 5 * time.Minute,
		Selector: SelectorWeights{
			RootLevel:    5,
			DepthPenalty: 1,
			EntryName:    10,
			Manifest:     8,
			SourceExt:    3,
		},
		ServerAddr:   ":8000",
		DatabasePath: "",
	}
}

// defaultModels picks a model name per provider when none is configured.
var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"gemini":    "gemini-2.0-flash",
}

// Load builds the configuration from a .env file (when one exists at the
// project root) and the process environment. README_GEN_* variables override
// the defaults.
func Load() (Config, error) {
	// A missing .env is fine; explicit environment still applies.
	_ = utils.LoadEnv()

	cfg := Default()
	cfg.Provider = envString("README_GEN_PROVIDER", cfg.Provider)
	cfg.Model = envString("README_GEN_MODEL", cfg.Model)
	cfg.APIKey = envString("README_GEN_API_KEY", cfg.APIKey)
	cfg.Temperature = envFloat32("README_GEN_TEMPERATURE", cfg.Temperature)
	cfg.MaxTokens = envInt("README_GEN_MAX_TOKENS", cfg.MaxTokens)
	cfg.TopP = envFloat32("README_GEN_TOP_P", cfg.TopP)
	cfg.MaxFiles = envInt("README_GEN_MAX_FILES", cfg.MaxFiles)
	cfg.MaxFileSize = envInt("README_GEN_MAX_FILE_SIZE", cfg.MaxFileSize)
	cfg.ChunkSize = envInt("README_GEN_CHUNK_SIZE", cfg.ChunkSize)
	cfg.ChunkOverlap = envInt("README_GEN_CHUNK_OVERLAP", cfg.ChunkOverlap)
	cfg.CompactionSize = envInt("README_GEN_COMPACTION_SIZE", cfg.CompactionSize)
	cfg.MaxInFlight = envInt("README_GEN_MAX_IN_FLIGHT", cfg.MaxInFlight)
	cfg.CallTimeout = envDuration("README_GEN_CALL_TIMEOUT", cfg.CallTimeout)
	cfg.RequestTimeout = envDuration("README_GEN_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ServerAddr = envString("README_GEN_ADDR", cfg.ServerAddr)
	cfg.DatabasePath = envString("README_GEN_DB_PATH", cfg.DatabasePath)
	cfg.Debug = envBool("README_GEN_DEBUG", cfg.Debug)

	if cfg.Model == "" && cfg.Provider != "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot honor.
func (c Config) Validate() error {
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxFiles < 0 {
		return fmt.Errorf("max files must not be negative, got %d", c.MaxFiles)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxInFlight <= 0 {
		return fmt.Errorf("max in-flight calls must be positive, got %d", c.MaxInFlight)
	}
	switch c.Provider {
	case "", "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	return nil
}

// HasBackend reports whether a model backend is configured at all. When it
// returns false the pipeline short-circuits to the fallback synthesizer
// without attempting any per-unit calls.
func (c Config) HasBackend() bool {
	return c.Provider != "" && c.APIKey != ""
}

// BackendInfo is the credential-free view of the backend configuration.
func (c Config) BackendInfo() models.BackendInfo {
	return models.BackendInfo{
		Provider:    c.Provider,
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		TopP:        c.TopP,
		Configured:  c.HasBackend(),
	}
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat32(key string, fallback float32) float32 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// Bare integers are accepted as seconds.
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
