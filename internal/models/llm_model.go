package models

// BackendInfo describes the configured language-model backend as exposed on
// the /models route and the CLI. It never carries credentials.
type BackendInfo struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	TopP        float32 `json:"topP"`
	Configured  bool    `json:"configured"`
}
