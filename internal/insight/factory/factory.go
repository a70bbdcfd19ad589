// Package factory constructs the configured insight provider.
package factory

import (
	"fmt"

	"github.com/newthinker/prism/internal/config"
	"github.com/newthinker/prism/internal/insight"
	"github.com/newthinker/prism/internal/insight/claude"
	"github.com/newthinker/prism/internal/insight/ollama"
	"github.com/newthinker/prism/internal/insight/openai"
)

// New creates the insight provider named by the configuration.
func New(cfg config.InsightConfig) (insight.Provider, error) {
	switch cfg.Provider {
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown insight provider: %s", cfg.Provider)
	}
}
