package llm

import (
	"log"

	"github.com/boshu2/agentmri/internal/config"
)

// New selects a client from the LLM config. Fake mode, or a missing API key,
// falls back to the deterministic mock so the intern and critic still work
// offline.
func New(cfg config.LLMConfig) Client {
	if cfg.FakeMode || cfg.APIKey == "" {
		if !cfg.FakeMode {
			log.Println("no API key configured, using mock model client")
		}
		return NewMockClient()
	}
	return NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout())
}
