// Package config provides configuration management for Agent MRI.
// Configuration is loaded from (highest to lowest priority):
// 1. Environment variables (AGENTMRI_*)
// 2. Project config (.agentmri/config.yaml in cwd, or AGENTMRI_CONFIG path)
// 3. Home config (~/.agentmri/config.yaml)
// 4. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Agent MRI configuration, including the heuristic marker
// vocabularies the rule passes match against. Keeping the vocabularies here
// rather than as embedded literals lets deployments swap them without
// touching the engine.
type Config struct {
	// Output controls the default CLI output format (table, json, markdown).
	Output string `yaml:"output" json:"output"`

	// Verbose enables verbose output.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Server settings for the HTTP service.
	Server ServerConfig `yaml:"server" json:"server"`

	// LLM settings for the chaos-intern generator and critic.
	LLM LLMConfig `yaml:"llm" json:"llm"`

	// Markers holds the heuristic keyword lists used by the rule passes.
	Markers Markers `yaml:"markers" json:"markers"`

	// RiskWeights maps failure tags to their weight in the overall risk
	// score. Tags not listed fall back to DefaultRiskWeight.
	RiskWeights map[string]float64 `yaml:"risk_weights" json:"risk_weights"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	// Port is the listen port for mri serve.
	Port int `yaml:"port" json:"port"`
}

// LLMConfig holds model-client settings.
type LLMConfig struct {
	// BaseURL is an OpenAI-compatible chat completions endpoint.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// APIKey is the bearer token for BaseURL. Never hardcode it; set
	// AGENTMRI_API_KEY or the config file.
	APIKey string `yaml:"api_key" json:"api_key"`
	// Model is the model name sent with completion requests.
	Model string `yaml:"model" json:"model"`
	// TimeoutSeconds bounds a single completion request.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
	// FakeMode forces the deterministic offline client, so the intern and
	// critic run without network access or an API key.
	FakeMode bool `yaml:"fake_mode" json:"fake_mode"`
}

// Timeout returns the completion request timeout as a duration.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Markers holds the fixed heuristic vocabularies the rule passes match
// against. The serious-query and off-topic lists are disjoint by
// construction; coverage gaps are a known limitation of the heuristic, not
// something to silently widen.
type Markers struct {
	// Apology markers, matched case-insensitively against any step content.
	Apology []string `yaml:"apology" json:"apology"`

	// Hedging markers flag speculative agent thoughts.
	Hedging []string `yaml:"hedging" json:"hedging"`

	// SeriousQuery markers classify the original user query as high-stakes.
	SeriousQuery []string `yaml:"serious_query" json:"serious_query"`

	// OffTopic markers flag obviously off-topic vocabulary in thoughts and
	// final answers.
	OffTopic []string `yaml:"off_topic" json:"off_topic"`

	// Confidence markers detect absolutist or alarmist phrasing.
	Confidence []string `yaml:"confidence" json:"confidence"`

	// Citation markers detect attribution-like signals (sources, URLs,
	// bracketed references).
	Citation []string `yaml:"citation" json:"citation"`
}

// DefaultRiskWeight applies to tags missing from RiskWeights.
const DefaultRiskWeight = 0.3

// Default config values.
const (
	defaultOutput         = "table"
	defaultPort           = 8080
	defaultModel          = "gpt-4o-mini"
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultTimeoutSeconds = 60
)

// Default returns the default configuration, including the stock marker
// vocabularies and tag weights.
func Default() *Config {
	return &Config{
		Output: defaultOutput,
		Server: ServerConfig{Port: defaultPort},
		LLM: LLMConfig{
			BaseURL:        defaultBaseURL,
			Model:          defaultModel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Markers: DefaultMarkers(),
		RiskWeights: map[string]float64{
			"hallucination_risk":        0.9,
			"tool_misuse":               0.8,
			"memory_drift":              0.7,
			"speculative_metrics":       0.6,
			"overconfident_no_citation": 0.9,
			"tool_error":                0.9,
			"weak_grounding":            0.6,
			"apology":                   0.2,
		},
	}
}

// DefaultMarkers returns the stock heuristic vocabularies.
func DefaultMarkers() Markers {
	return Markers{
		Apology: []string{"sorry"},
		Hedging: []string{"i think"},
		SeriousQuery: []string{
			"security", "risk", "ai", "compliance", "policy", "finance",
		},
		OffTopic: []string{
			// movies / pets / random
			"dog", "dogs", "romantic comedies", "rom-com", "casserole",
			"recipe", "movie snack",
			// gardening / food
			"garden", "basil", "tomatoes", "weeds", "hops", "beer",
			"fermentation", "pineapple", "oat milk", "smoothie", "blender",
			"spatula",
			// office party / hydration chaos
			"water cooler", "hot dog", "eating contest",
			// novelty-spice topics
			"scoville", "hot sauce", "carolina reaper", "ghost pepper",
		},
		Confidence: []string{
			"there is zero tolerance", "zero tolerance", "we have validated",
			"we are certain", "this proves", "guaranteed", "no doubt",
			"undeniable", "without question", "mandatory", "critical fact",
			"this is not theoretical", "must be immediately addressed",
			"existential", "catastrophic", "collapse", "impending",
			"operational collapse", "algorithmic catastrophe",
		},
		Citation: []string{
			"according to", "source:", "paper", "study", "dataset", "report",
			"as reported by", "doi.org", "arxiv.org", "https://", "[1]",
			"(202",
		},
	}
}

// Load resolves configuration from files and environment.
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(cfg, filepath.Join(home, ".agentmri", "config.yaml")); err != nil {
			return nil, err
		}
	}

	projectPath := os.Getenv("AGENTMRI_CONFIG")
	if projectPath == "" {
		projectPath = filepath.Join(".agentmri", "config.yaml")
	}
	if err := mergeFile(cfg, projectPath); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// mergeFile overlays values from a yaml config file, if it exists.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays AGENTMRI_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("AGENTMRI_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("AGENTMRI_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("AGENTMRI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("AGENTMRI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("AGENTMRI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("AGENTMRI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("AGENTMRI_FAKE_MODE"); v == "true" || v == "1" {
		cfg.LLM.FakeMode = true
	}
}
