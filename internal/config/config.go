// Package config loads layered configuration: compiled defaults, then an
// optional YAML file, then STUDYKIT_ environment variables, then flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/studykit/studykit/internal/llm"
)

// envPrefix is stripped from environment variables; the remainder maps to
// config keys, e.g. STUDYKIT_LLM_PROVIDER -> llm.provider.
const envPrefix = "STUDYKIT_"

// Config is the full application configuration.
type Config struct {
	// DB is the sqlite database path. Empty means the default location.
	DB string `koanf:"db"`

	LLM     LLMConfig     `koanf:"llm"`
	Cache   CacheConfig   `koanf:"cache"`
	Session SessionConfig `koanf:"session"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	Provider string `koanf:"provider"`

	Anthropic ProviderConfig `koanf:"anthropic"`
	OpenAI    ProviderConfig `koanf:"openai"`
	Gemini    ProviderConfig `koanf:"gemini"`

	MaxAttempts int           `koanf:"maxattempts"`
	Timeout     time.Duration `koanf:"timeout"`
}

// ProviderConfig holds one backend's settings. BaseURL only applies to
// OpenAI-compatible backends.
type ProviderConfig struct {
	APIKey  string `koanf:"apikey"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"baseurl"`
}

// CacheConfig tunes the generation cache.
type CacheConfig struct {
	TTL            time.Duration `koanf:"ttl"`
	CleanupHorizon time.Duration `koanf:"cleanup"`
}

// SessionConfig tunes study session building.
type SessionConfig struct {
	MaxSize int `koanf:"maxsize"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	base := llm.DefaultConfig()
	return Config{
		LLM: LLMConfig{
			Provider:    base.Provider,
			Anthropic:   ProviderConfig{Model: base.Anthropic.Model},
			OpenAI:      ProviderConfig{Model: base.OpenAI.Model},
			Gemini:      ProviderConfig{Model: base.Gemini.Model},
			MaxAttempts: base.Retry.MaxAttempts,
			Timeout:     base.Timeout,
		},
		Cache: CacheConfig{
			TTL:            24 * time.Hour,
			CleanupHorizon: 7 * 24 * time.Hour,
		},
		Session: SessionConfig{
			MaxSize: 20,
		},
	}
}

// Load layers the configuration sources. path may be empty or point to a
// missing file, in which case the file layer is skipped. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("load flag config: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToLLM converts the loaded settings into the generator's config,
// discovering API keys from standard env vars when none are set.
func (c Config) ToLLM() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Timeout = c.LLM.Timeout
	if c.LLM.MaxAttempts > 0 {
		out.Retry.MaxAttempts = c.LLM.MaxAttempts
	}

	out.Anthropic.APIKey = firstNonEmpty(c.LLM.Anthropic.APIKey, os.Getenv("ANTHROPIC_API_KEY"))
	out.Anthropic.Model = firstNonEmpty(c.LLM.Anthropic.Model, out.Anthropic.Model)
	out.OpenAI.APIKey = firstNonEmpty(c.LLM.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY"))
	out.OpenAI.Model = firstNonEmpty(c.LLM.OpenAI.Model, out.OpenAI.Model)
	out.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	out.Gemini.APIKey = firstNonEmpty(c.LLM.Gemini.APIKey, os.Getenv("GEMINI_API_KEY"))
	out.Gemini.Model = firstNonEmpty(c.LLM.Gemini.Model, out.Gemini.Model)

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
