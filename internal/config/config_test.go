package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, "anthropic", cfg.LLM.Provider)
	require.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	require.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	require.Equal(t, 20, cfg.Session.MaxSize)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: openai
  openai:
    model: gpt-4o
session:
  maxsize: 10
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	require.Equal(t, 10, cfg.Session.MaxSize)
	// Untouched keys keep their defaults.
	require.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: openai\n"), 0o644))

	t.Setenv("STUDYKIT_LLM_PROVIDER", "gemini")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("STUDYKIT_DB", "/from/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "database path")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	require.Equal(t, "/from/flag.db", cfg.DB)
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	require.Equal(t, "anthropic", cfg.LLM.Provider)
}

func TestToLLM_DiscoversKeysFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	lc := cfg.ToLLM()
	require.Equal(t, "sk-test", lc.Anthropic.APIKey)
	require.NoError(t, lc.Validate())
}
