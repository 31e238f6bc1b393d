package llm

import (
	"context"
	"fmt"

	"github.com/studykit/studykit/internal/store"
)

// NewGenerator creates a Generator from configuration.
// It returns the generator wrapped with retry and usage-log middleware.
func NewGenerator(ctx context.Context, cfg Config, usageRepo store.UsageRepo) (Generator, error) {
	var base Generator
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicGenerator(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIGenerator(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiGenerator(ctx, cfg.Gemini)
	case "mock":
		return NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s generator: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → usage log → base
	logged := WithUsageLog(base, usageRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
