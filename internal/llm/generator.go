// Package llm is the boundary to the external content-generation service.
// The generator is slow and network-fallible; internal/gencache amortizes it.
package llm

import "context"

// Generator produces study content from a prompt. Implementations wrap a
// hosted model API; MockGenerator is the deterministic test seam.
type Generator interface {
	// Generate sends one prompt and returns the model's output. When the
	// request carries a Schema, the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Result, error)

	// ModelID returns the model identifier this generator is configured
	// to use. It participates in cache keys, so it must be stable.
	ModelID() string
}

// Request describes one generation call. Flashcard generation is single-turn:
// a system role plus one user prompt.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user-side content to generate from.
	Prompt string

	// Schema, when set, requires JSON output conforming to it via the
	// provider's structured output mechanism.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. It participates in
	// cache keys alongside the prompt and model.
	Temperature float64
}

// Schema is a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "flashcard-set".
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Result is the model's output for one request.
type Result struct {
	// Text is the generated output. With a Schema it is the validated
	// JSON document; without one it is plain text.
	Text string

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// Truncated is set when generation stopped at the MaxTokens limit.
	Truncated bool
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the combined token count.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
