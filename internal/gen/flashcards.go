// Package gen turns source material into flashcards via the generation
// boundary.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/llm"
	"github.com/studykit/studykit/internal/store"
)

const systemPrompt = `You are a study assistant that writes flashcards.
Given source material, produce clear, self-contained question/answer pairs.
Questions must be answerable from the material alone. Use the material's
terminology. Tag each card with a short topic label.`

// DefaultCount is how many cards one generation call asks for.
const DefaultCount = 10

// flashcardSchema constrains the generator's output to a parseable card set.
var flashcardSchema = &llm.Schema{
	Name: "flashcard-set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"answer":   map[string]any{"type": "string"},
						"hint":     map[string]any{"type": "string"},
						"topic":    map[string]any{"type": "string"},
					},
					"required": []any{"question", "answer"},
				},
			},
		},
		"required": []any{"cards"},
	},
}

// BuildRequest assembles the generation request for one document's material.
func BuildRequest(material string, count int) llm.Request {
	if count <= 0 {
		count = DefaultCount
	}
	return llm.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf("Write %d flashcards covering this material:\n\n%s", count, material),
		Schema:      flashcardSchema,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

type cardPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Hint     string `json:"hint"`
	Topic    string `json:"topic"`
}

type setPayload struct {
	Cards []cardPayload `json:"cards"`
}

// ParseCards converts validated generator output into card rows for the
// given document. Position follows the generated order.
func ParseCards(documentID, text string) ([]cards.Card, error) {
	var set setPayload
	if err := json.Unmarshal([]byte(text), &set); err != nil {
		return nil, fmt.Errorf("parse generated cards: %w", err)
	}
	if len(set.Cards) == 0 {
		return nil, fmt.Errorf("generator returned no cards")
	}

	out := make([]cards.Card, 0, len(set.Cards))
	for i, c := range set.Cards {
		out = append(out, cards.Card{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Question:   c.Question,
			Answer:     c.Answer,
			Hint:       c.Hint,
			Topic:      c.Topic,
			Position:   i,
		})
	}
	return out, nil
}

// Generate runs one cached generation call and stores the resulting cards.
func Generate(ctx context.Context, g llm.Generator, repo store.CardRepo, documentID, material string, count int) ([]cards.Card, error) {
	ctx = llm.WithPurpose(ctx, "flashcards")
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	result, err := g.Generate(ctx, BuildRequest(material, count))
	if err != nil {
		return nil, err
	}

	generated, err := ParseCards(documentID, result.Text)
	if err != nil {
		return nil, err
	}

	for _, c := range generated {
		if err := repo.Insert(ctx, c); err != nil {
			return nil, fmt.Errorf("store card %d: %w", c.Position, err)
		}
	}
	return generated, nil
}
