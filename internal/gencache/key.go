// Package gencache is a content-addressed cache in front of the
// generation service. Identical requests within the TTL are served
// from storage instead of paying for a fresh model call.
package gencache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/studykit/studykit/internal/llm"
)

// normalize serializes every generation-relevant part of the request so
// that equal inputs hash identically and any semantic difference changes
// the key. Text parts keep their case: prompts are source material, where
// case carries meaning. Only whitespace and line endings are cleaned.
func normalize(req llm.Request, model string) string {
	normalizePart := func(part string) string {
		p := strings.TrimSpace(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	system := normalizePart(req.System)
	prompt := normalizePart(req.Prompt)
	m := strings.ToLower(strings.TrimSpace(model))
	temp := strconv.FormatFloat(req.Temperature, 'f', 2, 64)

	// Schemas shape the output, so they are part of the payload.
	// json.Marshal sorts map keys, giving a stable serialization.
	schema := ""
	if req.Schema != nil {
		schema = req.Schema.Name
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			schema += ":" + string(def)
		}
	}

	// Join with a newline to keep fields separated, so "prompt"+"model"
	// cannot collide with "promptmodel".
	return strings.Join([]string{system, prompt, m, temp, schema}, "\n")
}

// Key normalizes the request and returns its SHA-256 hash as a hex string.
func Key(req llm.Request, model string) string {
	hashBytes := sha256.Sum256([]byte(normalize(req, model)))
	return fmt.Sprintf("%x", hashBytes)
}
