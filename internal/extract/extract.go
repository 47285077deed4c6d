// Package extract turns free-form attraction descriptions into structured
// records with a single model call.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mkobayashi/tabiplan/internal/engine"
	"github.com/mkobayashi/tabiplan/internal/store"
)

// extractionTemperature is deliberately low; the task is transcription,
// not generation.
const extractionTemperature float32 = 0.3

const systemPrompt = "You are a data extraction assistant. You pull structured " +
	"information out of unstructured text and answer with nothing but JSON."

const promptTemplate = `Extract the structured information of a Tokyo attraction from the
following text and return it as a JSON object.

Text:
%s

Extract these fields:
- name: attraction name
- city: city (default "Tokyo")
- ward: ward (e.g. Taito, Minato)
- description: attraction description
- address: full address
- latitude: latitude (0.0 if unknown)
- longitude: longitude (0.0 if unknown)
- ticket_price: ticket price
- opening_hours: opening hours
- recommended_duration: recommended visit duration
- categories: category labels as an array, e.g. ["temple", "culture"]
- transportation: transport options as an object, e.g. {"metro": "5 min walk from Asakusa Station"}
- nearby_attractions: nearby attraction names as an array
- website: official website
- phone: contact phone number

Return only the JSON object, nothing else.`

// attractionSchema rejects malformed model output before it reaches the
// writer. Only shape is validated; content quality is the model's problem.
const attractionSchema = `{
	"type": "object",
	"required": ["name", "city", "ward", "description"],
	"properties": {
		"name":                 {"type": "string", "minLength": 1},
		"city":                 {"type": "string", "minLength": 1},
		"ward":                 {"type": "string", "minLength": 1},
		"description":          {"type": "string", "minLength": 1},
		"address":              {"type": "string"},
		"latitude":             {"type": "number"},
		"longitude":            {"type": "number"},
		"ticket_price":         {"type": "string"},
		"opening_hours":        {"type": "string"},
		"recommended_duration": {"type": "string"},
		"categories":           {"type": "array", "items": {"type": "string"}},
		"transportation":       {"type": "object", "additionalProperties": {"type": "string"}},
		"nearby_attractions":   {"type": "array", "items": {"type": "string"}},
		"website":              {"type": "string"},
		"phone":                {"type": "string"}
	}
}`

// Extractor performs one-shot structured extraction through an LLM client.
type Extractor struct {
	llm   engine.LLMClient
	model string
}

// NewExtractor creates an extractor bound to a client and model.
func NewExtractor(llm engine.LLMClient, model string) (*Extractor, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm client is not configured")
	}
	return &Extractor{llm: llm, model: model}, nil
}

// Extract asks the model for a structured record of the attraction
// described in text, salvages the JSON object from the response and
// validates its shape.
func (e *Extractor) Extract(ctx context.Context, text string) (store.Attraction, error) {
	messages := []engine.ChatMessage{
		{Role: engine.RoleSystem, Content: systemPrompt},
		{Role: engine.RoleUser, Content: fmt.Sprintf(promptTemplate, text)},
	}

	resp, err := e.llm.Chat(ctx, e.model, messages, engine.ChatOptions{
		Temperature: extractionTemperature,
	})
	if err != nil {
		return store.Attraction{}, fmt.Errorf("extraction call failed: %w", err)
	}

	raw, err := salvageJSON(resp.Text)
	if err != nil {
		return store.Attraction{}, err
	}

	if err := validateAttraction(raw); err != nil {
		return store.Attraction{}, err
	}

	var a store.Attraction
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return store.Attraction{}, fmt.Errorf("failed to decode extracted record: %w", err)
	}
	return a, nil
}

// salvageJSON returns the text itself when it parses as JSON, otherwise
// the span between the first '{' and the last '}'. Models like to wrap
// the object in prose or code fences.
func salvageJSON(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in model response")
	}

	candidate := trimmed[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("model response contains malformed JSON")
	}
	return candidate, nil
}

func validateAttraction(raw string) error {
	schemaLoader := gojsonschema.NewStringLoader(attractionSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var errorMsgs []string
		for _, e := range result.Errors() {
			errorMsgs = append(errorMsgs, e.String())
		}
		return fmt.Errorf("extracted record is invalid: %s", strings.Join(errorMsgs, "; "))
	}
	return nil
}
