package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var fenceRegex = regexp.MustCompile("```(?:json)?\\s*\n?|```")

// CleanJSON strips Markdown code fences that models wrap JSON answers in.
func CleanJSON(s string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(strings.TrimSpace(s), ""))
}

// JourneySchema constrains the preparation-journey summary.
var JourneySchema = map[string]any{
	"type":     "object",
	"required": []any{"summary_paragraph"},
	"properties": map[string]any{
		"summary_paragraph": map[string]any{"type": "string"},
		"mistakes_to_avoid": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"key_tips":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

// RoundSchema constrains a per-round summary.
var RoundSchema = map[string]any{
	"type":     "object",
	"required": []any{"overview"},
	"properties": map[string]any{
		"overview":         map[string]any{"type": "string"},
		"coding_questions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"problem_links":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

// Validate checks data against schema.
func Validate(schema map[string]any, data []byte) error {
	b, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// Decode cleans a model answer, validates it against schema and unmarshals
// it into out.
func Decode(answer string, schema map[string]any, out any) error {
	data := []byte(CleanJSON(answer))
	if err := Validate(schema, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode summary: %w", err)
	}
	return nil
}
