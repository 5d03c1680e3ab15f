package llm

// BuildResponseSchema returns the generation constraint sent to the model:
// an array of objects with the four required fields, in the uppercase type
// notation the Gemini generationConfig expects.
func BuildResponseSchema() map[string]any {
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"word":    map[string]any{"type": "STRING"},
				"meaning": map[string]any{"type": "STRING"},
				"options": map[string]any{
					"type":     "ARRAY",
					"items":    map[string]any{"type": "STRING"},
					"minItems": 4,
					"maxItems": 4,
				},
				"category": map[string]any{"type": "STRING"},
			},
			"required": []string{"word", "meaning", "options", "category"},
		},
	}
}

// BuildValidationSchema returns the same contract as a standard JSON Schema
// document, used locally to detect upstream schema drift.
func BuildValidationSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":    map[string]any{"type": "string"},
				"meaning": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"category": map[string]any{"type": "string"},
			},
			"required": []string{"word", "meaning", "options", "category"},
		},
	}
}
