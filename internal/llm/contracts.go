package llm

import "context"

// DefaultCategory is assigned when the model cannot infer one from context.
const DefaultCategory = "custom"

// Item is one sanitized vocabulary flashcard: a word, its meaning, and four
// answer options that include the meaning.
type Item struct {
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// VocabularyExtractor is the interface the ingestion pipeline depends on.
// The raw reply is returned untyped: schema-constrained generation reduces
// but does not eliminate malformed output, so Sanitize remains the single
// trust boundary for candidate items.
type VocabularyExtractor interface {
	ExtractVocabulary(ctx context.Context, text string) (raw []any, payload []byte, err error)
}
