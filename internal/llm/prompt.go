package llm

import "strings"

// MaxPromptChars caps how much source text reaches the model. Truncation
// happens before the prompt is rendered, never after.
const MaxPromptChars = 45000

// BuildPrompt renders the extraction instruction block for the given source
// text. Deterministic and side-effect free.
func BuildPrompt(text string) string {
	if len(text) > MaxPromptChars {
		text = text[:MaxPromptChars]
	}

	var b strings.Builder
	b.WriteString("You are a vocabulary extraction engine.\n\n")
	b.WriteString("Given the source text below, identify distinct words and meanings and return ONLY a strict JSON array.\n")
	b.WriteString("Each array item must contain:\n")
	b.WriteString("- word: string\n")
	b.WriteString("- meaning: string\n")
	b.WriteString("- options: exactly 4 strings including the correct meaning and 3 plausible distractors\n")
	b.WriteString("- category: string inferred from context when possible, else \"" + DefaultCategory + "\"\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1) No markdown.\n")
	b.WriteString("2) No extra commentary.\n")
	b.WriteString("3) Return strictly valid JSON matching the schema.\n")
	b.WriteString("4) Ensure options are unique and exactly length 4.\n")
	b.WriteString("5) meaning must be one of options.\n\n")
	b.WriteString("Source text:\n")
	b.WriteString(text)
	return b.String()
}
