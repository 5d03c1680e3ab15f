package llm

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	if BuildPrompt("Meticulous: very careful") != BuildPrompt("Meticulous: very careful") {
		t.Fatal("BuildPrompt must be deterministic for identical input")
	}
}

func TestBuildPromptContainsContract(t *testing.T) {
	p := BuildPrompt("some text")
	for _, want := range []string{
		"vocabulary extraction engine",
		"word: string",
		"meaning: string",
		"exactly 4 strings",
		"No markdown.",
		"Source text:\nsome text",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesBeforeRendering(t *testing.T) {
	// 50,000 characters in, only the first 45,000 may reach the model.
	text := strings.Repeat("a", MaxPromptChars) + strings.Repeat("z", 5000)
	p := BuildPrompt(text)

	if strings.Contains(p, "z") {
		t.Error("prompt contains text beyond the truncation boundary")
	}
	if !strings.HasSuffix(p, strings.Repeat("a", MaxPromptChars)) {
		t.Error("prompt should end with exactly the first 45000 characters of the source")
	}
}

func TestBuildPromptShortTextUntouched(t *testing.T) {
	if !strings.HasSuffix(BuildPrompt("short"), "Source text:\nshort") {
		t.Error("short source text must be appended verbatim")
	}
}
