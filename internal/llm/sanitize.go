package llm

import (
	"fmt"
	"slices"
	"strings"
)

// Sanitize filters and normalizes raw candidate entries into Items. It never
// fails: entries violating the data contract are dropped, not repaired.
// Per candidate, in order:
//  1. non-object entries are rejected outright;
//  2. word and meaning are coerced to trimmed strings;
//  3. options is coerced to trimmed, non-empty strings and truncated to at
//     most 4 entries (short lists are not padded, duplicates are kept);
//  4. category is coerced to a trimmed string, defaulting to "custom";
//  5. the item is kept only if word and meaning are non-empty, options has
//     exactly 4 entries, and options contains meaning.
func Sanitize(raw []any) []Item {
	out := make([]Item, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		item := Item{
			Word:     coerceString(m["word"]),
			Meaning:  coerceString(m["meaning"]),
			Options:  coerceOptions(m["options"]),
			Category: coerceString(m["category"]),
		}
		if item.Category == "" {
			item.Category = DefaultCategory
		}

		if item.Word == "" || item.Meaning == "" {
			continue
		}
		if len(item.Options) != 4 || !slices.Contains(item.Options, item.Meaning) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64, bool:
		return strings.TrimSpace(fmt.Sprint(t))
	default:
		return ""
	}
}

func coerceOptions(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	opts := make([]string, 0, 4)
	for _, o := range list {
		s := coerceString(o)
		if s == "" {
			continue
		}
		opts = append(opts, s)
		if len(opts) == 4 {
			break
		}
	}
	return opts
}
