package llm

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeRaw(t *testing.T, s string) []any {
	t.Helper()
	var raw []any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("bad test input: %v", err)
	}
	return raw
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Item
	}{
		{
			name: "valid item passes with trimming",
			in:   `[{"word":" Cat ","meaning":" Animal ","options":[" Animal ","Plant","Mineral","Fungus"],"category":" nature "}]`,
			want: []Item{{Word: "Cat", Meaning: "Animal", Options: []string{"Animal", "Plant", "Mineral", "Fungus"}, Category: "nature"}},
		},
		{
			name: "non-object entries rejected outright",
			in:   `["just a string", 42, null, ["nested"]]`,
			want: []Item{},
		},
		{
			name: "missing category defaults to custom",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","Stop","Jump","Crawl"]}]`,
			want: []Item{{Word: "Run", Meaning: "Move fast", Options: []string{"Move fast", "Stop", "Jump", "Crawl"}, Category: "custom"}},
		},
		{
			name: "blank category defaults to custom",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","Stop","Jump","Crawl"],"category":"  "}]`,
			want: []Item{{Word: "Run", Meaning: "Move fast", Options: []string{"Move fast", "Stop", "Jump", "Crawl"}, Category: "custom"}},
		},
		{
			name: "empty word rejected",
			in:   `[{"word":"  ","meaning":"Move fast","options":["Move fast","Stop","Jump","Crawl"]}]`,
			want: []Item{},
		},
		{
			name: "meaning not among options rejected",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Walk","Stop","Jump","Crawl"]}]`,
			want: []Item{},
		},
		{
			name: "three options rejected, not padded",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","Stop","Jump"]}]`,
			want: []Item{},
		},
		{
			name: "five options truncated to first four",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","Stop","Jump","Crawl","Sprint"]}]`,
			want: []Item{{Word: "Run", Meaning: "Move fast", Options: []string{"Move fast", "Stop", "Jump", "Crawl"}, Category: "custom"}},
		},
		{
			name: "meaning only beyond the truncation window rejected",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Walk","Stop","Jump","Crawl","Move fast"]}]`,
			want: []Item{},
		},
		{
			name: "empty options are dropped before counting",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","","Stop","Jump"]}]`,
			want: []Item{},
		},
		{
			name: "options not an array treated as empty",
			in:   `[{"word":"Run","meaning":"Move fast","options":"Move fast"}]`,
			want: []Item{},
		},
		{
			name: "duplicate options are kept, not deduplicated",
			in:   `[{"word":"Run","meaning":"Move fast","options":["Move fast","Move fast","Stop","Jump"],"category":"vocabulary"}]`,
			want: []Item{{Word: "Run", Meaning: "Move fast", Options: []string{"Move fast", "Move fast", "Stop", "Jump"}, Category: "vocabulary"}},
		},
		{
			name: "numeric word coerced to string",
			in:   `[{"word":42,"meaning":"Move fast","options":["Move fast","Stop","Jump","Crawl"]}]`,
			want: []Item{{Word: "42", Meaning: "Move fast", Options: []string{"Move fast", "Stop", "Jump", "Crawl"}, Category: "custom"}},
		},
		{
			name: "mixed array keeps only valid entries",
			in: `[
				"noise",
				{"word":"Cat","meaning":"Animal","options":["Animal","Plant","Mineral","Fungus"]},
				{"word":"","meaning":"Animal","options":["Animal","Plant","Mineral","Fungus"]}
			]`,
			want: []Item{{Word: "Cat", Meaning: "Animal", Options: []string{"Animal", "Plant", "Mineral", "Fungus"}, Category: "custom"}},
		},
		{
			name: "empty input yields empty output, not an error",
			in:   `[]`,
			want: []Item{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(decodeRaw(t, tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sanitize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Sanitize is idempotent: re-sanitizing its own output changes nothing.
func TestSanitizeIdempotent(t *testing.T) {
	in := decodeRaw(t, `[
		{"word":" Cat ","meaning":"Animal","options":["Animal","Plant","Mineral","Fungus"],"category":"nature"},
		{"word":"Run","meaning":"Move fast","options":["Move fast","Move fast","Stop","Jump"]},
		{"word":"","meaning":"dropped","options":["dropped","a","b","c"]}
	]`)
	first := Sanitize(in)

	// Round-trip the sanitized items back into untyped form.
	bs, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second := Sanitize(decodeRaw(t, string(bs)))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Sanitize not idempotent:\nfirst  = %#v\nsecond = %#v", first, second)
	}
}

func TestSanitizeNeverViolatesInvariants(t *testing.T) {
	in := decodeRaw(t, `[
		{"word":"a","meaning":"m","options":["m","x","y","z"]},
		{"word":"b","meaning":"m2","options":["x","y","z","q"]},
		{"word":"c","meaning":"m3","options":["m3","x"]},
		{"word":"d","meaning":"m4","options":["m4","x","y","z","w","v"]}
	]`)
	for _, item := range Sanitize(in) {
		if len(item.Options) != 4 {
			t.Errorf("item %q has %d options", item.Word, len(item.Options))
		}
		found := false
		for _, o := range item.Options {
			if o == item.Meaning {
				found = true
			}
		}
		if !found {
			t.Errorf("item %q: meaning %q not among options", item.Word, item.Meaning)
		}
	}
}
