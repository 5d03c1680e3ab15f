package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/vocabforge/vocabforge-server/constants"
	"github.com/vocabforge/vocabforge-server/internal/common"
	"github.com/vocabforge/vocabforge-server/internal/extract"
)

type stubExtractor struct {
	format constants.Format
	text   string
	err    error
}

func (s *stubExtractor) Format() constants.Format { return s.format }
func (s *stubExtractor) Extract(_ []byte) (string, error) {
	return s.text, s.err
}

type stubLLM struct {
	gotText string
	raw     string
	err     error
}

func (s *stubLLM) ExtractVocabulary(_ context.Context, text string) ([]any, []byte, error) {
	s.gotText = text
	if s.err != nil {
		return nil, nil, s.err
	}
	var items []any
	if err := json.Unmarshal([]byte(s.raw), &items); err != nil {
		return nil, nil, err
	}
	return items, []byte(s.raw), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunHappyPath(t *testing.T) {
	ai := &stubLLM{raw: `[
		{"word":"Cat","meaning":"Animal","options":["Animal","Plant","Mineral","Fungus"]},
		{"word":"","meaning":"dropped","options":["dropped","a","b","c"]}
	]`}
	reg := extract.Registry{constants.XLSX: &stubExtractor{format: constants.XLSX, text: "Cat,Animal"}}
	p := New(reg, ai, quietLogger())

	items, err := p.Run(context.Background(), Upload{Filename: "vocab.xlsx", Mode: constants.ModeAuto})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Run() kept %d items, want 1 (invalid candidate must be filtered)", len(items))
	}
	if items[0].Word != "Cat" || items[0].Category != "custom" {
		t.Errorf("unexpected item: %#v", items[0])
	}
	if ai.gotText != "Cat,Animal" {
		t.Errorf("model received %q, want extracted text", ai.gotText)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	p := New(extract.NewRegistry(), &stubLLM{}, quietLogger())
	_, err := p.Run(context.Background(), Upload{Filename: "words.txt", ContentType: "text/plain", Mode: constants.ModeAuto})
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Fatalf("Run() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRunEmptyTextStopsBeforeModel(t *testing.T) {
	ai := &stubLLM{raw: `[]`}
	reg := extract.Registry{constants.DOCX: &stubExtractor{format: constants.DOCX, text: "   \n  "}}
	p := New(reg, ai, quietLogger())

	_, err := p.Run(context.Background(), Upload{Filename: "blank.docx", Mode: constants.ModeAuto})
	if !errors.Is(err, common.ErrNoExtractableText) {
		t.Fatalf("Run() error = %v, want ErrNoExtractableText", err)
	}
	if ai.gotText != "" {
		t.Error("model must not be called for empty extracted text")
	}
}

func TestRunModelFailurePropagates(t *testing.T) {
	ai := &stubLLM{err: common.ErrMalformedUpstreamJSON}
	reg := extract.Registry{constants.PDF: &stubExtractor{format: constants.PDF, text: "some words"}}
	p := New(reg, ai, quietLogger())

	_, err := p.Run(context.Background(), Upload{Filename: "words.pdf", Mode: constants.ModeAuto})
	if !errors.Is(err, common.ErrMalformedUpstreamJSON) {
		t.Fatalf("Run() error = %v, want ErrMalformedUpstreamJSON", err)
	}
}
