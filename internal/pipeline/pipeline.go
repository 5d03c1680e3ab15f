// Package pipeline wires the ingestion stages into one sequential run:
// detect format, extract text, call the model, sanitize candidates.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/vocabforge/vocabforge-server/constants"
	"github.com/vocabforge/vocabforge-server/internal/extract"
	"github.com/vocabforge/vocabforge-server/internal/llm"
)

// Upload is one ephemeral ingestion request. It is owned by a single call
// and discarded after text extraction.
type Upload struct {
	Content     []byte
	Filename    string
	ContentType string
	Mode        constants.ParseMode
}

type Pipeline struct {
	registry  extract.Registry
	extractor llm.VocabularyExtractor
	logger    *slog.Logger
}

func New(registry extract.Registry, extractor llm.VocabularyExtractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		registry:  registry,
		extractor: extractor,
		logger:    logger,
	}
}

// Run executes the stages strictly sequentially for one upload. Stage errors
// are terminal for the call; the only suspension point is the model request.
func (p *Pipeline) Run(ctx context.Context, up Upload) ([]llm.Item, error) {
	start := time.Now()

	format, err := extract.Resolve(up.Filename, up.ContentType, up.Mode)
	if err != nil {
		p.logger.Warn("ingest.detect_failed", "filename", up.Filename, "content_type", up.ContentType, "error", err)
		return nil, err
	}

	text, err := p.registry.ExtractText(up.Content, format)
	if err != nil {
		p.logger.Warn("ingest.extract_failed", "filename", up.Filename, "format", format, "error", err)
		return nil, err
	}
	p.logger.Info("ingest.text_extracted", "filename", up.Filename, "format", format, "text_len", len(text))

	raw, _, err := p.extractor.ExtractVocabulary(ctx, text)
	if err != nil {
		return nil, err
	}

	items := llm.Sanitize(raw)
	p.logger.Info("ingest.ok",
		"filename", up.Filename,
		"candidates", len(raw),
		"kept", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}
