package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vocabforge/vocabforge-server/constants"
	"github.com/vocabforge/vocabforge-server/internal/common"
	"github.com/vocabforge/vocabforge-server/internal/extract"
	"github.com/vocabforge/vocabforge-server/internal/llm/gemini"
	"github.com/vocabforge/vocabforge-server/internal/pipeline"
	"github.com/vocabforge/vocabforge-server/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir    = flag.String("dir", "", "directory of documents to ingest (required)")
		mode   = flag.String("mode", "auto", "parse mode: auto, pdf, docx or xlsx")
		dryRun = flag.Bool("dry-run", false, "extract and sanitize only, do not touch the store")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(2)
	}

	ctx := context.Background()

	client := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	p := pipeline.New(extract.NewRegistry(), client, logger)
	st := store.NewFileStore(cfg.Store.Path, logger)

	parseMode := constants.NormalizeParseMode(*mode)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Error("reading directory", "dir", *dir, "error", err)
		os.Exit(1)
	}

	var scanned, skipped, processed, failed, inserted int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		scanned++
		name := entry.Name()
		path := filepath.Join(*dir, name)

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Error("reading file", "file", name, "error", err)
			failed++
			continue
		}

		items, err := p.Run(ctx, pipeline.Upload{
			Content:  content,
			Filename: name,
			Mode:     parseMode,
		})
		if errors.Is(err, common.ErrUnsupportedFormat) {
			logger.Info("skipping unsupported file", "file", name)
			skipped++
			continue
		}
		if err != nil {
			logger.Error("ingestion failed", "file", name, "error", err)
			failed++
			continue
		}
		processed++

		if *dryRun {
			words := make([]string, 0, len(items))
			for _, it := range items {
				words = append(words, it.Word)
			}
			logger.Info("dry run", "file", name, "items", len(items), "words", strings.Join(words, ", "))
			continue
		}

		n, err := st.Merge(ctx, items)
		if err != nil {
			logger.Error("merging items", "file", name, "error", err)
			failed++
			continue
		}
		inserted += n
		logger.Info("file merged", "file", name, "items", len(items), "inserted", n)
	}

	logger.Info("batch complete",
		"scanned", scanned,
		"skipped", skipped,
		"processed", processed,
		"failed", failed,
		"inserted", inserted)

	fmt.Printf("Batch ingestion complete!\n")
	fmt.Printf("- Files scanned: %d\n", scanned)
	fmt.Printf("- Files processed: %d\n", processed)
	fmt.Printf("- Skipped (unsupported): %d\n", skipped)
	fmt.Printf("- Failures: %d\n", failed)
	fmt.Printf("- Items inserted: %d\n", inserted)
}
