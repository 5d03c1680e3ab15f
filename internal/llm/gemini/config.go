package gemini

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vocabforge/vocabforge-server/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey  string        // if empty, falls back to env GEMINI_API_KEY
	BaseURL string        // default https://generativelanguage.googleapis.com
	Model   string        // e.g. "gemini-1.5-flash"
	Timeout time.Duration // http client timeout; expiry surfaces as ErrUpstreamTimeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
	schema *jsonschema.Schema
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		schema: compileValidationSchema(logger),
	}
}

// compileValidationSchema prepares the local drift check. A compile failure
// only disables the check; validation of candidates stays with Sanitize.
func compileValidationSchema(logger *slog.Logger) *jsonschema.Schema {
	const url = "schema://vocabulary-items.json"
	raw, err := json.Marshal(llm.BuildValidationSchema())
	if err != nil {
		logger.Warn("llm.schema.encode_error", "error", err)
		return nil
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, strings.NewReader(string(raw))); err != nil {
		logger.Warn("llm.schema.add_resource_error", "error", err)
		return nil
	}
	s, err := c.Compile(url)
	if err != nil {
		logger.Warn("llm.schema.compile_error", "error", err)
		return nil
	}
	return s
}
