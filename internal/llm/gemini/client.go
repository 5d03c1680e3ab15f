package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vocabforge/vocabforge-server/internal/common"
	"github.com/vocabforge/vocabforge-server/internal/llm"
)

// generateContentEnvelope is the fixed response shape the textual payload
// lives in: candidates[0].content.parts[0].text.
type generateContentEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractVocabulary implements llm.VocabularyExtractor over one synchronous
// generateContent call with a response-schema constraint. The parsed array
// is returned untyped; downstream Sanitize decides what survives.
func (c *Client) ExtractVocabulary(ctx context.Context, text string) ([]any, []byte, error) {
	if c.cfg.APIKey == "" {
		return nil, nil, common.ErrMissingCredential
	}

	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	body := map[string]any{
		"contents": []any{
			map[string]any{
				"role":  "user",
				"parts": []any{map[string]any{"text": llm.BuildPrompt(text)}},
			},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   llm.BuildResponseSchema(),
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1beta/models/" + c.cfg.Model + ":generateContent"
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		if isTimeout(err) {
			c.logger.Error("llm.extract.timeout",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, nil, fmt.Errorf("%w after %s", common.ErrUpstreamTimeout, c.cfg.Timeout)
		}
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	if status < 200 || status >= 300 {
		c.logger.Error("llm.extract.upstream_status",
			"req_id", rid, "status", status, "body", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("%w: status %d: %s", common.ErrUpstream, status, strings.TrimSpace(string(raw)))
	}

	var envelope generateContentEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("%w: decode envelope: %v", common.ErrMalformedUpstreamJSON, err)
	}

	payload := firstText(envelope)
	if strings.TrimSpace(payload) == "" {
		c.logger.Error("llm.extract.empty_response",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.ErrEmptyUpstreamResponse
	}

	var items []any
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		c.logger.Error("llm.extract.malformed_payload",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, []byte(payload), fmt.Errorf("%w: %v", common.ErrMalformedUpstreamJSON, err)
	}

	c.checkSchemaDrift(rid, payload)

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"candidates", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, []byte(payload), nil
}

// checkSchemaDrift compares the payload against the constraint we asked the
// model to honor. Drift is logged, never fatal: Sanitize is the trust
// boundary for individual candidates.
func (c *Client) checkSchemaDrift(rid, payload string) {
	if c.schema == nil {
		return
	}
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return
	}
	if err := c.schema.Validate(v); err != nil {
		c.logger.Warn("llm.extract.schema_drift", "req_id", rid, "error", err)
	}
}

func firstText(envelope generateContentEnvelope) string {
	if len(envelope.Candidates) == 0 {
		return ""
	}
	parts := envelope.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
