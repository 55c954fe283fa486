// Package llm turns contract text into structured field documents using a
// chat model, with an optional on-disk cache in front.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// Extraction failure stages.
const (
	StageRequest  = "request"
	StageEmpty    = "empty_response"
	StageParse    = "parse"
	StagePrompt   = "prompt"
	StageCanceled = "canceled"
)

// ExtractionError is returned when the model could not produce a usable document.
type ExtractionError struct {
	Provider string
	Stage    string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("llm %s: %s: %v", e.Provider, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ChatModel is a single-turn completion backend.
type ChatModel interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Extractor implements port.Extractor on top of a ChatModel.
type Extractor struct {
	model   ChatModel
	timeout time.Duration
	logger  *slog.Logger
}

// NewExtractor creates an Extractor. A zero timeout means no per-call deadline.
func NewExtractor(model ChatModel, timeout time.Duration, logger *slog.Logger) *Extractor {
	return &Extractor{
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Extract asks the model for the field document of contractType and returns
// it as a compact JSON object.
func (e *Extractor) Extract(ctx context.Context, contractType valueobject.ContractType, text string) ([]byte, error) {
	system, err := SystemPrompt(contractType)
	if err != nil {
		return nil, e.fail(StagePrompt, err)
	}
	user, err := UserPrompt(contractType, text)
	if err != nil {
		return nil, e.fail(StagePrompt, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	reply, err := e.model.Complete(ctx, system, user)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, e.fail(StageCanceled, err)
		}
		return nil, e.fail(StageRequest, err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, e.fail(StageEmpty, errors.New("model returned no content"))
	}

	doc, err := ParseDocument(reply)
	if err != nil {
		return nil, e.fail(StageParse, err)
	}

	e.logger.DebugContext(ctx, "contract data extracted",
		slog.String("provider", e.model.Name()),
		slog.String("contract_type", contractType.String()),
		slog.Int("text_length", len(text)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return doc, nil
}

func (e *Extractor) fail(stage string, err error) error {
	return &ExtractionError{Provider: e.model.Name(), Stage: stage, Err: err}
}

// ParseDocument pulls the JSON object out of a model reply. Replies wrapped
// in Markdown code fences or surrounded by prose are accepted.
func ParseDocument(reply string) ([]byte, error) {
	candidate := strings.TrimSpace(reply)
	if strings.Contains(candidate, "```") {
		for _, part := range strings.Split(candidate, "```") {
			part = strings.TrimSpace(part)
			part = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(part, "json"), "JSON"))
			if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
				candidate = part
				break
			}
		}
	}
	if !strings.HasPrefix(candidate, "{") {
		start, end := strings.Index(candidate, "{"), strings.LastIndex(candidate, "}")
		if start < 0 || end <= start {
			return nil, errors.New("reply contains no JSON object")
		}
		candidate = candidate[start : end+1]
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return nil, fmt.Errorf("invalid JSON in reply: %w", err)
	}
	return buf.Bytes(), nil
}
