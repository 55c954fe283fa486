package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiConfig configures the Gemini chat backend.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// GeminiModel is a ChatModel backed by the Gemini API.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiModel creates a Gemini chat backend. Call Close when done.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiModel{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Name returns the provider name.
func (m *GeminiModel) Name() string { return "gemini" }

// Complete generates a JSON reply for the user prompt under the system instruction.
func (m *GeminiModel) Complete(ctx context.Context, system, user string) (string, error) {
	model := m.client.GenerativeModel(m.model)
	model.SetTemperature(m.temperature)
	if m.maxTokens > 0 {
		model.SetMaxOutputTokens(m.maxTokens)
	}
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Close releases the underlying client.
func (m *GeminiModel) Close() error {
	return m.client.Close()
}
