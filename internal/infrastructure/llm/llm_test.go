package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/llm"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockChatModel struct {
	CompleteFunc func(ctx context.Context, system, user string) (string, error)
	calls        int
}

func (m *mockChatModel) Name() string { return "mock" }

func (m *mockChatModel) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls++
	return m.CompleteFunc(ctx, system, user)
}

func replying(reply string) *mockChatModel {
	return &mockChatModel{CompleteFunc: func(context.Context, string, string) (string, error) {
		return reply, nil
	}}
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{name: "plain object", reply: `{"job_title": "Entwickler"}`, want: `{"job_title":"Entwickler"}`},
		{name: "json fence", reply: "```json\n{\"vacation\": {\"days_per_year\": 24}}\n```", want: `{"vacation":{"days_per_year":24}}`},
		{name: "bare fence with prose", reply: "Hier das Ergebnis:\n```\n{\"a\": 1}\n```\nViel Erfolg.", want: `{"a":1}`},
		{name: "prose around object", reply: "Ergebnis: {\"a\": true} Ende", want: `{"a":true}`},
		{name: "no object", reply: "keine Angaben", wantErr: true},
		{name: "broken json", reply: `{"a": }`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := llm.ParseDocument(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestPrompts(t *testing.T) {
	for _, ct := range valueobject.AllContractTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			system, err := llm.SystemPrompt(ct)
			require.NoError(t, err)
			assert.Contains(t, system, "JSON")

			user, err := llm.UserPrompt(ct, "§ 1 Vertragsgegenstand")
			require.NoError(t, err)
			assert.Contains(t, user, "§ 1 Vertragsgegenstand")
		})
	}

	_, err := llm.UserPrompt(valueobject.ContractType{}, "text")
	assert.Error(t, err)
}

func TestExtractor_Extract(t *testing.T) {
	model := &mockChatModel{CompleteFunc: func(_ context.Context, system, user string) (string, error) {
		assert.Contains(t, system, "Arbeitsrecht")
		assert.Contains(t, user, `"probation"`)
		return "```json\n{\"probation\": {\"duration_months\": 6}}\n```", nil
	}}
	extractor := llm.NewExtractor(model, time.Second, discardLogger)

	doc, err := extractor.Extract(context.Background(), valueobject.ContractTypeEmployment, "Probezeit sechs Monate")
	require.NoError(t, err)
	assert.JSONEq(t, `{"probation":{"duration_months":6}}`, string(doc))
}

func TestExtractor_Failures(t *testing.T) {
	tests := []struct {
		name      string
		model     *mockChatModel
		wantStage string
	}{
		{
			name: "request error",
			model: &mockChatModel{CompleteFunc: func(context.Context, string, string) (string, error) {
				return "", errors.New("429 too many requests")
			}},
			wantStage: llm.StageRequest,
		},
		{name: "empty reply", model: replying("  "), wantStage: llm.StageEmpty},
		{name: "unparseable reply", model: replying("Ich kann das nicht."), wantStage: llm.StageParse},
		{
			name: "canceled",
			model: &mockChatModel{CompleteFunc: func(ctx context.Context, _, _ string) (string, error) {
				return "", context.Canceled
			}},
			wantStage: llm.StageCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := llm.NewExtractor(tt.model, 0, discardLogger)
			_, err := extractor.Extract(context.Background(), valueobject.ContractTypeNDA, "Geheimhaltung")

			var extractionErr *llm.ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, tt.wantStage, extractionErr.Stage)
			assert.Equal(t, "mock", extractionErr.Provider)
		})
	}
}

func TestExtractor_AppliesTimeout(t *testing.T) {
	model := &mockChatModel{CompleteFunc: func(ctx context.Context, _, _ string) (string, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, time.Second)
		return "{}", nil
	}}
	_, err := llm.NewExtractor(model, 50*time.Millisecond, discardLogger).
		Extract(context.Background(), valueobject.ContractTypeSaaS, "SaaS")
	assert.NoError(t, err)
}

func TestDummyModel(t *testing.T) {
	extractor := llm.NewExtractor(llm.DummyModel{}, 0, discardLogger)
	doc, err := extractor.Extract(context.Background(), valueobject.ContractTypeVendor, "Liefervertrag")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(doc))
}

func TestCachedExtractor(t *testing.T) {
	db, err := llm.OpenCache("", nil)
	require.NoError(t, err)
	defer db.Close()

	model := replying(`{"service_name": "CloudCRM"}`)
	inner := llm.NewExtractor(model, 0, discardLogger)
	cached := llm.NewCachedExtractor(inner, db, "mock/test", time.Hour, discardLogger)
	ctx := context.Background()

	first, err := cached.Extract(ctx, valueobject.ContractTypeSaaS, "CloudCRM Vertrag")
	require.NoError(t, err)
	second, err := cached.Extract(ctx, valueobject.ContractTypeSaaS, "CloudCRM Vertrag")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, model.calls)

	_, err = cached.Extract(ctx, valueobject.ContractTypeVendor, "CloudCRM Vertrag")
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls, "contract type is part of the key")

	other := llm.NewCachedExtractor(inner, db, "mock/other", time.Hour, discardLogger)
	_, err = other.Extract(ctx, valueobject.ContractTypeSaaS, "CloudCRM Vertrag")
	require.NoError(t, err)
	assert.Equal(t, 3, model.calls, "namespace is part of the key")
}

func TestCachedExtractor_ErrorsAreNotCached(t *testing.T) {
	db, err := llm.OpenCache("", nil)
	require.NoError(t, err)
	defer db.Close()

	model := replying("kein JSON")
	cached := llm.NewCachedExtractor(llm.NewExtractor(model, 0, discardLogger), db, "mock", 0, discardLogger)

	for i := 0; i < 2; i++ {
		_, err := cached.Extract(context.Background(), valueobject.ContractTypeNDA, "NDA")
		assert.Error(t, err)
	}
	assert.Equal(t, 2, model.calls)
}

func TestOpenAIModel_Complete(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct{ Role, Content string }
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"nda_type\": \"mutual\"}"}}]
		}`)
	}))
	defer srv.Close()

	model, err := llm.NewOpenAIModel(llm.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Temperature: 0.1, MaxTokens: 4000})
	require.NoError(t, err)

	doc, err := llm.NewExtractor(model, time.Second, discardLogger).
		Extract(context.Background(), valueobject.ContractTypeNDA, "Gegenseitige Geheimhaltung")
	require.NoError(t, err)

	assert.JSONEq(t, `{"nda_type":"mutual"}`, string(doc))
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestOpenAIModel_RequiresKey(t *testing.T) {
	_, err := llm.NewOpenAIModel(llm.OpenAIConfig{})
	assert.Error(t, err)
}

func TestGeminiModel_RequiresKey(t *testing.T) {
	_, err := llm.NewGeminiModel(context.Background(), llm.GeminiConfig{})
	assert.Error(t, err)
}
