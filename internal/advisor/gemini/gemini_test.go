package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentgenius/backend/internal/advisor"
	"github.com/filamentgenius/backend/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestGenerateJSON(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody(`[{"name":"PolyLite PLA"}]`)))
	})

	out, err := c.GenerateJSON(context.Background(), advisor.StructuredRequest{
		SystemInstruction: "you are a filament expert",
		Prompt:            "recommend something",
		Schema:            &advisor.Schema{Type: advisor.TypeArray},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"PolyLite PLA"}]`, out)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "you are a filament expert", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, model.RoleUser, got.Contents[0].Role)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
	assert.Equal(t, advisor.TypeArray, got.GenerationConfig.ResponseSchema.Type)
}

func TestChat_SendsHistoryInOrder(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("PETG would suit that.")))
	})

	out, err := c.Chat(context.Background(), advisor.ChatRequest{
		SystemInstruction: "be brief",
		History: []advisor.Turn{
			{Role: model.RoleUser, Text: "hi"},
			{Role: model.RoleModel, Text: "hello"},
		},
		Message: "outdoor planter material?",
	})
	require.NoError(t, err)
	assert.Equal(t, "PETG would suit that.", out)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, model.RoleUser, got.Contents[0].Role)
	assert.Equal(t, model.RoleModel, got.Contents[1].Role)
	assert.Equal(t, "outdoor planter material?", got.Contents[2].Parts[0].Text)
	assert.Nil(t, got.GenerationConfig, "chat requests are free-form")
}

func TestGenerate_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	})

	_, err := c.Chat(context.Background(), advisor.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerate_NoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Chat(context.Background(), advisor.ChatRequest{Message: "hi"})
	require.Error(t, err)
}

func TestNewClient_RequiresKeyAndModel(t *testing.T) {
	_, err := NewClient(Options{Model: "m"}, zerolog.Nop())
	require.Error(t, err)
	_, err = NewClient(Options{APIKey: "k"}, zerolog.Nop())
	require.Error(t, err)
}

func TestHealthPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash", r.URL.Path)
		w.Write([]byte(`{"name":"models/gemini-2.5-flash"}`))
	})
	assert.NoError(t, c.HealthPing(context.Background()))

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	assert.Error(t, bad.HealthPing(context.Background()))
}
