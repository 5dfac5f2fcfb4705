package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

func candidateResponse(text string) []byte {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestGeminiClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Priming pair first, history in order, new user turn last.
		require.Len(t, req.Contents, 5)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "[System Instructions")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "You are Coach Ana")
		assert.Equal(t, "model", req.Contents[1].Role)
		assert.Equal(t, primingAck, req.Contents[1].Parts[0].Text)
		assert.Equal(t, "user", req.Contents[2].Role)
		assert.Equal(t, "earlier question", req.Contents[2].Parts[0].Text)
		assert.Equal(t, "model", req.Contents[3].Role)
		assert.Equal(t, "earlier answer", req.Contents[3].Parts[0].Text)
		assert.Equal(t, "user", req.Contents[4].Role)
		assert.Equal(t, "new question", req.Contents[4].Parts[0].Text)

		// Fixed generation parameters and safety thresholds.
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
		assert.Equal(t, 40, req.GenerationConfig.TopK)
		assert.Equal(t, 0.95, req.GenerationConfig.TopP)
		assert.Equal(t, 2048, req.GenerationConfig.MaxOutputTokens)
		assert.Len(t, req.SafetySettings, 4)

		w.Header().Set("Content-Type", "application/json")
		w.Write(candidateResponse("the reply"))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	history := []domain.ConversationTurn{
		{Role: domain.RoleUser, Text: "earlier question"},
		{Role: domain.RoleAssistant, Text: "earlier answer"},
	}
	text, err := client.Complete(context.Background(), "You are Coach Ana.", history, "new question")

	require.NoError(t, err)
	assert.Equal(t, "the reply", text)
}

func TestGeminiClient_Complete_MissingKeyFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	assert.ErrorIs(t, err, ErrAPIKeyMissing)
	assert.False(t, called, "no network call should be made without a key")
}

func TestGeminiClient_Complete_UpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiClient_Complete_UpstreamErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGeminiClient_Complete_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGeminiClient_Complete_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(""))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGeminiClient_Complete_TransportError(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening

	client := NewGeminiClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestGeminiClient_Complete_SingleAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AVATARA_GEMINI_API_KEY", "")
	t.Setenv("AVATARA_GEMINI_ENDPOINT", "")
	t.Setenv("AVATARA_GEMINI_MODEL", "")
	t.Setenv("AVATARA_LLM_TIMEOUT_MS", "")
	t.Setenv("AVATARA_LLM_LOG_CALLS", "")

	cfg := LoadConfig()
	assert.False(t, cfg.Configured())
	assert.Equal(t, defaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Model)
	assert.Equal(t, 30000, cfg.TimeoutMs)
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("AVATARA_GEMINI_API_KEY", "k")
	t.Setenv("AVATARA_GEMINI_ENDPOINT", "http://localhost:9999")
	t.Setenv("AVATARA_GEMINI_MODEL", "gemini-test")
	t.Setenv("AVATARA_LLM_TIMEOUT_MS", "1234")
	t.Setenv("AVATARA_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.True(t, cfg.Configured())
	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, 1234, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}
