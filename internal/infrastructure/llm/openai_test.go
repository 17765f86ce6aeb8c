package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/bot/internal/domain"
)

func TestSummarizeTranscript_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "test-model", req["model"])

		messages := req["messages"].([]interface{})
		require.Len(t, messages, 2)
		system := messages[0].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		assert.Equal(t, SystemPrompt, system["content"])
		user := messages[1].(map[string]interface{})
		assert.Contains(t, user["content"], "alice: hello")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Alice greeted the channel."}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "test-model", 500)
	summary, err := client.SummarizeTranscript(context.Background(), "alice: hello")

	require.NoError(t, err)
	assert.Equal(t, "Alice greeted the channel.", summary)
}

func TestSummarizeTranscript_EndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "test-model", 500)
	_, err := client.SummarizeTranscript(context.Background(), "alice: hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSummaryUnavailable))
}

func TestSummarizeTranscript_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "test-model", 500)
	_, err := client.SummarizeTranscript(context.Background(), "alice: hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSummaryUnavailable))
}

func TestNewOpenAIClient_Defaults(t *testing.T) {
	client := NewOpenAIClient("key", "", "", 0)

	assert.NotEmpty(t, client.model)
	assert.Equal(t, 800, client.maxTokens)
}
