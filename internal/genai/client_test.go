package genai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/britecreationsdylanne/brite-side/internal/genai"
)

// fakeOpenAI records the last chat request and answers with a canned
// completion for the given model name.
func fakeOpenAI(t *testing.T, model, content string, got *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   model,
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     1000,
				"completion_tokens": 1000,
				"total_tokens":      2000,
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGenerateSendsSystemPromptAndOptions(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := fakeOpenAI(t, "gpt-4o-mini", "  1. A sparkling joke\n", &got)
	defer srv.Close()

	c := genai.New(genai.Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.True(t, c.Available())

	res, err := c.Generate(context.Background(), "tell me a joke", genai.Options{MaxTokens: 400, Temperature: 0.85})
	require.NoError(t, err)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, genai.SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
	assert.Equal(t, "tell me a joke", got.Messages[1].Content)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 400, got.MaxTokens)
	assert.InDelta(t, 0.85, got.Temperature, 0.001)

	assert.Equal(t, "1. A sparkling joke", res.Text, "completion should be trimmed")
	assert.Equal(t, "gpt-4o-mini", res.Model)
	assert.Equal(t, 2000, res.Tokens)
	assert.Equal(t, "$0.00075", res.CostEstimate)
	assert.GreaterOrEqual(t, res.LatencyMS, int64(0))
}

func TestGenerateUnavailableWithoutKey(t *testing.T) {
	c := genai.New(genai.Config{Model: "gpt-4o-mini"})
	assert.False(t, c.Available())

	_, err := c.Generate(context.Background(), "anything", genai.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, genai.ErrUnavailable))
}

func TestGenerateCostUsesLongestModelPrefix(t *testing.T) {
	// A dated mini snapshot must price as gpt-4o-mini, not gpt-4o.
	srv := fakeOpenAI(t, "gpt-4o-mini-2024-07-18", "ok", nil)
	defer srv.Close()

	c := genai.New(genai.Config{APIKey: "k", Model: "gpt-4o-mini-2024-07-18", BaseURL: srv.URL + "/v1"})
	res, err := c.Generate(context.Background(), "x", genai.Options{})
	require.NoError(t, err)
	assert.Equal(t, "$0.00075", res.CostEstimate)
}

func TestGenerateUnknownModelHasNoCostEstimate(t *testing.T) {
	srv := fakeOpenAI(t, "experimental-model-v9", "ok", nil)
	defer srv.Close()

	c := genai.New(genai.Config{APIKey: "k", Model: "experimental-model-v9", BaseURL: srv.URL + "/v1"})
	res, err := c.Generate(context.Background(), "x", genai.Options{})
	require.NoError(t, err)
	assert.Empty(t, res.CostEstimate)
}

func TestGenerateAPIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c := genai.New(genai.Config{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	_, err := c.Generate(context.Background(), "x", genai.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")
}

func TestPromptTemplates(t *testing.T) {
	joke := genai.JokePrompt("August", "jewelry and insurance")
	assert.Contains(t, joke, "related to jewelry and insurance.")
	assert.Contains(t, joke, "Seasonal tie-ins for August are welcome")
	assert.NotContains(t, joke, "{month}")
	assert.NotContains(t, joke, "{theme}")

	spot := genai.SpotlightPrompt("Jess Liu", "Claims Lead", "Claims", "No fun facts provided")
	assert.Contains(t, spot, "Employee: Jess Liu")
	assert.Contains(t, spot, "Title: Claims Lead")
	assert.Contains(t, spot, "Department: Claims")
	assert.Contains(t, spot, "Fun Facts: No fun facts provided")

	bday := genai.BirthdayPrompt("Jordan Lee", "Product", "August")
	assert.Contains(t, bday, "Jordan Lee from Product")
	assert.Contains(t, bday, "Month: August")

	game := genai.GamePrompt("word_scramble", "summer picnic recap", "August")
	assert.Contains(t, game, "word_scramble puzzle for the August edition")
	assert.Contains(t, game, "Context: summer picnic recap")

	rewrite := genai.RewritePrompt("We closed the quarter strong.", "fun and punny")
	assert.Contains(t, rewrite, "in a fun and punny tone")
	assert.Contains(t, rewrite, "Original text:\nWe closed the quarter strong.")
	assert.Contains(t, rewrite, "Return ONLY the rewritten text")
}
