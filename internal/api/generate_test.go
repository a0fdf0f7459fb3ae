// ABOUTME: Integration tests for the AI generation endpoints, backed by a
// ABOUTME: canned OpenAI-compatible server so no real tokens are spent.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/britecreationsdylanne/brite-side/internal/config"
	"github.com/britecreationsdylanne/brite-side/internal/genai"
)

// fakeAI is an OpenAI-compatible chat completion endpoint that replies with
// fixed content and records the last request for prompt assertions.
type fakeAI struct {
	server *httptest.Server

	mu   sync.Mutex
	last openai.ChatCompletionRequest
}

func newFakeAI(t *testing.T, content string) *fakeAI {
	t.Helper()
	f := &fakeAI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.last = req
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   req.Model,
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
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode completion: %v", err)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAI) lastRequest() openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// useAI returns a newTestServer mutate hook pointing the generator at f.
func useAI(f *fakeAI) func(*config.Config, *Deps) {
	return func(_ *config.Config, deps *Deps) {
		deps.Generator = genai.New(genai.Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: f.server.URL + "/v1"})
	}
}

// userPrompt extracts the user message from a recorded chat request.
func userPrompt(t *testing.T, req openai.ChatCompletionRequest) string {
	t.Helper()
	if len(req.Messages) != 2 {
		t.Fatalf("got %d messages, want system + user", len(req.Messages))
	}
	return req.Messages[1].Content
}

// TestGenerateJokeDefaults verifies the joke endpoint fills in the default
// theme and returns the full generation envelope.
func TestGenerateJokeDefaults(t *testing.T) {
	t.Parallel()
	f := newFakeAI(t, "1. Setup | Punchline")
	_, ts := newTestServer(t, useAI(f))
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/generate-joke", `{}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success      bool   `json:"success"`
		Jokes        string `json:"jokes"`
		Model        string `json:"model"`
		Tokens       int    `json:"tokens"`
		CostEstimate string `json:"cost_estimate"`
		LatencyMS    *int64 `json:"latency_ms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.Jokes != "1. Setup | Punchline" {
		t.Errorf("jokes = %+v", out)
	}
	if out.Model != "gpt-4o-mini" || out.Tokens != 2000 || out.CostEstimate != "$0.00075" {
		t.Errorf("envelope = %s %d %s", out.Model, out.Tokens, out.CostEstimate)
	}
	if out.LatencyMS == nil {
		t.Error("latency_ms missing from joke response")
	}

	req := f.lastRequest()
	if req.MaxTokens != 400 {
		t.Errorf("max tokens = %d, want 400", req.MaxTokens)
	}
	if req.Temperature < 0.84 || req.Temperature > 0.86 {
		t.Errorf("temperature = %v, want 0.85", req.Temperature)
	}
	if !strings.Contains(userPrompt(t, req), "jewelry and insurance") {
		t.Error("default theme missing from prompt")
	}
}

// TestGenerateSpotlight verifies directory lookup feeds the prompt and the
// response echoes the employee's real title and department.
func TestGenerateSpotlight(t *testing.T) {
	t.Parallel()
	f := newFakeAI(t, "Meet Jordan, the star of Product!")
	_, ts := newTestServer(t, useAI(f))
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/generate-spotlight", `{"name":"Jordan Lee"}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success   bool   `json:"success"`
		Spotlight string `json:"spotlight"`
		Employee  struct {
			Name       string `json:"name"`
			Title      string `json:"title"`
			Department string `json:"department"`
		} `json:"employee"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Spotlight != "Meet Jordan, the star of Product!" {
		t.Errorf("spotlight = %q", out.Spotlight)
	}
	if out.Employee.Name != "Jordan Lee" || out.Employee.Title != "Product Manager" || out.Employee.Department != "Product" {
		t.Errorf("employee = %+v", out.Employee)
	}

	prompt := userPrompt(t, f.lastRequest())
	for _, want := range []string{"Jordan Lee", "Product Manager", "No fun facts provided"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// TestGenerateSpotlightErrors verifies the name checks run before any
// generation happens.
func TestGenerateSpotlightErrors(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	cases := []struct {
		body       string
		wantStatus int
		wantErr    string
	}{
		{`{}`, http.StatusBadRequest, "Employee name is required"},
		{`{"name":"Nobody Real"}`, http.StatusNotFound, "Employee 'Nobody Real' not found"},
	}
	for _, tc := range cases {
		resp := doJSON(t, ctx, ts, http.MethodPost, "/api/generate-spotlight", tc.body)
		var out struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close() //nolint:errcheck,gosec // G104
		if resp.StatusCode != tc.wantStatus {
			t.Errorf("body %s: got %d, want %d", tc.body, resp.StatusCode, tc.wantStatus)
		}
		if out.Error != tc.wantErr {
			t.Errorf("body %s: error = %q, want %q", tc.body, out.Error, tc.wantErr)
		}
	}
}

// TestGenerateBirthdayMessage verifies the shoutout envelope and prompt.
func TestGenerateBirthdayMessage(t *testing.T) {
	t.Parallel()
	f := newFakeAI(t, "Happy birthday, Jordan!")
	_, ts := newTestServer(t, useAI(f))
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/generate-birthday-message", `{"name":"Jordan Lee","month":"September"}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Message != "Happy birthday, Jordan!" {
		t.Errorf("message = %q", out.Message)
	}

	req := f.lastRequest()
	if req.MaxTokens != 100 {
		t.Errorf("max tokens = %d, want 100", req.MaxTokens)
	}
	prompt := userPrompt(t, req)
	if !strings.Contains(prompt, "Jordan Lee") || !strings.Contains(prompt, "September") {
		t.Errorf("prompt = %q, missing name or month", prompt)
	}
}

// TestGenerateGameOmitsLatency verifies the game envelope, which has no
// latency field, and the type and context reach the prompt.
func TestGenerateGameOmitsLatency(t *testing.T) {
	t.Parallel()
	f := newFakeAI(t, "Unscramble: LEJWERY\nANSWER: JEWELRY")
	_, ts := newTestServer(t, useAI(f))
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/generate-game", `{"type":"trivia","context":"summer party"}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success     bool   `json:"success"`
		GameContent string `json:"game_content"`
		Tokens      int    `json:"tokens"`
		LatencyMS   *int64 `json:"latency_ms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.GameContent != "Unscramble: LEJWERY\nANSWER: JEWELRY" {
		t.Errorf("game_content = %q", out.GameContent)
	}
	if out.LatencyMS != nil {
		t.Error("game response should not carry latency_ms")
	}

	req := f.lastRequest()
	if req.MaxTokens != 800 {
		t.Errorf("max tokens = %d, want 800", req.MaxTokens)
	}
	prompt := userPrompt(t, req)
	if !strings.Contains(prompt, "trivia") || !strings.Contains(prompt, "summer party") {
		t.Errorf("prompt = %q, missing type or context", prompt)
	}
}

// TestRewriteContent verifies rune-counted lengths and the default tone.
func TestRewriteContent(t *testing.T) {
	t.Parallel()
	f := newFakeAI(t, "Sparkle on!")
	_, ts := newTestServer(t, useAI(f))
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/rewrite-content", `{"content":"Café open!"}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success         bool   `json:"success"`
		Rewritten       string `json:"rewritten"`
		OriginalLength  int    `json:"original_length"`
		RewrittenLength int    `json:"rewritten_length"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Rewritten != "Sparkle on!" {
		t.Errorf("rewritten = %q", out.Rewritten)
	}
	// "Café open!" is 10 runes, 11 bytes; lengths count runes.
	if out.OriginalLength != 10 || out.RewrittenLength != 11 {
		t.Errorf("lengths = %d/%d, want 10/11", out.OriginalLength, out.RewrittenLength)
	}
	if !strings.Contains(userPrompt(t, f.lastRequest()), "fun and punny") {
		t.Error("default tone missing from prompt")
	}
}

// TestRewriteContentRequiresContent verifies the empty-content rejection.
func TestRewriteContentRequiresContent(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	resp := doJSON(t, ctx, ts, http.MethodPost, "/api/rewrite-content", `{"tone":"formal"}`)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "Content is required" {
		t.Errorf("error = %q", out.Error)
	}
}

// TestGenerateUnavailableWithoutKey verifies every generation endpoint
// degrades to 503 when no OpenAI key is configured.
func TestGenerateUnavailableWithoutKey(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	cases := []struct {
		path string
		body string
	}{
		{"/api/generate-joke", `{}`},
		{"/api/generate-spotlight", `{"name":"Jordan Lee"}`},
		{"/api/generate-birthday-message", `{"name":"Jordan Lee"}`},
		{"/api/generate-game", `{}`},
		{"/api/rewrite-content", `{"content":"hello"}`},
	}
	for _, tc := range cases {
		resp := doJSON(t, ctx, ts, http.MethodPost, tc.path, tc.body)
		var out struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode %s: %v", tc.path, err)
		}
		resp.Body.Close() //nolint:errcheck,gosec // G104
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s: got %d, want 503", tc.path, resp.StatusCode)
		}
		if out.Error != "AI generation is not available" {
			t.Errorf("%s: error = %q", tc.path, out.Error)
		}
	}
}
