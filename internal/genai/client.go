// Package genai wraps the OpenAI chat API behind the small surface the
// newsletter editor needs: one-shot copy generation with per-call token and
// temperature settings, plus the prompt templates that keep every generated
// piece in The BriteSide voice.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned from Generate when no API key was configured.
// Handlers map it to a 503 so the editor can grey out the AI buttons.
var ErrUnavailable = errors.New("genai: no API key configured")

// Config carries the OpenAI connection settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional override, used by tests and proxies
}

// Options adjusts a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Result is one finished generation with the usage numbers the editor shows
// in its status line.
type Result struct {
	Text         string
	Model        string
	Tokens       int
	CostEstimate string
	LatencyMS    int64
}

// Client is a thin wrapper over the OpenAI chat completions API. A Client
// built without an API key stays inert and reports ErrUnavailable.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a Client. An empty API key yields an unavailable client rather
// than an error so the rest of the app can start without AI features.
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		return &Client{model: cfg.Model}
	}
	var api *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		api = openai.NewClientWithConfig(cc)
	} else {
		api = openai.NewClient(cfg.APIKey)
	}
	return &Client{api: api, model: cfg.Model}
}

// Available reports whether generation calls can be made.
func (c *Client) Available() bool {
	return c != nil && c.api != nil
}

// Generate runs one prompt through the chat API under the shared newsletter
// system prompt and returns the trimmed completion.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (Result, error) {
	if !c.Available() {
		return Result{}, ErrUnavailable
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	return Result{
		Text:         text,
		Model:        resp.Model,
		Tokens:       resp.Usage.TotalTokens,
		CostEstimate: costEstimate(resp.Model, resp.Usage),
		LatencyMS:    time.Since(start).Milliseconds(),
	}, nil
}

// pricing holds USD rates per million prompt/completion tokens. Dated model
// snapshots resolve by longest prefix, so "gpt-4o-mini-2024-07-18" prices as
// "gpt-4o-mini" and not "gpt-4o".
var pricing = map[string]struct{ in, out float64 }{
	"gpt-4o":        {in: 2.50, out: 10.00},
	"gpt-4o-mini":   {in: 0.15, out: 0.60},
	"gpt-4.1":       {in: 2.00, out: 8.00},
	"gpt-4.1-mini":  {in: 0.40, out: 1.60},
	"gpt-3.5-turbo": {in: 0.50, out: 1.50},
}

func costEstimate(model string, usage openai.Usage) string {
	var (
		best    string
		rate    struct{ in, out float64 }
		matched bool
	)
	for name, r := range pricing {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best, rate, matched = name, r, true
		}
	}
	if !matched {
		return ""
	}
	cost := float64(usage.PromptTokens)*rate.in/1e6 + float64(usage.CompletionTokens)*rate.out/1e6
	return fmt.Sprintf("$%.5f", cost)
}
