package translator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI translates queries with the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	guard  *guard
}

// NewOpenAI creates an OpenAI translator with the given API key.
func NewOpenAI(apiKey string, opts Options) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	slog.Info("Initialized OpenAI translator", slog.String("model", model))

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		guard:  newGuard("translator-openai", opts),
	}
}

// Name identifies the provider in logs and health output.
func (o *OpenAI) Name() string { return "openai" }

// BreakerState reports the state of the provider's circuit breaker.
func (o *OpenAI) BreakerState() gobreaker.State { return o.guard.state() }

// Translate returns text rendered in the opposite language.
func (o *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	return o.guard.do(ctx, text, o.doTranslate)
}

func (o *OpenAI) doTranslate(ctx context.Context, req request) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		MaxTokens:   256,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
	})
	duration := time.Since(start)
	if err != nil {
		slog.WarnContext(ctx, "openai translation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	slog.DebugContext(ctx, "openai translation completed",
		slog.String("source", req.Source.String()),
		slog.String("target", req.Target.String()),
		slog.Duration("duration", duration))

	return resp.Choices[0].Message.Content, nil
}
