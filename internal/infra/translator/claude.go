package translator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"
)

const defaultClaudeModel = "claude-haiku-4-5"

// Claude translates queries with Anthropic's Messages API.
type Claude struct {
	client anthropic.Client
	model  string
	guard  *guard
}

// NewClaude creates a Claude translator with the given API key.
// SDK level retries are disabled: a search request never waits on a retry loop.
func NewClaude(apiKey string, opts Options) *Claude {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	model := opts.Model
	if model == "" {
		model = defaultClaudeModel
	}

	slog.Info("Initialized Claude translator", slog.String("model", model))

	return &Claude{
		client: anthropic.NewClient(reqOpts...),
		model:  model,
		guard:  newGuard("translator-claude", opts),
	}
}

// Name identifies the provider in logs and health output.
func (c *Claude) Name() string { return "claude" }

// BreakerState reports the state of the provider's circuit breaker.
func (c *Claude) BreakerState() gobreaker.State { return c.guard.state() }

// Translate returns text rendered in the opposite language.
func (c *Claude) Translate(ctx context.Context, text string) (string, error) {
	return c.guard.do(ctx, text, c.doTranslate)
}

func (c *Claude) doTranslate(ctx context.Context, req request) (string, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.Text),
			),
		},
	})
	duration := time.Since(start)
	if err != nil {
		slog.WarnContext(ctx, "claude translation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	slog.DebugContext(ctx, "claude translation completed",
		slog.String("source", req.Source.String()),
		slog.String("target", req.Target.String()),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
