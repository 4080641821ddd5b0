// Package translator provides LLM-backed query translation between English
// and Russian. Adapters exist for OpenAI and Anthropic Claude. Each call is
// bounded by a timeout, a shared token bucket and a circuit breaker, so a slow
// or failing provider costs a search request at most one fast error.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"bilingual-quotes/internal/config"
	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/resilience/circuitbreaker"
	"bilingual-quotes/internal/utils/text"
)

// maxInputRunes bounds the text sent to a provider. Search queries are short,
// anything longer is cut before the call.
const maxInputRunes = 500

var (
	// ErrDisabled is returned by New when no provider is configured.
	ErrDisabled = errors.New("translator disabled")
	// ErrRateLimited is returned when the shared call budget is exhausted.
	ErrRateLimited = errors.New("translator rate limit exceeded")
	// ErrEmptyResponse is returned when the provider answers without text.
	ErrEmptyResponse = errors.New("translator returned empty response")
)

// Client is implemented by every adapter in this package.
type Client interface {
	Translate(ctx context.Context, text string) (string, error)
	Name() string
	BreakerState() gobreaker.State
}

// Options carries the provider-independent call settings.
type Options struct {
	Model   string
	Timeout time.Duration
	Limiter *rate.Limiter
	Breaker circuitbreaker.Config

	// BaseURL points the SDK at a different endpoint. Empty uses the provider default.
	BaseURL string
}

// New builds the adapter selected by cfg.Provider.
// It returns ErrDisabled for the "none" provider.
func New(cfg *config.TranslatorConfig) (Client, error) {
	opts := Options{
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		Breaker: circuitbreaker.Config{
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         cfg.CircuitBreaker.Interval,
			Timeout:          cfg.CircuitBreaker.Timeout,
			FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
			MinRequests:      cfg.CircuitBreaker.MinRequests,
		},
	}

	switch cfg.Provider {
	case config.TranslatorProviderOpenAI:
		opts.Breaker.Name = "translator-openai"
		return NewOpenAI(cfg.OpenAIAPIKey, opts), nil
	case config.TranslatorProviderClaude:
		opts.Breaker.Name = "translator-claude"
		return NewClaude(cfg.AnthropicAPIKey, opts), nil
	case config.TranslatorProviderNone, "":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.Provider)
	}
}

// guard applies the rate limit, timeout and breaker shared by all adapters.
type guard struct {
	name    string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
}

func newGuard(name string, opts Options) *guard {
	cbCfg := opts.Breaker
	if cbCfg.MaxRequests == 0 {
		cbCfg = circuitbreaker.TranslatorConfig(name)
	}
	if cbCfg.Name == "" {
		cbCfg.Name = name
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &guard{
		name:    name,
		timeout: opts.Timeout,
		limiter: limiter,
		breaker: circuitbreaker.New(cbCfg),
	}
}

// do runs call under the guard. The call receives the prepared request.
func (g *guard) do(ctx context.Context, input string, call func(ctx context.Context, req request) (string, error)) (string, error) {
	input = text.CollapseSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s: %w: empty input", g.name, entity.ErrInvalidInput)
	}
	if truncated, cut := text.Truncate(input, maxInputRunes); cut {
		slog.DebugContext(ctx, "translator input truncated",
			slog.String("provider", g.name),
			slog.Int("original_length", text.CountRunes(input)))
		input = truncated
	}

	if !g.limiter.Allow() {
		return "", fmt.Errorf("%s: %w", g.name, ErrRateLimited)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := newRequest(input)
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return call(ctx, req)
	})
	if err != nil {
		if circuitbreaker.IsRejected(err) {
			slog.WarnContext(ctx, "translator circuit breaker rejected request",
				slog.String("provider", g.name),
				slog.String("state", g.breaker.State().String()))
			return "", fmt.Errorf("%s unavailable: %w", g.name, err)
		}
		return "", err
	}

	out := cleanTranslation(result.(string))
	if out == "" {
		return "", fmt.Errorf("%s: %w", g.name, ErrEmptyResponse)
	}
	return out, nil
}

func (g *guard) state() gobreaker.State {
	return g.breaker.State()
}

// request is the prompt for one translation call.
type request struct {
	Source entity.Language
	Target entity.Language
	System string
	Text   string
}

func newRequest(input string) request {
	source := entity.DetectLanguage(input)
	target := source.Opposite()
	return request{
		Source: source,
		Target: target,
		System: fmt.Sprintf(
			"You translate short search queries for a quotation database from %s to %s. "+
				"Reply with the translation only: no quotes, no explanations, no transliteration.",
			languageName(source), languageName(target)),
		Text: input,
	}
}

func languageName(lang entity.Language) string {
	switch lang {
	case entity.LanguageRussian:
		return "Russian"
	default:
		return "English"
	}
}

// cleanTranslation strips whitespace and the wrapping quotes models like to add.
func cleanTranslation(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{`"`, `"`}, {"«", "»"}, {"“", "”"}, {"'", "'"}} {
		if len(s) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			s = strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
			break
		}
	}
	return s
}
