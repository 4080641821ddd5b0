package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bilingual-quotes/internal/observability/logging"
	"bilingual-quotes/internal/observability/metrics"
)

// Translator renders text in the other language (en to ru, ru to en).
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Translation results as counted in query_translation_total.
const (
	TranslationSuccess  = "success"
	TranslationError    = "error"
	TranslationEmpty    = "empty"
	TranslationSame     = "same"
	TranslationDisabled = "disabled"
)

// DefaultTranslateTimeout bounds a translator call when Expander.Timeout is unset.
const DefaultTranslateTimeout = 3 * time.Second

// Expander produces the query variants searched by Service.
type Expander struct {
	// Translator is optional. Nil yields the original query only.
	Translator Translator
	Timeout    time.Duration
}

// Expand returns the trimmed query followed by its translation, when one is
// available and differs from the query ignoring case. It never fails: any
// translator error, timeout or panic leaves just the original.
func (e *Expander) Expand(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	variants := []string{query}

	if e == nil || e.Translator == nil {
		metrics.RecordQueryTranslation(TranslationDisabled)
		return variants
	}

	translated, err := e.translate(ctx, query)
	translated = strings.TrimSpace(translated)
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	switch {
	case err != nil:
		metrics.RecordQueryTranslation(TranslationError)
		logger.WarnContext(ctx, "query translation failed, searching original only",
			slog.String("error", err.Error()))
	case translated == "":
		metrics.RecordQueryTranslation(TranslationEmpty)
		logger.WarnContext(ctx, "query translation returned empty text")
	case strings.EqualFold(translated, query):
		metrics.RecordQueryTranslation(TranslationSame)
	default:
		metrics.RecordQueryTranslation(TranslationSuccess)
		variants = append(variants, translated)
	}
	return variants
}

// translate runs the translator under the expansion timeout. A translator that
// ignores its context is abandoned when the deadline passes.
func (e *Expander) translate(ctx context.Context, query string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTranslateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("translator panic: %v", r)}
			}
		}()
		text, err := e.Translator.Translate(ctx, query)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("translate: %w", ctx.Err())
	}
}
