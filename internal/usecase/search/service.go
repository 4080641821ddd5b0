package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/observability/logging"
	"bilingual-quotes/internal/observability/metrics"
	"bilingual-quotes/internal/observability/tracing"
	"bilingual-quotes/internal/repository"
	"bilingual-quotes/internal/usecase/pairing"
)

const (
	operationSearch = "search"
	operationList   = "list_bilingual"

	defaultOverfetchFactor = 2
	defaultListScanBatch   = 200

	// maxFetchSize bounds one per-variant store search.
	maxFetchSize = 1000
)

// Query is the input of Service.Search.
type Query struct {
	Text string
	// Language restricts the store search. Nil searches both languages.
	Language        *entity.Language
	PreferBilingual bool
	Limit           int
}

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	// OverfetchFactor multiplies Limit for each per-variant store search.
	OverfetchFactor int
	// TranslateTimeout bounds query translation.
	TranslateTimeout time.Duration
	// ListScanBatch is the page size used by ListBilingual to scan grouped quotes.
	ListScanBatch int
}

// Service provides quote search and bilingual listing.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	quotes    repository.QuoteRepository
	builder   *pairing.Builder
	expander  *Expander
	overfetch int
	scanBatch int
}

// NewService wires a search service. translator may be nil, in which case
// queries are searched as given.
func NewService(quotes repository.QuoteRepository, links repository.TranslationLinkRepository, translator Translator, opts Options) *Service {
	if opts.OverfetchFactor < 1 {
		opts.OverfetchFactor = defaultOverfetchFactor
	}
	if opts.ListScanBatch < 1 {
		opts.ListScanBatch = defaultListScanBatch
	}
	return &Service{
		quotes:    quotes,
		builder:   &pairing.Builder{Quotes: quotes, Links: links},
		expander:  &Expander{Translator: translator, Timeout: opts.TranslateTimeout},
		overfetch: opts.OverfetchFactor,
		scanBatch: opts.ListScanBatch,
	}
}

// Search returns at most q.Limit bilingual pairs for the query text.
//
// Only validation errors are returned (ErrInvalidQuery, ErrInvalidLimit,
// ErrInvalidLanguage). Any later failure is logged and yields an empty,
// non-nil result.
func (s *Service) Search(ctx context.Context, q Query) ([]entity.BilingualPair, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "search.Search", trace.WithAttributes(
		attribute.Int("search.limit", q.Limit),
		attribute.Bool("search.prefer_bilingual", q.PreferBilingual),
	))
	defer span.End()

	if err := validateQuery(q); err != nil {
		tracing.RecordError(span, err)
		metrics.RecordSearch(operationSearch, metrics.OutcomeInvalid, time.Since(start))
		return nil, err
	}
	if q.Language != nil {
		span.SetAttributes(attribute.String("search.language", q.Language.String()))
	}

	pairs, err := recovered(func() ([]entity.BilingualPair, error) {
		return s.search(ctx, span, q)
	})
	if err != nil {
		return s.degrade(ctx, span, operationSearch, start, err), nil
	}

	span.SetAttributes(attribute.Int("search.pairs", len(pairs)))
	recordPairs(pairs)
	metrics.RecordSearch(operationSearch, metrics.OutcomeOK, time.Since(start))
	return pairs, nil
}

func (s *Service) search(ctx context.Context, span trace.Span, q Query) ([]entity.BilingualPair, error) {
	variants := s.expander.Expand(ctx, q.Text)
	span.SetAttributes(attribute.Int("search.variants", len(variants)))

	fetch := fetchSize(q.Limit, s.overfetch)
	results := make([][]*entity.Quote, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	for i, variant := range variants {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("search variant %d: panic: %v", i, r)
				}
			}()
			quotes, err := s.quotes.Search(gctx, variant, q.Language, fetch)
			if err != nil {
				return fmt.Errorf("search variant %d: %w", i, err)
			}
			results[i] = quotes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := mergeUnique(results)
	span.SetAttributes(attribute.Int("search.candidates", len(candidates)))

	pairs, err := s.builder.Build(ctx, candidates, q.PreferBilingual)
	if err != nil {
		return nil, err
	}
	if len(pairs) > q.Limit {
		pairs = pairs[:q.Limit]
	}
	return pairs, nil
}

// ListBilingual pages through group-backed pairs, ordered by group id.
// Link-backed pairs and singles never appear. Store failures degrade to an
// empty result like Search.
func (s *Service) ListBilingual(ctx context.Context, offset, limit int) ([]entity.BilingualPair, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "search.ListBilingual", trace.WithAttributes(
		attribute.Int("list.offset", offset),
		attribute.Int("list.limit", limit),
	))
	defer span.End()

	var verr error
	switch {
	case limit < 1:
		verr = ErrInvalidLimit
	case offset < 0:
		verr = ErrInvalidOffset
	}
	if verr != nil {
		tracing.RecordError(span, verr)
		metrics.RecordSearch(operationList, metrics.OutcomeInvalid, time.Since(start))
		return nil, verr
	}

	pairs, err := recovered(func() ([]entity.BilingualPair, error) {
		return s.listBilingual(ctx, offset, limit)
	})
	if err != nil {
		return s.degrade(ctx, span, operationList, start, err), nil
	}

	span.SetAttributes(attribute.Int("list.pairs", len(pairs)))
	recordPairs(pairs)
	metrics.RecordSearch(operationList, metrics.OutcomeOK, time.Since(start))
	return pairs, nil
}

// listBilingual scans grouped quotes in (group id, id) order. A group is
// complete once the scan moves past it, which may be several batches later.
func (s *Service) listBilingual(ctx context.Context, offset, limit int) ([]entity.BilingualPair, error) {
	out := make([]entity.BilingualPair, 0, limit)
	seen := make(map[int64]struct{})
	consumed := make(map[int64]struct{})
	skipped := 0

	var (
		current int64
		members []*entity.Quote
	)
	// flush reports true once limit pairs are collected.
	flush := func() bool {
		if len(members) == 0 {
			return false
		}
		pair, ids := pairing.PairGroup(members, consumed)
		members = members[:0]
		if pair.IsEmpty() {
			return false
		}
		for _, id := range ids {
			consumed[id] = struct{}{}
		}
		if skipped < offset {
			skipped++
			return false
		}
		out = append(out, pair)
		return len(out) >= limit
	}

	for scanned := 0; ; {
		rows, err := s.quotes.ListGrouped(ctx, scanned, s.scanBatch)
		if err != nil {
			return nil, fmt.Errorf("list grouped quotes at %d: %w", scanned, err)
		}
		scanned += len(rows)

		for _, q := range rows {
			if !q.InGroup() {
				continue
			}
			gid := *q.GroupID
			if gid != current || len(members) == 0 {
				if flush() {
					return out, nil
				}
				if _, dup := seen[gid]; dup {
					continue
				}
				seen[gid] = struct{}{}
				current = gid
			}
			members = append(members, q)
		}

		if len(rows) < s.scanBatch {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	flush()
	return out, nil
}

// Get retrieves a single quote by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Quote, error) {
	if id <= 0 {
		return nil, ErrInvalidQuoteID
	}
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if q == nil {
		return nil, ErrQuoteNotFound
	}
	return q, nil
}

func (s *Service) degrade(ctx context.Context, span trace.Span, operation string, start time.Time, err error) []entity.BilingualPair {
	tracing.RecordError(span, err)
	span.SetAttributes(attribute.Bool("search.degraded", true))
	logging.WithRequestID(ctx, logging.FromContext(ctx)).ErrorContext(ctx, "search degraded to empty result",
		slog.String("operation", operation),
		slog.Any("error", err))
	metrics.RecordSearch(operation, metrics.OutcomeDegraded, time.Since(start))
	return []entity.BilingualPair{}
}

func validateQuery(q Query) error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrInvalidQuery
	}
	if q.Limit < 1 {
		return ErrInvalidLimit
	}
	if q.Language != nil && !q.Language.Valid() {
		return ErrInvalidLanguage
	}
	return nil
}

// fetchSize returns limit*factor capped at maxFetchSize. The division check
// keeps the product from overflowing.
func fetchSize(limit, factor int) int {
	if limit > maxFetchSize/factor {
		return maxFetchSize
	}
	return limit * factor
}

// mergeUnique concatenates variant results, keeping the first occurrence of
// each quote id.
func mergeUnique(results [][]*entity.Quote) []*entity.Quote {
	total := 0
	for _, r := range results {
		total += len(r)
	}
	seen := make(map[int64]struct{}, total)
	merged := make([]*entity.Quote, 0, total)
	for _, r := range results {
		for _, q := range r {
			if q == nil {
				continue
			}
			if _, dup := seen[q.ID]; dup {
				continue
			}
			seen[q.ID] = struct{}{}
			merged = append(merged, q)
		}
	}
	return merged
}

func recordPairs(pairs []entity.BilingualPair) {
	if len(pairs) == 0 {
		return
	}
	counts := make(map[string]int, 3)
	for _, p := range pairs {
		counts[string(p.TranslationSource)]++
	}
	metrics.RecordPairs(counts)
}

func recovered(fn func() ([]entity.BilingualPair, error)) (pairs []entity.BilingualPair, err error) {
	defer func() {
		if r := recover(); r != nil {
			pairs, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
