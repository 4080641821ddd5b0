package search_test

import (
	"context"
	"slices"
	"sync"

	"bilingual-quotes/internal/domain/entity"
)

/* ───────── stub stores ───────── */

type searchCall struct {
	Text  string
	Lang  *entity.Language
	Limit int
}

type stubQuotes struct {
	mu sync.Mutex

	searchFn    func(ctx context.Context, text string) ([]*entity.Quote, error)
	searchCalls []searchCall

	byID   map[int64]*entity.Quote
	getErr error

	grouped      []*entity.Quote
	groupedErr   error
	groupedCalls int
}

func newQuotes(quotes ...*entity.Quote) *stubQuotes {
	s := &stubQuotes{byID: map[int64]*entity.Quote{}}
	for _, q := range quotes {
		s.byID[q.ID] = q
	}
	return s
}

func (s *stubQuotes) Search(ctx context.Context, text string, lang *entity.Language, limit int) ([]*entity.Quote, error) {
	s.mu.Lock()
	s.searchCalls = append(s.searchCalls, searchCall{Text: text, Lang: lang, Limit: limit})
	fn := s.searchFn
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, text)
}

func (s *stubQuotes) ListByGroup(_ context.Context, groupID int64) ([]*entity.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Quote
	for _, q := range s.byID {
		if q.GroupID != nil && *q.GroupID == groupID {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Quote) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s *stubQuotes) ListGrouped(_ context.Context, offset, limit int) ([]*entity.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupedCalls++
	if s.groupedErr != nil {
		return nil, s.groupedErr
	}
	if offset >= len(s.grouped) {
		return nil, nil
	}
	end := min(offset+limit, len(s.grouped))
	return s.grouped[offset:end], nil
}

func (s *stubQuotes) Get(_ context.Context, id int64) (*entity.Quote, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byID[id], nil
}

func (s *stubQuotes) CountQuotes(context.Context) (int64, error) { return int64(len(s.byID)), nil }
func (s *stubQuotes) CountGroups(context.Context) (int64, error) { return 0, nil }

type stubLinks struct {
	links map[int64]*entity.Quote
	err   error
}

func (s *stubLinks) GetLinkedQuote(_ context.Context, quoteID int64, target entity.Language) (*entity.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	if q := s.links[quoteID]; q != nil && q.Language == target {
		return q, nil
	}
	return nil, nil
}

type stubTranslator struct {
	fn    func(ctx context.Context, text string) (string, error)
	calls int
	mu    sync.Mutex
}

func (s *stubTranslator) Translate(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(ctx, text)
}

func translateTo(out string) *stubTranslator {
	return &stubTranslator{fn: func(context.Context, string) (string, error) { return out, nil }}
}

func group(id int64) *int64 { return &id }

func en(id int64, groupID *int64) *entity.Quote {
	return &entity.Quote{ID: id, Text: "en", Language: entity.LanguageEnglish, GroupID: groupID}
}

func ru(id int64, groupID *int64) *entity.Quote {
	return &entity.Quote{ID: id, Text: "ru", Language: entity.LanguageRussian, GroupID: groupID}
}

func pairIDs(pairs []entity.BilingualPair) [][2]int64 {
	out := make([][2]int64, len(pairs))
	for i, p := range pairs {
		if p.English != nil {
			out[i][0] = p.English.ID
		}
		if p.Russian != nil {
			out[i][1] = p.Russian.ID
		}
	}
	return out
}
