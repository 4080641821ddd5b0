package quote

import (
	"context"
	"errors"
	"sync"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/usecase/search"
)

type stubService struct {
	mu sync.Mutex

	pairs []entity.BilingualPair
	quote *entity.Quote
	err   error

	lastQuery  search.Query
	lastOffset int
	lastLimit  int
	lastID     int64
	calls      int
}

func (s *stubService) Search(_ context.Context, q search.Query) ([]entity.BilingualPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastQuery = q
	return s.pairs, s.err
}

func (s *stubService) ListBilingual(_ context.Context, offset, limit int) ([]entity.BilingualPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastOffset = offset
	s.lastLimit = limit
	return s.pairs, s.err
}

func (s *stubService) Get(_ context.Context, id int64) (*entity.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastID = id
	return s.quote, s.err
}

// downStore fails every call, as an unreachable database would.
type downStore struct{}

var errDown = errors.New("dial tcp 10.1.2.3:5432: connect: connection refused")

func (downStore) Search(context.Context, string, *entity.Language, int) ([]*entity.Quote, error) {
	return nil, errDown
}
func (downStore) ListByGroup(context.Context, int64) ([]*entity.Quote, error) { return nil, errDown }
func (downStore) ListGrouped(context.Context, int, int) ([]*entity.Quote, error) {
	return nil, errDown
}
func (downStore) Get(context.Context, int64) (*entity.Quote, error) { return nil, errDown }
func (downStore) CountQuotes(context.Context) (int64, error)       { return 0, errDown }
func (downStore) CountGroups(context.Context) (int64, error)       { return 0, errDown }
func (downStore) GetLinkedQuote(context.Context, int64, entity.Language) (*entity.Quote, error) {
	return nil, errDown
}

func int64Ptr(v int64) *int64 { return &v }

func quote(id int64, lang entity.Language, text string) *entity.Quote {
	return &entity.Quote{ID: id, Text: text, Language: lang}
}
