package pairing_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/usecase/pairing"
)

/* ───────── stub stores ───────── */

type stubStore struct {
	quotes map[int64]*entity.Quote
	// links are symmetric: both directions are registered by link().
	links map[int64][]int64
	// linkOverride forces GetLinkedQuote's answer for a quote id.
	linkOverride map[int64]*entity.Quote

	groupErr error
	linkErr  error

	groupCalls map[int64]int
	linkCalls  int
}

func newStore(quotes ...*entity.Quote) *stubStore {
	s := &stubStore{
		quotes:       map[int64]*entity.Quote{},
		links:        map[int64][]int64{},
		linkOverride: map[int64]*entity.Quote{},
		groupCalls:   map[int64]int{},
	}
	for _, q := range quotes {
		s.quotes[q.ID] = q
	}
	return s
}

func (s *stubStore) link(a, b int64) {
	s.links[a] = append(s.links[a], b)
	s.links[b] = append(s.links[b], a)
}

func (s *stubStore) ListByGroup(_ context.Context, groupID int64) ([]*entity.Quote, error) {
	s.groupCalls[groupID]++
	if s.groupErr != nil {
		return nil, s.groupErr
	}
	var out []*entity.Quote
	for _, q := range s.quotes {
		if q.GroupID != nil && *q.GroupID == groupID {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Quote) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s *stubStore) GetLinkedQuote(_ context.Context, quoteID int64, target entity.Language) (*entity.Quote, error) {
	s.linkCalls++
	if s.linkErr != nil {
		return nil, s.linkErr
	}
	if q, ok := s.linkOverride[quoteID]; ok {
		return q, nil
	}
	for _, id := range s.links[quoteID] {
		if q := s.quotes[id]; q != nil && q.Language == target {
			return q, nil
		}
	}
	return nil, nil
}

func (s *stubStore) Search(context.Context, string, *entity.Language, int) ([]*entity.Quote, error) {
	return nil, nil
}
func (s *stubStore) ListGrouped(context.Context, int, int) ([]*entity.Quote, error) { return nil, nil }
func (s *stubStore) Get(_ context.Context, id int64) (*entity.Quote, error)          { return s.quotes[id], nil }
func (s *stubStore) CountQuotes(context.Context) (int64, error)                      { return 0, nil }
func (s *stubStore) CountGroups(context.Context) (int64, error)                      { return 0, nil }

func newBuilder(s *stubStore) *pairing.Builder {
	return &pairing.Builder{Quotes: s, Links: s}
}

func group(id int64) *int64 { return &id }

func en(id int64, groupID *int64) *entity.Quote {
	return &entity.Quote{ID: id, Text: "en", Language: entity.LanguageEnglish, GroupID: groupID}
}

func ru(id int64, groupID *int64) *entity.Quote {
	return &entity.Quote{ID: id, Text: "ru", Language: entity.LanguageRussian, GroupID: groupID}
}

func ids(pair entity.BilingualPair) [2]int64 {
	var out [2]int64
	if pair.English != nil {
		out[0] = pair.English.ID
	}
	if pair.Russian != nil {
		out[1] = pair.Russian.ID
	}
	return out
}

func assertDisjoint(t *testing.T, pairs []entity.BilingualPair) {
	t.Helper()
	seen := map[int64]bool{}
	for _, p := range pairs {
		assert.False(t, p.IsEmpty(), "empty pair emitted")
		assert.Equal(t, p.TranslationSource == entity.TranslationSourceLink, p.IsTranslated,
			"is_translated must match database_translation")
		for _, id := range p.QuoteIDs() {
			assert.False(t, seen[id], "quote %d appears in more than one pair", id)
			seen[id] = true
		}
	}
}

/* ───────── Build ───────── */

func TestBuild_GroupPair(t *testing.T) {
	g := group(10)
	e, r := en(1, g), ru(2, g)
	store := newStore(e, r)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e, r}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Same(t, e, pairs[0].English)
	assert.Same(t, r, pairs[0].Russian)
	assert.False(t, pairs[0].IsTranslated)
	assert.Equal(t, entity.TranslationSourceGroup, pairs[0].TranslationSource)
	assert.Equal(t, 1, store.groupCalls[10], "group fetched once even with two members in input")
	assert.Equal(t, 0, store.linkCalls)
}

func TestBuild_GroupFoundThroughOneMember(t *testing.T) {
	g := group(10)
	e, r := en(1, g), ru(2, g)
	store := newStore(e, r)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{r}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]int64{1, 2}, ids(pairs[0]))
}

func TestBuild_LinkPair(t *testing.T) {
	e, r := en(3, nil), ru(4, nil)
	store := newStore(e, r)
	store.link(3, 4)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Same(t, e, pairs[0].English)
	assert.Same(t, r, pairs[0].Russian)
	assert.True(t, pairs[0].IsTranslated)
	assert.Equal(t, entity.TranslationSourceLink, pairs[0].TranslationSource)
}

func TestBuild_LinkPairFromRussianSide(t *testing.T) {
	e, r := en(3, nil), ru(4, nil)
	store := newStore(e, r)
	store.link(3, 4)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{r, e}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1, "linked counterpart in input must not reappear")
	assert.Equal(t, [2]int64{3, 4}, ids(pairs[0]))
}

func TestBuild_Single(t *testing.T) {
	r := ru(5, nil)
	store := newStore(r)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{r}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Nil(t, pairs[0].English)
	assert.Same(t, r, pairs[0].Russian)
	assert.False(t, pairs[0].IsTranslated)
	assert.Equal(t, entity.TranslationSourceNone, pairs[0].TranslationSource)
}

func TestBuild_Duplicates(t *testing.T) {
	g := group(10)
	e, r := en(1, g), ru(2, g)
	s := en(7, nil)
	store := newStore(e, r, s)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e, e, s, s, r}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, [2]int64{1, 2}, ids(pairs[0]))
	assert.Equal(t, [2]int64{7, 0}, ids(pairs[1]))
	assert.Equal(t, 1, store.linkCalls)
}

func TestBuild_MalformedGroupLowestIDWins(t *testing.T) {
	g := group(10)
	e1, e5, r2, r9 := en(1, g), en(5, g), ru(2, g), ru(9, g)
	store := newStore(e5, e1, r9, r2)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e5, r9, e1}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1, "extra members are consumed, not emitted as singles")
	assert.Same(t, e1, pairs[0].English)
	assert.Same(t, r2, pairs[0].Russian)
	assertDisjoint(t, pairs)
}

func TestBuild_EmptyGroupFallsBackToLinkPass(t *testing.T) {
	// The quote claims group 99 but the store has no members for it.
	orphan := en(7, group(99))
	linked := ru(8, nil)
	store := newStore(linked)
	store.link(7, 8)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{orphan}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, entity.TranslationSourceLink, pairs[0].TranslationSource)
	assert.Same(t, orphan, pairs[0].English)
	assert.Same(t, linked, pairs[0].Russian)
}

func TestBuild_LinkedQuoteAlreadyConsumed(t *testing.T) {
	g := group(10)
	e, r := en(1, g), ru(2, g)
	loner := en(3, nil)
	store := newStore(e, r, loner)
	store.link(3, 2)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{loner, e}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, entity.TranslationSourceGroup, pairs[0].TranslationSource)
	assert.Equal(t, [2]int64{1, 2}, ids(pairs[0]))
	assert.Equal(t, entity.TranslationSourceNone, pairs[1].TranslationSource)
	assert.Equal(t, [2]int64{3, 0}, ids(pairs[1]))
	assertDisjoint(t, pairs)
}

func TestBuild_LinkedQuoteWrongLanguage(t *testing.T) {
	e := en(3, nil)
	store := newStore(e)
	store.linkOverride[3] = en(4, nil)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, entity.TranslationSourceNone, pairs[0].TranslationSource)
}

func TestBuild_LinkToSelfIgnored(t *testing.T) {
	e := en(3, nil)
	store := newStore(e)
	store.linkOverride[3] = &entity.Quote{ID: 3, Language: entity.LanguageRussian}

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{e}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, entity.TranslationSourceNone, pairs[0].TranslationSource)
}

func TestBuild_ConstructionOrder(t *testing.T) {
	g := group(10)
	ge, gr := en(1, g), ru(2, g)
	single := en(20, nil)
	le, lr := en(3, nil), ru(4, nil)
	lone := ru(30, nil)
	store := newStore(ge, gr, single, le, lr, lone)
	store.link(3, 4)

	input := []*entity.Quote{single, ge, lone, le}
	pairs, err := newBuilder(store).Build(context.Background(), input, false)
	require.NoError(t, err)

	got := make([][2]int64, len(pairs))
	for i, p := range pairs {
		got[i] = ids(p)
	}
	// Group pairs first, then the link pass in input order.
	assert.Equal(t, [][2]int64{{1, 2}, {20, 0}, {0, 30}, {3, 4}}, got)
	assertDisjoint(t, pairs)
}

func TestBuild_PreferBilingualOrdering(t *testing.T) {
	g := group(10)
	ge, gr := en(1, g), ru(2, g)
	single := en(20, nil)
	le, lr := en(3, nil), ru(4, nil)
	lone := ru(30, nil)
	store := newStore(ge, gr, single, le, lr, lone)
	store.link(3, 4)

	input := []*entity.Quote{single, ge, lone, le}
	pairs, err := newBuilder(store).Build(context.Background(), input, true)
	require.NoError(t, err)

	got := make([][2]int64, len(pairs))
	for i, p := range pairs {
		got[i] = ids(p)
	}
	assert.Equal(t, [][2]int64{{3, 4}, {1, 2}, {0, 30}, {20, 0}}, got)
}

func TestBuild_EmptyInput(t *testing.T) {
	store := newStore()

	pairs, err := newBuilder(store).Build(context.Background(), nil, true)
	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
	assert.Equal(t, 0, store.linkCalls)
}

func TestBuild_SkipsNilAndInvalidQuotes(t *testing.T) {
	valid := en(1, nil)
	bad := &entity.Quote{ID: 2, Language: entity.Language("de")}
	store := newStore(valid, bad)

	pairs, err := newBuilder(store).Build(context.Background(), []*entity.Quote{nil, bad, valid}, false)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Same(t, valid, pairs[0].English)
	assert.Equal(t, 1, store.linkCalls)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	g := group(10)
	e, r := en(1, g), ru(2, g)
	store := newStore(e, r)
	input := []*entity.Quote{r, e}

	_, err := newBuilder(store).Build(context.Background(), input, true)
	require.NoError(t, err)
	assert.Same(t, r, input[0])
	assert.Same(t, e, input[1])
	assert.Equal(t, int64(10), *e.GroupID)
}

func TestBuild_StoreErrors(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("group lookup", func(t *testing.T) {
		store := newStore(en(1, group(10)))
		store.groupErr = boom
		_, err := newBuilder(store).Build(context.Background(), []*entity.Quote{store.quotes[1]}, false)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("link lookup", func(t *testing.T) {
		store := newStore(en(1, nil))
		store.linkErr = boom
		_, err := newBuilder(store).Build(context.Background(), []*entity.Quote{store.quotes[1]}, false)
		assert.ErrorIs(t, err, boom)
	})
}

func TestBuild_MixedScenarioInvariants(t *testing.T) {
	g1, g2 := group(1), group(2)
	quotes := []*entity.Quote{
		en(1, g1), ru(2, g1), en(3, g2), en(4, g2), ru(5, g2),
		en(6, nil), ru(7, nil), en(8, nil), ru(9, nil), ru(10, group(77)),
	}
	store := newStore(quotes[:9]...)
	store.link(6, 7)
	store.link(8, 2)

	input := slices.Clone(quotes)
	slices.Reverse(input)
	input = append(input, quotes...)

	pairs, err := newBuilder(store).Build(context.Background(), input, true)
	require.NoError(t, err)
	assertDisjoint(t, pairs)

	groups := 0
	for _, p := range pairs {
		if p.TranslationSource == entity.TranslationSourceGroup {
			groups++
		}
	}
	assert.Equal(t, 2, groups)
	// g1, g2, 6-7 link, 8 alone, 9 alone, 10 alone
	assert.Len(t, pairs, 6)
}

/* ───────── GroupPair ───────── */

func TestGroupPair_IgnoresConsumedMembers(t *testing.T) {
	g := group(10)
	store := newStore(en(1, g), ru(2, g), en(3, g))

	pair, members, err := newBuilder(store).GroupPair(context.Background(), 10, map[int64]struct{}{1: {}})
	require.NoError(t, err)
	assert.Equal(t, [2]int64{3, 2}, ids(pair))
	assert.ElementsMatch(t, []int64{2, 3}, members)
}

func TestGroupPair_NoMembers(t *testing.T) {
	store := newStore()

	pair, members, err := newBuilder(store).GroupPair(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.True(t, pair.IsEmpty())
	assert.Empty(t, members)
}

/* ───────── SortPreferBilingual ───────── */

func TestSortPreferBilingual_Stable(t *testing.T) {
	pairs := []entity.BilingualPair{
		entity.NewSinglePair(en(5, nil)),
		{English: en(1, nil), Russian: ru(2, nil)},
		entity.NewSinglePair(ru(5, nil)),
	}
	pairing.SortPreferBilingual(pairs)

	assert.True(t, pairs[0].IsComplete())
	// Equal max ids keep their relative order.
	assert.NotNil(t, pairs[1].English)
	assert.NotNil(t, pairs[2].Russian)
}

/* ───────── PairGroup ───────── */

func TestPairGroup(t *testing.T) {
	g := group(4)
	tests := []struct {
		name        string
		members     []*entity.Quote
		consumed    map[int64]struct{}
		want        [2]int64
		wantMembers []int64
	}{
		{
			name:        "complete",
			members:     []*entity.Quote{ru(8, g), en(3, g)},
			want:        [2]int64{3, 8},
			wantMembers: []int64{8, 3},
		},
		{
			name:        "english only",
			members:     []*entity.Quote{en(3, g)},
			want:        [2]int64{3, 0},
			wantMembers: []int64{3},
		},
		{
			name:        "lowest id per language regardless of order",
			members:     []*entity.Quote{en(9, g), ru(12, g), en(3, g), ru(10, g)},
			want:        [2]int64{3, 10},
			wantMembers: []int64{9, 12, 3, 10},
		},
		{
			name:        "nil and invalid members ignored",
			members:     []*entity.Quote{nil, {ID: 5, Language: "fr"}, ru(6, g)},
			want:        [2]int64{0, 6},
			wantMembers: []int64{6},
		},
		{
			name:        "all consumed",
			members:     []*entity.Quote{en(1, g)},
			consumed:    map[int64]struct{}{1: {}},
			want:        [2]int64{0, 0},
			wantMembers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, members := pairing.PairGroup(tt.members, tt.consumed)
			assert.Equal(t, tt.want, ids(pair))
			assert.Equal(t, tt.wantMembers, members)
			if !pair.IsEmpty() {
				assert.Equal(t, entity.TranslationSourceGroup, pair.TranslationSource)
				assert.False(t, pair.IsTranslated)
			}
		})
	}
}
