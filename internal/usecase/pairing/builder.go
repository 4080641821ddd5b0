// Package pairing turns a flat, ranked list of quotes in either language into
// deduplicated bilingual pairs. Pairs come from shared bilingual group ids
// first, then from legacy translation links, and finally as single quotes.
package pairing

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/repository"
)

// Builder assembles bilingual pairs. It holds no per-call state and is safe
// for concurrent use.
type Builder struct {
	Quotes repository.QuoteRepository
	Links  repository.TranslationLinkRepository
}

// pass carries the bookkeeping of one Build call.
type pass struct {
	consumed map[int64]struct{}
	resolved map[int64]struct{}
}

func newPass() *pass {
	return &pass{
		consumed: make(map[int64]struct{}),
		resolved: make(map[int64]struct{}),
	}
}

func (p *pass) isConsumed(id int64) bool {
	_, ok := p.consumed[id]
	return ok
}

func (p *pass) isResolved(q *entity.Quote) bool {
	if !q.InGroup() {
		return false
	}
	_, ok := p.resolved[*q.GroupID]
	return ok
}

func (p *pass) consume(ids ...int64) {
	for _, id := range ids {
		p.consumed[id] = struct{}{}
	}
}

// Build pairs quotes in two passes. The group pass walks the input in order and
// emits one pair per bilingual group. The link pass walks it again and pairs
// the remaining quotes through the translation link store, or emits them alone.
//
// No quote id appears in more than one pair and no group contributes more than
// one pair. With preferBilingual, complete pairs move ahead of partial ones,
// each bucket ordered by its highest quote id descending. Otherwise pairs keep
// construction order.
//
// Store errors abort the call and are returned wrapped.
func (b *Builder) Build(ctx context.Context, quotes []*entity.Quote, preferBilingual bool) ([]entity.BilingualPair, error) {
	p := newPass()
	pairs := make([]entity.BilingualPair, 0, len(quotes))

	for _, q := range quotes {
		if !usable(q) || p.isConsumed(q.ID) || !q.InGroup() || p.isResolved(q) {
			continue
		}
		pair, members, err := b.GroupPair(ctx, *q.GroupID, p.consumed)
		if err != nil {
			return nil, fmt.Errorf("build pairs: %w", err)
		}
		if pair.IsEmpty() {
			// The quote stays eligible for the link pass.
			continue
		}
		p.consume(members...)
		p.resolved[*q.GroupID] = struct{}{}
		pairs = append(pairs, pair)
	}

	for _, q := range quotes {
		if !usable(q) || p.isConsumed(q.ID) || p.isResolved(q) {
			continue
		}
		pair, err := b.linkPair(ctx, q, p)
		if err != nil {
			return nil, fmt.Errorf("build pairs: %w", err)
		}
		p.consume(pair.QuoteIDs()...)
		pairs = append(pairs, pair)
	}

	if preferBilingual {
		SortPreferBilingual(pairs)
	}
	return pairs, nil
}

// GroupPair builds the pair for one bilingual group from the quote store.
// See PairGroup for the selection rules.
func (b *Builder) GroupPair(ctx context.Context, groupID int64, consumed map[int64]struct{}) (entity.BilingualPair, []int64, error) {
	members, err := b.Quotes.ListByGroup(ctx, groupID)
	if err != nil {
		return entity.BilingualPair{}, nil, fmt.Errorf("list group %d: %w", groupID, err)
	}
	pair, ids := PairGroup(members, consumed)
	return pair, ids, nil
}

// PairGroup applies the group rules to already fetched members. Members whose
// id is in consumed are ignored. When a language has several members the lowest
// id wins. The returned ids cover every usable member, canonical or not, so
// callers can mark the whole group as used. An empty pair means the group had
// no usable member.
func PairGroup(members []*entity.Quote, consumed map[int64]struct{}) (entity.BilingualPair, []int64) {
	pair := entity.BilingualPair{TranslationSource: entity.TranslationSourceGroup}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		if !usable(m) {
			continue
		}
		if _, ok := consumed[m.ID]; ok {
			continue
		}
		ids = append(ids, m.ID)

		if cur := pair.Side(m.Language); cur == nil || m.ID < cur.ID {
			pair.Place(m)
		}
	}
	if pair.IsEmpty() {
		return entity.BilingualPair{}, nil
	}
	return pair, ids
}

// linkPair looks up the legacy translation of q. A missing link, a linked quote
// that is already consumed, or one in the wrong language yields q alone.
func (b *Builder) linkPair(ctx context.Context, q *entity.Quote, p *pass) (entity.BilingualPair, error) {
	target := q.Language.Opposite()
	linked, err := b.Links.GetLinkedQuote(ctx, q.ID, target)
	if err != nil {
		return entity.BilingualPair{}, fmt.Errorf("linked quote for %d: %w", q.ID, err)
	}
	if linked == nil || linked.ID == q.ID || linked.Language != target || p.isConsumed(linked.ID) {
		return entity.NewSinglePair(q), nil
	}

	pair := entity.BilingualPair{
		IsTranslated:      true,
		TranslationSource: entity.TranslationSourceLink,
	}
	pair.Place(q)
	pair.Place(linked)
	return pair, nil
}

// SortPreferBilingual stably moves complete pairs ahead of partial ones and
// orders each bucket by highest quote id, descending.
func SortPreferBilingual(pairs []entity.BilingualPair) {
	slices.SortStableFunc(pairs, func(a, b entity.BilingualPair) int {
		if c := cmp.Compare(rank(b), rank(a)); c != 0 {
			return c
		}
		return cmp.Compare(b.MaxID(), a.MaxID())
	})
}

func rank(p entity.BilingualPair) int {
	if p.IsComplete() {
		return 1
	}
	return 0
}

func usable(q *entity.Quote) bool {
	return q != nil && q.Language.Valid()
}
