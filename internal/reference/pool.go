// Package reference maintains the in-run pool of completed
// (source, processed) pairs and retrieves the most similar ones as few-shot
// context for the processor. The pool is ordered and append-only within a
// run; it is created, seeded, grown and discarded once per document.
package reference

import (
	"sort"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

const defaultMaxResults = 5

// Pool is the similarity index over reference pairs. Not safe for
// concurrent use; each document run owns its own pool.
type Pool struct {
	maxResults int
	pairs      []domain.ReferencePair
}

// NewPool creates a pool returning at most maxResults pairs per query.
// Non-positive values fall back to the default of 5.
func NewPool(maxResults int) *Pool {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Pool{maxResults: maxResults}
}

// Seed bulk-loads pairs from a catalog's complete, non-stale units.
func (p *Pool) Seed(cat *domain.Catalog) {
	for _, u := range cat.Units() {
		if u.Obsolete || u.Stale || u.Processed == "" {
			continue
		}
		p.pairs = append(p.pairs, domain.ReferencePair{Source: u.Source, Processed: u.Processed})
	}
}

// Add appends one completed pair.
func (p *Pool) Add(source, processed string) {
	p.pairs = append(p.pairs, domain.ReferencePair{Source: source, Processed: processed})
}

// Len returns the number of pairs in the pool.
func (p *Pool) Len() int {
	return len(p.pairs)
}

// Similar returns the pool's best matches for a query, capped at the
// pool's configured maximum.
func (p *Pool) Similar(query string) []domain.ReferencePair {
	return p.TopK(query, p.maxResults)
}

// TopK returns up to k pairs ranked most similar first. Pairs whose source
// equals the query exactly are excluded, so a unit never retrieves itself.
// Ties keep insertion order.
func (p *Pool) TopK(query string, k int) []domain.ReferencePair {
	if len(p.pairs) == 0 || k <= 0 {
		return nil
	}

	type scored struct {
		pair  domain.ReferencePair
		ratio float64
	}

	candidates := make([]scored, 0, len(p.pairs))
	for _, pair := range p.pairs {
		if pair.Source == query {
			continue
		}
		candidates = append(candidates, scored{pair: pair, ratio: Ratio(query, pair.Source)})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ratio > candidates[j].ratio
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]domain.ReferencePair, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].pair
	}
	return out
}
