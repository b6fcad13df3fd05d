package service

import (
	"sort"
	"strings"

	"catalog-match-service/internal/match/model"
)

// candidateFinder produces the records of catalog B worth scoring against
// one record of catalog A.
type candidateFinder interface {
	Candidates(p model.Product) []model.Product
}

// brandScan is the escape hatch for records with no usable index keys: an
// unindexed linear pass over all of B keeping brand-equal records. Expensive
// on purpose, and only consulted when the index comes up empty.
type brandScan struct {
	products []model.Product
}

func (s brandScan) Candidates(p model.Product) []model.Product {
	if p.NormalizedBrand == "" {
		return nil
	}
	var out []model.Product
	for _, c := range s.products {
		if c.NormalizedBrand != "" && strings.EqualFold(c.NormalizedBrand, p.NormalizedBrand) {
			out = append(out, c)
		}
	}
	return out
}

// matchState accumulates commitments across the greedy pass. Keeping it as an
// explicit value rather than ambient state makes the order-dependent
// resolution auditable step by step.
type matchState struct {
	matches  []model.ProductMatch
	claimedA map[string]struct{}
	claimedB map[string]struct{}
}

func newMatchState() *matchState {
	return &matchState{
		claimedA: make(map[string]struct{}),
		claimedB: make(map[string]struct{}),
	}
}

func (st *matchState) commit(pm model.ProductMatch) {
	st.matches = append(st.matches, pm)
	st.claimedA[pm.ProductA.UID()] = struct{}{}
	st.claimedB[pm.ProductB.UID()] = struct{}{}
}

// Engine produces a deterministic 1:1 pairing between two catalogs.
//
// The assignment is a greedy single pass in catalog-A input order: an A
// record may settle for a merely-good partner whose best partner was claimed
// earlier. That is a deliberate trade of optimality for simplicity and
// reproducibility, not a defect to fix with a global solver.
type Engine struct {
	fuzzyThreshold float64
}

func NewEngine(fuzzyThreshold float64) *Engine {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	return &Engine{fuzzyThreshold: fuzzyThreshold}
}

// Match pairs catalog A against catalog B. Input order of A is significant:
// it is the tie-break and fairness mechanism.
func (e *Engine) Match(productsA, productsB []model.Product) model.MatchResult {
	index := NewIndex()
	index.AddMany(productsB)
	var fallback candidateFinder = brandScan{products: productsB}

	st := newMatchState()

	for _, a := range productsA {
		candidates := index.FindCandidates(a)
		if len(candidates) == 0 {
			candidates = fallback.Candidates(a)
		}

		var best model.Match
		var bestProduct model.Product
		found := false

		for _, b := range candidates {
			if _, taken := st.claimedB[b.UID()]; taken {
				continue
			}
			m, ok := ComputeSimilarity(a, b, e.fuzzyThreshold)
			if !ok {
				continue
			}
			// strictly greater keeps the first candidate on ties
			if m.Confidence > best.Confidence {
				best = m
				bestProduct = b
				found = true
			}
		}

		if found && best.Confidence >= e.fuzzyThreshold {
			st.commit(model.NewProductMatch(a, bestProduct, best))
		}
	}

	unmatchedA := unclaimed(productsA, st.claimedA)
	unmatchedB := unclaimed(productsB, st.claimedB)

	sort.SliceStable(st.matches, func(i, j int) bool {
		return st.matches[i].Confidence > st.matches[j].Confidence
	})

	return model.MatchResult{
		Matches:    st.matches,
		UnmatchedA: unmatchedA,
		UnmatchedB: unmatchedB,
	}
}

// MatchAllPairs groups records by supplier and matches the first two distinct
// suppliers in encounter order against each other. More than two suppliers is
// not supported; the extra groups are ignored. With fewer than two groups the
// whole input comes back unmatched.
func (e *Engine) MatchAllPairs(products []model.Product) model.MatchResult {
	bySupplier := make(map[string][]model.Product)
	var order []string
	for _, p := range products {
		if _, ok := bySupplier[p.Supplier]; !ok {
			order = append(order, p.Supplier)
		}
		bySupplier[p.Supplier] = append(bySupplier[p.Supplier], p)
	}

	if len(order) < 2 {
		return model.MatchResult{
			Matches:    nil,
			UnmatchedA: products,
			UnmatchedB: nil,
		}
	}

	return e.Match(bySupplier[order[0]], bySupplier[order[1]])
}

func unclaimed(products []model.Product, claimed map[string]struct{}) []model.Product {
	var out []model.Product
	for _, p := range products {
		if _, ok := claimed[p.UID()]; !ok {
			out = append(out, p)
		}
	}
	return out
}
