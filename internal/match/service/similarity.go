package service

import (
	"math"
	"sort"
	"strings"

	"catalog-match-service/internal/match/model"
)

// Fuzzy scoring weights; they must sum to 1.
const (
	weightName     = 0.40
	weightBrand    = 0.25
	weightCategory = 0.15
	weightQuantity = 0.10
	weightUnit     = 0.10
)

// minNameSimilarity gates the fuzzy pass: below it, agreement on the other
// fields cannot produce a match.
const minNameSimilarity = 0.60

// DefaultFuzzyThreshold is the minimum accumulated score for a fuzzy match.
const DefaultFuzzyThreshold = 0.70

// exactMatch checks identifier rules in priority order. A shared identifier
// beats any amount of textual disagreement.
func exactMatch(a, b model.Product) (model.Match, bool) {
	if a.EAN != "" && b.EAN != "" && a.EAN == b.EAN {
		return model.Match{Confidence: 1.0, Method: model.MethodEAN}, true
	}

	// manufacturer codes are short and reused across brands, so the code
	// alone is not enough
	if a.ManufacturerCode != "" && b.ManufacturerCode != "" &&
		a.ManufacturerCode == b.ManufacturerCode &&
		a.NormalizedBrand != "" && b.NormalizedBrand != "" &&
		strings.EqualFold(a.NormalizedBrand, b.NormalizedBrand) {
		return model.Match{Confidence: 1.0, Method: model.MethodManufacturerCode}, true
	}

	if a.AnvisaRegistration != "" && b.AnvisaRegistration != "" &&
		a.AnvisaRegistration == b.AnvisaRegistration {
		return model.Match{Confidence: 0.95, Method: model.MethodAnvisa}, true
	}

	return model.Match{}, false
}

func fuzzyMatch(a, b model.Product, threshold float64) (model.Match, bool) {
	score := 0.0

	nameSim := 0.0
	if a.NormalizedName != "" && b.NormalizedName != "" {
		nameSim = tokenSortSimilarity(a.NormalizedName, b.NormalizedName)
		score += nameSim * weightName
	}
	if nameSim < minNameSimilarity {
		return model.Match{}, false
	}

	switch {
	case a.NormalizedBrand != "" && b.NormalizedBrand != "":
		brandSim := similarity(strings.ToLower(a.NormalizedBrand), strings.ToLower(b.NormalizedBrand))
		score += brandSim * weightBrand
	case a.NormalizedBrand == "" && b.NormalizedBrand == "":
		// both unknown is a weak positive signal, not a penalty
		score += weightBrand * 0.5
	}

	if a.Category != "" && b.Category != "" {
		if a.Category == b.Category {
			score += weightCategory
		} else {
			score += similarity(a.Category, b.Category) * weightCategory * 0.5
		}
	}

	if a.Quantity == b.Quantity {
		score += weightQuantity
	} else if a.Quantity > 0 && b.Quantity > 0 {
		ratio := float64(min(a.Quantity, b.Quantity)) / float64(max(a.Quantity, b.Quantity))
		score += ratio * weightQuantity * 0.5
	}

	if a.Unit != "" && b.Unit != "" && strings.EqualFold(a.Unit, b.Unit) {
		score += weightUnit
	}

	if score >= threshold {
		return model.Match{Confidence: round3(score), Method: model.MethodFuzzy}, true
	}
	return model.Match{}, false
}

// ComputeSimilarity decides whether two products denote the same real product.
// Pure function, safe for concurrent use.
func ComputeSimilarity(a, b model.Product, fuzzyThreshold float64) (model.Match, bool) {
	if m, ok := exactMatch(a, b); ok {
		return m, true
	}
	return fuzzyMatch(a, b, fuzzyThreshold)
}

// similarity is a normalized Damerau-Levenshtein ratio in [0..1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}

// tokenSort makes the comparison insensitive to word order.
func tokenSort(s string) string {
	if s == "" {
		return s
	}
	t := strings.Fields(s)
	sort.Strings(t)
	return strings.Join(t, " ")
}

func tokenSortSimilarity(a, b string) float64 {
	return similarity(tokenSort(a), tokenSort(b))
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
