package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one normalized listing from one supplier. Records are built by
// the catalog package (or decoded from a snapshot) and are read-only inputs
// to the matching core.
//
// An empty EAN, ManufacturerCode or AnvisaRegistration means "unknown",
// never "matches empty".
type Product struct {
	Supplier           string           `json:"supplier"`
	ExternalID         string           `json:"external_id"`
	ExternalURL        string           `json:"external_url,omitempty"`
	Name               string           `json:"name"`
	NormalizedName     string           `json:"normalized_name"`
	Brand              string           `json:"brand"`
	NormalizedBrand    string           `json:"normalized_brand"`
	Category           string           `json:"category"`
	Quantity           int              `json:"quantity"`
	Unit               string           `json:"unit"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	DiscountedPrice    *decimal.Decimal `json:"discounted_price,omitempty"`
	EAN                string           `json:"ean,omitempty"`
	ManufacturerCode   string           `json:"manufacturer_code,omitempty"`
	AnvisaRegistration string           `json:"anvisa_registration,omitempty"`
	InStock            bool             `json:"in_stock"`
}

// UID is globally unique per catalog entry.
func (p Product) UID() string { return p.Supplier + ":" + p.ExternalID }

// Match is an intermediate scoring result.
type Match struct {
	Confidence float64
	Method     string
}

// Match methods.
const (
	MethodEAN              = "ean"
	MethodManufacturerCode = "manufacturer_code"
	MethodAnvisa           = "anvisa"
	MethodFuzzy            = "fuzzy"
)

// ProductMatch statuses.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
)

// ConfirmThreshold is the confidence at which a match is auto-confirmed.
const ConfirmThreshold = 0.85

// ProductMatch is a committed pairing between one record of each catalog.
type ProductMatch struct {
	ProductA   Product
	ProductB   Product
	Confidence float64
	Method     string
	Status     string
	MatchedAt  time.Time
}

// NewProductMatch derives the status from the confidence.
func NewProductMatch(a, b Product, m Match) ProductMatch {
	status := StatusPending
	if m.Confidence >= ConfirmThreshold {
		status = StatusConfirmed
	}
	return ProductMatch{
		ProductA:   a,
		ProductB:   b,
		Confidence: m.Confidence,
		Method:     m.Method,
		Status:     status,
		MatchedAt:  time.Now(),
	}
}

// PriceDiffAbsolute returns B price minus A price, or nil when either is unknown.
func (pm ProductMatch) PriceDiffAbsolute() *decimal.Decimal {
	if pm.ProductA.Price == nil || pm.ProductB.Price == nil {
		return nil
	}
	d := pm.ProductB.Price.Sub(*pm.ProductA.Price)
	return &d
}

// PriceDiffPercent returns the price difference relative to A's price,
// rounded to 2 decimals. Nil when either price is unknown or A's is zero.
func (pm ProductMatch) PriceDiffPercent() *float64 {
	if pm.ProductA.Price == nil || pm.ProductB.Price == nil || !pm.ProductA.Price.IsPositive() {
		return nil
	}
	diff := pm.ProductB.Price.Sub(*pm.ProductA.Price).
		Div(*pm.ProductA.Price).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	v, _ := diff.Float64()
	return &v
}

// CheaperSupplier names the supplier with the lower price, or "" when the
// prices are equal or either is unknown.
func (pm ProductMatch) CheaperSupplier() string {
	if pm.ProductA.Price == nil || pm.ProductB.Price == nil {
		return ""
	}
	switch pm.ProductA.Price.Cmp(*pm.ProductB.Price) {
	case -1:
		return pm.ProductA.Supplier
	case 1:
		return pm.ProductB.Supplier
	}
	return ""
}

// MatchResult is the terminal output of one engine run.
type MatchResult struct {
	Matches    []ProductMatch
	UnmatchedA []Product
	UnmatchedB []Product
}

// Stats are derived aggregates, never stored redundantly.
type Stats struct {
	TotalMatches int            `json:"total_matches"`
	ByMethod     map[string]int `json:"by_method"`
	UnmatchedA   int            `json:"unmatched_a"`
	UnmatchedB   int            `json:"unmatched_b"`
}

func (r MatchResult) Stats() Stats {
	methods := make(map[string]int)
	for _, m := range r.Matches {
		methods[m.Method]++
	}
	return Stats{
		TotalMatches: len(r.Matches),
		ByMethod:     methods,
		UnmatchedA:   len(r.UnmatchedA),
		UnmatchedB:   len(r.UnmatchedB),
	}
}
