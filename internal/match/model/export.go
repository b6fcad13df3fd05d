package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary is the per-side product payload inside an exported match.
type ProductSummary struct {
	Supplier        string           `json:"supplier"`
	ExternalID      string           `json:"external_id"`
	Name            string           `json:"name"`
	Price           *decimal.Decimal `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
}

// ExportedMatch is the wire form of one ProductMatch.
type ExportedMatch struct {
	ProductA         ProductSummary `json:"product_a"`
	ProductB         ProductSummary `json:"product_b"`
	Confidence       float64        `json:"confidence"`
	Method           string         `json:"method"`
	Status           string         `json:"status"`
	PriceDiffPercent *float64       `json:"price_diff_percent"`
	CheaperAt        string         `json:"cheaper_at,omitempty"`
	MatchedAt        string         `json:"matched_at"`
}

// ExportedResult is the wire form of a MatchResult.
type ExportedResult struct {
	Matches []ExportedMatch `json:"matches"`
	Stats   Stats           `json:"stats"`
}

func summarize(p Product) ProductSummary {
	return ProductSummary{
		Supplier:        p.Supplier,
		ExternalID:      p.ExternalID,
		Name:            p.Name,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
	}
}

// Export flattens one match for serialization.
func (pm ProductMatch) Export() ExportedMatch {
	return ExportedMatch{
		ProductA:         summarize(pm.ProductA),
		ProductB:         summarize(pm.ProductB),
		Confidence:       pm.Confidence,
		Method:           pm.Method,
		Status:           pm.Status,
		PriceDiffPercent: pm.PriceDiffPercent(),
		CheaperAt:        pm.CheaperSupplier(),
		MatchedAt:        pm.MatchedAt.Format(time.RFC3339),
	}
}

// Export flattens the whole result for serialization.
func (r MatchResult) Export() ExportedResult {
	out := ExportedResult{
		Matches: make([]ExportedMatch, 0, len(r.Matches)),
		Stats:   r.Stats(),
	}
	for _, m := range r.Matches {
		out.Matches = append(out.Matches, m.Export())
	}
	return out
}
