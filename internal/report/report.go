// Package report renders match results for humans and exports them for
// machines. Presentation only; it never changes a result.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"catalog-match-service/internal/match/model"
)

// Summary renders the text report the CLI prints: totals, the top-N matches
// by confidence and the per-supplier price comparison.
func Summary(result model.MatchResult, topN int) string {
	var b strings.Builder
	stats := result.Stats()

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nMATCHING RESULTS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Total matches: %d\n", stats.TotalMatches)
	fmt.Fprintf(&b, "By method: %s\n", formatMethods(stats.ByMethod))
	fmt.Fprintf(&b, "Unmatched (supplier A): %d\n", stats.UnmatchedA)
	fmt.Fprintf(&b, "Unmatched (supplier B): %d\n", stats.UnmatchedB)

	if len(result.Matches) == 0 {
		return b.String()
	}

	n := topN
	if n > len(result.Matches) {
		n = len(result.Matches)
	}
	fmt.Fprintf(&b, "\n%s\nTOP %d MATCHES\n%s\n", rule, n, rule)
	for i, m := range result.Matches[:n] {
		fmt.Fprintf(&b, "\n%d. [%s] Confidence: %.1f%%\n", i+1, m.Method, m.Confidence*100)
		fmt.Fprintf(&b, "   A: %s\n      %s - %s\n", m.ProductA.Name, m.ProductA.Supplier, formatPrice(m.ProductA.Price))
		fmt.Fprintf(&b, "   B: %s\n      %s - %s\n", m.ProductB.Name, m.ProductB.Supplier, formatPrice(m.ProductB.Price))
		if diff := m.PriceDiffPercent(); diff != nil {
			fmt.Fprintf(&b, "   -> Price diff: %+.1f%% (cheaper at %s)\n", *diff, m.CheaperSupplier())
		}
	}

	fmt.Fprintf(&b, "\n%s\nPRICE COMPARISON SUMMARY\n%s\n", rule, rule)
	for _, line := range savingsLines(result.Matches) {
		fmt.Fprintln(&b, line)
	}

	return b.String()
}

// savingsLines computes, per supplier, how many matched products it sells
// cheaper and the total saved by buying those there.
func savingsLines(matches []model.ProductMatch) []string {
	cheaperCount := make(map[string]int)
	savings := make(map[string]decimal.Decimal)
	var suppliers []string
	seen := make(map[string]struct{})

	note := func(s string) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			suppliers = append(suppliers, s)
		}
	}

	for _, m := range matches {
		note(m.ProductA.Supplier)
		note(m.ProductB.Supplier)
		cheaper := m.CheaperSupplier()
		if cheaper == "" {
			continue
		}
		cheaperCount[cheaper]++
		if d := m.PriceDiffAbsolute(); d != nil {
			savings[cheaper] = savings[cheaper].Add(d.Abs())
		}
	}
	sort.Strings(suppliers)

	out := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, fmt.Sprintf("%s: cheaper in %d products (potential savings: R$%s)",
			s, cheaperCount[s], savings[s].StringFixed(2)))
	}
	return out
}

// Document is the exported JSON report.
type Document struct {
	model.ExportedResult
	GeneratedAt string            `json:"generated_at"`
	FilesUsed   map[string]string `json:"files_used,omitempty"`
}

// WriteJSON writes the full result document to path.
func WriteJSON(path string, result model.MatchResult, filesUsed map[string]string) error {
	doc := Document{
		ExportedResult: result.Export(),
		GeneratedAt:    time.Now().Format(time.RFC3339),
		FilesUsed:      filesUsed,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func formatMethods(byMethod map[string]int) string {
	keys := make([]string, 0, len(byMethod))
	for k := range byMethod {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, byMethod[k]))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "R$-"
	}
	return "R$" + p.StringFixed(2)
}
