package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var priceGarbage = regexp.MustCompile(`[^0-9,.\-]`)

// ParsePrice parses Brazilian currency strings ("R$ 1.234,56", "1.234,56",
// "12,90") into an exact decimal. Dots are thousands separators, the comma is
// the decimal mark. Returns nil when the input holds no usable number.
func ParsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// NBSP and narrow NBSP show up in copy-pasted supplier exports
	s = strings.NewReplacer(" ", "", " ", "", " ", "").Replace(s)
	s = priceGarbage.ReplaceAllString(s, "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" || s == "-" || s == "." {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
