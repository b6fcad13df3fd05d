package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accent stripping: decompose, drop combining marks, recompose.
// "Anestésico" -> "Anestesico".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// CleanText trims and collapses all whitespace runs to single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeText produces the lower-cased, accent-stripped, punctuation-free
// form used for fuzzy comparison.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = CleanText(s)
	s = strings.ToLower(s)
	if out, _, err := transform.String(accentStripper, s); err == nil {
		s = out
	}
	s = nonWord.ReplaceAllString(s, " ")
	return CleanText(s)
}

// Packaging quantity patterns seen in pt-BR product names, most specific
// first: "c/100 un", "caixa c/ 50", "40pcs", "3 x 10", leading count.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:un(?:idade)?s?|pcs?|pecas?)\b`),
	regexp.MustCompile(`(?i)c/?(\d+)\s*(?:un(?:idade)?s?)?\b`),
	regexp.MustCompile(`(?i)(?:caixa|cx|pack|pct)\s*(?:c/?)?\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*x\s*\d+`),
	regexp.MustCompile(`^(\d+)\s+`),
}

// ExtractQuantity pulls a package unit count out of a product name.
// Counts outside 1..1000 are treated as codes, not quantities.
func ExtractQuantity(text string) int {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if qty >= 1 && qty <= 1000 {
			return qty
		}
	}
	return 1
}

// RemoveQuantityFromName strips the packaging count from a name so that
// "Luvas c/100 un" and "Luvas c/50 un" normalize to the same base name.
func RemoveQuantityFromName(name string, quantity int) string {
	if quantity <= 1 {
		return name
	}
	q := strconv.Itoa(quantity)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b` + q + `\s*(?:un(?:idade)?s?|pcs?|pecas?)\b`),
		regexp.MustCompile(`(?i)c/?` + q + `\s*(?:un(?:idade)?s?)?\b`),
		regexp.MustCompile(`(?i)(?:caixa|cx|pack|pct)\s*(?:c/?)?\s*` + q + `\b`),
	}
	result := name
	for _, re := range patterns {
		result = re.ReplaceAllString(result, "")
	}
	return CleanText(result)
}
