package catalog

import "strings"

// DefaultUnit is assumed when nothing better can be determined.
const DefaultUnit = "unidade"

type unitMapping struct {
	canonical string
	aliases   []string
}

// unitMappings maps each canonical unit token to the aliases suppliers use.
// Order matters: the substring fallback in NormalizeUnit scans it top to
// bottom, so container units come before measure units.
var unitMappings = []unitMapping{
	{"unidade", []string{"un", "und", "unid", "pcs", "pc", "peca", "peça", "unit", "units"}},
	{"caixa", []string{"cx", "cxa", "box", "caixas"}},
	{"pacote", []string{"pct", "pkt", "pack", "pacotes", "embalagem", "emb"}},
	{"frasco", []string{"fr", "frs", "vidro", "frascos"}},
	{"tubo", []string{"tb", "bisnaga", "tubos", "bisnagas"}},
	{"rolo", []string{"rl", "bobina", "rolos"}},
	{"kit", []string{"kits", "conjunto", "set"}},
	{"seringa", []string{"ser", "seringas", "syringe"}},
	{"refil", []string{"refis", "reposicao", "refill"}},
	{"cartucho", []string{"cart", "cartuchos", "cartridge"}},
	{"blister", []string{"blisters", "cartela"}},
	{"envelope", []string{"envelopes", "sachê", "sache"}},
	{"galao", []string{"gal", "galoes"}},
	{"litro", []string{"lt", "litros"}},
	{"mililitro", []string{"ml", "mililitros"}},
	{"grama", []string{"gr", "gramas"}},
	{"quilograma", []string{"kg", "quilos", "kilo"}},
}

var unitAliases = func() map[string]string {
	m := make(map[string]string)
	for _, um := range unitMappings {
		m[um.canonical] = um.canonical
		for _, a := range um.aliases {
			m[strings.ToLower(a)] = um.canonical
		}
	}
	// single-letter measures only resolve on exact match; as substrings
	// they would fire on nearly every word
	m["l"] = "litro"
	m["g"] = "grama"
	return m
}()

// NormalizeUnit maps a raw unit string to its canonical token.
func NormalizeUnit(unit string) string {
	if unit == "" {
		return DefaultUnit
	}
	normalized := NormalizeText(unit)
	if canonical, ok := unitAliases[normalized]; ok {
		return canonical
	}
	for _, um := range unitMappings {
		if strings.Contains(normalized, um.canonical) {
			return um.canonical
		}
		for _, alias := range um.aliases {
			if len(alias) >= 2 && strings.Contains(normalized, alias) {
				return um.canonical
			}
		}
	}
	return DefaultUnit
}

// Container words win over measure words when a name mentions both
// ("Caixa c/ 50 seringas" is sold by the caixa).
var priorityUnits = []string{"caixa", "pacote", "kit", "frasco", "tubo", "seringa", "refil"}

// ExtractUnitFromName guesses the sales unit from the product name.
func ExtractUnitFromName(name string) string {
	normalized := NormalizeText(name)
	padded := " " + normalized + " "
	for _, unit := range priorityUnits {
		if strings.Contains(normalized, unit) {
			return unit
		}
		for _, um := range unitMappings {
			if um.canonical != unit {
				continue
			}
			for _, alias := range um.aliases {
				if strings.Contains(padded, " "+alias+" ") {
					return unit
				}
			}
		}
	}
	return DefaultUnit
}
