package catalog

import "strings"

type brandMapping struct {
	canonical string
	aliases   []string
}

// brandMappings is the canon of manufacturers seen across both suppliers.
// Canonical forms are lowercase so brand equality is trivially
// case-insensitive downstream.
var brandMappings = []brandMapping{
	{"3m", []string{"3m espe", "3m oral care", "3m do brasil"}},
	{"dentsply", []string{"dentsply sirona", "dentsply maillefer"}},
	{"coltene", []string{"coltene whaledent", "vigodent coltene"}},
	{"ivoclar", []string{"ivoclar vivadent"}},
	{"kerr", []string{"kerr dental", "kerr hawe"}},
	{"ultradent", []string{"ultradent products"}},
	{"fgm", []string{"fgm dental group", "fgm produtos odontologicos"}},
	{"sdi", []string{"sdi limited"}},
	{"voco", []string{"voco gmbh"}},
	{"kavo", []string{"kavo kerr"}},
	{"angelus", []string{"angelus ciencia e tecnologia"}},
	{"maquira", []string{"maquira dental group"}},
	{"microdont", nil},
	{"ssplus", []string{"ss plus"}},
	{"cristofoli", nil},
	{"dfl", nil},
}

var brandAliases = func() map[string]string {
	m := make(map[string]string)
	for _, bm := range brandMappings {
		m[bm.canonical] = bm.canonical
		for _, a := range bm.aliases {
			m[a] = bm.canonical
		}
	}
	return m
}()

// NormalizeBrand maps a raw brand string to its canonical form. Brands
// outside the canon come back trimmed but otherwise untouched.
func NormalizeBrand(brand string) string {
	if strings.TrimSpace(brand) == "" {
		return ""
	}
	normalized := NormalizeText(brand)
	if canonical, ok := brandAliases[normalized]; ok {
		return canonical
	}
	return strings.TrimSpace(brand)
}

// ExtractBrandFromName looks for a known brand inside a product name, then
// falls back to the " - Brand" suffix convention some suppliers use.
// Returns "" when neither yields anything.
func ExtractBrandFromName(name string) string {
	if name == "" {
		return ""
	}

	padded := " " + NormalizeText(name) + " "
	for _, bm := range brandMappings {
		if strings.Contains(padded, " "+bm.canonical+" ") {
			return bm.canonical
		}
		for _, alias := range bm.aliases {
			if strings.Contains(padded, " "+alias+" ") {
				return bm.canonical
			}
		}
	}

	if i := strings.LastIndex(name, " - "); i >= 0 {
		suffix := strings.TrimSpace(name[i+3:])
		if len(suffix) >= 2 {
			return NormalizeBrand(suffix)
		}
	}

	return ""
}
