package catalog

import (
	"strconv"
	"strings"

	"catalog-match-service/internal/match/model"
)

// RawProduct is one listing as harvested from a supplier, before any
// canonicalization.
type RawProduct struct {
	Supplier           string
	ExternalID         string
	ExternalURL        string
	Name               string
	Brand              string
	Category           string
	Unit               string
	Quantity           string
	Price              string
	DiscountedPrice    string
	EAN                string
	ManufacturerCode   string
	AnvisaRegistration string
	InStock            bool
}

// Normalize runs the full canonicalization pipeline and yields the immutable
// record the matching core consumes.
func Normalize(raw RawProduct) model.Product {
	brand := raw.Brand
	normalizedBrand := ""
	if brand != "" {
		normalizedBrand = NormalizeBrand(brand)
	} else {
		normalizedBrand = ExtractBrandFromName(raw.Name)
	}

	unit := ""
	if raw.Unit != "" {
		unit = NormalizeUnit(raw.Unit)
	} else {
		unit = ExtractUnitFromName(raw.Name)
	}

	quantity := 0
	if q, err := strconv.Atoi(strings.TrimSpace(raw.Quantity)); err == nil && q > 0 {
		quantity = q
	} else {
		quantity = ExtractQuantity(raw.Name)
	}

	name := CleanText(raw.Name)
	name = RemoveQuantityFromName(name, quantity)

	return model.Product{
		Supplier:           raw.Supplier,
		ExternalID:         strings.TrimSpace(raw.ExternalID),
		ExternalURL:        strings.TrimSpace(raw.ExternalURL),
		Name:               name,
		NormalizedName:     NormalizeText(name),
		Brand:              brand,
		NormalizedBrand:    normalizedBrand,
		Category:           CategoryPath(raw.Category, raw.Name),
		Quantity:           quantity,
		Unit:               unit,
		Price:              ParsePrice(raw.Price),
		DiscountedPrice:    ParsePrice(raw.DiscountedPrice),
		EAN:                strings.TrimSpace(raw.EAN),
		ManufacturerCode:   strings.TrimSpace(raw.ManufacturerCode),
		AnvisaRegistration: strings.TrimSpace(raw.AnvisaRegistration),
		InStock:            raw.InStock,
	}
}

// Column aliases accepted in uploaded price tables, per field.
var rowFields = map[string][]string{
	"external_id":         {"external_id", "id", "codigo", "código", "sku"},
	"external_url":        {"external_url", "url", "link"},
	"name":                {"name", "nome", "produto", "descricao", "descrição"},
	"brand":               {"brand", "marca", "fabricante"},
	"category":            {"category", "categoria"},
	"unit":                {"unit", "unidade", "embalagem"},
	"quantity":            {"quantity", "quantidade", "qtd"},
	"price":               {"price", "preco", "preço", "valor"},
	"discounted_price":    {"discounted_price", "pix_price", "preco_pix", "preço pix"},
	"ean":                 {"ean", "ean13", "barcode", "codigo de barras"},
	"manufacturer_code":   {"manufacturer_code", "codigo do fabricante", "ref", "referencia"},
	"anvisa_registration": {"anvisa_registration", "anvisa", "registro anvisa"},
	"in_stock":            {"in_stock", "estoque", "disponivel", "disponível"},
}

func rowValue(rec map[string]string, field string) string {
	for _, key := range rowFields[field] {
		for k, v := range rec {
			if NormalizeText(k) == NormalizeText(key) && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

func rowBool(rec map[string]string, field string) bool {
	switch strings.ToLower(rowValue(rec, field)) {
	case "1", "true", "yes", "y", "sim", "s":
		return true
	}
	return false
}

// FromRow builds a normalized Product from one row of an uploaded table.
// Rows without a usable name are skipped (ok == false).
func FromRow(rec map[string]string, supplier string) (model.Product, bool) {
	name := rowValue(rec, "name")
	if name == "" {
		return model.Product{}, false
	}
	raw := RawProduct{
		Supplier:           supplier,
		ExternalID:         rowValue(rec, "external_id"),
		ExternalURL:        rowValue(rec, "external_url"),
		Name:               name,
		Brand:              rowValue(rec, "brand"),
		Category:           rowValue(rec, "category"),
		Unit:               rowValue(rec, "unit"),
		Quantity:           rowValue(rec, "quantity"),
		Price:              rowValue(rec, "price"),
		DiscountedPrice:    rowValue(rec, "discounted_price"),
		EAN:                rowValue(rec, "ean"),
		ManufacturerCode:   rowValue(rec, "manufacturer_code"),
		AnvisaRegistration: rowValue(rec, "anvisa_registration"),
		InStock:            rowBool(rec, "in_stock"),
	}
	return Normalize(raw), true
}

// FromRows converts a whole uploaded table, skipping unusable rows. Tables
// without an id column get a synthetic per-row id; without one, every record
// of the upload would collapse onto a single uid and the engine's claim sets
// would conflate them.
func FromRows(recs []map[string]string, supplier string) []model.Product {
	out := make([]model.Product, 0, len(recs))
	for i, rec := range recs {
		p, ok := FromRow(rec, supplier)
		if !ok {
			continue
		}
		if p.ExternalID == "" {
			p.ExternalID = "row-" + strconv.Itoa(i+1)
		}
		out = append(out, p)
	}
	return out
}
