package service

import (
	"catalog-match-service/internal/match/model"
)

// Index groups one catalog's records under cheap exact keys so the other
// catalog only has to be scored against a small candidate set. It is built
// once per engine run and is read-only afterwards.
type Index struct {
	byEAN              map[string][]model.Product
	byManufacturerCode map[string][]model.Product
	byAnvisa           map[string][]model.Product
	byBrandCategory    map[string][]model.Product
	total              int
}

func NewIndex() *Index {
	return &Index{
		byEAN:              make(map[string][]model.Product),
		byManufacturerCode: make(map[string][]model.Product),
		byAnvisa:           make(map[string][]model.Product),
		byBrandCategory:    make(map[string][]model.Product),
	}
}

// Add files the product under every key it qualifies for. A product with
// several identifiers lands in several buckets.
func (idx *Index) Add(p model.Product) {
	idx.total++

	if p.EAN != "" {
		idx.byEAN[p.EAN] = append(idx.byEAN[p.EAN], p)
	}
	if p.ManufacturerCode != "" && p.NormalizedBrand != "" {
		key := p.NormalizedBrand + ":" + p.ManufacturerCode
		idx.byManufacturerCode[key] = append(idx.byManufacturerCode[key], p)
	}
	if p.AnvisaRegistration != "" {
		idx.byAnvisa[p.AnvisaRegistration] = append(idx.byAnvisa[p.AnvisaRegistration], p)
	}
	if p.NormalizedBrand != "" && p.Category != "" {
		key := p.NormalizedBrand + ":" + p.Category
		idx.byBrandCategory[key] = append(idx.byBrandCategory[key], p)
	}
}

func (idx *Index) AddMany(products []model.Product) {
	for _, p := range products {
		idx.Add(p)
	}
}

// FindCandidates returns every indexed record sharing at least one key with
// p, deduplicated by uid and excluding p itself. Bucket contents keep their
// insertion order and buckets are visited in a fixed order, so the result is
// reproducible across runs.
func (idx *Index) FindCandidates(p model.Product) []model.Product {
	uid := p.UID()
	seen := make(map[string]struct{})
	var out []model.Product

	collect := func(list []model.Product) {
		for _, c := range list {
			cuid := c.UID()
			if cuid == uid {
				continue
			}
			if _, ok := seen[cuid]; ok {
				continue
			}
			seen[cuid] = struct{}{}
			out = append(out, c)
		}
	}

	if p.EAN != "" {
		collect(idx.byEAN[p.EAN])
	}
	if p.ManufacturerCode != "" && p.NormalizedBrand != "" {
		collect(idx.byManufacturerCode[p.NormalizedBrand+":"+p.ManufacturerCode])
	}
	if p.AnvisaRegistration != "" {
		collect(idx.byAnvisa[p.AnvisaRegistration])
	}
	if p.NormalizedBrand != "" && p.Category != "" {
		collect(idx.byBrandCategory[p.NormalizedBrand+":"+p.Category])
	}

	return out
}

// Len is the number of products added, not the number of keys.
func (idx *Index) Len() int { return idx.total }

// IndexStats reports bucket coverage, mostly for logs.
type IndexStats struct {
	TotalProducts        int `json:"total_products"`
	WithEAN              int `json:"with_ean"`
	WithManufacturerCode int `json:"with_manufacturer_code"`
	WithAnvisa           int `json:"with_anvisa"`
	ByBrandCategory      int `json:"by_brand_category"`
}

func (idx *Index) Stats() IndexStats {
	return IndexStats{
		TotalProducts:        idx.total,
		WithEAN:              len(idx.byEAN),
		WithManufacturerCode: len(idx.byManufacturerCode),
		WithAnvisa:           len(idx.byAnvisa),
		ByBrandCategory:      len(idx.byBrandCategory),
	}
}
