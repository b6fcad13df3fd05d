package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-match-service/internal/match/model"
)

func product(override func(*model.Product)) model.Product {
	p := model.Product{
		Supplier:        "dental_cremer",
		ExternalID:      "1",
		Name:            "Resina Filtek Z350",
		NormalizedName:  "resina filtek z350",
		NormalizedBrand: "3m",
		Category:        "Consumíveis > Resinas",
		Quantity:        1,
		Unit:            "unidade",
	}
	if override != nil {
		override(&p)
	}
	return p
}

func TestExactRuleEAN(t *testing.T) {
	a := product(func(p *model.Product) { p.EAN = "7891234"; p.Name = "Resin X"; p.NormalizedName = "resin x" })
	b := product(func(p *model.Product) {
		p.ExternalID = "2"
		p.Supplier = "dental_speed"
		p.EAN = "7891234"
		p.Name = "Totally Different Name"
		p.NormalizedName = "totally different name"
	})

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, model.MethodEAN, m.Method)
}

func TestExactRulePriorityEANOverManufacturerCode(t *testing.T) {
	a := product(func(p *model.Product) { p.EAN = "789"; p.ManufacturerCode = "XK100" })
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.EAN = "789"; p.ManufacturerCode = "XK100" })

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, model.MethodEAN, m.Method)
}

func TestManufacturerCodeRequiresBrand(t *testing.T) {
	t.Run("case-insensitive brand equality", func(t *testing.T) {
		a := product(func(p *model.Product) { p.ManufacturerCode = "XK100"; p.NormalizedBrand = "3m" })
		b := product(func(p *model.Product) { p.ExternalID = "2"; p.ManufacturerCode = "XK100"; p.NormalizedBrand = "3M" })

		m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
		require.True(t, ok)
		assert.Equal(t, 1.0, m.Confidence)
		assert.Equal(t, model.MethodManufacturerCode, m.Method)
	})

	t.Run("different brands reuse codes", func(t *testing.T) {
		a := product(func(p *model.Product) {
			p.ManufacturerCode = "XK100"
			p.NormalizedBrand = "3m"
			p.NormalizedName = "resina a"
		})
		b := product(func(p *model.Product) {
			p.ExternalID = "2"
			p.ManufacturerCode = "XK100"
			p.NormalizedBrand = "kerr"
			p.NormalizedName = "broca b"
		})

		_, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
		assert.False(t, ok)
	})

	t.Run("empty brand never matches empty", func(t *testing.T) {
		a := product(func(p *model.Product) {
			p.ManufacturerCode = "XK100"
			p.NormalizedBrand = ""
			p.NormalizedName = "produto um"
		})
		b := product(func(p *model.Product) {
			p.ExternalID = "2"
			p.ManufacturerCode = "XK100"
			p.NormalizedBrand = ""
			p.NormalizedName = "outro produto"
		})

		_, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
		assert.False(t, ok)
	})
}

func TestExactRuleAnvisa(t *testing.T) {
	a := product(func(p *model.Product) { p.AnvisaRegistration = "80123450001" })
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.AnvisaRegistration = "80123450001" })

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, 0.95, m.Confidence)
	assert.Equal(t, model.MethodAnvisa, m.Method)
}

func TestNameGateBlocksUnrelatedNames(t *testing.T) {
	// identical brand, category, quantity and unit cannot rescue a pair
	// whose names disagree
	a := product(func(p *model.Product) { p.NormalizedName = "resina fotopolimerizavel a2" })
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.NormalizedName = "broca diamantada 1012" })

	_, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	assert.False(t, ok)
}

func TestEmptyNormalizedNameNeverFuzzyMatches(t *testing.T) {
	a := product(func(p *model.Product) { p.NormalizedName = "" })
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.NormalizedName = "" })

	_, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	assert.False(t, ok)
}

func TestFuzzyScoreAccumulation(t *testing.T) {
	// identical names, symmetric brand absence, empty categories:
	// 1.0*0.40 + 0.5*0.25 + 0 + 0.10 + 0.10 = 0.725
	a := product(func(p *model.Product) {
		p.NormalizedName = "resina filtek z350 4g"
		p.NormalizedBrand = ""
		p.Category = ""
		p.Quantity = 1
		p.Unit = "unit"
	})
	b := product(func(p *model.Product) {
		p.ExternalID = "2"
		p.Supplier = "dental_speed"
		p.NormalizedName = "resina filtek z350 4g"
		p.NormalizedBrand = ""
		p.Category = ""
		p.Quantity = 1
		p.Unit = "unit"
	})

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, 0.725, m.Confidence)
	assert.Equal(t, model.MethodFuzzy, m.Method)
}

func TestFuzzyFullAgreement(t *testing.T) {
	a := product(nil)
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.Supplier = "dental_speed" })

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, model.MethodFuzzy, m.Method)
}

func TestFuzzyTokenOrderInsensitive(t *testing.T) {
	a := product(func(p *model.Product) { p.NormalizedName = "resina filtek z350" })
	b := product(func(p *model.Product) { p.ExternalID = "2"; p.NormalizedName = "z350 filtek resina" })

	m, ok := ComputeSimilarity(a, b, DefaultFuzzyThreshold)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Confidence)
}

func TestFuzzyOneSidedBrandAbsenceGetsNoCredit(t *testing.T) {
	base := func(p *model.Product) {
		p.NormalizedName = "resina filtek z350"
		p.Category = ""
	}
	a := product(func(p *model.Product) { base(p); p.NormalizedBrand = "3m" })
	bEmpty := product(func(p *model.Product) { base(p); p.ExternalID = "2"; p.NormalizedBrand = "" })
	bBoth := product(func(p *model.Product) { base(p); p.ExternalID = "3"; p.NormalizedBrand = "3m" })

	mOne, okOne := ComputeSimilarity(a, bEmpty, 0.5)
	mBoth, okBoth := ComputeSimilarity(a, bBoth, 0.5)
	require.True(t, okOne)
	require.True(t, okBoth)
	assert.Less(t, mOne.Confidence, mBoth.Confidence)
}

func TestFuzzyQuantityPartialCredit(t *testing.T) {
	a := product(func(p *model.Product) { p.Quantity = 50 })
	bEqual := product(func(p *model.Product) { p.ExternalID = "2"; p.Quantity = 50 })
	bHalf := product(func(p *model.Product) { p.ExternalID = "3"; p.Quantity = 100 })

	mEqual, ok := ComputeSimilarity(a, bEqual, 0.5)
	require.True(t, ok)
	mHalf, ok := ComputeSimilarity(a, bHalf, 0.5)
	require.True(t, ok)

	// min/max = 0.5, halved again: 0.025 credit instead of 0.10
	assert.InDelta(t, mEqual.Confidence-mHalf.Confidence, 0.075, 0.001)
}

func TestFuzzySymmetry(t *testing.T) {
	a := product(func(p *model.Product) { p.NormalizedName = "resina z350 filtek a2"; p.Quantity = 2 })
	b := product(func(p *model.Product) {
		p.ExternalID = "2"
		p.NormalizedName = "resina filtek z350 cor a2"
		p.Quantity = 3
		p.Unit = "caixa"
	})

	mab, okAB := ComputeSimilarity(a, b, 0.5)
	mba, okBA := ComputeSimilarity(b, a, 0.5)
	require.Equal(t, okAB, okBA)
	assert.Equal(t, mab, mba)
}

func TestFuzzyThresholdIsRespected(t *testing.T) {
	a := product(func(p *model.Product) {
		p.NormalizedName = "resina filtek z350 4g"
		p.NormalizedBrand = ""
		p.Category = ""
		p.Unit = "unit"
	})
	b := product(func(p *model.Product) {
		p.ExternalID = "2"
		p.NormalizedName = "resina filtek z350 4g"
		p.NormalizedBrand = ""
		p.Category = ""
		p.Unit = "unit"
	})

	// accumulated score is 0.725
	_, ok := ComputeSimilarity(a, b, 0.73)
	assert.False(t, ok)

	m, ok := ComputeSimilarity(a, b, 0.70)
	require.True(t, ok)
	assert.Equal(t, 0.725, m.Confidence)
}

func TestTokenSortSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, tokenSortSimilarity("lima endodontica", "endodontica lima"))
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 0.0, similarity("abc", ""))
}

func TestDamerauLevenshtein(t *testing.T) {
	assert.Equal(t, 0, damerauLevenshtein("resina", "resina"))
	assert.Equal(t, 1, damerauLevenshtein("resina", "resinas"))
	// adjacent transposition counts once
	assert.Equal(t, 1, damerauLevenshtein("resian", "resina"))
	assert.Equal(t, 6, damerauLevenshtein("", "resina"))
}
