package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		category string
		name     string
		main     string
		sub      string
	}{
		{"", "Resina Z350 A2", "Consumíveis", "Resinas"},
		{"", "Luvas Latex c/100", "Consumíveis", "Descartáveis"},
		{"", "Lima Rotatoria ProTaper", "Consumíveis", "Endodontia"},
		{"", "Broca Carbide FG", "Instrumentos", "Rotatórios"},
		{"", "Autoclave 21L Digital", "Equipamentos", "Autoclave"},
		{"", "Fio Dental Encerado", "Higiene", "Fio Dental"},
		{"Anestésicos", "Produto Generico", "Consumíveis", "Anestésicos"},
		{"", "Chave de Fenda", "Outros", "Geral"},
	}
	for _, tc := range cases {
		main, sub := NormalizeCategory(tc.category, tc.name)
		assert.Equal(t, tc.main, main, tc.name)
		assert.Equal(t, tc.sub, sub, tc.name)
	}
}

func TestCategoryLongestKeywordWins(t *testing.T) {
	// "escova robinson" must beat the shorter "brush"/"escova dental" keywords
	main, sub := NormalizeCategory("", "Escova Robinson para Profilaxia")
	assert.Equal(t, "Consumíveis", main)
	assert.Equal(t, "Profilaxia", sub)
}

func TestCategoryPath(t *testing.T) {
	assert.Equal(t, "Consumíveis > Resinas", CategoryPath("", "Resina Filtek Z350"))
	assert.Equal(t, DefaultCategoryPath, CategoryPath("", "Artigo Sem Palavra-Chave"))
}
