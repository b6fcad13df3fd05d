package catalog

import (
	"sort"
	"strings"
)

// DefaultCategoryPath is used when no keyword matches.
const DefaultCategoryPath = "Outros > Geral"

type categoryKeyword struct {
	keyword string
	main    string
	sub     string
}

var categoryMappings = map[string]map[string][]string{
	"Consumíveis": {
		"Anestésicos": {
			"anestesico", "anestesia", "lidocaina", "mepivacaina",
			"articaina", "prilocaina", "anesthetic",
		},
		"Resinas": {
			"resina", "composto", "composite", "restaurador",
			"z350", "z250", "filtek", "charisma", "empress",
		},
		"Cimentos": {
			"cimento", "ionomer", "ionomero", "resinoso",
			"provisorio", "definitivo", "cement",
		},
		"Adesivos": {
			"adesivo", "bond", "bonding", "primer", "single bond",
			"scotchbond", "adhesive",
		},
		"Descartáveis": {
			"luva", "mascara", "sugador", "gaze", "algodao",
			"babador", "guardanapo", "touca", "propé", "avental",
		},
		"Endodontia": {
			"lima", "endodontico", "guta", "obturador", "localizador",
			"canal", "hipoclorito", "edta", "file", "rotary",
		},
		"Profilaxia": {
			"pasta profilatica", "escova robinson", "taca borracha",
			"polimento", "profilaxia", "prophylaxis",
		},
		"Clareamento": {
			"clareador", "peróxido", "whitening", "branqueamento",
			"clareamento",
		},
		"Moldagem": {
			"alginato", "silicone", "moldeira", "gesso", "molde",
			"impression", "putty",
		},
	},
	"Instrumentos": {
		"Manuais": {
			"cureta", "espatula", "sonda", "pinça", "tesoura",
			"porta agulha", "afastador", "espelho",
		},
		"Rotatórios": {
			"broca", "ponta diamantada", "fresa", "mandril",
			"disco", "tira de lixa", "bur", "drill",
		},
		"Cirúrgicos": {
			"elevador", "forceps", "alavanca", "sindesmotomo",
			"bisturi", "sutura", "fio cirurgico",
		},
	},
	"Equipamentos": {
		"Fotopolimerizadores": {
			"fotopolimerizador", "led", "luz", "curing",
			"polimerizar",
		},
		"Ultrassom": {
			"ultrassom", "ultrasonic", "piezo", "scaler",
		},
		"Autoclave": {
			"autoclave", "esterilizador", "estufa", "sterilizer",
		},
		"Raio-X": {
			"raio-x", "radiografia", "sensor", "filme", "revelador",
			"x-ray", "radiograph",
		},
	},
	"Higiene": {
		"Escovas": {
			"escova dental", "escova interdental", "brush",
		},
		"Fio Dental": {
			"fio dental", "fita dental", "floss",
		},
		"Enxaguantes": {
			"enxaguante", "antisseptico", "clorexidina", "mouthwash",
		},
	},
}

// Flattened and sorted longest-keyword-first so "pasta profilatica" wins
// over "pasta". Ties break lexicographically to keep matching reproducible.
var categoryKeywords = func() []categoryKeyword {
	var out []categoryKeyword
	for main, subcats := range categoryMappings {
		for sub, keywords := range subcats {
			for _, kw := range keywords {
				out = append(out, categoryKeyword{NormalizeText(kw), main, sub})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].keyword) != len(out[j].keyword) {
			return len(out[i].keyword) > len(out[j].keyword)
		}
		return out[i].keyword < out[j].keyword
	})
	return out
}()

// NormalizeCategory classifies a product into (main, sub) by keyword search
// over the raw category plus the product name.
func NormalizeCategory(category, productName string) (string, string) {
	searchText := NormalizeText(category + " " + productName)
	for _, ck := range categoryKeywords {
		if strings.Contains(searchText, ck.keyword) {
			return ck.main, ck.sub
		}
	}
	return "Outros", "Geral"
}

// CategoryPath renders the canonical "Main > Sub" path string.
func CategoryPath(category, productName string) string {
	main, sub := NormalizeCategory(category, productName)
	return main + " > " + sub
}
