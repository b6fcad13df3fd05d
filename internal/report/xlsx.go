package report

import (
	"fmt"

	excelize "github.com/xuri/excelize/v2"

	"catalog-match-service/internal/match/model"
)

var matchHeaders = []string{
	"supplier_a", "name_a", "price_a",
	"supplier_b", "name_b", "price_b",
	"confidence", "method", "status", "price_diff_percent", "cheaper_at",
}

// WriteXLSX writes a three-sheet workbook: matches plus the unmatched
// remainder of each catalog.
func WriteXLSX(path string, result model.MatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const matchSheet = "Matches"
	if err := f.SetSheetName(f.GetSheetName(0), matchSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(matchSheet, "A1", &matchHeaders); err != nil {
		return err
	}
	for i, m := range result.Matches {
		diff := ""
		if d := m.PriceDiffPercent(); d != nil {
			diff = fmt.Sprintf("%.2f", *d)
		}
		row := []any{
			m.ProductA.Supplier, m.ProductA.Name, formatPrice(m.ProductA.Price),
			m.ProductB.Supplier, m.ProductB.Name, formatPrice(m.ProductB.Price),
			m.Confidence, m.Method, m.Status, diff, m.CheaperSupplier(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(matchSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := writeUnmatchedSheet(f, "Unmatched A", result.UnmatchedA); err != nil {
		return err
	}
	if err := writeUnmatchedSheet(f, "Unmatched B", result.UnmatchedB); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeUnmatchedSheet(f *excelize.File, name string, products []model.Product) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	headers := []any{"supplier", "external_id", "name", "brand", "category", "price"}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}
	for i, p := range products {
		row := []any{p.Supplier, p.ExternalID, p.Name, p.Brand, p.Category, formatPrice(p.Price)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
