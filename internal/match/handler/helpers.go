package handler

import (
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"catalog-match-service/internal/catalog"
	"catalog-match-service/internal/fileio"
	"catalog-match-service/internal/match/model"
)

type catalogParams struct {
	supplier  string
	headerRow int
}

// loadCatalog turns one uploaded file into normalized products. JSON
// snapshots are already normalized; spreadsheets go through the catalog
// pipeline under the supplier name from the form.
func loadCatalog(r io.Reader, filename string, params catalogParams) ([]model.Product, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".json" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return fileio.DecodeSnapshot(data)
	}

	rows, err := fileio.ReadAnyMaps(r, filename, params.headerRow)
	if err != nil {
		return nil, err
	}
	return catalog.FromRows(rows, params.supplier), nil
}

func formValue(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > 1 {
		return def
	}
	return f
}
