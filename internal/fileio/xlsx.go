package fileio

import (
	"bytes"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a modern Excel catalog export. Only the
// first sheet is consulted; supplier exports put the price table there.
func readXLSX(r io.Reader, headerRow int) ([]map[string]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}
