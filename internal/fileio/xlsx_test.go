package fileio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyMapsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"id", "name", "price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"1", "Gaze Esteril", "5.90"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"2", "Algodao Rolete", "3.50"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadAnyMaps(bytes.NewReader(buf.Bytes()), "catalog.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Gaze Esteril", rows[0]["name"])
	assert.Equal(t, "3.50", rows[1]["price"])
}

func TestReadXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := readXLSX(bytes.NewReader(buf.Bytes()), 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
