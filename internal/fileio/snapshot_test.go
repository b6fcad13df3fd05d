package fileio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	data := []byte(`[
		{"supplier":"dental_cremer","external_id":"1","name":"Resina Z350"},
		{"supplier":"dental_cremer","external_id":"2","name":"Luvas Latex"}
	]`)
	products, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "dental_cremer:1", products[0].UID())
	assert.Equal(t, "Luvas Latex", products[1].Name)
}

func TestDecodeSnapshotTruncated(t *testing.T) {
	// cut mid-element, as left behind by an interrupted harvest run
	data := []byte(`[
		{"supplier":"dental_speed","external_id":"1","name":"Resina Z350"},
		{"supplier":"dental_speed","external_id":"2","name":"Luvas Latex"},
		{"supplier":"dental_speed","exte`)
	products, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ExternalID)
	assert.Equal(t, "2", products[1].ExternalID)
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`not json at all`))
	assert.Error(t, err)
}

func TestFindLatestSnapshots(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, age time.Duration) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
		mtime := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	write("dental_cremer_20240101.json", 48*time.Hour)
	write("dental_cremer_20240102.json", 1*time.Hour)
	write("dental_speed_20240101.json", 24*time.Hour)
	write("suppliers_metadata.json", 0)
	write("unrelated_20240101.json", 0)

	files, err := FindLatestSnapshots(dir, []string{"dental_cremer", "dental_speed"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "dental_cremer_20240102.json"), files["dental_cremer"])
	assert.Equal(t, filepath.Join(dir, "dental_speed_20240101.json"), files["dental_speed"])
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
