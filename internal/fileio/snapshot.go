package fileio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-match-service/internal/match/model"
)

// DecodeSnapshot decodes a JSON array of normalized products. A snapshot cut
// short by an interrupted run may be missing its closing bracket; in that
// case the document is truncated to the last complete element and the array
// is closed before decoding.
func DecodeSnapshot(data []byte) ([]model.Product, error) {
	trimmed := strings.TrimRight(string(data), " \t\r\n")
	if !strings.HasSuffix(trimmed, "]") {
		if last := strings.LastIndex(trimmed, "}"); last >= 0 {
			trimmed = trimmed[:last+1] + "]"
		}
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(trimmed), &products); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return products, nil
}

// LoadSnapshot reads one supplier's catalog snapshot from disk.
func LoadSnapshot(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(data)
}

// FindLatestSnapshots scans dir for files named <supplier>_<timestamp>.json
// and keeps the newest file per supplier prefix. Metadata files are skipped.
func FindLatestSnapshots(dir string, suppliers []string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if e.Name() == "suppliers_metadata.json" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".json")
		for _, supplier := range suppliers {
			if !strings.HasPrefix(stem, supplier) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if prev, ok := files[supplier]; ok && newerFile(prev, path) {
				continue
			}
			files[supplier] = path
		}
	}
	return files, nil
}

// newerFile reports whether a is newer than b by mtime.
func newerFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return true
	}
	return ia.ModTime().After(ib.ModTime())
}
