// matchcli runs the matching engine over the latest catalog snapshots in a
// directory and prints a price-comparison summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"catalog-match-service/internal/fileio"
	"catalog-match-service/internal/match/model"
	matchSvc "catalog-match-service/internal/match/service"
	"catalog-match-service/internal/report"
	"catalog-match-service/internal/store"
)

func main() {
	var (
		dir       = flag.String("dir", "output", "directory containing catalog snapshot JSON files")
		suppliers = flag.String("suppliers", "dental_cremer,dental_speed", "comma-separated supplier snapshot prefixes")
		threshold = flag.Float64("threshold", matchSvc.DefaultFuzzyThreshold, "minimum confidence threshold for fuzzy matching")
		output    = flag.String("output", "", "output file for match results (JSON)")
		xlsxOut   = flag.String("xlsx", "", "output file for the match report (XLSX)")
		topN      = flag.Int("top", 10, "matches to show in the summary")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := run(logger, *dir, splitList(*suppliers), *threshold, *output, *xlsxOut, *topN); err != nil {
		logger.Fatal().Err(err).Msg("matching failed")
	}
}

func run(logger zerolog.Logger, dir string, suppliers []string, threshold float64, output, xlsxOut string, topN int) error {
	files, err := fileio.FindLatestSnapshots(dir, suppliers)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(files) < 2 {
		return fmt.Errorf("need at least 2 supplier snapshots, found %d in %s", len(files), dir)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []model.Product
	for _, name := range names {
		products, err := fileio.LoadSnapshot(files[name])
		if err != nil {
			return fmt.Errorf("load %s: %w", files[name], err)
		}
		logger.Info().Str("supplier", name).Int("products", len(products)).Msg("snapshot loaded")
		all = append(all, products...)
	}

	engine := matchSvc.NewEngine(threshold)
	result := engine.MatchAllPairs(all)

	fmt.Println(report.Summary(result, topN))

	if output != "" {
		if err := report.WriteJSON(output, result, files); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		logger.Info().Str("path", output).Msg("results saved")
	}
	if xlsxOut != "" {
		if err := report.WriteXLSX(xlsxOut, result); err != nil {
			return fmt.Errorf("write %s: %w", xlsxOut, err)
		}
		logger.Info().Str("path", xlsxOut).Msg("report saved")
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		if err := persist(dbURL, all, result, threshold); err != nil {
			return err
		}
		logger.Info().Msg("results persisted")
	}

	return nil
}

func persist(dbURL string, products []model.Product, result model.MatchResult, threshold float64) error {
	st, err := store.Open(dbURL)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := st.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	if err := st.SaveResult(ctx, result, threshold); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
