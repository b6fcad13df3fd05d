package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"catalog-match-service/internal/config"
	matchSvc "catalog-match-service/internal/match/service"
)

// Match returns an http.HandlerFunc so the router can mount it as
// r.Post("/match", matchHnd.Match(cfg, logger)).
//
// The request is a multipart form with two catalog files, fileA and fileB:
// JSON snapshots carry their supplier per record, spreadsheet uploads
// (csv/xls/xlsx) need supplier_a/supplier_b form values. An optional
// "threshold" form value overrides the configured fuzzy threshold.
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		log := logger
		if reqID != "" {
			log = logger.With().Str("req_id", reqID).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		fileA, headerA, err := r.FormFile("fileA")
		if err != nil {
			http.Error(w, "missing fileA: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer fileA.Close()

		fileB, headerB, err := r.FormFile("fileB")
		if err != nil {
			http.Error(w, "missing fileB: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer fileB.Close()

		productsA, err := loadCatalog(fileA, headerA.Filename, catalogParams{
			supplier:  formValue(r, "supplier_a", "supplier-a"),
			headerRow: atoi(r.FormValue("a_header_row"), 1),
		})
		if err != nil {
			http.Error(w, "failed to read A: "+err.Error(), http.StatusBadRequest)
			return
		}
		productsB, err := loadCatalog(fileB, headerB.Filename, catalogParams{
			supplier:  formValue(r, "supplier_b", "supplier-b"),
			headerRow: atoi(r.FormValue("b_header_row"), 1),
		})
		if err != nil {
			http.Error(w, "failed to read B: "+err.Error(), http.StatusBadRequest)
			return
		}

		threshold := toFloat(r.FormValue("threshold"), cfg.MatchThreshold)

		engine := matchSvc.NewEngine(threshold)
		result := engine.Match(productsA, productsB)
		stats := result.Stats()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Export()); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("products_a", len(productsA)).
			Int("products_b", len(productsB)).
			Int("matches", stats.TotalMatches).
			Int("unmatched_a", stats.UnmatchedA).
			Int("unmatched_b", stats.UnmatchedB).
			Float64("threshold", threshold).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}
