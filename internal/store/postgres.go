// Package store persists catalog snapshots and match runs to Postgres.
// It is an optional collaborator: nothing in the matching core depends on it
// and it only activates when DATABASE_URL is configured.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"catalog-match-service/internal/match/model"
)

type Store struct {
	db *sqlx.DB
}

func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// getOrCreateSupplier resolves a supplier id by slug, creating the row on
// first sight.
func (s *Store) getOrCreateSupplier(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowxContext(ctx, `SELECT id FROM suppliers WHERE slug = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO suppliers (name, slug, is_active, created_at, updated_at)
		VALUES ($1, $1, true, NOW(), NOW())
		ON CONFLICT (slug) DO UPDATE SET updated_at = NOW()
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert supplier %q: %w", name, err)
	}
	return id, nil
}

// SaveProducts upserts one supplier's catalog and appends a price-history
// row whenever a product's price changed since the previous snapshot.
func (s *Store) SaveProducts(ctx context.Context, products []model.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	supplierIDs := make(map[string]int64)

	for _, p := range products {
		supplierID, ok := supplierIDs[p.Supplier]
		if !ok {
			supplierID, err = s.getOrCreateSupplier(ctx, tx, p.Supplier)
			if err != nil {
				return err
			}
			supplierIDs[p.Supplier] = supplierID
		}

		var oldPrice *string
		err = tx.QueryRowxContext(ctx, `
			SELECT current_price::text FROM supplier_products
			WHERE supplier_id = $1 AND external_id = $2`, supplierID, p.ExternalID).Scan(&oldPrice)
		hadRow := err == nil

		var productID int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO supplier_products (
				supplier_id, external_id, external_url, name, normalized_name,
				brand, normalized_brand, category, unit, quantity,
				ean, anvisa_registration, manufacturer_code, in_stock,
				current_price, discounted_price, last_scraped_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW(),NOW(),NOW())
			ON CONFLICT (supplier_id, external_id) DO UPDATE SET
				external_url = EXCLUDED.external_url,
				name = EXCLUDED.name,
				normalized_name = EXCLUDED.normalized_name,
				brand = EXCLUDED.brand,
				normalized_brand = EXCLUDED.normalized_brand,
				category = EXCLUDED.category,
				unit = EXCLUDED.unit,
				quantity = EXCLUDED.quantity,
				ean = EXCLUDED.ean,
				anvisa_registration = EXCLUDED.anvisa_registration,
				manufacturer_code = EXCLUDED.manufacturer_code,
				in_stock = EXCLUDED.in_stock,
				current_price = EXCLUDED.current_price,
				discounted_price = EXCLUDED.discounted_price,
				last_scraped_at = NOW(),
				updated_at = NOW()
			RETURNING id`,
			supplierID, p.ExternalID, p.ExternalURL, p.Name, p.NormalizedName,
			p.Brand, p.NormalizedBrand, p.Category, p.Unit, p.Quantity,
			nullStr(p.EAN), nullStr(p.AnvisaRegistration), nullStr(p.ManufacturerCode), p.InStock,
			p.Price, p.DiscountedPrice,
		).Scan(&productID)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.UID(), err)
		}

		if p.Price != nil && priceChanged(hadRow, oldPrice, p.Price.String()) {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO price_history (supplier_product_id, price, discounted_price, recorded_at)
				VALUES ($1, $2, $3, NOW())`,
				productID, p.Price, p.DiscountedPrice)
			if err != nil {
				return fmt.Errorf("insert price history %s: %w", p.UID(), err)
			}
		}
	}

	return tx.Commit()
}

// SaveResult records one match run and its committed pairings.
func (s *Store) SaveResult(ctx context.Context, result model.MatchResult, threshold float64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stats := result.Stats()
	var runID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO match_runs (threshold, total_matches, unmatched_a, unmatched_b, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`,
		threshold, stats.TotalMatches, stats.UnmatchedA, stats.UnmatchedB).Scan(&runID)
	if err != nil {
		return fmt.Errorf("insert match run: %w", err)
	}

	for _, m := range result.Matches {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_matches (
				run_id, uid_a, uid_b, confidence, method, status, matched_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, m.ProductA.UID(), m.ProductB.UID(),
			m.Confidence, m.Method, m.Status, m.MatchedAt)
		if err != nil {
			return fmt.Errorf("insert match %s/%s: %w", m.ProductA.UID(), m.ProductB.UID(), err)
		}
	}

	return tx.Commit()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func priceChanged(hadRow bool, old *string, current string) bool {
	if !hadRow || old == nil {
		return true
	}
	return *old != current
}
