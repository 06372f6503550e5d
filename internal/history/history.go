// Package history records each optimization run so past results can be
// listed and re-opened. Failures here never fail the user-facing request.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/JulesSitpach/tradenavigatorpro/internal/pricing"
)

// Store persists optimization runs in the optimizations table.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one recorded optimization, as returned by List.
type Run struct {
	ID            int64   `json:"id"`
	CreatedAt     string  `json:"created_at"`
	UserEmail     string  `json:"user_email"`
	ProductName   string  `json:"product_name"`
	ProductSKU    string  `json:"product_sku"`
	ScenarioCount int     `json:"scenario_count"`
	ResultID      string  `json:"result_id"`
	OptimalPrice  float64 `json:"optimal_price"`
}

// Record stores a completed run with its full result payload.
func (s *Store) Record(ctx context.Context, userEmail string, result *pricing.OptimizationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode optimization result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO optimizations (result_id, user_email, product_name, product_sku, scenario_count, result_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.ID, userEmail, result.Product.Name, result.Product.SKU, len(result.Scenarios), string(data))
	if err != nil {
		return fmt.Errorf("insert optimization run: %w", err)
	}
	return nil
}

// List returns runs newest-first, optionally filtered by a substring of the
// product name or sku.
func (s *Store) List(ctx context.Context, query string) ([]Run, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, user_email, product_name, product_sku, scenario_count, result_id, result_json
		FROM optimizations
		WHERE (? = '' OR product_name LIKE ? OR product_sku LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query optimizations: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var resultJSON string
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.UserEmail, &run.ProductName,
			&run.ProductSKU, &run.ScenarioCount, &run.ResultID, &resultJSON); err != nil {
			return nil, fmt.Errorf("scan optimization run: %w", err)
		}
		run.OptimalPrice = extractSuggestedPrice(resultJSON)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate optimization runs: %w", err)
	}
	return runs, nil
}

func extractSuggestedPrice(resultJSON string) float64 {
	var partial struct {
		Recommendations struct {
			PriceSuggestion float64 `json:"price_suggestion"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(resultJSON), &partial); err != nil {
		return 0
	}
	return partial.Recommendations.PriceSuggestion
}
