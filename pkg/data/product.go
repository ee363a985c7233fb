package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropsim/dropctl/pkg/catalog"
)

const (
	insertProductSQL = `INSERT INTO product (
			id,
			name,
			niche,
			cost,
			retail_price,
			supplier,
			score,
			confidence,
			grade,
			trend_direction,
			growth_rate,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			score = ?,
			confidence = ?,
			grade = ?,
			trend_direction = ?,
			growth_rate = ?
	`

	selectProductSQL = `SELECT
			id,
			name,
			niche,
			cost,
			retail_price,
			COALESCE(supplier, '') AS supplier,
			COALESCE(score, 0) AS score,
			COALESCE(grade, '') AS grade
		FROM product
		ORDER BY score DESC
		LIMIT ?
	`
)

// ProductListItem is a persisted product row.
type ProductListItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Niche       string  `json:"niche" yaml:"niche"`
	Cost        float64 `json:"cost" yaml:"cost"`
	RetailPrice float64 `json:"retail_price" yaml:"retail_price"`
	Supplier    string  `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Score       float64 `json:"score" yaml:"score"`
	Grade       string  `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// SaveProducts upserts analyzed products in a single transaction.
func SaveProducts(db *sql.DB, products []*catalog.Product) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(products) == 0 {
		return nil
	}

	stmt, err := db.Prepare(insertProductSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare product insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, p := range products {
		var total, confidence float64
		var grade string
		if p.Score != nil {
			total = p.Score.Total
			confidence = p.Score.Confidence
			grade = p.Score.Grade
		}
		var direction string
		var growth float64
		if p.Trend != nil {
			direction = string(p.Trend.Direction)
			growth = p.Trend.GrowthRate
		}
		created := p.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}

		if _, err = tx.Stmt(stmt).Exec(
			p.ID, p.Name, p.Niche, p.Cost, p.RetailPrice, p.Supplier,
			total, confidence, grade, direction, growth, created.Format(time.RFC3339),
			total, confidence, grade, direction, growth); err != nil {
			slog.Error("failed to insert product", "index", i, "id", p.ID, "error", err)
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return fmt.Errorf("failed to execute product insert statement: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListProducts returns saved products, best score first.
func ListProducts(db *sql.DB, limit int) ([]*ProductListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(selectProductSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute product select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*ProductListItem, 0)
	for rows.Next() {
		item := &ProductListItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Niche, &item.Cost,
			&item.RetailPrice, &item.Supplier, &item.Score, &item.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
