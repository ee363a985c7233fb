package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropsim/dropctl/pkg/supplier"
)

const (
	insertSupplierSQL = `INSERT INTO supplier (
			id,
			name,
			tier,
			location,
			avg_shipping_days,
			catalog_size,
			payment_terms,
			score,
			confidence,
			grade,
			risk_level,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			score = ?,
			confidence = ?,
			grade = ?,
			risk_level = ?
	`

	selectSupplierSQL = `SELECT
			id,
			name,
			tier,
			COALESCE(location, '') AS location,
			COALESCE(avg_shipping_days, 0) AS avg_shipping_days,
			COALESCE(score, 0) AS score,
			COALESCE(grade, '') AS grade,
			COALESCE(risk_level, '') AS risk_level
		FROM supplier
		ORDER BY score DESC
	`
)

// SupplierListItem is a persisted supplier row.
type SupplierListItem struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Tier            string  `json:"tier" yaml:"tier"`
	Location        string  `json:"location,omitempty" yaml:"location,omitempty"`
	AvgShippingDays float64 `json:"avg_shipping_days" yaml:"avg_shipping_days"`
	Score           float64 `json:"score" yaml:"score"`
	Grade           string  `json:"grade,omitempty" yaml:"grade,omitempty"`
	RiskLevel       string  `json:"risk_level,omitempty" yaml:"risk_level,omitempty"`
}

// SaveSuppliers upserts rated suppliers in a single transaction.
func SaveSuppliers(db *sql.DB, suppliers []*supplier.Supplier) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(suppliers) == 0 {
		return nil
	}

	stmt, err := db.Prepare(insertSupplierSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare supplier insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, s := range suppliers {
		var total, confidence float64
		var grade string
		if s.Score != nil {
			total = s.Score.Total
			confidence = s.Score.Confidence
			grade = s.Score.Grade
		}

		if _, err = tx.Stmt(stmt).Exec(
			s.ID, s.Name, string(s.Tier), s.Location, s.AvgShippingDays(),
			s.CatalogSize, s.PaymentTerms, total, confidence, grade,
			string(s.RiskLevel), now,
			total, confidence, grade, string(s.RiskLevel)); err != nil {
			slog.Error("failed to insert supplier", "index", i, "id", s.ID, "error", err)
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return fmt.Errorf("failed to execute supplier insert statement: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListSuppliers returns saved suppliers, best score first.
func ListSuppliers(db *sql.DB) ([]*SupplierListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectSupplierSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute supplier select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*SupplierListItem, 0)
	for rows.Next() {
		item := &SupplierListItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Tier, &item.Location,
			&item.AvgShippingDays, &item.Score, &item.Grade, &item.RiskLevel); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
