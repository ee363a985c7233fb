package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropsim/dropctl/pkg/content"
)

const (
	insertContentSQL = `INSERT INTO content (
			id,
			product,
			platform,
			hook_type,
			hook,
			viral_score,
			viral_tier,
			coefficient,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	selectContentSQL = `SELECT
			id,
			product,
			platform,
			COALESCE(hook_type, '') AS hook_type,
			COALESCE(hook, '') AS hook,
			COALESCE(viral_score, 0) AS viral_score,
			COALESCE(viral_tier, '') AS viral_tier,
			COALESCE(coefficient, 0) AS coefficient
		FROM content
		ORDER BY viral_score DESC
		LIMIT ?
	`
)

// ContentListItem is a persisted content row.
type ContentListItem struct {
	ID          string  `json:"id" yaml:"id"`
	Product     string  `json:"product" yaml:"product"`
	Platform    string  `json:"platform" yaml:"platform"`
	HookType    string  `json:"hook_type,omitempty" yaml:"hook_type,omitempty"`
	Hook        string  `json:"hook,omitempty" yaml:"hook,omitempty"`
	ViralScore  float64 `json:"viral_score" yaml:"viral_score"`
	ViralTier   string  `json:"viral_tier,omitempty" yaml:"viral_tier,omitempty"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// SaveContent stores generated content pieces in a single transaction.
func SaveContent(db *sql.DB, pieces []*content.Piece) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(pieces) == 0 {
		return nil
	}

	stmt, err := db.Prepare(insertContentSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare content insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, p := range pieces {
		var total float64
		var tier string
		if p.ViralScore != nil {
			total = p.ViralScore.Total
			tier = p.ViralScore.Grade
		}
		created := p.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}

		if _, err = tx.Stmt(stmt).Exec(
			p.ID, p.ProductName, string(p.Platform), string(p.HookType), p.Hook,
			total, tier, p.Coefficient(), created.Format(time.RFC3339)); err != nil {
			slog.Error("failed to insert content", "index", i, "id", p.ID, "error", err)
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return fmt.Errorf("failed to execute content insert statement: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListContent returns saved content, most viral first.
func ListContent(db *sql.DB, limit int) ([]*ContentListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(selectContentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute content select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*ContentListItem, 0)
	for rows.Next() {
		item := &ContentListItem{}
		if err := rows.Scan(&item.ID, &item.Product, &item.Platform, &item.HookType,
			&item.Hook, &item.ViralScore, &item.ViralTier, &item.Coefficient); err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
