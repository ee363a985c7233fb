package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropsim/dropctl/pkg/influencer"
)

const (
	insertInfluencerSQL = `INSERT INTO influencer (
			id,
			name,
			username,
			platform,
			niche,
			followers,
			engagement_rate,
			tier,
			rate_per_post,
			score,
			confidence,
			grade,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			followers = ?,
			engagement_rate = ?,
			score = ?,
			confidence = ?,
			grade = ?
	`

	selectInfluencerSQL = `SELECT
			id,
			COALESCE(name, '') AS name,
			username,
			platform,
			COALESCE(niche, '') AS niche,
			followers,
			COALESCE(engagement_rate, 0) AS engagement_rate,
			COALESCE(tier, '') AS tier,
			COALESCE(score, 0) AS score,
			COALESCE(grade, '') AS grade
		FROM influencer
		WHERE platform = COALESCE(?, platform)
		ORDER BY score DESC
	`
)

// InfluencerListItem is a persisted influencer row.
type InfluencerListItem struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name,omitempty" yaml:"name,omitempty"`
	Username       string  `json:"username" yaml:"username"`
	Platform       string  `json:"platform" yaml:"platform"`
	Niche          string  `json:"niche,omitempty" yaml:"niche,omitempty"`
	Followers      int     `json:"followers" yaml:"followers"`
	EngagementRate float64 `json:"engagement_rate" yaml:"engagement_rate"`
	Tier           string  `json:"tier,omitempty" yaml:"tier,omitempty"`
	Score          float64 `json:"score" yaml:"score"`
	Grade          string  `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// SaveInfluencers upserts scored influencers in a single transaction.
func SaveInfluencers(db *sql.DB, list []*influencer.Influencer) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(list) == 0 {
		return nil
	}

	stmt, err := db.Prepare(insertInfluencerSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare influencer insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, inf := range list {
		var total, confidence float64
		var grade string
		if inf.Score != nil {
			total = inf.Score.Total
			confidence = inf.Score.Confidence
			grade = inf.Score.Grade
		}

		if _, err = tx.Stmt(stmt).Exec(
			inf.ID, inf.Name, inf.Username, string(inf.Platform), inf.Niche,
			inf.Followers, inf.EngagementRate, string(inf.Tier), inf.RatePerPost,
			total, confidence, grade, now,
			inf.Followers, inf.EngagementRate, total, confidence, grade); err != nil {
			slog.Error("failed to insert influencer", "index", i, "id", inf.ID, "error", err)
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return fmt.Errorf("failed to execute influencer insert statement: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListInfluencers returns saved influencers for a platform, best score
// first. An empty platform returns every platform.
func ListInfluencers(db *sql.DB, platform string) ([]*InfluencerListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	var p interface{}
	if platform != "" {
		p = platform
	}

	rows, err := db.Query(selectInfluencerSQL, p)
	if err != nil {
		return nil, fmt.Errorf("failed to execute influencer select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*InfluencerListItem, 0)
	for rows.Next() {
		item := &InfluencerListItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Username, &item.Platform,
			&item.Niche, &item.Followers, &item.EngagementRate, &item.Tier,
			&item.Score, &item.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan influencer row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
